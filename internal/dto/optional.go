package dto

import (
	"encoding/json"
)

// OptionalUUID is a tri-state JSON field: absent (Set false), null (Set
// true, Value nil) or a string id. The id is parsed later so a malformed
// value surfaces as a validation error rather than a body parse error.
type OptionalUUID struct {
	Set   bool
	Value *string
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Null reports an explicit null.
func (o OptionalUUID) Null() bool {
	return o.Set && o.Value == nil
}
