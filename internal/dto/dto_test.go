package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteRequestNotebookStates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		set     bool
		null    bool
		value   string
		wantErr bool
	}{
		{name: "absent", body: `{"title":"t"}`},
		{name: "null", body: `{"notebookId":null}`, set: true, null: true},
		{name: "value", body: `{"notebookId":"abc"}`, set: true, value: "abc"},
		{name: "wrong type", body: `{"notebookId":12}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateNoteRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.set, req.NotebookId.Set)
			assert.Equal(t, tt.null, req.NotebookId.Null())
			if tt.value != "" {
				require.NotNil(t, req.NotebookId.Value)
				assert.Equal(t, tt.value, *req.NotebookId.Value)
			}
		})
	}
}

func TestUpdateNoteRequestPartialFields(t *testing.T) {
	var req UpdateNoteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"content":"<p>x</p>"}`), &req))
	assert.Nil(t, req.Title)
	require.NotNil(t, req.Content)
	assert.Equal(t, "<p>x</p>", *req.Content)
}

func TestNewListNotesRequest(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 10},
		{"2", "20", 2, 20},
		{"abc", "-5", 1, 10},
		{"0", "0", 1, 10},
		{"3", "1000", 3, 100},
	}
	for _, tt := range tests {
		req := NewListNotesRequest(tt.page, tt.limit, "")
		assert.Equal(t, tt.wantPage, req.Page, "page %q", tt.page)
		assert.Equal(t, tt.wantLimit, req.Limit, "limit %q", tt.limit)
	}
}
