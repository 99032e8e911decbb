package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	state := `{"root":{"type":"root","children":[
		{"type":"heading","children":[{"type":"text","text":"Sprint notes","format":1}]},
		{"type":"paragraph","children":[{"type":"text","text":"Deploy the "},{"type":"link","url":"https://x","children":[{"type":"text","text":"api"}]}]},
		{"type":"list","listType":"bullet","children":[
			{"type":"listitem","checked":false,"children":[{"type":"text","text":"fix login"}]},
			{"type":"listitem","children":[{"type":"text","text":"ship"}]}
		]}
	]}}`

	text, ok := PlainText(state)

	assert.True(t, ok)
	assert.Equal(t, "Sprint notes\nDeploy the api\nfix login\nship", text)
}

func TestPlainTextRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"html", "<p>hello</p>"},
		{"plain", "just text"},
		{"broken json", `{"root": {`},
		{"other json", `{"rooted":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := PlainText(tt.content)
			assert.False(t, ok)
		})
	}
}
