// Package lexical reads editor state saved by the Lexical rich-text editor.
package lexical

import (
	"encoding/json"
	"strings"
)

type document struct {
	Root node `json:"root"`
}

type node struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Children []node `json:"children,omitempty"`
}

// block nodes end with a line break when flattened.
var blockTypes = map[string]bool{
	"root":      true,
	"paragraph": true,
	"heading":   true,
	"quote":     true,
	"listitem":  true,
	"tablerow":  true,
	"code":      true,
}

// LooksLikeState reports whether content is a serialized editor state.
func LooksLikeState(content string) bool {
	trimmed := strings.TrimSpace(content)
	return strings.HasPrefix(trimmed, "{") && strings.Contains(trimmed, `"root"`)
}

// PlainText flattens an editor state into its text. ok is false when content
// is not a parseable editor state.
func PlainText(content string) (text string, ok bool) {
	if !LooksLikeState(content) {
		return "", false
	}
	var doc document
	if err := json.Unmarshal([]byte(content), &doc); err != nil || doc.Root.Type == "" {
		return "", false
	}

	var sb strings.Builder
	walk(doc.Root, &sb)
	return strings.TrimSpace(sb.String()), true
}

func walk(n node, sb *strings.Builder) {
	switch n.Type {
	case "text", "code-highlight":
		sb.WriteString(n.Text)
	case "linebreak":
		sb.WriteString("\n")
	case "tablecell":
		for _, child := range n.Children {
			walk(child, sb)
		}
		sb.WriteString(" ")
	default:
		for _, child := range n.Children {
			walk(child, sb)
		}
	}
	if blockTypes[n.Type] {
		sb.WriteString("\n")
	}
}
