package utils

import (
	"regexp"
	"strings"

	"smartnotes-be/pkg/lexical"
)

var markupPattern = regexp.MustCompile(`<[^>]*>?`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// StripMarkup replaces every tag with a space and collapses the remaining
// whitespace. Saved editor state is flattened to its text first.
func StripMarkup(text string) string {
	if flat, ok := lexical.PlainText(text); ok {
		text = flat
	}
	plain := markupPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(plain, " "))
}

// SplitText splits a long string into chunks of approximately 'chunkSize' characters.
// It includes an 'overlap' to preserve context at boundaries.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}
