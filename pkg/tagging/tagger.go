// Package tagging assigns a single topical label to note text.
package tagging

import (
	"context"
	"strings"

	"smartnotes-be/pkg/llm"
	"smartnotes-be/pkg/metrics"
	"smartnotes-be/pkg/utils"
)

const DefaultTag = "General"

// Labels offered to the zero-shot classifier.
var Labels = []string{"Technology", "Meeting Notes", "Project Idea", "Personal", "Work", "Code Snippet"}

type keywordRule struct {
	words []string
	tag   string
}

// Checked in order; first match wins.
var keywordRules = []keywordRule{
	{words: []string{"express", "node"}, tag: "Backend-Dev"},
	{words: []string{"meeting", "agenda"}, tag: "Meeting-Notes"},
	{words: []string{"idea", "project"}, tag: "Project-Idea"},
}

// KeywordTag is the local classifier used when the model is unavailable.
func KeywordTag(content string) string {
	lower := strings.ToLower(content)
	for _, rule := range keywordRules {
		for _, w := range rule.words {
			if strings.Contains(lower, w) {
				return rule.tag
			}
		}
	}
	return DefaultTag
}

// Result is the chosen tag plus the model scores, nil on fallback.
type Result struct {
	Tag      string
	Scores   map[string]float64
	Fallback bool
}

type Tagger struct {
	classifier llm.Classifier
}

func NewTagger(classifier llm.Classifier) *Tagger {
	return &Tagger{classifier: classifier}
}

// Tag never fails: classifier errors degrade to KeywordTag over the raw
// content, and an empty classification yields DefaultTag.
func (t *Tagger) Tag(ctx context.Context, content string) Result {
	res, err := t.classifier.Classify(ctx, utils.StripMarkup(content), Labels)
	if err != nil {
		metrics.RetagFallback()
		return Result{Tag: KeywordTag(content), Fallback: true}
	}

	top := res.Top()
	if top == "" {
		return Result{Tag: DefaultTag}
	}
	return Result{Tag: top, Scores: res.ScoreMap()}
}
