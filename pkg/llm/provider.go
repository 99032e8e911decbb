package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

// Summarizer condenses plain text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Classification holds candidate labels ordered by descending score.
type Classification struct {
	Labels []string
	Scores []float64
}

// Top returns the best label, or "" when the result is empty.
func (c *Classification) Top() string {
	if c == nil || len(c.Labels) == 0 {
		return ""
	}
	return c.Labels[0]
}

// ScoreMap pairs each label with its score.
func (c *Classification) ScoreMap() map[string]float64 {
	if c == nil {
		return nil
	}
	scores := make(map[string]float64, len(c.Labels))
	for i, label := range c.Labels {
		if i < len(c.Scores) {
			scores[label] = c.Scores[i]
		}
	}
	return scores
}

// Classifier performs zero-shot classification over candidate labels.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (*Classification, error)
}
