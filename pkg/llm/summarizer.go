package llm

import (
	"context"
	"strings"
)

const summarizePrompt = "Summarize the following text in a few concise sentences. Reply with the summary only.\n\n"

type chatSummarizer struct {
	provider LLMProvider
	options  []Option
}

// NewChatSummarizer summarizes through a general chat model. Extra options are
// applied after the summarizer's own defaults.
func NewChatSummarizer(provider LLMProvider, options ...Option) Summarizer {
	return &chatSummarizer{provider: provider, options: options}
}

func (s *chatSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	opts := append([]Option{WithTemperature(0.2), WithMaxTokens(300)}, s.options...)
	out, err := s.provider.Generate(ctx, summarizePrompt+text, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
