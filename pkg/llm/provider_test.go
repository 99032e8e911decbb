package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	prompt string
	opts   Options
	reply  string
	err    error
}

func (s *stubProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return s.Generate(ctx, history[len(history)-1].Content, options...)
}

func (s *stubProvider) Generate(_ context.Context, prompt string, options ...Option) (string, error) {
	s.prompt = prompt
	for _, o := range options {
		o(&s.opts)
	}
	return s.reply, s.err
}

func TestChatSummarizer(t *testing.T) {
	p := &stubProvider{reply: "\n A summary. \n"}
	out, err := NewChatSummarizer(p).Summarize(context.Background(), "body text")

	require.NoError(t, err)
	assert.Equal(t, "A summary.", out)
	assert.Contains(t, p.prompt, "body text")
	assert.Equal(t, 300, p.opts.MaxTokens)

	assert.Empty(t, p.opts.Model)

	p = &stubProvider{reply: "short"}
	_, err = NewChatSummarizer(p, WithModel("mistral")).Summarize(context.Background(), "body text")
	require.NoError(t, err)
	assert.Equal(t, "mistral", p.opts.Model)
	assert.Equal(t, 0.2, p.opts.Temperature)

	_, err = NewChatSummarizer(&stubProvider{err: errors.New("down")}).Summarize(context.Background(), "x")
	assert.Error(t, err)
}

func TestClassificationHelpers(t *testing.T) {
	var empty *Classification
	assert.Equal(t, "", empty.Top())
	assert.Nil(t, empty.ScoreMap())

	c := &Classification{Labels: []string{"Work", "Personal"}, Scores: []float64{0.7}}
	assert.Equal(t, "Work", c.Top())
	assert.Equal(t, map[string]float64{"Work": 0.7}, c.ScoreMap())
}
