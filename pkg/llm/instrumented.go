package llm

import (
	"context"
	"time"

	"smartnotes-be/pkg/metrics"
)

type instrumentedSummarizer struct {
	name  string
	inner Summarizer
}

// SummarizerWithMetrics records latency and outcome of every Summarize call.
func SummarizerWithMetrics(name string, inner Summarizer) Summarizer {
	return &instrumentedSummarizer{name: name, inner: inner}
}

func (s *instrumentedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := s.inner.Summarize(ctx, text)
	metrics.ObserveUpstream(s.name, "summarize", start, err)
	return out, err
}

type instrumentedClassifier struct {
	name  string
	inner Classifier
}

func ClassifierWithMetrics(name string, inner Classifier) Classifier {
	return &instrumentedClassifier{name: name, inner: inner}
}

func (c *instrumentedClassifier) Classify(ctx context.Context, text string, labels []string) (*Classification, error) {
	start := time.Now()
	out, err := c.inner.Classify(ctx, text, labels)
	metrics.ObserveUpstream(c.name, "classify", start, err)
	return out, err
}
