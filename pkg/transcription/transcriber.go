// Package transcription turns recorded audio into text through a hosted
// speech-to-text service.
package transcription

import (
	"context"
	"errors"
	"io"
	"time"

	"smartnotes-be/pkg/metrics"
)

var (
	// ErrTimeout is returned when polling gives up before the job finishes.
	ErrTimeout = errors.New("transcription did not finish in time")
	// ErrFailed is returned when the service reports the job as failed.
	ErrFailed = errors.New("transcription failed")
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

type instrumented struct {
	name  string
	inner Transcriber
}

func WithMetrics(name string, inner Transcriber) Transcriber {
	return &instrumented{name: name, inner: inner}
}

func (t *instrumented) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	start := time.Now()
	text, err := t.inner.Transcribe(ctx, audio, filename)
	metrics.ObserveUpstream(t.name, "transcribe", start, err)
	return text, err
}
