package transcription

import (
	"context"
	"fmt"
	"io"

	goopenai "github.com/sashabaranov/go-openai"
)

type WhisperTranscriber struct {
	client *goopenai.Client
}

func NewWhisperTranscriber(apiKey, baseURL string) *WhisperTranscriber {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &WhisperTranscriber{client: goopenai.NewClientWithConfig(cfg)}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}
	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    goopenai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Format:   goopenai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription: %w", err)
	}
	return resp.Text, nil
}
