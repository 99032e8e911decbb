package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultAssemblyAIURL = "https://api.assemblyai.com/v2"

var errPending = errors.New("transcript not ready")

type AssemblyAITranscriber struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	maxAttempts  int
	client       *http.Client
}

// NewAssemblyAITranscriber polls every pollInterval, at most maxAttempts times.
func NewAssemblyAITranscriber(apiKey string, pollInterval time.Duration, maxAttempts int) *AssemblyAITranscriber {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 100
	}
	return &AssemblyAITranscriber{
		apiKey:       apiKey,
		baseURL:      defaultAssemblyAIURL,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
}

func (t *AssemblyAITranscriber) WithBaseURL(url string) *AssemblyAITranscriber {
	t.baseURL = strings.TrimRight(url, "/")
	return t
}

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, audio io.Reader, _ string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("assemblyai api key is not configured")
	}

	var uploaded uploadResponse
	if err := t.do(ctx, http.MethodPost, "/upload", "application/octet-stream", audio, &uploaded); err != nil {
		return "", fmt.Errorf("upload audio: %w", err)
	}
	if uploaded.UploadURL == "" {
		return "", fmt.Errorf("upload audio: empty upload url")
	}

	body, err := json.Marshal(transcriptRequest{AudioURL: uploaded.UploadURL})
	if err != nil {
		return "", err
	}
	var job transcriptResponse
	if err := t.do(ctx, http.MethodPost, "/transcript", "application/json", bytes.NewReader(body), &job); err != nil {
		return "", fmt.Errorf("request transcript: %w", err)
	}
	if job.ID == "" {
		return "", fmt.Errorf("request transcript: empty job id")
	}

	return t.poll(ctx, job.ID)
}

func (t *AssemblyAITranscriber) poll(ctx context.Context, id string) (string, error) {
	operation := func() (string, error) {
		var res transcriptResponse
		if err := t.do(ctx, http.MethodGet, "/transcript/"+id, "", nil, &res); err != nil {
			return "", backoff.Permanent(err)
		}
		switch res.Status {
		case "completed":
			return res.Text, nil
		case "error", "failed":
			return "", backoff.Permanent(fmt.Errorf("%w: %s", ErrFailed, res.Error))
		default:
			return "", errPending
		}
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(t.pollInterval)),
		backoff.WithMaxTries(uint(t.maxAttempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if errors.Is(err, errPending) {
		return "", ErrTimeout
	}
	return text, err
}

func (t *AssemblyAITranscriber) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("authorization", t.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("assemblyai error (status %d): %s", resp.StatusCode, string(raw))
	}
	return json.Unmarshal(raw, out)
}
