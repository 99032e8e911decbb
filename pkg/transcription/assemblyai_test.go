package transcription

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAssemblyAI(t *testing.T, statuses []string, text string) (*httptest.Server, *int32) {
	t.Helper()
	var polls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("authorization"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		data, _ := io.ReadAll(r.Body)
		assert.Equal(t, "RIFF", string(data))
		_, _ = w.Write([]byte(`{"upload_url":"https://cdn.example/audio"}`))
	})
	mux.HandleFunc("/transcript", func(w http.ResponseWriter, r *http.Request) {
		var req transcriptRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://cdn.example/audio", req.AudioURL)
		_, _ = w.Write([]byte(`{"id":"job-1","status":"queued"}`))
	})
	mux.HandleFunc("/transcript/job-1", func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&polls, 1)) - 1
		status := statuses[len(statuses)-1]
		if n < len(statuses) {
			status = statuses[n]
		}
		_ = json.NewEncoder(w).Encode(transcriptResponse{ID: "job-1", Status: status, Text: text, Error: "bad audio"})
	})
	return httptest.NewServer(mux), &polls
}

func TestAssemblyAITranscribeCompletes(t *testing.T) {
	srv, polls := fakeAssemblyAI(t, []string{"queued", "processing", "completed"}, "hello world")
	defer srv.Close()

	text, err := NewAssemblyAITranscriber("key", time.Millisecond, 10).WithBaseURL(srv.URL).
		Transcribe(context.Background(), strings.NewReader("RIFF"), "a.wav")

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(polls))
}

func TestAssemblyAITranscribeFailed(t *testing.T) {
	srv, polls := fakeAssemblyAI(t, []string{"processing", "error"}, "")
	defer srv.Close()

	_, err := NewAssemblyAITranscriber("key", time.Millisecond, 10).WithBaseURL(srv.URL).
		Transcribe(context.Background(), strings.NewReader("RIFF"), "a.wav")

	assert.ErrorIs(t, err, ErrFailed)
	assert.Equal(t, int32(2), atomic.LoadInt32(polls))
}

func TestAssemblyAITranscribeGivesUp(t *testing.T) {
	srv, polls := fakeAssemblyAI(t, []string{"processing"}, "")
	defer srv.Close()

	_, err := NewAssemblyAITranscriber("key", time.Millisecond, 4).WithBaseURL(srv.URL).
		Transcribe(context.Background(), strings.NewReader("RIFF"), "a.wav")

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, int32(4), atomic.LoadInt32(polls))
}

func TestAssemblyAIUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewAssemblyAITranscriber("key", time.Millisecond, 2).WithBaseURL(srv.URL).
		Transcribe(context.Background(), strings.NewReader("RIFF"), "a.wav")
	assert.Error(t, err)

	_, err = NewAssemblyAITranscriber("", time.Millisecond, 2).Transcribe(context.Background(), strings.NewReader("RIFF"), "a.wav")
	assert.Error(t, err)
}
