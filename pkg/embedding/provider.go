package embedding

import (
	"context"
	"math"
	"time"

	"smartnotes-be/pkg/metrics"
)

// InputType tells asymmetric models whether the text is stored or searched.
type InputType string

const (
	InputDocument InputType = "document"
	InputQuery    InputType = "query"
)

type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, inputType InputType) (*EmbeddingResponse, error)
}

type instrumented struct {
	name  string
	inner EmbeddingProvider
}

// WithMetrics records latency and outcome of every Generate call.
func WithMetrics(name string, inner EmbeddingProvider) EmbeddingProvider {
	return &instrumented{name: name, inner: inner}
}

func (p *instrumented) Generate(ctx context.Context, text string, inputType InputType) (*EmbeddingResponse, error) {
	start := time.Now()
	res, err := p.inner.Generate(ctx, text, inputType)
	metrics.ObserveUpstream(p.name, "embed_"+string(inputType), start, err)
	return res, err
}

// normalizeVector scales vec to unit length so cosine distance in pgvector
// behaves the same across providers.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
