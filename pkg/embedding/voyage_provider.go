package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVoyageURL = "https://api.voyageai.com/v1/embeddings"

// VoyageProvider calls the Voyage AI embeddings API. voyage-lite-02-instruct
// returns 1024-dimensional vectors.
type VoyageProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type voyageRequest struct {
	Input     []string `json:"input"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type,omitempty"`
}

type voyageResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Detail string `json:"detail,omitempty"`
}

func NewVoyageProvider(apiKey, model string) *VoyageProvider {
	if model == "" {
		model = "voyage-lite-02-instruct"
	}
	return &VoyageProvider{
		apiKey:  apiKey,
		baseURL: defaultVoyageURL,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *VoyageProvider) WithBaseURL(url string) *VoyageProvider {
	p.baseURL = url
	return p
}

func (p *VoyageProvider) Generate(ctx context.Context, text string, inputType InputType) (*EmbeddingResponse, error) {
	jsonData, err := json.Marshal(voyageRequest{
		Input:     []string{text},
		Model:     p.model,
		InputType: string(inputType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voyage request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voyage api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var voyageResp voyageResponse
	if err := json.Unmarshal(bodyBytes, &voyageResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(voyageResp.Data) == 0 || len(voyageResp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embeddings from voyage api")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: voyageResp.Data[0].Embedding,
		},
	}, nil
}
