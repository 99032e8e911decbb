package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"smartnotes-be/pkg/llm"
	"smartnotes-be/pkg/utils"
)

const defaultInferenceURL = "https://router.huggingface.co/hf-inference/models"

// Chunk size for summarization inputs; bart-large-cnn truncates past ~1024 tokens.
const summaryChunkChars = 3000

// InferenceClient talks to task-specific models on the HF inference API:
// summarization and zero-shot classification.
type InferenceClient struct {
	apiKey              string
	baseURL             string
	summarizationModel  string
	classificationModel string
	client              *http.Client
}

func NewInferenceClient(apiKey, summarizationModel, classificationModel string) *InferenceClient {
	if summarizationModel == "" {
		summarizationModel = "facebook/bart-large-cnn"
	}
	if classificationModel == "" {
		classificationModel = "facebook/bart-large-mnli"
	}
	return &InferenceClient{
		apiKey:              apiKey,
		baseURL:             defaultInferenceURL,
		summarizationModel:  summarizationModel,
		classificationModel: classificationModel,
		client:              &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *InferenceClient) WithBaseURL(url string) *InferenceClient {
	c.baseURL = strings.TrimRight(url, "/")
	return c
}

var (
	_ llm.Summarizer = (*InferenceClient)(nil)
	_ llm.Classifier = (*InferenceClient)(nil)
)

type summarizationResult struct {
	SummaryText string `json:"summary_text"`
}

// Summarize splits long inputs and joins the partial summaries.
func (c *InferenceClient) Summarize(ctx context.Context, text string) (string, error) {
	parts := make([]string, 0, 1)
	for _, chunk := range utils.SplitText(text, summaryChunkChars, 0) {
		var results []summarizationResult
		payload := map[string]interface{}{"inputs": chunk}
		if err := c.post(ctx, c.summarizationModel, payload, &results); err != nil {
			return "", err
		}
		if len(results) == 0 {
			continue
		}
		if s := strings.TrimSpace(results[0].SummaryText); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " "), nil
}

// zeroShotLegacy is the {"labels": [...], "scores": [...]} response shape.
type zeroShotLegacy struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// zeroShotPair is one element of the [{"label":..,"score":..}] shape.
type zeroShotPair struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *InferenceClient) Classify(ctx context.Context, text string, labels []string) (*llm.Classification, error) {
	payload := map[string]interface{}{
		"inputs": text,
		"parameters": map[string]interface{}{
			"candidate_labels": labels,
		},
	}

	var raw json.RawMessage
	if err := c.post(ctx, c.classificationModel, payload, &raw); err != nil {
		return nil, err
	}
	return parseClassification(raw)
}

func parseClassification(raw json.RawMessage) (*llm.Classification, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return &llm.Classification{}, nil
	}

	if trimmed[0] == '{' {
		var legacy zeroShotLegacy
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return nil, fmt.Errorf("decode classification: %w", err)
		}
		return &llm.Classification{Labels: legacy.Labels, Scores: legacy.Scores}, nil
	}

	var pairs []zeroShotPair
	if err := json.Unmarshal(trimmed, &pairs); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })

	out := &llm.Classification{}
	for _, p := range pairs {
		out.Labels = append(out.Labels, p.Label)
		out.Scores = append(out.Scores, p.Score)
	}
	return out, nil
}

func (c *InferenceClient) post(ctx context.Context, model string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("huggingface inference error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
