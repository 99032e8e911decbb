package service

import (
	"context"
	"fmt"
	"strings"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/model"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/pkg/embedding"
	"smartnotes-be/pkg/utils"
)

// noteDocument is the text a note is embedded from.
func noteDocument(n *entity.Note) string {
	return strings.TrimSpace(utils.StripMarkup(n.Title) + " " + utils.StripMarkup(n.Content))
}

// generateVector calls the provider and enforces the stored dimensionality.
func generateVector(ctx context.Context, provider embedding.EmbeddingProvider, text string, inputType embedding.InputType) ([]float32, error) {
	res, err := provider.Generate(ctx, text, inputType)
	if err != nil {
		return nil, apperror.Upstream("embedding provider failed", err)
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return nil, apperror.Upstream("embedding provider returned no vector", nil)
	}
	if n := len(res.Embedding.Values); n != model.EmbeddingDimensions {
		return nil, apperror.Upstream("embedding provider returned a vector of the wrong size",
			fmt.Errorf("got %d dimensions, want %d", n, model.EmbeddingDimensions))
	}
	return res.Embedding.Values, nil
}
