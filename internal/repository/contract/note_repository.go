package contract

import (
	"context"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// Patch overwrites only the columns named by patch on rows matching specs
	// and reports how many rows it touched. Missing rows are never recreated.
	Patch(ctx context.Context, patch entity.NotePatch, specs ...specification.Specification) (int64, error)
	// Delete removes every row matching specs and reports how many went.
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateEmbedding overwrites only the embedding column of one note.
	UpdateEmbedding(ctx context.Context, id uuid.UUID, vector []float32) (int64, error)
	SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.ScoredNote, error)
}
