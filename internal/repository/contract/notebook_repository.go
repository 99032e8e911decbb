package contract

import (
	"context"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/repository/specification"
)

type NotebookRepository interface {
	Create(ctx context.Context, notebook *entity.Notebook) error
	// Rename sets the name of rows matching specs and reports how many changed.
	Rename(ctx context.Context, name string, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notebook, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notebook, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
