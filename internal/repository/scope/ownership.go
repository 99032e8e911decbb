// Package scope builds the ownership-restricted specification lists every
// notebook and note query goes through.
package scope

import (
	"strings"

	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

const unassignedFilter = "unassigned"

// Owned returns a new list with the owner restriction first, followed by
// specs. The input slice is never modified.
func Owned(userId uuid.UUID, specs ...specification.Specification) []specification.Specification {
	scoped := make([]specification.Specification, 0, len(specs)+1)
	scoped = append(scoped, specification.OwnedBy{UserID: userId})
	return append(scoped, specs...)
}

// NotebookFilter translates the notebookId query parameter. An empty value
// means no filter, "unassigned" selects notes without a notebook.
func NotebookFilter(raw string) (specification.Specification, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if strings.EqualFold(raw, unassignedFilter) {
		return specification.Unassigned{}, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation("invalid notebookId filter")
	}
	return specification.ByNotebookID{NotebookID: id}, nil
}

// Page converts 1-indexed page/limit into an offset specification.
func Page(page, limit int) specification.Pagination {
	return specification.Pagination{Limit: limit, Offset: (page - 1) * limit}
}
