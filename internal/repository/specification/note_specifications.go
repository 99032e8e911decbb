package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByNotebookID struct {
	NotebookID uuid.UUID
}

func (s ByNotebookID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id = ?", s.NotebookID)
}

// Unassigned matches notes that belong to no notebook.
type Unassigned struct{}

func (s Unassigned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notebook_id IS NULL")
}

type HasEmbedding struct{}

func (s HasEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}
