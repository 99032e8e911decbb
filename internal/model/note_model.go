package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// EmbeddingDimensions is fixed by the migration; providers must match it.
const EmbeddingDimensions = 1024

type Note struct {
	Id         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title      string           `gorm:"type:varchar(255);not null"`
	Content    string           `gorm:"type:text;not null"`
	NotebookId *uuid.UUID       `gorm:"type:uuid;index"`
	UserId     uuid.UUID        `gorm:"type:uuid;not null;index:idx_notes_user_created,priority:1"`
	AiTag      string           `gorm:"type:varchar(100);not null;default:'General'"`
	TagScores  datatypes.JSON   `gorm:"type:jsonb"`
	Embedding  *pgvector.Vector `gorm:"type:vector(1024)"`
	CreatedAt  time.Time        `gorm:"autoCreateTime;index:idx_notes_user_created,priority:2"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}

// ScoredNote is the row shape returned by similarity search.
type ScoredNote struct {
	Note
	Score float64
}
