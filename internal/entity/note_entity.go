package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAiTag = "General"

type Note struct {
	Id         uuid.UUID
	Title      string
	Content    string
	NotebookId *uuid.UUID
	UserId     uuid.UUID
	AiTag      string
	TagScores  map[string]float64
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (n *Note) HasEmbedding() bool {
	return len(n.Embedding) > 0
}

type ScoredNote struct {
	Note  *Note
	Score float64
}

// NotePatch names the columns of a note to overwrite. Nil fields are left
// untouched; SetNotebook with a nil NotebookId clears the notebook and an
// empty non-nil TagScores clears the scores.
type NotePatch struct {
	Title       *string
	Content     *string
	SetNotebook bool
	NotebookId  *uuid.UUID
	AiTag       *string
	TagScores   map[string]float64
}

func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && !p.SetNotebook && p.AiTag == nil && p.TagScores == nil
}
