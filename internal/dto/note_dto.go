package dto

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type CreateNoteRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	NotebookId *string `json:"notebookId"`
}

// UpdateNoteRequest is a partial update: nil pointers leave the field
// untouched, NotebookId distinguishes absent from null.
type UpdateNoteRequest struct {
	Title      *string      `json:"title"`
	Content    *string      `json:"content"`
	NotebookId OptionalUUID `json:"notebookId"`
}

type BulkDeleteNotesRequest struct {
	NoteIds []string `json:"noteIds"`
}

type BulkDeleteNotesResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type ListNotesRequest struct {
	Page       int
	Limit      int
	NotebookId string
}

// NewListNotesRequest falls back to defaults for missing, non-numeric or
// non-positive paging values and caps the limit.
func NewListNotesRequest(page, limit, notebookId string) ListNotesRequest {
	req := ListNotesRequest{
		Page:       positiveOr(page, DefaultPage),
		Limit:      positiveOr(limit, DefaultLimit),
		NotebookId: notebookId,
	}
	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}
	return req
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

type ListNotesResponse struct {
	Notes      []*NoteResponse `json:"notes"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	TotalNotes int64           `json:"totalNotes"`
}

type NoteResponse struct {
	Id           uuid.UUID          `json:"id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	NotebookId   *uuid.UUID         `json:"notebookId"`
	UserId       uuid.UUID          `json:"userId"`
	AiTag        string             `json:"aiTag"`
	TagScores    map[string]float64 `json:"tagScores,omitempty"`
	HasEmbedding bool               `json:"hasEmbedding"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

type SearchNoteResponse struct {
	Id      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	AiTag   string    `json:"aiTag"`
	Score   float64   `json:"score"`
}

type TranscribeSummaryResponse struct {
	Summary string `json:"summary"`
}

// ReembedNoteMessage is the payload of the background re-embed topic.
type ReembedNoteMessage struct {
	NoteId uuid.UUID `json:"noteId"`
	UserId uuid.UUID `json:"userId"`
}
