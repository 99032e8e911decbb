package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNotebookRequest struct {
	Name string `json:"name"`
}

type RenameNotebookRequest struct {
	Name string `json:"name"`
}

type NotebookResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UserId    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DeleteNotebookResponse struct {
	NotebookDeleted   bool  `json:"notebookDeleted"`
	NotesDeletedCount int64 `json:"notesDeletedCount"`
}
