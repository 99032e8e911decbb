package entity

import (
	"time"

	"github.com/google/uuid"
)

const DefaultNotebookName = "Untitled Notebook"

type Notebook struct {
	Id        uuid.UUID
	Name      string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
