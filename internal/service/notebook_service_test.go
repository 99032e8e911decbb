package service

import (
	"context"
	"testing"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookServiceCreateDefaultsName(t *testing.T) {
	svc := NewNotebookService(newFactory(t), nil, nopLogger)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateNotebookRequest{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultNotebookName, res.Name)

	res, err = svc.Create(context.Background(), userId, &dto.CreateNotebookRequest{Name: " Ideas "})
	require.NoError(t, err)
	assert.Equal(t, "Ideas", res.Name)

	list, err := svc.List(context.Background(), userId)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotebookServiceRename(t *testing.T) {
	f := newFactory(t)
	svc := NewNotebookService(f, nil, nopLogger)
	userId := uuid.New()
	nb := createNotebook(t, f, userId, "Old")

	_, err := svc.Rename(context.Background(), userId, nb.Id, &dto.RenameNotebookRequest{Name: " "})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Rename(context.Background(), uuid.New(), nb.Id, &dto.RenameNotebookRequest{Name: "Mine now"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	res, err := svc.Rename(context.Background(), userId, nb.Id, &dto.RenameNotebookRequest{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", res.Name)

	_, err = svc.Delete(context.Background(), userId, nb.Id)
	require.NoError(t, err)
	_, err = svc.Rename(context.Background(), userId, nb.Id, &dto.RenameNotebookRequest{Name: "Back"})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	count, err := f.NewUnitOfWork(context.Background()).NotebookRepository().Count(context.Background(), byId(nb.Id)...)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotebookServiceDeleteCascades(t *testing.T) {
	f := newFactory(t)
	ev := &recordingEvents{}
	svc := NewNotebookService(f, ev, nopLogger)
	notes := NewNoteService(f, nil, nil, nopLogger)
	userId := uuid.New()
	nb := createNotebook(t, f, userId, "Doomed")
	createNote(t, f, userId, &nb.Id, "one")
	createNote(t, f, userId, &nb.Id, "two")
	createNote(t, f, userId, nil, "survivor")

	_, err := svc.Delete(context.Background(), uuid.New(), nb.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	res, err := svc.Delete(context.Background(), userId, nb.Id)
	require.NoError(t, err)
	assert.True(t, res.NotebookDeleted)
	assert.Equal(t, int64(2), res.NotesDeletedCount)
	assert.Equal(t, []string{EventNotebookDeleted}, ev.published())

	list, err := notes.List(context.Background(), userId, dto.NewListNotesRequest("", "", ""))
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)
	assert.Equal(t, "survivor", list.Notes[0].Title)

	_, err = svc.Delete(context.Background(), userId, nb.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
