package service

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/validation"
	"smartnotes-be/internal/repository/contract"
	"smartnotes-be/internal/repository/scope"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/events"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, req dto.ListNotesRequest) (*dto.ListNotesResponse, error)
	Update(ctx context.Context, userId, noteId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId, noteId uuid.UUID) error
	BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkDeleteNotesRequest) (*dto.BulkDeleteNotesResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if !validation.AllNonBlank(req.Title, req.Content) {
		return nil, apperror.Validation("title and content are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var notebookId *uuid.UUID
	if req.NotebookId != nil && strings.TrimSpace(*req.NotebookId) != "" {
		id, err := ownedNotebookId(ctx, uow.NotebookRepository(), userId, *req.NotebookId)
		if err != nil {
			return nil, err
		}
		notebookId = &id
	}

	note := &entity.Note{
		Id:         uuid.New(),
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		NotebookId: notebookId,
		UserId:     userId,
		AiTag:      entity.DefaultAiTag,
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, EventNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": userId,
		"title":   note.Title,
	})

	return toNoteResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, req dto.ListNotesRequest) (*dto.ListNotesResponse, error) {
	filter, err := scope.NotebookFilter(req.NotebookId)
	if err != nil {
		return nil, err
	}
	var filters []specification.Specification
	if filter != nil {
		filters = append(filters, filter)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	total, err := repo.Count(ctx, scope.Owned(userId, filters...)...)
	if err != nil {
		return nil, err
	}

	query := append(scope.Owned(userId, filters...), specification.NewestFirst{}, scope.Page(req.Page, req.Limit))
	notes, err := repo.FindAll(ctx, query...)
	if err != nil {
		return nil, err
	}

	return &dto.ListNotesResponse{
		Notes:      toNoteResponses(notes),
		Page:       req.Page,
		Limit:      req.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
		TotalNotes: total,
	}, nil
}

func (s *noteService) Update(ctx context.Context, userId, noteId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title != nil && !validation.IsNonBlank(*req.Title) {
		return nil, apperror.Validation("title cannot be empty")
	}
	if req.Content != nil && !validation.IsNonBlank(*req.Content) {
		return nil, apperror.Validation("content cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := findOwnedNote(ctx, uow.NoteRepository(), userId, noteId)
	if err != nil {
		return nil, err
	}

	patch := entity.NotePatch{}
	textChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		textChanged = textChanged || title != note.Title
		patch.Title = &title
	}
	if req.Content != nil {
		textChanged = textChanged || *req.Content != note.Content
		patch.Content = req.Content
	}

	if req.NotebookId.Set {
		patch.SetNotebook = true
		if !req.NotebookId.Null() {
			id, err := ownedNotebookId(ctx, uow.NotebookRepository(), userId, *req.NotebookId.Value)
			if err != nil {
				return nil, err
			}
			patch.NotebookId = &id
		}
	}

	updated, err := patchOwnedNote(ctx, uow.NoteRepository(), userId, noteId, patch)
	if err != nil {
		return nil, err
	}

	if textChanged && updated.HasEmbedding() {
		enqueueReembed(ctx, s.publisherService, s.logger, updated)
	}

	return toNoteResponse(updated), nil
}

// enqueueReembed schedules a background refresh of the note's embedding.
func enqueueReembed(ctx context.Context, pub IPublisherService, log logger.ILogger, note *entity.Note) {
	if pub == nil {
		return
	}
	payload, err := json.Marshal(dto.ReembedNoteMessage{NoteId: note.Id, UserId: note.UserId})
	if err == nil {
		err = pub.Publish(ctx, payload)
	}
	if err != nil {
		log.Error("NOTE", "Failed to enqueue re-embed", map[string]interface{}{
			"note_id": note.Id,
			"error":   err.Error(),
		})
	}
}

func (s *noteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.NoteRepository().Delete(ctx, scope.Owned(userId, specification.ByID{ID: noteId})...)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("note not found")
	}

	publishEvent(ctx, s.eventPublisher, s.logger, EventNoteDeleted, map[string]interface{}{
		"note_id": noteId,
		"user_id": userId,
	})
	return nil
}

func (s *noteService) BulkDelete(ctx context.Context, userId uuid.UUID, req *dto.BulkDeleteNotesRequest) (*dto.BulkDeleteNotesResponse, error) {
	if len(req.NoteIds) == 0 {
		return nil, apperror.Validation("noteIds must be a non-empty array")
	}

	ids := make([]uuid.UUID, 0, len(req.NoteIds))
	for _, raw := range req.NoteIds {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			ids = append(ids, id)
		}
	}

	var deleted int64
	if len(ids) > 0 {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		deleted, err = uow.NoteRepository().Delete(ctx, scope.Owned(userId, specification.ByIDs{IDs: ids})...)
		if err != nil {
			return nil, err
		}
	}

	if deleted == 0 {
		s.logger.Warn("NOTE", "Bulk delete matched no notes", map[string]interface{}{
			"user_id":   userId,
			"requested": len(req.NoteIds),
		})
	} else {
		publishEvent(ctx, s.eventPublisher, s.logger, EventNotesBulkDeleted, map[string]interface{}{
			"user_id": userId,
			"count":   deleted,
		})
	}

	return &dto.BulkDeleteNotesResponse{DeletedCount: deleted}, nil
}

func findOwnedNote(ctx context.Context, repo contract.NoteRepository, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := repo.FindOne(ctx, scope.Owned(userId, specification.ByID{ID: noteId})...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note not found")
	}
	return note, nil
}

// patchOwnedNote writes patch to the caller's note and returns the stored
// row. A note deleted in the meantime is NotFound.
func patchOwnedNote(ctx context.Context, repo contract.NoteRepository, userId, noteId uuid.UUID, patch entity.NotePatch) (*entity.Note, error) {
	if !patch.IsEmpty() {
		rows, err := repo.Patch(ctx, patch, scope.Owned(userId, specification.ByID{ID: noteId})...)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, apperror.NotFound("note not found")
		}
	}
	return findOwnedNote(ctx, repo, userId, noteId)
}

// ownedNotebookId parses raw and checks the notebook belongs to userId.
func ownedNotebookId(ctx context.Context, repo contract.NotebookRepository, userId uuid.UUID, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid notebookId")
	}
	notebook, err := repo.FindOne(ctx, scope.Owned(userId, specification.ByID{ID: id})...)
	if err != nil {
		return uuid.Nil, err
	}
	if notebook == nil {
		return uuid.Nil, apperror.NotFound("notebook not found")
	}
	return id, nil
}
