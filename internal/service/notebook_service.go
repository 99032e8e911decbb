package service

import (
	"context"
	"strings"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/validation"
	"smartnotes-be/internal/repository/scope"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/events"

	"github.com/google/uuid"
)

type INotebookService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error)
	Rename(ctx context.Context, userId, notebookId uuid.UUID, req *dto.RenameNotebookRequest) (*dto.NotebookResponse, error)
	Delete(ctx context.Context, userId, notebookId uuid.UUID) (*dto.DeleteNotebookResponse, error)
}

type notebookService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewNotebookService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, logger logger.ILogger) INotebookService {
	return &notebookService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notebookService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNotebookRequest) (*dto.NotebookResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = entity.DefaultNotebookName
	}

	notebook := &entity.Notebook{
		Id:     uuid.New(),
		Name:   name,
		UserId: userId,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotebookRepository().Create(ctx, notebook); err != nil {
		return nil, err
	}
	return toNotebookResponse(notebook), nil
}

func (s *notebookService) List(ctx context.Context, userId uuid.UUID) ([]*dto.NotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notebooks, err := uow.NotebookRepository().FindAll(ctx, scope.Owned(userId, specification.OldestFirst{})...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotebookResponse, 0, len(notebooks))
	for _, nb := range notebooks {
		res = append(res, toNotebookResponse(nb))
	}
	return res, nil
}

func (s *notebookService) Rename(ctx context.Context, userId, notebookId uuid.UUID, req *dto.RenameNotebookRequest) (*dto.NotebookResponse, error) {
	if !validation.IsNonBlank(req.Name) {
		return nil, apperror.Validation("notebook name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	owned := scope.Owned(userId, specification.ByID{ID: notebookId})
	renamed, err := uow.NotebookRepository().Rename(ctx, strings.TrimSpace(req.Name), owned...)
	if err != nil {
		return nil, err
	}
	if renamed == 0 {
		return nil, apperror.NotFound("notebook not found")
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, owned...)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperror.NotFound("notebook not found")
	}
	return toNotebookResponse(notebook), nil
}

// Delete removes the notebook and every note of the owner filed in it, in
// one transaction.
func (s *notebookService) Delete(ctx context.Context, userId, notebookId uuid.UUID) (*dto.DeleteNotebookResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	deleted, err := uow.NotebookRepository().Delete(ctx, scope.Owned(userId, specification.ByID{ID: notebookId})...)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, apperror.NotFound("notebook not found")
	}

	notesDeleted, err := uow.NoteRepository().Delete(ctx, scope.Owned(userId, specification.ByNotebookID{NotebookID: notebookId})...)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.eventPublisher, s.logger, EventNotebookDeleted, map[string]interface{}{
		"notebook_id":   notebookId,
		"user_id":       userId,
		"notes_deleted": notesDeleted,
	})

	return &dto.DeleteNotebookResponse{
		NotebookDeleted:   true,
		NotesDeletedCount: notesDeleted,
	}, nil
}
