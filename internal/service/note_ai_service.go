package service

import (
	"context"
	"io"
	"strings"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/validation"
	"smartnotes-be/internal/repository/cache"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/embedding"
	"smartnotes-be/pkg/llm"
	"smartnotes-be/pkg/metrics"
	"smartnotes-be/pkg/tagging"
	"smartnotes-be/pkg/transcription"
	"smartnotes-be/pkg/utils"

	"github.com/google/uuid"
)

const searchResultLimit = 10

type INoteAIService interface {
	Embed(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	Search(ctx context.Context, userId uuid.UUID, query string) ([]*dto.SearchNoteResponse, error)
	Summarize(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	Retag(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	TranscribeAndSummarize(ctx context.Context, audio io.Reader, filename string) (*dto.TranscribeSummaryResponse, error)
}

type noteAIService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	summarizer        llm.Summarizer
	tagger            *tagging.Tagger
	transcriber       transcription.Transcriber
	queryCache        cache.IQueryEmbeddingCache
	publisherService  IPublisherService
	logger            logger.ILogger
}

func NewNoteAIService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	summarizer llm.Summarizer,
	tagger *tagging.Tagger,
	transcriber transcription.Transcriber,
	queryCache cache.IQueryEmbeddingCache,
	publisherService IPublisherService,
	logger logger.ILogger,
) INoteAIService {
	if queryCache == nil {
		queryCache = cache.NopQueryEmbeddingCache{}
	}
	return &noteAIService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		summarizer:        summarizer,
		tagger:            tagger,
		transcriber:       transcriber,
		queryCache:        queryCache,
		publisherService:  publisherService,
		logger:            logger,
	}
}

func (s *noteAIService) Embed(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := findOwnedNote(ctx, uow.NoteRepository(), userId, noteId)
	if err != nil {
		return nil, err
	}

	vector, err := generateVector(ctx, s.embeddingProvider, noteDocument(note), embedding.InputDocument)
	if err != nil {
		s.logger.Error("NOTE_AI", "Embedding failed", map[string]interface{}{
			"note_id": noteId,
			"error":   err.Error(),
		})
		return nil, err
	}

	rows, err := uow.NoteRepository().UpdateEmbedding(ctx, note.Id, vector)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.NotFound("note not found")
	}
	note.Embedding = vector
	return toNoteResponse(note), nil
}

func (s *noteAIService) Search(ctx context.Context, userId uuid.UUID, query string) ([]*dto.SearchNoteResponse, error) {
	if !validation.IsNonBlank(query) {
		return nil, apperror.Validation("search query is required")
	}
	query = strings.TrimSpace(query)

	vector, hit := s.queryCache.Get(ctx, query)
	metrics.QueryCacheLookup(hit)
	if !hit {
		var err error
		vector, err = generateVector(ctx, s.embeddingProvider, query, embedding.InputQuery)
		if err != nil {
			return nil, err
		}
		if err := s.queryCache.Set(ctx, query, vector); err != nil {
			s.logger.Warn("NOTE_AI", "Failed to cache query embedding", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.NoteRepository().SearchSimilar(ctx, userId, vector, searchResultLimit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SearchNoteResponse, 0, len(rows))
	for _, row := range rows {
		res = append(res, &dto.SearchNoteResponse{
			Id:      row.Note.Id,
			Title:   row.Note.Title,
			Content: row.Note.Content,
			AiTag:   row.Note.AiTag,
			Score:   row.Score,
		})
	}
	return res, nil
}

func (s *noteAIService) Summarize(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := findOwnedNote(ctx, uow.NoteRepository(), userId, noteId)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, note.Content)
	if err != nil {
		return nil, err
	}

	content := "<p>" + summary + "</p>"
	updated, err := patchOwnedNote(ctx, uow.NoteRepository(), userId, noteId, entity.NotePatch{Content: &content})
	if err != nil {
		return nil, err
	}

	if updated.HasEmbedding() {
		enqueueReembed(ctx, s.publisherService, s.logger, updated)
	}
	return toNoteResponse(updated), nil
}

// Retag never fails because of the classifier; see tagging.Tagger.
func (s *noteAIService) Retag(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := findOwnedNote(ctx, uow.NoteRepository(), userId, noteId)
	if err != nil {
		return nil, err
	}

	result := s.tagger.Tag(ctx, note.Content)
	if result.Fallback {
		s.logger.Warn("NOTE_AI", "Classifier unavailable, used keyword tag", map[string]interface{}{
			"note_id": noteId,
			"tag":     result.Tag,
		})
	}

	patch := entity.NotePatch{AiTag: &result.Tag}
	if !result.Fallback {
		patch.TagScores = result.Scores
		if patch.TagScores == nil {
			patch.TagScores = map[string]float64{}
		}
	}
	updated, err := patchOwnedNote(ctx, uow.NoteRepository(), userId, noteId, patch)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(updated), nil
}

func (s *noteAIService) TranscribeAndSummarize(ctx context.Context, audio io.Reader, filename string) (*dto.TranscribeSummaryResponse, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		s.logger.Error("NOTE_AI", "Transcription failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, apperror.Upstream("failed to transcribe audio", err)
	}
	if !validation.IsNonBlank(transcript) {
		return nil, apperror.Upstream("transcription returned no text", nil)
	}

	summary, err := s.summarize(ctx, transcript)
	if err != nil {
		return nil, err
	}
	return &dto.TranscribeSummaryResponse{Summary: "<p>" + summary + "</p>"}, nil
}

func (s *noteAIService) summarize(ctx context.Context, text string) (string, error) {
	summary, err := s.summarizer.Summarize(ctx, utils.StripMarkup(text))
	if err != nil {
		s.logger.Error("NOTE_AI", "Summarization failed", map[string]interface{}{
			"error": err.Error(),
		})
		return "", apperror.Upstream("failed to generate summary", err)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", apperror.Upstream("summarizer returned no text", nil)
	}
	return summary, nil
}
