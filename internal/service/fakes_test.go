package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/model"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/testdb"
	"smartnotes-be/internal/repository/contract"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/embedding"
	"smartnotes-be/pkg/events"
	"smartnotes-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errProviderDown = errors.New("provider down")

var nopLogger = logger.NewNopLogger()

func newFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(testdb.New(t))
}

func vectorOf(v float32) []float32 {
	vec := make([]float32, model.EmbeddingDimensions)
	for i := range vec {
		vec[i] = v
	}
	return vec
}

type fakeEmbedder struct {
	mu     sync.Mutex
	calls  []string
	inputs []embedding.InputType
	vector []float32
	err    error
	during func()
}

func (f *fakeEmbedder) Generate(_ context.Context, text string, inputType embedding.InputType) (*embedding.EmbeddingResponse, error) {
	if f.during != nil {
		f.during()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	f.inputs = append(f.inputs, inputType)
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector}}, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// during runs while the upstream call is in flight.
type fakeSummarizer struct {
	input   string
	summary string
	err     error
	during  func()
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) (string, error) {
	f.input = text
	if f.during != nil {
		f.during()
	}
	return f.summary, f.err
}

type fakeClassifier struct {
	res    *llm.Classification
	err    error
	during func()
}

func (f *fakeClassifier) Classify(context.Context, string, []string) (*llm.Classification, error) {
	if f.during != nil {
		f.during()
	}
	return f.res, f.err
}

type fakeTranscriber struct {
	audio string
	text  string
	err   error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, _ string) (string, error) {
	b, _ := io.ReadAll(audio)
	f.audio = string(b)
	return f.text, f.err
}

type recordingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

type recordingEvents struct {
	mu    sync.Mutex
	types []string
	err   error
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, e.EventType())
	return r.err
}

func (r *recordingEvents) Close() {}

func (r *recordingEvents) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.types...)
}

type fakeQueryCache struct {
	store map[string][]float32
}

func (c *fakeQueryCache) Get(_ context.Context, q string) ([]float32, bool) {
	v, ok := c.store[q]
	return v, ok
}

func (c *fakeQueryCache) Set(_ context.Context, q string, v []float32) error {
	c.store[q] = v
	return nil
}

// searchFactory replaces the pgvector query, which SQLite cannot run.
type searchFactory struct {
	unitofwork.RepositoryFactory
	results []*entity.ScoredNote
	gotUser uuid.UUID
	gotVec  []float32
}

func (f *searchFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &searchUnitOfWork{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type searchUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *searchFactory
}

func (u *searchUnitOfWork) NoteRepository() contract.NoteRepository {
	return &searchNoteRepository{NoteRepository: u.UnitOfWork.NoteRepository(), factory: u.factory}
}

type searchNoteRepository struct {
	contract.NoteRepository
	factory *searchFactory
}

func (r *searchNoteRepository) SearchSimilar(_ context.Context, userId uuid.UUID, vector []float32, _ int) ([]*entity.ScoredNote, error) {
	r.factory.gotUser = userId
	r.factory.gotVec = vector
	return r.factory.results, nil
}

func createNotebook(t *testing.T, f unitofwork.RepositoryFactory, userId uuid.UUID, name string) *entity.Notebook {
	t.Helper()
	nb := &entity.Notebook{Id: uuid.New(), Name: name, UserId: userId}
	require.NoError(t, f.NewUnitOfWork(context.Background()).NotebookRepository().Create(context.Background(), nb))
	return nb
}

func createNote(t *testing.T, f unitofwork.RepositoryFactory, userId uuid.UUID, notebookId *uuid.UUID, title string) *entity.Note {
	t.Helper()
	n := &entity.Note{
		Id:         uuid.New(),
		Title:      title,
		Content:    "<p>" + title + " body</p>",
		NotebookId: notebookId,
		UserId:     userId,
		AiTag:      entity.DefaultAiTag,
	}
	require.NoError(t, f.NewUnitOfWork(context.Background()).NoteRepository().Create(context.Background(), n))
	return n
}

func byId(id uuid.UUID) []specification.Specification {
	return []specification.Specification{specification.ByID{ID: id}}
}

func (f *fakeEmbedder) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
