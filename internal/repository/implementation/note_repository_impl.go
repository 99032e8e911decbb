package implementation

import (
	"context"
	"errors"
	"fmt"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/mapper"
	"smartnotes-be/internal/model"
	"smartnotes-be/internal/repository/contract"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// searchCandidates is the HNSW candidate pool examined per query.
const searchCandidates = 100

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Chain(db, specs...)
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Patch(ctx context.Context, patch entity.NotePatch, specs ...specification.Specification) (int64, error) {
	if len(specs) == 0 {
		return 0, errors.New("note patch requires a filter")
	}
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	result := query.Updates(r.mapper.ToColumns(patch))
	return result.RowsAffected, result.Error
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, specs ...specification.Specification) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	result := query.Delete(&model.Note{})
	return result.RowsAffected, result.Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NoteRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, vector []float32) (int64, error) {
	v := pgvector.NewVector(vector)
	result := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Update("embedding", &v)
	return result.RowsAffected, result.Error
}

// SearchSimilar ranks the caller's embedded notes by cosine distance using
// the pgvector HNSW index. Score is 1 - distance.
func (r *NoteRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*entity.ScoredNote, error) {
	if limit <= 0 {
		limit = 10
	}
	query := pgvector.NewVector(vector)

	var rows []*model.ScoredNote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SET LOCAL only lives for the enclosing transaction.
		if err := tx.Exec(fmt.Sprintf("SET LOCAL hnsw.ef_search = %d", searchCandidates)).Error; err != nil {
			return err
		}
		return r.applySpecifications(tx.Model(&model.Note{}),
			specification.OwnedBy{UserID: userId},
			specification.HasEmbedding{},
		).
			Select("notes.*, 1 - (embedding <=> ?) AS score", query).
			Order(gorm.Expr("embedding <=> ?", query)).
			Limit(limit).
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return r.mapper.ToScoredEntities(rows), nil
}
