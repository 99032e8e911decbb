package implementation

import (
	"context"
	"errors"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/mapper"
	"smartnotes-be/internal/model"
	"smartnotes-be/internal/repository/contract"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.Chain(db, specs...)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return translateError(err, "user with email or username already exists")
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, email string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"full_name": fullName, "email": email})
	if result.Error != nil {
		return 0, translateError(result.Error, "email is already in use")
	}
	return result.RowsAffected, nil
}

func (r *UserRepositoryImpl) LinkGoogle(ctx context.Context, id uuid.UUID, googleId string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("google_id", googleId)
	if result.Error != nil {
		return 0, translateError(result.Error, "google account is already linked")
	}
	return result.RowsAffected, nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var m model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash *string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token_hash", hash).Error
}

func (r *UserRepositoryImpl) SwapRefreshTokenHash(ctx context.Context, id uuid.UUID, current, next string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND refresh_token_hash = ?", id, current).
		Update("refresh_token_hash", next)
	return result.RowsAffected, result.Error
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}
