package contract

import (
	"context"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// UpdateProfile and LinkGoogle write only their own columns and report how
	// many rows changed.
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, email string) (int64, error)
	LinkGoogle(ctx context.Context, id uuid.UUID, googleId string) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SetRefreshTokenHash replaces the single live refresh token; nil clears it.
	SetRefreshTokenHash(ctx context.Context, id uuid.UUID, hash *string) error
	// SwapRefreshTokenHash replaces current with next only while current is
	// still the stored hash, and reports how many rows changed.
	SwapRefreshTokenHash(ctx context.Context, id uuid.UUID, current, next string) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
}
