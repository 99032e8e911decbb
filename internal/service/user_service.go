package service

import (
	"context"
	"strings"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/validation"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	Exists(ctx context.Context, userId uuid.UUID) (bool, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
	UpdateAccount(ctx context.Context, userId uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		// A valid token for a removed account.
		return nil, apperror.Unauthorized("user no longer exists")
	}
	return user, nil
}

func (s *userService) CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.findUser(ctx, s.uowFactory.NewUnitOfWork(ctx), userId)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) Exists(ctx context.Context, userId uuid.UUID) (bool, error) {
	n, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().Count(ctx, specification.ByID{ID: userId})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *userService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == req.NewPassword {
		return apperror.Validation("new password must be different from old password")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return err
	}
	if !user.HasPassword() || bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.OldPassword)) != nil {
		return apperror.Validation("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	return uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash))
}

func (s *userService) UpdateAccount(ctx context.Context, userId uuid.UUID, req *dto.UpdateAccountRequest) (*dto.UserResponse, error) {
	if !validation.AllNonBlank(req.FullName, req.Email) {
		return nil, apperror.Validation("all fields are required")
	}
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if email != user.Email {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, apperror.Conflict("email is already in use")
		}
	}

	rows, err := uow.UserRepository().UpdateProfile(ctx, user.Id, strings.TrimSpace(req.FullName), email)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, apperror.Unauthorized("user no longer exists")
	}
	return s.CurrentUser(ctx, user.Id)
}
