package service

import (
	"context"
	"strings"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/mailer"
	"smartnotes-be/internal/pkg/token"
	"smartnotes-be/internal/pkg/validation"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"
	"smartnotes-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid credentials"

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, userId uuid.UUID) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)
	// IssueSession rotates the user's refresh token and returns a fresh pair.
	IssueSession(ctx context.Context, user *entity.User) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	tokens         *token.Manager
	emailService   mailer.IEmailService
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens *token.Manager,
	emailService mailer.IEmailService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IAuthService {
	if emailService == nil {
		emailService = mailer.NopEmailService{}
	}
	return &authService{
		uowFactory:     uowFactory,
		tokens:         tokens,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !validation.AllNonBlank(req.Username, req.Email, req.FullName, req.Password) {
		return nil, apperror.Validation("full name, username, email, and password are required")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := normalizeEmail(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().Count(ctx, specification.ByUsernameOrEmail{Username: username, Email: email})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperror.Conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: &hashStr,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	go s.sendWelcome(user.Email, user.FullName)

	publishEvent(ctx, s.eventPublisher, s.logger, EventUserRegistered, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})

	return toUserResponse(user), nil
}

func (s *authService) sendWelcome(email, fullName string) {
	if err := s.emailService.SendWelcome(email, fullName); err != nil {
		s.logger.Warn("AUTH", "Failed to send welcome email", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
	}
}

// Login reports every credential mismatch the same way so callers cannot
// tell which accounts exist.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" && email == "" {
		return nil, apperror.Validation("username or email is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsernameOrEmail{Username: username, Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasPassword() {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	return s.IssueSession(ctx, user)
}

func (s *authService) IssueSession(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	pair, err := s.rotate(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

func (s *authService) rotate(ctx context.Context, user *entity.User) (*dto.TokenPairResponse, error) {
	pair, err := s.newPair(user)
	if err != nil {
		return nil, err
	}

	hash := token.Hash(pair.RefreshToken)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().SetRefreshTokenHash(ctx, user.Id, &hash); err != nil {
		return nil, err
	}
	user.RefreshTokenHash = &hash
	return pair, nil
}

func (s *authService) newPair(user *entity.User) (*dto.TokenPairResponse, error) {
	subject := token.Subject{Id: user.Id, Username: user.Username, Email: user.Email}
	access, err := s.tokens.GenerateAccessToken(subject)
	if err != nil {
		return nil, apperror.Internal("failed to issue access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(subject)
	if err != nil {
		return nil, apperror.Internal("failed to issue refresh token", err)
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Logout(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().SetRefreshTokenHash(ctx, userId, nil)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperror.Unauthorized("unauthorized request")
	}

	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}
	userId, _ := uuid.Parse(claims.UserId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid refresh token")
	}
	presented := token.Hash(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != presented {
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}

	pair, err := s.newPair(user)
	if err != nil {
		return nil, err
	}
	// Only one of several concurrent refreshes with the same token wins.
	swapped, err := uow.UserRepository().SwapRefreshTokenHash(ctx, user.Id, presented, token.Hash(pair.RefreshToken))
	if err != nil {
		return nil, err
	}
	if swapped == 0 {
		return nil, apperror.Unauthorized("refresh token is expired or used")
	}
	return pair, nil
}
