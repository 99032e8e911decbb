package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"smartnotes-be/internal/config"
	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/repository/memory"
	"smartnotes-be/internal/repository/specification"
	"smartnotes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var usernameUnsafe = regexp.MustCompile(`[^a-z0-9._-]+`)

type IOAuthService interface {
	GoogleLoginURL() string
	HandleGoogleCallback(ctx context.Context, code, state string) (*dto.AuthResponse, error)
	LoginWithGoogleIdToken(ctx context.Context, idToken string) (*dto.AuthResponse, error)
}

// googleProfile is the identity both Google flows resolve to.
type googleProfile struct {
	Id            string
	Email         string
	Name          string
	EmailVerified bool
}

type oauthService struct {
	uowFactory   unitofwork.RepositoryFactory
	googleConf   *oauth2.Config
	states       *memory.OAuthStateRepository
	authService  IAuthService
	logger       logger.ILogger
	userInfoURL  string
	tokenInfoURL string
	httpClient   *http.Client
}

func NewOAuthService(
	uowFactory unitofwork.RepositoryFactory,
	cfg config.GoogleConfig,
	states *memory.OAuthStateRepository,
	authService IAuthService,
	logger logger.ILogger,
) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory:   uowFactory,
		googleConf:   conf,
		states:       states,
		authService:  authService,
		logger:       logger,
		userInfoURL:  googleUserInfoURL,
		tokenInfoURL: cfg.TokenInfoURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *oauthService) GoogleLoginURL() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	state := base64.RawURLEncoding.EncodeToString(b)
	s.states.Save(state)
	return s.googleConf.AuthCodeURL(state)
}

func (s *oauthService) HandleGoogleCallback(ctx context.Context, code, state string) (*dto.AuthResponse, error) {
	if !s.states.Consume(state) {
		return nil, apperror.Unauthorized("invalid oauth state")
	}
	if code == "" {
		return nil, apperror.Validation("authorization code is required")
	}

	tok, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, apperror.Unauthorized("google sign-in failed")
	}

	resp, err := s.googleConf.Client(ctx, tok).Get(s.userInfoURL)
	if err != nil {
		return nil, apperror.Upstream("failed to fetch google profile", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Upstream("failed to fetch google profile",
			fmt.Errorf("userinfo status %d: %s", resp.StatusCode, string(body)))
	}

	var info struct {
		Id            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, apperror.Upstream("failed to decode google profile", err)
	}

	return s.signIn(ctx, googleProfile{
		Id:            info.Id,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.VerifiedEmail,
	})
}

// LoginWithGoogleIdToken serves mobile clients that already hold an ID token.
func (s *oauthService) LoginWithGoogleIdToken(ctx context.Context, idToken string) (*dto.AuthResponse, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, apperror.Validation("idToken is required")
	}

	endpoint := s.tokenInfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.Internal("failed to build tokeninfo request", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Upstream("failed to verify google token", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.Unauthorized("invalid google token")
	}

	var info struct {
		Aud           string `json:"aud"`
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, apperror.Upstream("failed to decode google token info", err)
	}
	if info.Aud != s.googleConf.ClientID {
		return nil, apperror.Unauthorized("google token was issued for another client")
	}

	return s.signIn(ctx, googleProfile{
		Id:            info.Sub,
		Email:         info.Email,
		Name:          info.Name,
		EmailVerified: info.EmailVerified == "true",
	})
}

func (s *oauthService) signIn(ctx context.Context, profile googleProfile) (*dto.AuthResponse, error) {
	if profile.Id == "" || profile.Email == "" {
		return nil, apperror.Unauthorized("google profile is incomplete")
	}
	if !profile.EmailVerified {
		return nil, apperror.Unauthorized("google email is not verified")
	}

	user, err := s.findOrCreate(ctx, profile)
	if err != nil {
		return nil, err
	}
	return s.authService.IssueSession(ctx, user)
}

// findOrCreate resolves by google id, then links an existing account with
// the same email, and only then creates a password-less user.
func (s *oauthService) findOrCreate(ctx context.Context, profile googleProfile) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users := uow.UserRepository()

	user, err := users.FindOne(ctx, specification.ByGoogleID{GoogleID: profile.Id})
	if err != nil || user != nil {
		return user, err
	}

	email := normalizeEmail(profile.Email)
	user, err = users.FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user != nil {
		rows, err := users.LinkGoogle(ctx, user.Id, profile.Id)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, apperror.Unauthorized("user no longer exists")
		}
		user.GoogleId = &profile.Id
		s.logger.Info("OAUTH", "Linked google account", map[string]interface{}{"user_id": user.Id})
		return user, nil
	}

	username, err := s.availableUsername(ctx, uow, email)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(profile.Name)
	if fullName == "" {
		fullName = username
	}
	user = &entity.User{
		Id:       uuid.New(),
		Username: username,
		Email:    email,
		FullName: fullName,
		GoogleId: &profile.Id,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("OAUTH", "Created user from google profile", map[string]interface{}{"user_id": user.Id})
	return user, nil
}

// availableUsername derives a username from the email local part and
// appends a counter until it is free.
func (s *oauthService) availableUsername(ctx context.Context, uow unitofwork.UnitOfWork, email string) (string, error) {
	base := usernameFromEmail(email)
	candidate := base
	for i := 1; i <= 50; i++ {
		count, err := uow.UserRepository().Count(ctx, specification.ByUsername{Username: candidate})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return base + "-" + uuid.NewString()[:8], nil
}

func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	local = usernameUnsafe.ReplaceAllString(strings.ToLower(local), "")
	if local == "" {
		return "user"
	}
	return local
}
