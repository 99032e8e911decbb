package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/logger"
	"smartnotes-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func newTestApp(tokens *token.Manager) *fiber.App {
	log := logger.NewNopLogger()
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler(log)})
	app.Use(ErrorHandlerMiddleware(log))

	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return apperror.Validation("title is required")
	})
	app.Get("/upstream", func(ctx *fiber.Ctx) error {
		return apperror.Upstream("summarization failed", errors.New("503 from provider"))
	})
	app.Get("/plain", func(ctx *fiber.Ctx) error {
		return errors.New("db exploded")
	})
	app.Get("/me", JwtMiddleware(tokens, nil), func(ctx *fiber.Ctx) error {
		id, err := UserID(ctx)
		if err != nil {
			return err
		}
		return ctx.JSON(SuccessResponse("ok", id.String()))
	})
	return app
}

func TestErrorEnvelope(t *testing.T) {
	app := newTestApp(token.NewManager("a", time.Hour, "r", time.Hour))

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/validation", http.StatusBadRequest, "title is required"},
		{"/upstream", http.StatusInternalServerError, "summarization failed"},
		{"/plain", http.StatusInternalServerError, "internal server error"},
		{"/missing", http.StatusNotFound, "Cannot GET /missing"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)

			env := decode(t, resp)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.status, env.StatusCode)
			assert.Equal(t, tt.message, env.Message)
			assert.False(t, env.Success)
		})
	}
}

func TestSuccessEnvelope(t *testing.T) {
	res := CreatedResponse("created", map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.True(t, res.Success)
	assert.False(t, ErrorResponse(404, "nope").Success)
}

func TestJwtMiddleware(t *testing.T) {
	tokens := token.NewManager("a", time.Hour, "r", time.Hour)
	app := newTestApp(tokens)
	userId := uuid.New()
	access, err := tokens.GenerateAccessToken(token.Subject{Id: userId})
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)

		env := decode(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `"`+userId.String()+`"`, string(env.Data))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: access})
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(token.Subject{Id: userId})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

type sample struct {
	Title string `json:"title" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(sample{Email: "nope"})

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "email must be a valid email")

	assert.NoError(t, ValidateRequest(sample{Title: "x"}))
}

func TestJwtMiddlewareRejectsRemovedAccount(t *testing.T) {
	tokens := token.NewManager("a", time.Hour, "r", time.Hour)
	live := uuid.New()
	removed := uuid.New()
	failing := uuid.New()
	exists := func(_ context.Context, id uuid.UUID) (bool, error) {
		if id == failing {
			return false, errors.New("db down")
		}
		return id == live, nil
	}

	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler(logger.NewNopLogger())})
	app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
	app.Get("/me", JwtMiddleware(tokens, exists), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		userId uuid.UUID
		status int
	}{
		{"live account", live, http.StatusNoContent},
		{"removed account", removed, http.StatusUnauthorized},
		{"lookup error", failing, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, err := tokens.GenerateAccessToken(token.Subject{Id: tt.userId})
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+access)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
