package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartnotes-be/internal/bootstrap"
	"smartnotes-be/internal/config"
	"smartnotes-be/internal/controller"
	"smartnotes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentNotes struct{ controller.INoteController }

func (silentNotes) RegisterRoutes(fiber.Router) {}

type silentNotebooks struct{ controller.INotebookController }

func (silentNotebooks) RegisterRoutes(fiber.Router) {}

type silentUsers struct{ controller.IUserController }

func (silentUsers) RegisterRoutes(fiber.Router) {}

type silentOAuth struct{ controller.IOAuthController }

func (silentOAuth) RegisterRoutes(fiber.Router) {}

func newTestServer() *Server {
	cfg := &config.Config{
		App: config.AppConfig{Port: "0", CorsAllowedOrigins: "http://localhost:3000"},
		Ai:  config.AIConfig{MaxUploadBytes: 1024},
	}
	container := &bootstrap.Container{
		Logger:             logger.NewNopLogger(),
		HealthController:   controller.NewHealthController(nil),
		NoteController:     silentNotes{},
		NotebookController: silentNotebooks{},
		UserController:     silentUsers{},
		OAuthController:    silentOAuth{},
	}
	return New(cfg, container)
}

func TestServerRoutes(t *testing.T) {
	app := newTestServer().GetApp()

	t.Run("healthcheck", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/healthcheck", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"status":"ok"`)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown route uses the error envelope", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"success":false`)
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/healthcheck", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	})
}
