package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOAuthService struct{}

func (fakeOAuthService) GoogleLoginURL() string {
	return "https://accounts.google.com/o/oauth2/auth?state=abc"
}

func (fakeOAuthService) HandleGoogleCallback(_ context.Context, _, state string) (*dto.AuthResponse, error) {
	if state != "abc" {
		return nil, apperror.Unauthorized("invalid oauth state")
	}
	return &dto.AuthResponse{AccessToken: "acc", RefreshToken: "ref"}, nil
}

func (fakeOAuthService) LoginWithGoogleIdToken(_ context.Context, idToken string) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{AccessToken: "acc-" + idToken, RefreshToken: "ref"}, nil
}

func newOAuthApp(clientURL string) *fiber.App {
	app := newApp()
	cookies := CookieSettings{AccessTTL: time.Hour, RefreshTTL: time.Hour}
	NewOAuthController(fakeOAuthService{}, cookies, clientURL).RegisterRoutes(app.Group("/api/v1"))
	return app
}

func TestGoogleLoginRedirects(t *testing.T) {
	resp, err := newOAuthApp("").Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/google", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?state=abc", resp.Header.Get("Location"))
}

func TestGoogleCallback(t *testing.T) {
	resp, err := newOAuthApp("http://localhost:5173").Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=c&state=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Location"))
	assert.Equal(t, "acc", cookieNamed(resp, serverutils.AccessTokenCookie).Value)

	resp, err = newOAuthApp("").Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=c&state=abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode(t, resp).Success)

	resp, err = newOAuthApp("").Test(httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?code=c&state=forged", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGoogleTokenLogin(t *testing.T) {
	app := newOAuthApp("")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/google/token", `{"idToken":"xyz"}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "acc-xyz", cookieNamed(resp, serverutils.AccessTokenCookie).Value)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/google/token", `{}`, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
