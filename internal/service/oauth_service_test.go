package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"smartnotes-be/internal/config"
	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/repository/memory"
	"smartnotes-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenInfoServer(t *testing.T, tokens map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := tokens[r.URL.Query().Get("id_token")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_token"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOAuthServiceIdTokenLogin(t *testing.T) {
	srv := tokenInfoServer(t, map[string]string{
		"new":        `{"aud":"client-1","sub":"g-1","email":"New.Person@gmail.com","email_verified":"true","name":"New Person"}`,
		"link":       `{"aud":"client-1","sub":"g-2","email":"alice@example.com","email_verified":"true","name":"Alice"}`,
		"foreign":    `{"aud":"other-client","sub":"g-3","email":"x@gmail.com","email_verified":"true"}`,
		"unverified": `{"aud":"client-1","sub":"g-4","email":"y@gmail.com","email_verified":"false"}`,
	})

	auth, f, _ := newAuthService(t)
	registerUser(t, auth, "alice", "alice@example.com", "secret1")
	svc := NewOAuthService(f, config.GoogleConfig{ClientID: "client-1", TokenInfoURL: srv.URL}, memory.NewOAuthStateRepository(), auth, nopLogger)

	t.Run("creates user", func(t *testing.T) {
		res, err := svc.LoginWithGoogleIdToken(context.Background(), "new")
		require.NoError(t, err)
		assert.Equal(t, "new.person", res.User.Username)
		assert.Equal(t, "new.person@gmail.com", res.User.Email)
		assert.True(t, res.User.HasGoogle)
		assert.NotEmpty(t, res.RefreshToken)

		again, err := svc.LoginWithGoogleIdToken(context.Background(), "new")
		require.NoError(t, err)
		assert.Equal(t, res.User.Id, again.User.Id)
	})

	t.Run("links existing email", func(t *testing.T) {
		res, err := svc.LoginWithGoogleIdToken(context.Background(), "link")
		require.NoError(t, err)
		assert.Equal(t, "alice", res.User.Username)
		assert.True(t, res.User.HasGoogle)

		count, err := f.NewUnitOfWork(context.Background()).UserRepository().Count(context.Background(), specification.ByEmail{Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	for name, tok := range map[string]string{"audience mismatch": "foreign", "unverified email": "unverified", "rejected token": "bogus"} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.LoginWithGoogleIdToken(context.Background(), tok)
			assert.True(t, apperror.Is(err, apperror.KindUnauthorized), "got %v", err)
		})
	}

	_, err := svc.LoginWithGoogleIdToken(context.Background(), " ")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestOAuthServiceCallbackRequiresIssuedState(t *testing.T) {
	auth, f, _ := newAuthService(t)
	svc := NewOAuthService(f, config.GoogleConfig{ClientID: "client-1", RedirectURL: "http://localhost/cb"}, memory.NewOAuthStateRepository(), auth, nopLogger)

	_, err := svc.HandleGoogleCallback(context.Background(), "code", "forged")
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized))

	loginURL, err := url.Parse(svc.GoogleLoginURL())
	require.NoError(t, err)
	state := loginURL.Query().Get("state")
	require.NotEmpty(t, state)

	_, err = svc.HandleGoogleCallback(context.Background(), "", state)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.HandleGoogleCallback(context.Background(), "", state)
	assert.True(t, apperror.Is(err, apperror.KindUnauthorized), "state is single use")
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "john.doe", usernameFromEmail("John.Doe@x.io"))
	assert.Equal(t, "ab", usernameFromEmail("a+b@x.io"))
	assert.Equal(t, "user", usernameFromEmail("+++@x.io"))
}
