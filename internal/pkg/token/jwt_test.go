package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", time.Hour, "refresh-secret", 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	subject := Subject{Id: uuid.New(), Username: "ada", Email: "ada@example.com"}

	raw, err := m.GenerateAccessToken(subject)
	require.NoError(t, err)

	claims, err := m.ParseAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, subject.Id.String(), claims.UserId)
	assert.Equal(t, "ada", claims.Username)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	m := newTestManager()

	raw, err := m.GenerateRefreshToken(Subject{Id: uuid.New()})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ParseRefreshToken(raw)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := m.GenerateAccessToken(Subject{Id: uuid.New()})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRotatedTokensDiffer(t *testing.T) {
	m := newTestManager()
	subject := Subject{Id: uuid.New()}

	first, err := m.GenerateRefreshToken(subject)
	require.NoError(t, err)
	second, err := m.GenerateRefreshToken(subject)
	require.NoError(t, err)

	assert.NotEqual(t, Hash(first), Hash(second))
	assert.Len(t, Hash(first), 64)
}
