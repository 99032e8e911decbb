package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserId   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Subject struct {
	Id       uuid.UUID
	Username string
	Email    string
}

// Manager signs and verifies the access/refresh token pair. The two kinds
// use separate secrets so one can never stand in for the other.
type Manager struct {
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshSecret []byte
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewManager(accessSecret string, accessExpiry time.Duration, refreshSecret string, refreshExpiry time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		accessExpiry:  accessExpiry,
		refreshSecret: []byte(refreshSecret),
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func (m *Manager) AccessExpiry() time.Duration  { return m.accessExpiry }
func (m *Manager) RefreshExpiry() time.Duration { return m.refreshExpiry }

func (m *Manager) GenerateAccessToken(s Subject) (string, error) {
	return m.sign(Claims{
		UserId:   s.Id.String(),
		Username: s.Username,
		Email:    s.Email,
	}, m.accessSecret, m.accessExpiry)
}

func (m *Manager) GenerateRefreshToken(s Subject) (string, error) {
	return m.sign(Claims{UserId: s.Id.String()}, m.refreshSecret, m.refreshExpiry)
}

func (m *Manager) ParseAccessToken(raw string) (*Claims, error) {
	return m.parse(raw, m.accessSecret)
}

func (m *Manager) ParseRefreshToken(raw string) (*Claims, error) {
	return m.parse(raw, m.refreshSecret)
}

func (m *Manager) sign(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) parse(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.UserId); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Hash returns the digest stored in place of a raw refresh token.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
