package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		want     time.Duration
	}{
		{"go duration", "15m", time.Hour, 15 * time.Minute},
		{"day suffix", "10d", time.Hour, 240 * time.Hour},
		{"garbage", "soon", time.Hour, time.Hour},
		{"empty", "", 2 * time.Hour, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SMARTNOTES_TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("SMARTNOTES_TEST_DURATION", tt.fallback))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRY", "1d")
	t.Setenv("NODE_ENV", "production")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenExpiry)
	assert.Equal(t, 10*24*time.Hour, cfg.Auth.RefreshTokenExpiry)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 25*1024*1024, cfg.Ai.MaxUploadBytes)
	assert.Equal(t, 100, cfg.Ai.MaxPollAttempts)
}
