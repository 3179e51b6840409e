package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"12h", 12 * time.Hour},
		{"90m", 90 * time.Minute},
		{"3600", time.Hour},
		{" 1D ", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpiry(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpiry_Invalid(t *testing.T) {
	for _, in := range []string{"", "xd", "soon"} {
		_, err := ParseExpiry(in)
		assert.Error(t, err, in)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("FRONTEND_URL", "https://example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, TokenTypeJWT, cfg.Auth.TokenType)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "https://example.com", cfg.Server.FrontendURL)
	assert.Equal(t, []string{"https://example.com", "https://example.com/"}, cfg.Server.TrustedOrigins)
	assert.Equal(t, int64(20<<20), cfg.Storage.MaxUploadBytes)
	assert.True(t, cfg.Server.IsDevelopment())
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_TOKEN_TYPE", "jwt")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_PasetoKeyLength(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TYPE", "paseto")
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	assert.ErrorContains(t, err, "PASETO_KEY must be exactly 32 bytes")
}
