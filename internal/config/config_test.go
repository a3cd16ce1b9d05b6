package config

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnvRequiresServerURL(t *testing.T) {
	t.Setenv("CARTPILOT_SERVER_URL", "")
	t.Setenv("CARTPILOT_USER_ID", "u1")

	_, err := NewFromEnv()

	assert.Error(t, err)
}

func TestNewFromEnvExplicitUserID(t *testing.T) {
	t.Setenv("CARTPILOT_SERVER_URL", "https://api.example.com")
	t.Setenv("CARTPILOT_USER_ID", "u1")
	t.Setenv("CARTPILOT_SESSION_TOKEN", "")
	t.Setenv("CARTPILOT_DEFAULT_ORIGIN", "12 Main St")

	cfg, err := NewFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.ServerURL)
	assert.Equal(t, "u1", cfg.UserID)
	assert.Equal(t, "12 Main St", cfg.DefaultOrigin)
	assert.Equal(t, "cartpilot.log", cfg.LogFile)
}

func TestNewFromEnvDerivesUserIDFromToken(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-7"})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	t.Setenv("CARTPILOT_SERVER_URL", "https://api.example.com")
	t.Setenv("CARTPILOT_USER_ID", "")
	t.Setenv("CARTPILOT_SESSION_TOKEN", signed)

	cfg, err := NewFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "user-7", cfg.UserID)
}

func TestNewFromEnvNoUserIdentity(t *testing.T) {
	t.Setenv("CARTPILOT_SERVER_URL", "https://api.example.com")
	t.Setenv("CARTPILOT_USER_ID", "")
	t.Setenv("CARTPILOT_SESSION_TOKEN", "")

	_, err := NewFromEnv()

	assert.Error(t, err)
}
