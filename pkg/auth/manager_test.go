package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traderacademy/backoffice/internal/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 240 * time.Hour,
		SigningKey:      "test-signing-key",
	}
}

func TestNewManagerValidation(t *testing.T) {
	_, err := NewManager(config.JWTConfig{})
	assert.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k"})
	assert.Error(t, err)

	_, err = NewManager(testJWTConfig())
	assert.NoError(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	adminID := uuid.New()

	token, ttl, err := m.NewJWT(&adminID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, adminID.String(), subject)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	m, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	other, err := NewManager(config.JWTConfig{
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		SigningKey:      "another-key",
	})
	require.NoError(t, err)

	adminID := uuid.New()
	token, _, err := other.NewJWT(&adminID)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	m, err := NewManager(testJWTConfig())
	require.NoError(t, err)

	token, ttl, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, 240*time.Hour, ttl)

	parsed, err := m.ValidateRefreshToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, *parsed)

	_, err = m.ValidateRefreshToken("not-a-uuid")
	assert.Error(t, err)
}
