package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret",
		Issuer:     "vigilant-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Run("requires a secret", func(t *testing.T) {
		_, err := NewJWTService(JWTConfig{})
		require.Error(t, err)
	})

	t.Run("defaults expiration", func(t *testing.T) {
		svc, err := NewJWTService(JWTConfig{Secret: "s"})
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, svc.config.Expiration)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, []string{RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.HasRole(RoleUser))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.Equal(t, "vigilant-test", claims.Issuer)
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestService(t)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.Error(t, err)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other, err := NewJWTService(JWTConfig{Secret: "other-secret"})
		require.NoError(t, err)

		token, err := other.GenerateToken(uuid.New(), nil)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		short, err := NewJWTService(JWTConfig{Secret: "test-secret", Expiration: -time.Minute})
		require.NoError(t, err)

		token, err := short.GenerateToken(uuid.New(), nil)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})
}
