package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-that-is-long-enough",
		RefreshSecret:          "test-refresh-secret-that-is-long-enough",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ledgerbook-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	sub := Subject{UserID: uuid.New(), Username: "alice", Role: "system_admin"}

	pair, err := svc.GenerateTokenPair(sub)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("access token carries the principal", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, sub.UserID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, "system_admin", claims.Role)
		assert.NotEmpty(t, claims.ID)

		id, err := claims.UserUUID()
		require.NoError(t, err)
		assert.Equal(t, sub.UserID, id)
		assert.Greater(t, claims.RemainingTTL(), 14*time.Minute)
	})

	t.Run("refresh token omits role", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, sub.UserID.String(), claims.UserID)
		assert.Empty(t, claims.Role)
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)

		_, err = svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestJWTService_ValidateFailures(t *testing.T) {
	svc := newTestJWTService()
	sub := Subject{UserID: uuid.New(), Role: "user"}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		svc.now = func() time.Time { return past }
		pair, err := svc.GenerateTokenPair(sub)
		require.NoError(t, err)
		svc.now = time.Now

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-entirely-different-value",
			AccessTokenExpiration: time.Minute,
			Issuer:                "ledgerbook-test",
		})
		pair, err := other.GenerateTokenPair(sub)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "test-access-secret-that-is-long-enough",
			AccessTokenExpiration: time.Minute,
			Issuer:                "someone-else",
		})
		pair, err := other.GenerateTokenPair(sub)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed user id", func(t *testing.T) {
		now := time.Now()
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "ledgerbook-test",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
			UserID:    "not-a-uuid",
			TokenType: TokenTypeAccess,
		}
		raw, err := svc.sign(claims, svc.accessSecret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestNewJWTService_RefreshSecretFallback(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "only-secret", Issuer: "x"})
	assert.Equal(t, svc.accessSecret, svc.refreshSecret)
}
