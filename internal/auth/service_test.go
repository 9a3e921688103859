package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegisshield/irregular-report/internal/config"
)

func testService() *Service {
	return NewService(config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "aegisshield",
		TokenTTL:  time.Hour,
	})
}

func TestService_RoundTrip(t *testing.T) {
	s := testService()

	token, err := s.GenerateToken("officer-1", []string{RoleCompliance})
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "officer-1", claims.UserID)
	assert.True(t, claims.HasRole(RoleCompliance))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestService_Rejects(t *testing.T) {
	s := testService()

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(config.AuthConfig{JWTSecret: "other", Issuer: "aegisshield"})
		token, err := other.GenerateToken("u", nil)
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewService(config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"})
		token, err := other.GenerateToken("u", nil)
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			UserID: "u",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "aegisshield",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
