package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "backoffice/pkg/errors"
)

func sign(t *testing.T, key string, claims JwtCustomClaim) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func TestValidateToken_WithSecret(t *testing.T) {
	svc := NewJWTService("secret", zap.NewNop())
	tok := sign(t, "secret", JwtCustomClaim{
		UserID:           12,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "12", claims.UserKey())

	_, err = svc.ValidateToken(sign(t, "other", JwtCustomClaim{UserID: 12}))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("secret", zap.NewNop())
	tok := sign(t, "secret", JwtCustomClaim{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	})
	_, err := svc.ValidateToken(tok)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateToken_Unverified(t *testing.T) {
	svc := NewJWTService("", zap.NewNop())
	tok := sign(t, "upstream-only", JwtCustomClaim{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin@shop"},
	})

	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@shop", claims.UserKey())

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.ValidateToken(sign(t, "x", JwtCustomClaim{}))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "токен без пользователя не принимается")
}
