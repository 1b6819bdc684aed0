package lib

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "user@happycrafts.shop",
		"role":  "user",
		"iat":   now.Unix(),
		"exp":   now.Add(15 * time.Minute).Unix(),
		"jti":   uuid.New().String(),
	}
}

func TestParseTokenRoundTrip(t *testing.T) {
	raw := validClaims()
	signed := signTestToken(t, testSecret, raw)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, raw["sub"], claims.Sub.String())
	assert.Equal(t, "user@happycrafts.shop", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, raw["jti"], claims.Jti.String())
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	signed := signTestToken(t, testSecret, validClaims())

	_, err := ParseToken(signed, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsMissingClaims(t *testing.T) {
	claims := validClaims()
	delete(claims, "role")
	signed := signTestToken(t, testSecret, claims)

	_, err := ParseToken(signed, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsMalformedSub(t *testing.T) {
	claims := validClaims()
	claims["sub"] = "not-a-uuid"
	signed := signTestToken(t, testSecret, claims)

	_, err := ParseToken(signed, testSecret)
	assert.Error(t, err)
}
