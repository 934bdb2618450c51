package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	assert.Error(t, Init("", time.Hour))
	assert.NoError(t, Init("test-secret", time.Hour))
}

func TestJWT_RoundTrip(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	token, err := GenerateJWT(42, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerifyJWT_Garbage(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestVerifyJWT_WrongSecret(t *testing.T) {
	require.NoError(t, Init("first-secret", time.Hour))
	token, err := GenerateJWT(1, "ana@example.com")
	require.NoError(t, err)

	require.NoError(t, Init("second-secret", time.Hour))
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWT_Expired(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	claims := &Claims{
		UserID: 1,
		Email:  "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWT_RejectsUnsignedToken(t *testing.T) {
	require.NoError(t, Init("test-secret", time.Hour))

	claims := &Claims{UserID: 1, Email: "ana@example.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}
