package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute)

	tokenStr, expiresAt, err := tm.GenerateToken("czegarra")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "czegarra", claims.Username)
	assert.Equal(t, "czegarra", claims.Subject)
}

func TestParseToken_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute)
	verifier := NewTokenManager("secret-b", time.Minute)

	tokenStr, _, err := issuer.GenerateToken("czegarra")
	require.NoError(t, err)

	_, err = verifier.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_ExpiredRejected(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		Username: "czegarra",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "czegarra",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	tm := NewTokenManager(secret, time.Minute)
	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_WrongSigningMethodRejected(t *testing.T) {
	// A token signed with "none" must never validate.
	claims := &Claims{Username: "czegarra"}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", time.Minute)
	_, err = tm.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Minute)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("s", 0)
	assert.Equal(t, 30*time.Minute, tm.TTL())
}
