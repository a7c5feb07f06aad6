package services

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() TokenService {
	return TokenService{Secret: []byte("test-secret"), Issuer: "sitecms-test", SessionTTL: time.Hour}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	tokens := testTokens()
	hash, err := tokens.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=1$"))

	assert.True(t, tokens.VerifyPassword("correct horse", hash))
	assert.False(t, tokens.VerifyPassword("wrong horse", hash))
	assert.False(t, tokens.VerifyPassword("correct horse", "$argon2id$broken"))
}

func TestVerifyPasswordAcceptsBcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, testTokens().VerifyPassword("legacy-pass", string(hash)))
	assert.False(t, testTokens().VerifyPassword("other", string(hash)))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	token, exp, err := tokens.CreateSessionToken("admin-1", "owner@example.com")
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), exp, 5)

	session, err := tokens.VerifySession(token)
	require.NoError(t, err)
	assert.Equal(t, SessionClaims{AdminID: "admin-1", Email: "owner@example.com", ExpiresAt: exp}, session)
}

func TestVerifySessionRejects(t *testing.T) {
	tokens := testTokens()
	valid, _, err := tokens.CreateSessionToken("admin-1", "owner@example.com")
	require.NoError(t, err)

	other := tokens
	other.Secret = []byte("another-secret")
	_, err = other.VerifySession(valid)
	requireStatus(t, err, http.StatusUnauthorized)

	wrongIssuer := tokens
	wrongIssuer.Issuer = "someone-else"
	_, err = wrongIssuer.VerifySession(valid)
	requireStatus(t, err, http.StatusUnauthorized)

	expired := tokens
	expired.SessionTTL = -time.Minute
	stale, _, err := expired.CreateSessionToken("admin-1", "owner@example.com")
	require.NoError(t, err)
	_, err = tokens.VerifySession(stale)
	requireStatus(t, err, http.StatusUnauthorized)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": tokens.Issuer, "sub": "admin-1", "typ": "refresh", "role": RoleAdmin,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := refresh.SignedString(tokens.Secret)
	require.NoError(t, err)
	_, err = tokens.VerifySession(signed)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = tokens.VerifySession("")
	requireStatus(t, err, http.StatusUnauthorized)
}
