package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestUserIDFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	uid, err := UserIDFromToken(token)

	require.NoError(t, err)
	assert.Equal(t, "user-42", uid)
}

func TestUserIDFromTokenMissingSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"email": "a@b.c"})

	_, err := UserIDFromToken(token)

	assert.Error(t, err)
}

func TestUserIDFromTokenGarbage(t *testing.T) {
	_, err := UserIDFromToken("not-a-jwt")
	assert.Error(t, err)
}
