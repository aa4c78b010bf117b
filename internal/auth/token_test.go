package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters-long"

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := IssueToken(map[string]any{
		"email": "a@x.com",
		"name":  "Alice",
	}, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := VerifyToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", id.Email)
	assert.Equal(t, "Alice", id.Claims["name"])
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := IssueToken(map[string]any{"email": "a@x.com"}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := IssueToken(map[string]any{"email": "a@x.com"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, "another-secret-key-32-characters-xx")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := VerifyToken(tok, testSecret)
		require.Error(t, err, "token %q should be rejected", tok)
		assert.True(t, errors.Is(err, ErrTokenInvalid))
	}
}

func TestVerifyToken_MissingEmail(t *testing.T) {
	t.Parallel()

	token, err := IssueToken(map[string]any{"name": "no-email"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestVerifyToken_RejectsUnexpectedSigningMethod(t *testing.T) {
	t.Parallel()

	// A token signed with "none" must never verify, even with a valid shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(raw, testSecret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}

func TestIssueToken_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	claims := map[string]any{"email": "a@x.com"}
	_, err := IssueToken(claims, testSecret, time.Hour)
	require.NoError(t, err)

	_, hasExp := claims["exp"]
	assert.False(t, hasExp, "caller's claim map should not gain an exp entry")
}
