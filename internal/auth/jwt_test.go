package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("super-secret", time.Hour)
	tok, err := codec.Issue(Identity{ID: "user-123"})
	require.NoError(t, err)

	identity, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.ID)
}

func TestIssue_ClaimsShape(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("k", time.Hour)
	tok, err := codec.Issue(Identity{ID: "u1"})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok, "user claim must be an object")
	assert.Equal(t, "u1", user["id"])
	assert.Contains(t, claims, "exp")
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec("secret", time.Hour)
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := codec.Issue(Identity{ID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenCodec("secret", time.Hour).Verify(tok)
	assert.True(t, errors.Is(err, ErrTokenExpired), "got %v", err)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec("right-secret", time.Hour).Issue(Identity{ID: "u2"})
	require.NoError(t, err)

	_, err = NewTokenCodec("wrong-secret", time.Hour).Verify(tok)
	assert.True(t, errors.Is(err, ErrInvalidSignature), "got %v", err)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenCodec("k", time.Hour).Verify("not.a.jwt")
	assert.True(t, errors.Is(err, ErrMalformedToken), "got %v", err)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := &Claims{
		User:             Identity{ID: "u3"},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenCodec("k", time.Hour).Verify(tok)
	assert.Error(t, err)
}

func TestVerify_RequiresExpiryAndUser(t *testing.T) {
	t.Parallel()

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{User: Identity{ID: "u4"}}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = NewTokenCodec("k", time.Hour).Verify(noExp)
	assert.Error(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = NewTokenCodec("k", time.Hour).Verify(noUser)
	assert.True(t, errors.Is(err, ErrMalformedToken), "got %v", err)
}
