package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test-jwt-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func TestAccessClaimsFromToken(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute)
	tok, err := Sign(AccessClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}, accessSecret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "7", claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)

	_, err = AccessClaimsFromToken(tok, refreshSecret)
	assert.Error(t, err)
}

func TestAccessClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := Sign(AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, accessSecret)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestRefreshClaimsFromToken_RequiresJTI(t *testing.T) {
	t.Parallel()

	noID, err := Sign(RefreshClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}, refreshSecret)
	require.NoError(t, err)
	_, err = RefreshClaimsFromToken(noID, refreshSecret)
	assert.Error(t, err)

	withID, err := Sign(RefreshClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "7",
		ID:        NewJTI(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}, refreshSecret)
	require.NoError(t, err)
	claims, err := RefreshClaimsFromToken(withID, refreshSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestRejectsOtherSignMethod(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, accessSecret)
	assert.ErrorIs(t, err, ErrUnexpectedSignMethod)
}

func TestSha256Hex(t *testing.T) {
	t.Parallel()
	assert.Len(t, Sha256Hex("abc"), 64)
	assert.Equal(t, Sha256Hex("abc"), Sha256Hex("abc"))
	assert.NotEqual(t, Sha256Hex("abc"), Sha256Hex("abd"))
}

func TestDeleteCookieExpires(t *testing.T) {
	t.Parallel()
	c := DeleteCookie(AccessCookie, "/")
	assert.Equal(t, -1, c.MaxAge)
	assert.Empty(t, c.Value)
}
