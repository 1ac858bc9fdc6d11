package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/repo/memory"
	"github.com/Skotchmaster/eco_shop/internal/service"
	"github.com/Skotchmaster/eco_shop/internal/tokens"
)

func newSessions(t *testing.T) (*service.TokenService, domain.User) {
	t.Helper()
	store := memory.NewStore()
	u := domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, store.CreateUser(context.Background(), &u))
	return &service.TokenService{
		Repo:          store,
		Users:         store,
		AccessSecret:  []byte("access"),
		RefreshSecret: []byte("refresh"),
	}, u
}

func serve(t *testing.T, mw echo.MiddlewareFunc, cookies ...*http.Cookie) (*httptest.ResponseRecorder, domain.Principal, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Principal
	err := mw(func(c echo.Context) error {
		got = PrincipalFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, got, err
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestResolve_ValidAccessToken(t *testing.T) {
	ts, u := newSessions(t)
	sess, err := ts.Issue(context.Background(), u)
	require.NoError(t, err)

	mw := NewAutoRefresh(ts)
	rec, p, err := serve(t, mw.Resolve, &http.Cookie{Name: tokens.AccessCookie, Value: sess.AccessToken})
	require.NoError(t, err)
	assert.Equal(t, domain.PrincipalOf(u), p)
	assert.Nil(t, cookieNamed(rec, tokens.AccessCookie))
}

func TestResolve_AnonymousWithoutCookies(t *testing.T) {
	ts, _ := newSessions(t)
	_, p, err := serve(t, NewAutoRefresh(ts).Resolve)
	require.NoError(t, err)
	assert.False(t, p.Authenticated())
}

func TestResolve_ExpiredAccessIsRefreshed(t *testing.T) {
	ts, u := newSessions(t)
	sess, err := ts.Issue(context.Background(), u)
	require.NoError(t, err)

	expired, err := tokens.Sign(tokens.AccessClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, ts.AccessSecret)
	require.NoError(t, err)

	rec, p, err := serve(t, NewAutoRefresh(ts).Resolve,
		&http.Cookie{Name: tokens.AccessCookie, Value: expired},
		&http.Cookie{Name: tokens.RefreshCookie, Value: sess.RefreshToken},
	)
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.UserID)

	fresh := cookieNamed(rec, tokens.RefreshCookie)
	require.NotNil(t, fresh)
	assert.NotEqual(t, sess.RefreshToken, fresh.Value)
}

func TestResolve_TamperedAccessClearsCookies(t *testing.T) {
	ts, _ := newSessions(t)
	rec, p, err := serve(t, NewAutoRefresh(ts).Resolve, &http.Cookie{Name: tokens.AccessCookie, Value: "garbage"})
	require.NoError(t, err)
	assert.False(t, p.Authenticated())

	cleared := cookieNamed(rec, tokens.AccessCookie)
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	ts, _ := newSessions(t)
	_, _, err := serve(t, NewAutoRefresh(ts).RequireAuth)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
