package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SkipPaths: []string{"/api/v1/login"}}))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.GET("/form", ok)
	e.POST("/submit", ok)
	e.POST("/api/v1/login", ok)
	return e
}

func issueToken(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)
	return token
}

func post(e *echo.Echo, cookie, header, origin string) int {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Host = "example.com"
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: cookie})
	}
	if header != "" {
		req.Header.Set("X-CSRF-Token", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestCSRF_MatchingTokenPasses(t *testing.T) {
	e := newServer()
	token := issueToken(t, e)
	assert.Equal(t, http.StatusOK, post(e, token, token, "http://example.com"))
}

func TestCSRF_Rejections(t *testing.T) {
	e := newServer()
	token := issueToken(t, e)

	assert.Equal(t, http.StatusForbidden, post(e, token, "", "http://example.com"), "missing header")
	assert.Equal(t, http.StatusForbidden, post(e, token, "other", "http://example.com"), "mismatch")
	assert.Equal(t, http.StatusForbidden, post(e, token, token, "http://evil.test"), "cross origin")
	assert.Equal(t, http.StatusForbidden, post(e, token, token, ""), "no origin")
}

func TestCSRF_SkipPaths(t *testing.T) {
	e := newServer()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
