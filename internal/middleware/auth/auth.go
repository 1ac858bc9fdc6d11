package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/service"
	"github.com/Skotchmaster/eco_shop/internal/tokens"
)

const (
	principalKey = "principal"
	sessionKey   = "session"
)

type Sessions interface {
	Authenticate(accessToken string) (domain.Principal, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
}

// AutoRefresh resolves the session cookies into a domain.Principal. An
// expired access token is exchanged for a new pair using the refresh cookie.
type AutoRefresh struct {
	Sessions Sessions
}

func NewAutoRefresh(s Sessions) *AutoRefresh {
	return &AutoRefresh{Sessions: s}
}

// Resolve never rejects a request: visitors without a usable session
// continue as anonymous.
func (m *AutoRefresh) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		setPrincipal(c, m.principal(c))
		return next(c)
	}
}

// RequireAuth rejects anonymous requests with 401.
func (m *AutoRefresh) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := m.principal(c)
		if !p.Authenticated() {
			return echo.NewHTTPError(http.StatusUnauthorized, "You must be logged in.")
		}
		setPrincipal(c, p)
		return next(c)
	}
}

func (m *AutoRefresh) principal(c echo.Context) domain.Principal {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.middleware")

	access := cookieValue(c, tokens.AccessCookie)
	if access != "" {
		p, err := m.Sessions.Authenticate(access)
		if err == nil {
			return p
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			l.Warn("invalid_access_token", "error", err)
			ClearAuthCookies(c)
			return domain.Principal{}
		}
	}

	refresh := cookieValue(c, tokens.RefreshCookie)
	if refresh == "" {
		return domain.Principal{}
	}

	sess, err := m.Sessions.Refresh(c.Request().Context(), refresh)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		ClearAuthCookies(c)
		return domain.Principal{}
	}
	SetSessionCookies(c, sess)
	c.Set(sessionKey, sess)
	return sess.Principal
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func setPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal stored by Resolve or RequireAuth.
func PrincipalFrom(c echo.Context) domain.Principal {
	p, _ := c.Get(principalKey).(domain.Principal)
	return p
}

// SessionFrom returns the session minted while resolving this request, or
// nil when the access cookie was still valid.
func SessionFrom(c echo.Context) *service.Session {
	s, _ := c.Get(sessionKey).(*service.Session)
	return s
}

func SetSessionCookies(c echo.Context, s *service.Session) {
	c.SetCookie(tokens.CreateCookie(tokens.AccessCookie, s.AccessToken, "/", s.AccessExp))
	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookie, s.RefreshToken, "/", s.RefreshExp))
}

func ClearAuthCookies(c echo.Context) {
	c.SetCookie(tokens.DeleteCookie(tokens.AccessCookie, "/"))
	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookie, "/"))
}
