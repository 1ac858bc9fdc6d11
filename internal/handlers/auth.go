package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/middleware/auth"
	"github.com/Skotchmaster/eco_shop/internal/service"
	"github.com/Skotchmaster/eco_shop/internal/tokens"
)

type AuthHandler struct {
	Market *marketplace.Marketplace
}

type registerRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	out, err := h.Market.Register(c.Request().Context(), auth.PrincipalFrom(c), marketplace.RegisterRequest{
		Username:             req.Username,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		return internalError(c, "register", err)
	}
	return respond(c, out, http.StatusCreated, nil)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	sess, out, err := h.Market.Login(c.Request().Context(), auth.PrincipalFrom(c), marketplace.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return internalError(c, "login", err)
	}
	if sess != nil {
		auth.SetSessionCookies(c, sess)
	}
	return respond(c, out, http.StatusOK, nil)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	// the middleware may already have rotated the cookie for this request
	var refresh string
	if sess := auth.SessionFrom(c); sess != nil {
		refresh = sess.RefreshToken
	} else if ck, err := c.Cookie(tokens.RefreshCookie); err == nil {
		refresh = ck.Value
	}

	out, err := h.Market.Logout(c.Request().Context(), auth.PrincipalFrom(c), refresh)
	if err != nil {
		return internalError(c, "logout", err)
	}
	auth.ClearAuthCookies(c)
	return respond(c, out, http.StatusOK, nil)
}

// Refresh rotates the session cookies explicitly.
func (h *AuthHandler) Refresh(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "auth.refresh")

	if sess := auth.SessionFrom(c); sess != nil {
		return sessionExpiry(c, sess)
	}

	ck, err := c.Cookie(tokens.RefreshCookie)
	if err != nil || ck.Value == "" {
		return respond(c, marketplace.Outcome{
			Message:  "You must be logged in.",
			Category: marketplace.Failure,
			Err:      domain.ErrInvalidRefreshToken,
		}, http.StatusOK, nil)
	}

	sess, err := h.Market.Tokens.Refresh(c.Request().Context(), ck.Value)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidRefreshToken) {
			return internalError(c, "refresh", err)
		}
		l.Warn("refresh_rejected", "error", err)
		auth.ClearAuthCookies(c)
		return respond(c, marketplace.Outcome{
			Message:  "Your session has expired. Please log in again.",
			Category: marketplace.Failure,
			Err:      err,
		}, http.StatusOK, nil)
	}

	auth.SetSessionCookies(c, sess)
	return sessionExpiry(c, sess)
}

func sessionExpiry(c echo.Context, sess *service.Session) error {
	return c.JSON(http.StatusOK, echo.Map{
		"access_exp":  sess.AccessExp.Unix(),
		"refresh_exp": sess.RefreshExp.Unix(),
	})
}
