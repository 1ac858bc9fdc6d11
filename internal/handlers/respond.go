package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/util"
)

type outcomeBody struct {
	Message  string               `json:"message"`
	Category marketplace.Category `json:"category"`
	Data     any                  `json:"data,omitempty"`
}

// StatusFor maps an expected domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrReviewNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, marketplace.ErrAlreadyAuthenticated):
		return http.StatusConflict
	case domain.IsExpected(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes an outcome, using okStatus when it succeeded.
func respond(c echo.Context, o marketplace.Outcome, okStatus int, data any) error {
	status := okStatus
	if !o.OK() {
		status = StatusFor(o.Err)
		data = nil
		logging.FromContext(c.Request().Context()).Info("action_rejected",
			"status", status,
			"reason", o.Err.Error(),
		)
	}
	return c.JSON(status, outcomeBody{Message: o.Message, Category: o.Category, Data: data})
}

// view writes v on success and the outcome otherwise.
func view(c echo.Context, o marketplace.Outcome, v any) error {
	if o.OK() {
		return c.JSON(http.StatusOK, v)
	}
	return respond(c, o, http.StatusOK, nil)
}

func internalError(c echo.Context, handler string, err error) error {
	logging.FromContext(c.Request().Context()).Error(handler+"_failed", "status", http.StatusInternalServerError, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}

func pathItemID(c echo.Context, name string) (domain.ItemID, bool) {
	id, ok := util.ParseID(c.Param(name))
	return domain.ItemID(id), ok
}
