package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/util"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, domain.ItemList, error)
}

type SearchHandler struct {
	Search Searcher
}

func (h *SearchHandler) Handler(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return badRequest("query parameter q is required")
	}
	if h.Search == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, items, err := h.Search.Search(c.Request().Context(), q, from, size)
	if err != nil {
		return internalError(c, "search", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}
