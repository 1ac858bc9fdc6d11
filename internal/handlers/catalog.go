package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
)

type CatalogHandler struct {
	Market *marketplace.Marketplace
}

// Browse serves GET /catalog?category_id=&search=&sort=.
func (h *CatalogHandler) Browse(c echo.Context) error {
	// category_id=0 means every category
	var categoryID domain.CategoryID
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return badRequest("invalid category_id")
		}
		categoryID = domain.CategoryID(id)
	}

	res, out, err := h.Market.Browse(c.Request().Context(), marketplace.BrowseRequest{
		CategoryID: categoryID,
		Search:     c.QueryParam("search"),
		Sort:       c.QueryParam("sort"),
	})
	if err != nil {
		return internalError(c, "browse", err)
	}
	return view(c, out, res)
}

func (h *CatalogHandler) Categories(c echo.Context) error {
	cats, err := h.Market.Categories(c.Request().Context())
	if err != nil {
		return internalError(c, "categories", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

func (h *CatalogHandler) Item(c echo.Context) error {
	id, ok := pathItemID(c, "id")
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Could not find item.")
	}
	v, out, err := h.Market.ItemDetail(c.Request().Context(), id)
	if err != nil {
		return internalError(c, "item", err)
	}
	return view(c, out, v)
}
