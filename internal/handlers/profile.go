package handlers

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/export"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/middleware/auth"
)

type ProfileHandler struct {
	Market *marketplace.Marketplace
}

func (h *ProfileHandler) Profile(c echo.Context) error {
	v, out, err := h.Market.Profile(c.Request().Context(), auth.PrincipalFrom(c))
	if err != nil {
		return internalError(c, "profile", err)
	}
	return view(c, out, v)
}

// ExportInventory streams the owner's inventory as a spreadsheet.
func (h *ProfileHandler) ExportInventory(c echo.Context) error {
	items, out, err := h.Market.Inventory(c.Request().Context(), auth.PrincipalFrom(c))
	if err != nil {
		return internalError(c, "export_inventory", err)
	}
	if !out.OK() {
		return respond(c, out, http.StatusOK, nil)
	}

	var buf bytes.Buffer
	if err := export.WriteInventory(&buf, items); err != nil {
		return internalError(c, "export_inventory", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *ProfileHandler) Sell(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	out, err := h.Market.Sell(c.Request().Context(), auth.PrincipalFrom(c), marketplace.SellRequest{
		ItemID: domain.ItemID(req.ItemID),
	})
	if err != nil {
		return internalError(c, "sell", err)
	}
	return respond(c, out, http.StatusOK, nil)
}
