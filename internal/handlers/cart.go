package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/middleware/auth"
)

type CartHandler struct {
	Market *marketplace.Marketplace
}

type itemRequest struct {
	ItemID uint `json:"item_id"`
}

type checkoutRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	v, out, err := h.Market.Cart(c.Request().Context(), auth.PrincipalFrom(c))
	if err != nil {
		return internalError(c, "get_cart", err)
	}
	return view(c, out, v)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	out, err := h.Market.AddToCart(c.Request().Context(), auth.PrincipalFrom(c), marketplace.AddToCartRequest{
		ItemID: domain.ItemID(req.ItemID),
	})
	if err != nil {
		return internalError(c, "add_to_cart", err)
	}
	return respond(c, out, http.StatusCreated, nil)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	id, _ := pathItemID(c, "item_id")

	out, err := h.Market.RemoveFromCart(c.Request().Context(), auth.PrincipalFrom(c), marketplace.RemoveFromCartRequest{
		ItemID: id,
	})
	if err != nil {
		return internalError(c, "remove_from_cart", err)
	}
	return respond(c, out, http.StatusOK, nil)
}

func (h *CartHandler) CheckoutPreview(c echo.Context) error {
	v, out, err := h.Market.CheckoutPreview(c.Request().Context(), auth.PrincipalFrom(c))
	if err != nil {
		return internalError(c, "checkout_preview", err)
	}
	return view(c, out, v)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	v, out, err := h.Market.Checkout(c.Request().Context(), auth.PrincipalFrom(c), marketplace.CheckoutRequest{
		Confirm: req.Confirm,
	})
	if err != nil {
		return internalError(c, "checkout", err)
	}
	return respond(c, out, http.StatusOK, v)
}
