package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/middleware/auth"
	"github.com/Skotchmaster/eco_shop/internal/util"
)

type ReviewHandler struct {
	Market *marketplace.Marketplace
}

type reviewRequest struct {
	Rating int    `json:"rating"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	id, _ := pathItemID(c, "id")

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	out, err := h.Market.AddReview(c.Request().Context(), auth.PrincipalFrom(c), marketplace.AddReviewRequest{
		ItemID: id,
		Rating: req.Rating,
		Title:  req.Title,
		Text:   req.Text,
	})
	if err != nil {
		return internalError(c, "add_review", err)
	}
	return respond(c, out, http.StatusCreated, nil)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, _ := util.ParseID(c.Param("id"))

	out, err := h.Market.DeleteReview(c.Request().Context(), auth.PrincipalFrom(c), marketplace.DeleteReviewRequest{
		ReviewID: domain.ReviewID(id),
	})
	if err != nil {
		return internalError(c, "delete_review", err)
	}
	return respond(c, out, http.StatusOK, nil)
}
