package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/eco_shop/internal/handlers"
	"github.com/Skotchmaster/eco_shop/internal/marketplace"
	"github.com/Skotchmaster/eco_shop/internal/middleware/auth"
	"github.com/Skotchmaster/eco_shop/internal/middleware/csrf"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Market *marketplace.Marketplace
	Search handlers.Searcher
	// Ready is checked by /health/ready; nil means always ready.
	Ready       Pinger
	CSRFEnabled bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready.Ping(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
			}
		}
		return c.NoContent(http.StatusOK)
	})

	session := auth.NewAutoRefresh(d.Market.Tokens)
	v1 := e.Group("/api/v1", session.Resolve)
	if d.CSRFEnabled {
		v1.Use(csrf.Middleware(csrf.DefaultConfig()))
	}

	catalog := &handlers.CatalogHandler{Market: d.Market}
	authH := &handlers.AuthHandler{Market: d.Market}
	cart := &handlers.CartHandler{Market: d.Market}
	profile := &handlers.ProfileHandler{Market: d.Market}
	reviews := &handlers.ReviewHandler{Market: d.Market}
	search := &handlers.SearchHandler{Search: d.Search}

	v1.GET("/catalog", catalog.Browse)
	v1.GET("/categories", catalog.Categories)
	v1.GET("/items/:id", catalog.Item)
	v1.GET("/search", search.Handler)

	v1.POST("/register", authH.Register)
	v1.POST("/login", authH.Login)
	v1.POST("/logout", authH.Logout)
	v1.POST("/refresh", authH.Refresh)

	v1.GET("/cart", cart.GetCart)
	v1.POST("/cart", cart.AddToCart)
	v1.DELETE("/cart/:item_id", cart.RemoveFromCart)
	v1.GET("/checkout", cart.CheckoutPreview)
	v1.POST("/checkout", cart.Checkout)

	v1.GET("/profile", profile.Profile)
	v1.GET("/profile/inventory.xlsx", profile.ExportInventory)
	v1.POST("/profile/sell", profile.Sell)

	v1.POST("/items/:id/reviews", reviews.AddReview)
	v1.DELETE("/reviews/:id", reviews.DeleteReview)
}
