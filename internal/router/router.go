package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/handler"
	"github.com/manpreet1462/bookit/internal/middleware"
)

// RegisterRoutes registers the health check.  checks may be nil.
func RegisterRoutes(e *echo.Echo, checks map[string]handler.Pinger) {
	e.GET("/healthz", handler.Health(checks))
}

// RegisterCatalog registers the browse endpoints.  Only the list goes
// through cache; the detail view carries live seat counts.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/experiences")
	g.GET("", h.List, cache)
	g.GET("/:id", h.Detail)
}

// RegisterCheckout registers the checkout endpoints.  Prepare and promo
// validation are open; quote and booking require the checkout token that
// prepare issues.  limiter runs after authentication so it can key on the
// checkout session.
func RegisterCheckout(e *echo.Echo, h *handler.CheckoutHandler, secret string, limiter echo.MiddlewareFunc) {
	v1 := e.Group("/v1")
	v1.POST("/checkout/prepare", h.Prepare, limiter)
	v1.POST("/promo/validate", h.ValidatePromo, limiter)
	v1.GET("/confirmations/:ref", h.Confirmation)

	auth := middleware.CheckoutAuth(secret)
	v1.POST("/checkout/quote", h.Quote, auth, limiter)
	v1.POST("/bookings", h.Book, auth, limiter)
}
