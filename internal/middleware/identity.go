package middleware

// identity.go holds the context keys checkout middleware writes and the
// helpers handlers use to read them back.

import (
	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/utils"
)

const (
	checkoutClaimsKey = "checkout_claims"
	sessionIDKey      = "session_id"
)

// CheckoutClaims returns the verified checkout token claims stored by
// CheckoutAuth, or false when the route is not behind it.
func CheckoutClaims(c echo.Context) (*utils.CheckoutClaims, bool) {
	cl, ok := c.Get(checkoutClaimsKey).(*utils.CheckoutClaims)
	return cl, ok && cl != nil
}

// sessionID returns the checkout session id, or "anon" before a checkout
// has been prepared.
func sessionID(c echo.Context) string {
	if s, ok := c.Get(sessionIDKey).(string); ok && s != "" {
		return s
	}
	return "anon"
}
