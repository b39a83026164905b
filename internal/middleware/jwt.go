package middleware // middleware holds the echo middleware shared by the API routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/utils"
)

// CheckoutAuth returns an Echo middleware that requires a Bearer checkout
// token signed with secret.  The verified claims and the session id are
// stored in the context; read them with CheckoutClaims.
func CheckoutAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "missing_checkout_token",
					"message": "start the checkout again",
				})
			}
			claims, err := utils.ParseCheckoutToken(secret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":   "invalid_checkout_token",
					"message": "your checkout session has expired, start again",
				})
			}
			c.Set(checkoutClaimsKey, claims)
			c.Set(sessionIDKey, claims.ID)
			return next(c)
		}
	}
}
