package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/middleware"
	"github.com/manpreet1462/bookit/internal/model"
	"github.com/manpreet1462/bookit/internal/service"
	"github.com/manpreet1462/bookit/internal/utils"
)

// CheckoutService is the write side of the checkout service.
type CheckoutService interface {
	ApplyPromo(ctx context.Context, code string, subtotal int) (*model.PromoValidation, error)
	PrepareCheckout(ctx context.Context, sel service.CheckoutSelection) (*service.PreparedCheckout, error)
	QuoteCheckout(ctx context.Context, sel service.CheckoutSelection, promoCode string) (*service.PreparedCheckout, error)
	SubmitBooking(ctx context.Context, sub service.CheckoutSubmission) (*model.Confirmation, error)
	GetConfirmation(ctx context.Context, referenceID string) (*model.Confirmation, error)
}

// CheckoutHandler drives the checkout: prepare issues a signed checkout
// token pinning experience, slot and quantity; quote and book read the
// selection back from that token rather than from the request body.
type CheckoutHandler struct {
	svc         CheckoutService
	secret      string
	tokenTTLMin int
}

// NewCheckoutHandler panics on a nil service or an empty secret.
func NewCheckoutHandler(svc CheckoutService, secret string, tokenTTLMin int) *CheckoutHandler {
	if svc == nil || secret == "" {
		panic("NewCheckoutHandler needs a service and a signing secret")
	}
	return &CheckoutHandler{svc: svc, secret: secret, tokenTTLMin: tokenTTLMin}
}

type quoteRequest struct {
	PromoCode string `json:"promoCode"`
}

type bookingRequest struct {
	User      model.Customer `json:"user"`
	PromoCode string         `json:"promoCode"`
}

func selectionFromToken(c echo.Context) (service.CheckoutSelection, bool) {
	cl, ok := middleware.CheckoutClaims(c)
	if !ok {
		return service.CheckoutSelection{}, false
	}
	return service.CheckoutSelection{ExperienceID: cl.ExperienceID, SlotID: cl.SlotID, Quantity: cl.Quantity}, true
}

// Prepare handles POST /v1/checkout/prepare.
func (h *CheckoutHandler) Prepare(c echo.Context) error {
	var sel service.CheckoutSelection
	if err := c.Bind(&sel); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_body", "invalid request body")
	}
	p, err := h.svc.PrepareCheckout(c.Request().Context(), sel)
	if err != nil {
		return writeError(c, err)
	}
	tok, err := utils.NewCheckoutToken(h.secret, p.ExperienceID, p.SlotID, p.Quantity, h.tokenTTLMin)
	if err != nil {
		c.Logger().Errorf("sign checkout token: %v", err)
		return errorJSON(c, http.StatusInternalServerError, "internal_error", "could not start checkout")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"checkout":   p,
		"token":      tok.Token,
		"session_id": tok.SessionID,
		"expires_at": tok.Exp,
	})
}

// Quote handles POST /v1/checkout/quote.  Every call re-reads the slot and
// re-validates the promo code against the current subtotal.
func (h *CheckoutHandler) Quote(c echo.Context) error {
	sel, ok := selectionFromToken(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing_checkout_token", "start the checkout again")
	}
	var req quoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_body", "invalid request body")
	}
	p, err := h.svc.QuoteCheckout(c.Request().Context(), sel, req.PromoCode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"checkout": p})
}

// ValidatePromo handles POST /v1/promo/validate with {code, amount}.
func (h *CheckoutHandler) ValidatePromo(c echo.Context) error {
	var req model.PromoRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if req.Amount < 0 {
		return errorJSON(c, http.StatusBadRequest, "validation_failed", "amount must not be negative")
	}
	v, err := h.svc.ApplyPromo(c.Request().Context(), req.Code, req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

// Book handles POST /v1/bookings.
func (h *CheckoutHandler) Book(c echo.Context) error {
	sel, ok := selectionFromToken(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "missing_checkout_token", "start the checkout again")
	}
	var req bookingRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid_body", "invalid request body")
	}
	conf, err := h.svc.SubmitBooking(c.Request().Context(), service.CheckoutSubmission{
		CheckoutSelection: sel,
		Customer:          req.User,
		PromoCode:         req.PromoCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"confirmation": conf.View()})
}

// Confirmation handles GET /v1/confirmations/:ref.  It is open to anyone
// with the reference id and answers with the public view only.
func (h *CheckoutHandler) Confirmation(c echo.Context) error {
	conf, err := h.svc.GetConfirmation(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, conf.View())
}
