// Package pricing derives the numbers the checkout shows from catalog data
// that has already been fetched: seats left on a slot, a valid quantity,
// subtotal, promo discount, taxes and total.  Every function is total over
// its inputs; bad or missing values degrade to a safe default instead of
// returning an error, and callers decide whether to block a confirmation.
package pricing

import "github.com/manpreet1462/bookit/internal/model"

// DefaultFlatTax is the fixed fee added to every order, in currency units.
const DefaultFlatTax = 59

// ComputeAvailability returns capacity minus booked seats, never below zero.
// A nil slot has no availability.
func ComputeAvailability(slot *model.Slot) int {
	if slot == nil {
		return 0
	}
	if left := slot.Capacity - slot.BookedCount; left > 0 {
		return left
	}
	return 0
}

// IsSoldOut reports whether a slot has no seats left.
func IsSoldOut(slot *model.Slot) bool {
	return ComputeAvailability(slot) == 0
}

// ClampQuantity bounds a requested quantity to [1, max(available, 1)].  The
// result is at least 1 even for a sold out slot so a quantity selector always
// has a value; confirming a sold out slot must be blocked separately.
func ClampQuantity(requested, available int) int {
	return min(max(1, requested), max(available, 1))
}

// ComputeSubtotal multiplies the unit price by the quantity.  Negative inputs
// yield 0.
func ComputeSubtotal(unitPrice, quantity int) int {
	if unitPrice <= 0 || quantity <= 0 {
		return 0
	}
	return unitPrice * quantity
}

// ComputeTotal adds the flat tax to the promo final total when the promo
// applies, or to the subtotal otherwise.
func ComputeTotal(subtotal int, promo *model.PromoValidation, flatTax int) int {
	if promo.Applies() {
		return *promo.FinalTotal + flatTax
	}
	return subtotal + flatTax
}

// ComputeDiscount is the amount the promo takes off the subtotal.  It is 0
// when the promo does not apply and never negative.
func ComputeDiscount(subtotal int, promo *model.PromoValidation) int {
	if !promo.Applies() {
		return 0
	}
	if d := subtotal - *promo.FinalTotal; d > 0 {
		return d
	}
	return 0
}

// Quote is the price breakdown for one checkout state.
type Quote struct {
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Available int    `json:"available"`
	SoldOut   bool   `json:"soldOut"`
	Subtotal  int    `json:"subtotal"`
	Discount  int    `json:"discount"`
	Taxes     int    `json:"taxes"`
	Total     int    `json:"total"`
	PromoCode string `json:"promoCode,omitempty"`
}

// Calculator binds the pricing functions to a flat tax.
type Calculator struct {
	FlatTax int
}

// NewCalculator returns a Calculator charging flatTax per order.
func NewCalculator(flatTax int) Calculator {
	if flatTax < 0 {
		flatTax = 0
	}
	return Calculator{FlatTax: flatTax}
}

// Quote builds the breakdown for unitPrice x quantity on slot.  The quantity
// is clamped to the slot's availability.  promo may be nil; it was validated
// against the requested quantity's subtotal, so it is dropped when clamping
// changes the quantity.
func (c Calculator) Quote(unitPrice, quantity int, slot *model.Slot, promo *model.PromoValidation) Quote {
	available := ComputeAvailability(slot)
	qty := ClampQuantity(quantity, available)
	subtotal := ComputeSubtotal(unitPrice, qty)
	if qty != quantity {
		promo = nil
	}

	q := Quote{
		UnitPrice: unitPrice,
		Quantity:  qty,
		Available: available,
		SoldOut:   slot != nil && available == 0,
		Subtotal:  subtotal,
		Discount:  ComputeDiscount(subtotal, promo),
		Taxes:     c.FlatTax,
		Total:     ComputeTotal(subtotal, promo, c.FlatTax),
	}
	if promo.Applies() {
		q.PromoCode = promo.Code
	}
	return q
}
