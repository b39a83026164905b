package model

// PromoRequest is the body of POST /promo/validate.
type PromoRequest struct {
	Code   string `json:"code"`
	Amount int    `json:"amount"`
}

// PromoValidation is the booking service's verdict on a promo code for a
// given order amount.  Discount and FinalTotal are pointers because the
// service omits them for rejected codes and zero is a legal final total.
type PromoValidation struct {
	Valid      bool   `json:"valid"`
	Code       string `json:"code,omitempty"`
	Discount   *int   `json:"discount,omitempty"`
	FinalTotal *int   `json:"finalTotal,omitempty"`
	Message    string `json:"message,omitempty"`
}

// Applies reports whether the validation carries a usable final total.
func (p *PromoValidation) Applies() bool {
	return p != nil && p.Valid && p.FinalTotal != nil
}
