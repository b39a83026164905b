package service

import (
	"errors"
	"fmt"
)

// Validation errors.  Their text is shown to the user as is.
var (
	ErrExperienceRequired = errors.New("experience is required")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrSlotRequired       = errors.New("Please select a time slot")
	ErrSlotNotFound       = errors.New("selected slot is not offered for this experience")
	ErrSoldOut            = errors.New("this slot is sold out")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrNameRequired       = errors.New("full name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("email is not valid")
	ErrPromoCodeRequired  = errors.New("promo code is required")
)

// ErrPromoRejected is matched by every PromoRejectedError.
var ErrPromoRejected = errors.New("promo code rejected")

// InsufficientSeatsError reports a quantity larger than what the slot has left.
type InsufficientSeatsError struct {
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("Only %d seats left for this slot.", e.Available)
}

// PromoRejectedError is a promo code the booking service answered with
// valid=false.  Message is the service's explanation.
type PromoRejectedError struct {
	Code    string
	Message string
}

func (e *PromoRejectedError) Error() string { return e.Message }

func (e *PromoRejectedError) Is(target error) bool { return target == ErrPromoRejected }
