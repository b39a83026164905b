package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manpreet1462/bookit/internal/client"
	"github.com/manpreet1462/bookit/internal/repository"
	"github.com/manpreet1462/bookit/internal/service"
)

const genericRetryMessage = "Something went wrong talking to the booking service. Please try again."

// validation errors answered with 400
var badRequestErrs = []error{
	service.ErrExperienceRequired,
	service.ErrSlotRequired,
	service.ErrSlotNotFound,
	service.ErrInvalidQuantity,
	service.ErrNameRequired,
	service.ErrEmailRequired,
	service.ErrInvalidEmail,
	service.ErrPromoCodeRequired,
}

// errorJSON writes {"error": code, "message": text}.
func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{"error": code, "message": message})
}

// writeError maps a service error to its HTTP answer.
func writeError(c echo.Context, err error) error {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return errorJSON(c, http.StatusBadRequest, "validation_failed", err.Error())
		}
	}

	var seats *service.InsufficientSeatsError
	var promo *service.PromoRejectedError
	var apiErr *client.APIError
	var tErr *client.TransportError
	switch {
	case errors.Is(err, service.ErrSoldOut):
		return errorJSON(c, http.StatusConflict, "sold_out", err.Error())
	case errors.As(err, &seats):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "insufficient_seats",
			"message":   err.Error(),
			"available": seats.Available,
		})
	case errors.As(err, &promo):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   "promo_rejected",
			"message": promo.Message,
			"valid":   false,
		})
	case errors.Is(err, service.ErrExperienceNotFound):
		return errorJSON(c, http.StatusNotFound, "experience_not_found", "Failed to load experience details")
	case errors.Is(err, repository.ErrConfirmationNotFound):
		return errorJSON(c, http.StatusNotFound, "confirmation_not_found", "no booking found for this reference")
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = genericRetryMessage
		}
		return errorJSON(c, http.StatusBadGateway, "upstream_error", msg)
	case errors.As(err, &tErr):
		c.Logger().Warnf("booking service unreachable (%s): %v", tErr.Op, tErr.Err)
		return errorJSON(c, http.StatusBadGateway, "upstream_unavailable", genericRetryMessage)
	}

	c.Logger().Errorf("unhandled error: %v", err)
	return errorJSON(c, http.StatusInternalServerError, "internal_error", "internal error")
}
