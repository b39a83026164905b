// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedQueue is the durable queue confirmed bookings are sent to.
const BookingConfirmedQueue = "booking.confirmed"

// BookingConfirmedEvent is published after the booking service accepts a
// booking.  It carries enough for downstream consumers to log, notify or
// feed analytics without calling the booking service again.
type BookingConfirmedEvent struct {
	ReferenceID     string `json:"reference_id"`
	ExperienceID    string `json:"experience_id"`
	ExperienceTitle string `json:"experience_title"`
	SlotID          string `json:"slot_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Quantity        int    `json:"quantity"`
	CustomerEmail   string `json:"customer_email"`
	PromoCode       string `json:"promo_code,omitempty"`
	Total           int    `json:"total"`
	ConfirmedAt     string `json:"confirmed_at"`
}
