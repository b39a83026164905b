package model

import "time"

// Confirmation is the receipt kept after the booking service accepts a
// booking.  It carries everything the confirmation view shows, so the view
// can be rendered again from the reference id alone.
type Confirmation struct {
	ReferenceID     string    `json:"referenceId"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	ExperienceID    string    `json:"experienceId"`
	ExperienceTitle string    `json:"experienceName"`
	SlotID          string    `json:"slotId"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Quantity        int       `json:"quantity"`
	Total           int       `json:"total"`
	PromoCode       string    `json:"promoCode,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ConfirmationView is the part of a Confirmation shown on the confirmation
// page.  Anyone holding the reference id can fetch it, so contact details
// stay out.
type ConfirmationView struct {
	ReferenceID     string `json:"referenceId"`
	CustomerName    string `json:"customerName"`
	ExperienceTitle string `json:"experienceName"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Quantity        int    `json:"quantity"`
	Total           int    `json:"total"`
	PromoCode       string `json:"promoCode,omitempty"`
}

// View returns the public part of c.
func (c *Confirmation) View() ConfirmationView {
	return ConfirmationView{
		ReferenceID:     c.ReferenceID,
		CustomerName:    c.CustomerName,
		ExperienceTitle: c.ExperienceTitle,
		Date:            c.Date,
		Time:            c.Time,
		Quantity:        c.Quantity,
		Total:           c.Total,
		PromoCode:       c.PromoCode,
	}
}
