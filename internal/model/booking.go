package model

import "encoding/json"

// Customer identifies the person making a booking.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	ExperienceID string   `json:"experienceId"`
	SlotID       string   `json:"slotId"`
	User         Customer `json:"user"`
	PromoCode    string   `json:"promoCode,omitempty"`
	Quantity     int      `json:"quantity"`
}

// Booking is the booking record echoed back by the booking service.  Fields
// the service adds beyond the ones we read are kept in Extra so they survive
// a decode/encode pass unchanged.
type Booking struct {
	ReferenceID     string                     `json:"referenceId"`
	ExperienceTitle string                     `json:"experienceTitle"`
	Date            string                     `json:"date"`
	Time            string                     `json:"time"`
	Total           int                        `json:"total"`
	Extra           map[string]json.RawMessage `json:"-"`
}

var bookingKnownFields = []string{"referenceId", "experienceTitle", "date", "time", "total"}

func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range bookingKnownFields {
		delete(all, k)
	}
	if len(all) > 0 {
		p.Extra = all
	}
	*b = Booking(p)
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+len(bookingKnownFields))
	for k, v := range b.Extra {
		out[k] = v
	}
	out["referenceId"] = b.ReferenceID
	out["experienceTitle"] = b.ExperienceTitle
	out["date"] = b.Date
	out["time"] = b.Time
	out["total"] = b.Total
	return json.Marshal(out)
}

// BookingReceipt is the success envelope of POST /bookings.
type BookingReceipt struct {
	Booking Booking `json:"booking"`
}
