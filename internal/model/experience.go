package model

// Slot is a dated instance of an experience with a finite number of seats.
// Date is whatever the booking service sends (an ISO timestamp or a bare
// YYYY-MM-DD date); pricing.NormalizeDate reduces it to a calendar day.
type Slot struct {
	ID          string `json:"_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Price       int    `json:"price"`
}

// Experience is a bookable listing as returned by GET /experiences and
// GET /experiences/{id}.  Price is the base price per person in whole
// currency units and is what the checkout multiplies by quantity.
type Experience struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Location    string `json:"location"`
	Price       int    `json:"price"`
	Slots       []Slot `json:"slots"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// FindSlot returns the slot with the given id, or nil.
func (e *Experience) FindSlot(id string) *Slot {
	if e == nil || id == "" {
		return nil
	}
	for i := range e.Slots {
		if e.Slots[i].ID == id {
			return &e.Slots[i]
		}
	}
	return nil
}
