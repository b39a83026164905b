// Package service holds the checkout flow: it reads the catalog from the
// booking service, runs every number through the pricing calculator,
// validates the customer's input before anything is sent, and records the
// confirmation once a booking is accepted.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/manpreet1462/bookit/internal/client"
	"github.com/manpreet1462/bookit/internal/model"
	"github.com/manpreet1462/bookit/internal/pricing"
	"github.com/manpreet1462/bookit/internal/queue"
	"github.com/manpreet1462/bookit/internal/repository"
)

// Catalog is the booking service as seen by the checkout; *client.Client
// implements it.
type Catalog interface {
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	GetExperience(ctx context.Context, id string) (*model.Experience, error)
	ValidatePromo(ctx context.Context, code string, amount int) (*model.PromoValidation, error)
	CreateBooking(ctx context.Context, booking model.BookingRequest) (*model.BookingReceipt, error)
}

// EventPublisher announces confirmed bookings; *queue.Publisher implements it.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// CheckoutService implements the browse, quote and booking operations.
// store and events may be nil; the booking then simply isn't recorded or
// announced.
type CheckoutService struct {
	catalog Catalog
	store   repository.ConfirmationStore
	events  EventPublisher
	calc    pricing.Calculator
	now     func() time.Time
}

// NewCheckoutService wires a CheckoutService.
func NewCheckoutService(catalog Catalog, store repository.ConfirmationStore, events EventPublisher, calc pricing.Calculator) *CheckoutService {
	if catalog == nil {
		panic("nil catalog passed to NewCheckoutService")
	}
	return &CheckoutService{
		catalog: catalog,
		store:   store,
		events:  events,
		calc:    calc,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SlotView is a slot with its derived availability.
type SlotView struct {
	model.Slot
	Available int  `json:"available"`
	SoldOut   bool `json:"soldOut"`
}

// DetailQuery is what the detail page asks for.  Empty fields take their
// defaults: the first day with slots, no slot, one seat.
type DetailQuery struct {
	ExperienceID string
	Date         string
	SlotID       string
	Quantity     int
}

// ExperienceDetail is everything the detail page renders.
type ExperienceDetail struct {
	Experience   model.Experience     `json:"experience"`
	SelectedDate string               `json:"selectedDate"`
	Dates        []pricing.DateOption `json:"dates"`
	Slots        []SlotView           `json:"slots"`
	SelectedSlot *SlotView            `json:"selectedSlot,omitempty"`
	Quote        pricing.Quote        `json:"quote"`
}

// CheckoutSelection is an experience, one of its slots and a seat count.
type CheckoutSelection struct {
	ExperienceID string `json:"experienceId"`
	SlotID       string `json:"slotId"`
	Quantity     int    `json:"quantity"`
}

// PreparedCheckout is a validated selection with its price breakdown.
type PreparedCheckout struct {
	CheckoutSelection
	ExperienceTitle string        `json:"experienceTitle"`
	Location        string        `json:"location"`
	Date            string        `json:"date"`
	Time            string        `json:"time"`
	Quote           pricing.Quote `json:"quote"`
}

// CheckoutSubmission is the final booking form.
type CheckoutSubmission struct {
	CheckoutSelection
	Customer  model.Customer `json:"user"`
	PromoCode string         `json:"promoCode,omitempty"`
}

func slotView(s model.Slot) SlotView {
	return SlotView{Slot: s, Available: pricing.ComputeAvailability(&s), SoldOut: pricing.IsSoldOut(&s)}
}

// ListExperiences fetches the catalog and filters it by query.
func (s *CheckoutService) ListExperiences(ctx context.Context, query string) ([]model.Experience, error) {
	exps, err := s.catalog.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	return SearchExperiences(exps, query), nil
}

// ExperienceDetail builds the detail view for q.  The quote carries no
// promo; promos are only applied at checkout.
func (s *CheckoutService) ExperienceDetail(ctx context.Context, q DetailQuery) (*ExperienceDetail, error) {
	exp, err := s.fetchExperience(ctx, q.ExperienceID)
	if err != nil {
		return nil, err
	}

	day, ok := pricing.NormalizeDate(q.Date)
	if !ok {
		day = pricing.FirstDate(exp.Slots)
	}

	d := &ExperienceDetail{
		Experience:   *exp,
		SelectedDate: day,
		Dates:        pricing.UniqueDates(exp.Slots),
		Slots:        []SlotView{},
	}
	var selected *model.Slot
	for _, sl := range pricing.FilterSlotsByDate(exp.Slots, day) {
		v := slotView(sl)
		d.Slots = append(d.Slots, v)
		if q.SlotID != "" && sl.ID == q.SlotID {
			d.SelectedSlot = &v
			selected = &v.Slot
		}
	}

	d.Quote = s.calc.Quote(exp.Price, q.Quantity, selected, nil)
	return d, nil
}

// ApplyPromo asks the booking service about code for subtotal.  A transport
// or service failure comes back unchanged; a code the service answers with
// valid=false comes back as a *PromoRejectedError next to the validation.
func (s *CheckoutService) ApplyPromo(ctx context.Context, code string, subtotal int) (*model.PromoValidation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrPromoCodeRequired
	}
	v, err := s.catalog.ValidatePromo(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}
	if !v.Valid {
		msg := v.Message
		if msg == "" {
			msg = "Invalid promo code"
		}
		return v, &PromoRejectedError{Code: code, Message: msg}
	}
	if v.Code == "" {
		v.Code = code
	}
	return v, nil
}

// PrepareCheckout validates sel against the live slot and prices it.
func (s *CheckoutService) PrepareCheckout(ctx context.Context, sel CheckoutSelection) (*PreparedCheckout, error) {
	exp, slot, qty, err := s.resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	return s.prepared(exp, slot, qty, nil), nil
}

// QuoteCheckout re-prices sel, validating promoCode against the fresh
// subtotal when one is given.
func (s *CheckoutService) QuoteCheckout(ctx context.Context, sel CheckoutSelection, promoCode string) (*PreparedCheckout, error) {
	exp, slot, qty, err := s.resolve(ctx, sel)
	if err != nil {
		return nil, err
	}
	var promo *model.PromoValidation
	if strings.TrimSpace(promoCode) != "" {
		subtotal := pricing.ComputeSubtotal(exp.Price, qty)
		if promo, err = s.ApplyPromo(ctx, promoCode, subtotal); err != nil {
			return nil, err
		}
	}
	return s.prepared(exp, slot, qty, promo), nil
}

func (s *CheckoutService) prepared(exp *model.Experience, slot *model.Slot, qty int, promo *model.PromoValidation) *PreparedCheckout {
	day, _ := pricing.NormalizeDate(slot.Date)
	return &PreparedCheckout{
		CheckoutSelection: CheckoutSelection{ExperienceID: exp.ID, SlotID: slot.ID, Quantity: qty},
		ExperienceTitle:   exp.Title,
		Location:          exp.Location,
		Date:              day,
		Time:              slot.Time,
		Quote:             s.calc.Quote(exp.Price, qty, slot, promo),
	}
}

// resolve loads the experience and slot for sel and checks the seat count
// against the slot's current availability.  A quantity below one is raised
// to one.
func (s *CheckoutService) resolve(ctx context.Context, sel CheckoutSelection) (*model.Experience, *model.Slot, int, error) {
	if strings.TrimSpace(sel.SlotID) == "" {
		return nil, nil, 0, ErrSlotRequired
	}
	exp, err := s.fetchExperience(ctx, sel.ExperienceID)
	if err != nil {
		return nil, nil, 0, err
	}
	slot := exp.FindSlot(sel.SlotID)
	if slot == nil {
		return nil, nil, 0, ErrSlotNotFound
	}
	available := pricing.ComputeAvailability(slot)
	if available == 0 {
		return nil, nil, 0, ErrSoldOut
	}
	qty := max(sel.Quantity, 1)
	if qty > available {
		return nil, nil, 0, &InsufficientSeatsError{Available: available}
	}
	return exp, slot, qty, nil
}

func (s *CheckoutService) fetchExperience(ctx context.Context, id string) (*model.Experience, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrExperienceRequired
	}
	exp, err := s.catalog.GetExperience(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrExperienceNotFound, id)
		}
		return nil, err
	}
	return exp, nil
}

func validateCustomer(c model.Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@"):], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// SubmitBooking validates sub, sends it to the booking service and records
// the confirmation.  Customer fields and the selection are checked before
// any request is made.  Failing to record or announce the booking is logged
// and does not fail the call; the booking already exists upstream.
func (s *CheckoutService) SubmitBooking(ctx context.Context, sub CheckoutSubmission) (*model.Confirmation, error) {
	if err := validateCustomer(sub.Customer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.SlotID) == "" {
		return nil, ErrSlotRequired
	}
	if sub.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	exp, slot, qty, err := s.resolve(ctx, sub.CheckoutSelection)
	if err != nil {
		return nil, err
	}

	req := model.BookingRequest{
		ExperienceID: exp.ID,
		SlotID:       slot.ID,
		User: model.Customer{
			Name:  strings.TrimSpace(sub.Customer.Name),
			Email: strings.TrimSpace(sub.Customer.Email),
			Phone: strings.TrimSpace(sub.Customer.Phone),
		},
		PromoCode: strings.TrimSpace(sub.PromoCode),
		Quantity:  qty,
	}
	receipt, err := s.catalog.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	conf := s.confirmation(exp, slot, req, receipt.Booking)
	s.record(ctx, conf)
	return conf, nil
}

func (s *CheckoutService) confirmation(exp *model.Experience, slot *model.Slot, req model.BookingRequest, b model.Booking) *model.Confirmation {
	c := &model.Confirmation{
		ReferenceID:     b.ReferenceID,
		CustomerName:    req.User.Name,
		CustomerEmail:   req.User.Email,
		ExperienceID:    exp.ID,
		ExperienceTitle: b.ExperienceTitle,
		SlotID:          slot.ID,
		Date:            b.Date,
		Time:            b.Time,
		Quantity:        req.Quantity,
		Total:           b.Total,
		PromoCode:       req.PromoCode,
		CreatedAt:       s.now(),
	}
	// The booking service echoes these back; fall back to what we sent.
	if c.ExperienceTitle == "" {
		c.ExperienceTitle = exp.Title
	}
	if c.Date == "" {
		c.Date, _ = pricing.NormalizeDate(slot.Date)
	}
	if c.Time == "" {
		c.Time = slot.Time
	}
	return c
}

func (s *CheckoutService) record(ctx context.Context, c *model.Confirmation) {
	if s.store != nil {
		if err := s.store.Save(ctx, c); err != nil {
			log.Printf("checkout: could not record confirmation %s: %v", c.ReferenceID, err)
		}
	}
	if s.events != nil {
		ev := queue.BookingConfirmedEvent{
			ReferenceID:     c.ReferenceID,
			ExperienceID:    c.ExperienceID,
			ExperienceTitle: c.ExperienceTitle,
			SlotID:          c.SlotID,
			Date:            c.Date,
			Time:            c.Time,
			Quantity:        c.Quantity,
			CustomerEmail:   c.CustomerEmail,
			PromoCode:       c.PromoCode,
			Total:           c.Total,
			ConfirmedAt:     c.CreatedAt.Format(time.RFC3339),
		}
		if err := s.events.PublishBookingConfirmed(ctx, ev); err != nil {
			log.Printf("checkout: could not publish booking %s: %v", c.ReferenceID, err)
		}
	}
}

// GetConfirmation returns the recorded confirmation for referenceID.
func (s *CheckoutService) GetConfirmation(ctx context.Context, referenceID string) (*model.Confirmation, error) {
	referenceID = strings.TrimSpace(referenceID)
	if referenceID == "" || s.store == nil {
		return nil, repository.ErrConfirmationNotFound
	}
	c, err := s.store.FindByReference(ctx, referenceID)
	if err != nil {
		if errors.Is(err, repository.ErrConfirmationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find confirmation: %w", err)
	}
	return c, nil
}
