// Package repository persists booking confirmations.  The booking service
// owns the booking itself; this ledger only keeps the receipt it returned so
// the confirmation view can be rendered again from the reference id.  Three
// interchangeable backends exist: MySQL, Postgres and an embedded badger
// store for local development.
package repository

import (
	"context"
	"strings"

	"github.com/manpreet1462/bookit/internal/model"
)

// ConfirmationStore is implemented by every ledger backend.
type ConfirmationStore interface {
	Save(ctx context.Context, c *model.Confirmation) error
	FindByReference(ctx context.Context, referenceID string) (*model.Confirmation, error)
}

func checkConfirmation(c *model.Confirmation) error {
	if c == nil || strings.TrimSpace(c.ReferenceID) == "" {
		return ErrMissingReference
	}
	return nil
}
