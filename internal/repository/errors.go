package repository

import "errors"

// Sentinel errors shared by every ledger backend.  Handlers and the
// checkout service match them with errors.Is.

// ErrConfirmationNotFound is returned when no confirmation matches a
// reference id.  Handlers translate it into a 404.
var ErrConfirmationNotFound = errors.New("confirmation not found")

// ErrDuplicateReference is returned when a reference id is already
// recorded.  The booking service issues unique ids, so this means the same
// receipt was saved twice.
var ErrDuplicateReference = errors.New("confirmation already recorded")

// ErrMissingReference rejects confirmations without a reference id.
var ErrMissingReference = errors.New("confirmation reference id is required")
