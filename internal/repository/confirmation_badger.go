package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manpreet1462/bookit/internal/model"
)

const badgerKeyPrefix = "confirmation:"

// BadgerConfirmationRepo keeps confirmations as JSON values in an embedded
// badger store, keyed by reference id.
type BadgerConfirmationRepo struct {
	db *badger.DB
}

// NewBadgerConfirmationRepo constructs a BadgerConfirmationRepo.
func NewBadgerConfirmationRepo(db *badger.DB) *BadgerConfirmationRepo {
	return &BadgerConfirmationRepo{db: db}
}

func badgerKey(referenceID string) []byte {
	return []byte(badgerKeyPrefix + referenceID)
}

// Save stores a confirmation.  A reused reference id yields ErrDuplicateReference.
func (r *BadgerConfirmationRepo) Save(_ context.Context, c *model.Confirmation) error {
	if err := checkConfirmation(c); err != nil {
		return err
	}
	val, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	key := badgerKey(c.ReferenceID)
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicateReference
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, val)
	})
}

// FindByReference loads a confirmation or returns ErrConfirmationNotFound.
func (r *BadgerConfirmationRepo) FindByReference(_ context.Context, referenceID string) (*model.Confirmation, error) {
	var c model.Confirmation
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(referenceID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &c)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get confirmation: %w", err)
	}
	return &c, nil
}
