package database

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// OpenBadger opens an embedded Badger store in dir.  An empty dir keeps the
// data in memory, which is what local runs and tests use.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}
