package main

import (
	"context"
	"fmt"
	"log"

	"github.com/manpreet1462/bookit/internal/config"
	"github.com/manpreet1462/bookit/internal/database"
	"github.com/manpreet1462/bookit/internal/handler"
	"github.com/manpreet1462/bookit/internal/repository"
)

// ledger is the selected confirmation store plus what it takes to check
// and release it.
type ledger struct {
	store repository.ConfirmationStore
	ping  handler.Pinger
	close func()
}

// openLedger opens the backend named by cfg.LedgerDriver and makes sure its
// schema exists.
func openLedger(ctx context.Context, cfg config.Config) (*ledger, error) {
	switch cfg.LedgerDriver {
	case config.LedgerMySQL:
		db, err := database.OpenMySQL(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMySQLConfirmationRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("mysql schema: %w", err)
		}
		return &ledger{store: repo, ping: db.PingContext, close: func() { _ = db.Close() }}, nil

	case config.LedgerPostgres:
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresConfirmationRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return &ledger{store: repo, ping: pool.Ping, close: pool.Close}, nil

	case config.LedgerBadger:
		db, err := database.OpenBadger(cfg.BadgerDir)
		if err != nil {
			return nil, err
		}
		if cfg.BadgerDir == "" {
			log.Printf("ledger: badger running in memory, confirmations are lost on restart")
		}
		return &ledger{
			store: repository.NewBadgerConfirmationRepo(db),
			close: func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown LEDGER_DRIVER %q", cfg.LedgerDriver)
}
