package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/manpreet1462/bookit/internal/model"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

const pgConfirmationsDDL = `CREATE TABLE IF NOT EXISTS confirmations (
    reference_id     TEXT        PRIMARY KEY,
    customer_name    TEXT        NOT NULL,
    customer_email   TEXT        NOT NULL,
    experience_id    TEXT        NOT NULL,
    experience_title TEXT        NOT NULL,
    slot_id          TEXT        NOT NULL,
    slot_date        TEXT        NOT NULL,
    slot_time        TEXT        NOT NULL,
    quantity         INTEGER     NOT NULL,
    total            INTEGER     NOT NULL,
    promo_code       TEXT        NULL,
    created_at       TIMESTAMPTZ NOT NULL
)`

// PostgresConfirmationRepo stores confirmations in Postgres through pgx.
type PostgresConfirmationRepo struct {
	db *pgxpool.Pool
}

// NewPostgresConfirmationRepo constructs a PostgresConfirmationRepo.
func NewPostgresConfirmationRepo(db *pgxpool.Pool) *PostgresConfirmationRepo {
	return &PostgresConfirmationRepo{db: db}
}

// EnsureSchema creates the confirmations table when it is missing.
func (r *PostgresConfirmationRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, pgConfirmationsDDL); err != nil {
		return fmt.Errorf("create confirmations table: %w", err)
	}
	return nil
}

// Save inserts a confirmation.  A reused reference id yields ErrDuplicateReference.
func (r *PostgresConfirmationRepo) Save(ctx context.Context, c *model.Confirmation) error {
	if err := checkConfirmation(c); err != nil {
		return err
	}
	var promo *string
	if c.PromoCode != "" {
		promo = &c.PromoCode
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO confirmations
		 (reference_id, customer_name, customer_email, experience_id, experience_title,
		  slot_id, slot_date, slot_time, quantity, total, promo_code, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ReferenceID, c.CustomerName, c.CustomerEmail, c.ExperienceID, c.ExperienceTitle,
		c.SlotID, c.Date, c.Time, c.Quantity, c.Total, promo, c.CreatedAt.UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateReference
		}
		return fmt.Errorf("insert confirmation: %w", err)
	}
	return nil
}

// FindByReference loads a confirmation or returns ErrConfirmationNotFound.
func (r *PostgresConfirmationRepo) FindByReference(ctx context.Context, referenceID string) (*model.Confirmation, error) {
	var (
		c     model.Confirmation
		promo *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT reference_id, customer_name, customer_email, experience_id, experience_title,
		        slot_id, slot_date, slot_time, quantity, total, promo_code, created_at
		 FROM confirmations WHERE reference_id = $1`,
		referenceID,
	).Scan(
		&c.ReferenceID, &c.CustomerName, &c.CustomerEmail, &c.ExperienceID, &c.ExperienceTitle,
		&c.SlotID, &c.Date, &c.Time, &c.Quantity, &c.Total, &promo, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConfirmationNotFound
		}
		return nil, fmt.Errorf("get confirmation: %w", err)
	}
	if promo != nil {
		c.PromoCode = *promo
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
