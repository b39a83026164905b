package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/manpreet1462/bookit/internal/model"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const mysqlConfirmationsDDL = `CREATE TABLE IF NOT EXISTS confirmations (
    reference_id     VARCHAR(64)  NOT NULL PRIMARY KEY,
    customer_name    VARCHAR(255) NOT NULL,
    customer_email   VARCHAR(255) NOT NULL,
    experience_id    VARCHAR(64)  NOT NULL,
    experience_title VARCHAR(255) NOT NULL,
    slot_id          VARCHAR(64)  NOT NULL,
    slot_date        VARCHAR(32)  NOT NULL,
    slot_time        VARCHAR(32)  NOT NULL,
    quantity         INT          NOT NULL,
    total            INT          NOT NULL,
    promo_code       VARCHAR(64)  NULL,
    created_at       DATETIME     NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQLConfirmationRepo stores confirmations in MySQL.
type MySQLConfirmationRepo struct {
	db *sql.DB
}

// NewMySQLConfirmationRepo wraps an open *sql.DB using the mysql driver.
func NewMySQLConfirmationRepo(db *sql.DB) *MySQLConfirmationRepo {
	return &MySQLConfirmationRepo{db: db}
}

// EnsureSchema creates the confirmations table when it is missing.
func (r *MySQLConfirmationRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, mysqlConfirmationsDDL); err != nil {
		return fmt.Errorf("create confirmations table: %w", err)
	}
	return nil
}

// Save inserts a confirmation.  A reused reference id yields ErrDuplicateReference.
func (r *MySQLConfirmationRepo) Save(ctx context.Context, c *model.Confirmation) error {
	if err := checkConfirmation(c); err != nil {
		return err
	}
	const q = `INSERT INTO confirmations
        (reference_id, customer_name, customer_email, experience_id, experience_title,
         slot_id, slot_date, slot_time, quantity, total, promo_code, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		c.ReferenceID, c.CustomerName, c.CustomerEmail, c.ExperienceID, c.ExperienceTitle,
		c.SlotID, c.Date, c.Time, c.Quantity, c.Total, nullString(c.PromoCode), c.CreatedAt.UTC())
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateReference
		}
		return fmt.Errorf("insert confirmation: %w", err)
	}
	return nil
}

// FindByReference loads a confirmation or returns ErrConfirmationNotFound.
func (r *MySQLConfirmationRepo) FindByReference(ctx context.Context, referenceID string) (*model.Confirmation, error) {
	const q = `SELECT reference_id, customer_name, customer_email, experience_id, experience_title,
        slot_id, slot_date, slot_time, quantity, total, promo_code, created_at
        FROM confirmations WHERE reference_id = ? LIMIT 1`
	var (
		c     model.Confirmation
		promo sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, referenceID).Scan(
		&c.ReferenceID, &c.CustomerName, &c.CustomerEmail, &c.ExperienceID, &c.ExperienceTitle,
		&c.SlotID, &c.Date, &c.Time, &c.Quantity, &c.Total, &promo, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfirmationNotFound
		}
		return nil, fmt.Errorf("get confirmation: %w", err)
	}
	c.PromoCode = promo.String
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
