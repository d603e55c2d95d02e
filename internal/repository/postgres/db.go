package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventlisting/internal/domain"

	"github.com/lib/pq"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
	pqNumericOutOfRange   = "22003"
	pqInvalidTextRepr     = "22P02"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories work inside and outside transactions.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

type stores struct {
	db DBTX
}

// NewStores returns a StoreProvider whose repositories run against db.
func NewStores(db DBTX) domain.StoreProvider {
	return &stores{db: db}
}

func (s *stores) Organizers() domain.OrganizerRepository { return NewOrganizerRepository(s.db) }
func (s *stores) Events() domain.EventRepository         { return NewEventRepository(s.db) }

type txRunner struct {
	db *sql.DB
}

// NewTxRunner builds a TxRunner backed by db.
func NewTxRunner(db *sql.DB) domain.TxRunner {
	return &txRunner{db: db}
}

// WithTx executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise it is committed.
func (r *txRunner) WithTx(ctx context.Context, fn func(stores domain.StoreProvider) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	if err := fn(NewStores(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v; original error: %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "commit transaction", Err: err}
	}
	return nil
}

// mapError translates driver errors into domain errors. Unknown failures become PersistenceErrors.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var perr *pq.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: organizer %w", op, domain.ErrNotFound)
		case pqCheckViolation:
			return domain.NewValidationError(fmt.Sprintf("constraint %s violated", perr.Constraint))
		case pqNumericOutOfRange:
			return domain.NewValidationError("numeric value out of range")
		case pqInvalidTextRepr:
			return domain.ErrNotFound
		}
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
