package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlisting/internal/domain"
)

type organizerRepository struct {
	DB DBTX
}

// NewOrganizerRepository returns a domain.OrganizerRepository implemented with Postgres.
func NewOrganizerRepository(db DBTX) domain.OrganizerRepository {
	return &organizerRepository{DB: db}
}

const organizerColumns = `id, name, image, created_at, updated_at`

// FindOrCreateByName relies on the unique index on organizers.name. When a concurrent caller wins
// the insert, ON CONFLICT DO NOTHING returns no row and the lookup is retried.
func (r *organizerRepository) FindOrCreateByName(ctx context.Context, name string, image *string) (*domain.Organizer, error) {
	o, err := r.getByName(ctx, name)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	o = &domain.Organizer{}
	var imageNull sql.NullString
	err = r.DB.QueryRowContext(ctx,
		`INSERT INTO organizers (name, image) VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING `+organizerColumns,
		name, nullString(image),
	).Scan(&o.ID, &o.Name, &imageNull, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r.getByName(ctx, name)
	}
	if err != nil {
		return nil, mapError("insert organizer", err)
	}
	o.Image = stringPtr(imageNull)
	return o, nil
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	return r.getOne(ctx, "get organizer", `SELECT `+organizerColumns+` FROM organizers WHERE id = $1`, id)
}

func (r *organizerRepository) getByName(ctx context.Context, name string) (*domain.Organizer, error) {
	return r.getOne(ctx, "get organizer by name", `SELECT `+organizerColumns+` FROM organizers WHERE name = $1`, name)
}

func (r *organizerRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.Organizer, error) {
	o := &domain.Organizer{}
	var imageNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&o.ID, &o.Name, &imageNull, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, mapError(op, err)
	}
	o.Image = stringPtr(imageNull)
	return o, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
