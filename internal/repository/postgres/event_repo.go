package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventlisting/internal/domain"
)

type eventRepository struct {
	DB DBTX
}

func NewEventRepository(db DBTX) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventSelect = `
	SELECT e.id, e.title, e.description, e.content, e.image, e.category, e.location,
	       e.start_date, e.end_date, e.price, e.capacity, e.attendees, e.is_featured, e.is_published,
	       e.organizer_id, e.created_at, e.updated_at,
	       o.id, o.name, o.image, o.created_at, o.updated_at
	FROM events e
	JOIN organizers o ON o.id = e.organizer_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{Organizer: &domain.Organizer{}}
	var contentNull, imageNull, orgImageNull sql.NullString
	var endNull sql.NullTime
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &contentNull, &imageNull, &e.Category, &e.Location,
		&e.StartDate, &endNull, &e.Price, &e.Capacity, &e.Attendees, &e.IsFeatured, &e.IsPublished,
		&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		&e.Organizer.ID, &e.Organizer.Name, &orgImageNull, &e.Organizer.CreatedAt, &e.Organizer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Content = stringPtr(contentNull)
	e.Image = stringPtr(imageNull)
	e.Organizer.Image = stringPtr(orgImageNull)
	if endNull.Valid {
		e.EndDate = &endNull.Time
	}
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, content, image, category, location, start_date, end_date,
		                    price, capacity, is_featured, is_published, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, attendees
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, nullString(e.Content), nullString(e.Image), string(e.Category), e.Location,
		e.StartDate, nullTime(e.EndDate), e.Price, e.Capacity, e.IsFeatured, e.IsPublished,
		e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID, &e.Attendees)
	return mapError("insert event", err)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+`WHERE e.id = $1`, id))
	if err != nil {
		return nil, mapError("get event", err)
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventListFilter) ([]*domain.Event, error) {
	query := eventSelect
	if filter.PublishedOnly {
		query += `WHERE e.is_published = TRUE
	`
	}
	query += `ORDER BY e.start_date ASC, e.seq ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list events", err)
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, mapError("scan event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list events", err)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET title = $1, description = $2, content = $3, image = $4, category = $5, location = $6,
		       start_date = $7, end_date = $8, price = $9, capacity = $10, is_featured = $11, is_published = $12,
		       organizer_id = $13, updated_at = $14
		WHERE id = $15
		RETURNING attendees, created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, nullString(e.Content), nullString(e.Image), string(e.Category), e.Location,
		e.StartDate, nullTime(e.EndDate), e.Price, e.Capacity, e.IsFeatured, e.IsPublished,
		e.OrganizerID, e.UpdatedAt, e.ID,
	).Scan(&e.Attendees, &e.CreatedAt)
	return mapError("update event", err)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return mapError("delete event", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) AddAttendees(ctx context.Context, id string, tickets int) (*domain.Event, error) {
	var updatedID string
	err := r.DB.QueryRowContext(ctx, `
		UPDATE events SET attendees = attendees + $2, updated_at = $3
		WHERE id = $1 AND is_published = TRUE AND attendees + $2 <= capacity
		RETURNING id
	`, id, tickets, time.Now()).Scan(&updatedID)
	if errors.Is(err, sql.ErrNoRows) {
		// Nothing updated: either the event is not open for registration or it is full.
		var published bool
		err := r.DB.QueryRowContext(ctx, `SELECT is_published FROM events WHERE id = $1`, id).Scan(&published)
		if err != nil {
			return nil, mapError("get event", err)
		}
		if !published {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrCapacityExceeded
	}
	if err != nil {
		return nil, mapError("add attendees", err)
	}
	return r.GetByID(ctx, updatedID)
}
