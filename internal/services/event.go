package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventlisting/internal/domain"
	"eventlisting/internal/eventquery"
)

type eventService struct {
	tx             domain.TxRunner
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService creates an EventService. Writes go through tx so an organizer and its event
// are stored together; reads use eventRepo directly.
func NewEventService(tx domain.TxRunner, eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		tx:             tx,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in *domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in == nil {
		return nil, domain.NewValidationError("event body is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Event
	err := s.inTx(ctx, func(stores domain.StoreProvider) error {
		org, err := stores.Organizers().FindOrCreateByName(ctx, strings.TrimSpace(in.Organizer.Name), in.Organizer.Image)
		if err != nil {
			return fmt.Errorf("resolve organizer: %w", err)
		}
		now := s.now()
		event := domain.NewEvent(in, org.ID, now, now)
		if err := stores.Events().Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		event.Organizer = org
		created = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// inTx runs fn in a transaction, retrying once when a concurrent writer created the same
// organizer between our lookup and insert.
func (s *eventService) inTx(ctx context.Context, fn func(stores domain.StoreProvider) error) error {
	err := s.tx.WithTx(ctx, fn)
	if errors.Is(err, domain.ErrConflict) {
		err = s.tx.WithTx(ctx, fn)
	}
	return err
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventListFilter, category string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return eventquery.ByCategory(events, category), nil
}

func (s *eventService) ListPublicEvents(ctx context.Context, q domain.PublicEventQuery) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, domain.EventListFilter{PublishedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}
	return eventquery.Public(events, q), nil
}

func (s *eventService) GetPublicEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.IsPublished {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) ListAdminEvents(ctx context.Context, q domain.AdminEventQuery) ([]*domain.AdminEvent, error) {
	tab, err := eventquery.ParseTab(q.Tab)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, domain.EventListFilter{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	now := s.now()
	return eventquery.WithStatus(eventquery.Admin(events, tab, strings.TrimSpace(q.Search), now), now), nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id string, in *domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in == nil {
		return nil, domain.NewValidationError("event body is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.inTx(ctx, func(stores domain.StoreProvider) error {
		event, err := stores.Events().GetByID(ctx, id)
		if err != nil {
			return err
		}
		org, err := stores.Organizers().FindOrCreateByName(ctx, strings.TrimSpace(in.Organizer.Name), in.Organizer.Image)
		if err != nil {
			return fmt.Errorf("resolve organizer: %w", err)
		}
		event.Apply(in)
		if event.Capacity < event.Attendees {
			return domain.NewValidationError(fmt.Sprintf("capacity must be at least the %d tickets already sold", event.Attendees))
		}
		event.OrganizerID = org.ID
		event.UpdatedAt = s.now()
		if err := stores.Events().Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		event.Organizer = org
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
