// Package memory holds in-process implementations of the event and organizer repositories.
// It backs STORE_DRIVER=memory for local runs and demos; data is lost on restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"eventlisting/internal/domain"

	"github.com/google/uuid"
)

type state struct {
	organizers map[string]*domain.Organizer
	orgByName  map[string]string
	// events holds rows in insertion order, which breaks start-date ties.
	events []*domain.Event
}

func newState() *state {
	return &state{
		organizers: make(map[string]*domain.Organizer),
		orgByName:  make(map[string]string),
	}
}

func (s *state) clone() *state {
	c := &state{
		organizers: make(map[string]*domain.Organizer, len(s.organizers)),
		orgByName:  make(map[string]string, len(s.orgByName)),
		events:     make([]*domain.Event, 0, len(s.events)),
	}
	for id, o := range s.organizers {
		cp := *o
		c.organizers[id] = &cp
	}
	for name, id := range s.orgByName {
		c.orgByName[name] = id
	}
	for _, e := range s.events {
		cp := *e
		c.events = append(c.events, &cp)
	}
	return c
}

// Store is a mutex-guarded in-memory database. Transactions work on a copy that replaces the
// live state only when the transaction function succeeds.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Organizers returns a repository that locks the store for every call.
func (s *Store) Organizers() domain.OrganizerRepository {
	return &organizerRepository{store: s}
}

// Events returns a repository that locks the store for every call.
func (s *Store) Events() domain.EventRepository {
	return &eventRepository{store: s}
}

// WithTx runs fn against a private copy of the data and publishes it if fn succeeds.
// Transactions are serialized with every other store operation.
func (s *Store) WithTx(ctx context.Context, fn func(stores domain.StoreProvider) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(&txStores{store: s, st: work}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// view runs fn with the state a repository should see: the transaction copy when tx is set,
// otherwise the live state under the store lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txStores struct {
	store *Store
	st    *state
}

func (t *txStores) Organizers() domain.OrganizerRepository {
	return &organizerRepository{store: t.store, tx: t.st}
}

func (t *txStores) Events() domain.EventRepository {
	return &eventRepository{store: t.store, tx: t.st}
}

type organizerRepository struct {
	store *Store
	tx    *state
}

func (r *organizerRepository) FindOrCreateByName(ctx context.Context, name string, image *string) (*domain.Organizer, error) {
	var out domain.Organizer
	err := r.store.view(r.tx, func(st *state) error {
		if id, ok := st.orgByName[name]; ok {
			out = *st.organizers[id]
			return nil
		}
		now := r.store.now()
		o := &domain.Organizer{ID: uuid.NewString(), Name: name, Image: image, CreatedAt: now, UpdatedAt: now}
		st.organizers[o.ID] = o
		st.orgByName[name] = o.ID
		out = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	var out domain.Organizer
	err := r.store.view(r.tx, func(st *state) error {
		o, ok := st.organizers[id]
		if !ok {
			return domain.ErrNotFound
		}
		out = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type eventRepository struct {
	store *Store
	tx    *state
}

// withOrganizer returns a copy of e joined with its organizer.
func withOrganizer(st *state, e *domain.Event) *domain.Event {
	cp := *e
	if o, ok := st.organizers[e.OrganizerID]; ok {
		oc := *o
		cp.Organizer = &oc
	}
	return &cp
}

func indexOf(st *state, id string) int {
	return slices.IndexFunc(st.events, func(e *domain.Event) bool { return e.ID == id })
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	return r.store.view(r.tx, func(st *state) error {
		if _, ok := st.organizers[e.OrganizerID]; !ok {
			return domain.ErrNotFound
		}
		e.ID = uuid.NewString()
		e.Attendees = 0
		cp := *e
		cp.Organizer = nil
		st.events = append(st.events, &cp)
		return nil
	})
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var out *domain.Event
	err := r.store.view(r.tx, func(st *state) error {
		i := indexOf(st, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		out = withOrganizer(st, st.events[i])
		return nil
	})
	return out, err
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventListFilter) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0)
	err := r.store.view(r.tx, func(st *state) error {
		for _, e := range st.events {
			if filter.PublishedOnly && !e.IsPublished {
				continue
			}
			out = append(out, withOrganizer(st, e))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b *domain.Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	return r.store.view(r.tx, func(st *state) error {
		i := indexOf(st, e.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		if _, ok := st.organizers[e.OrganizerID]; !ok {
			return domain.ErrNotFound
		}
		cur := st.events[i]
		if e.Capacity < cur.Attendees {
			return domain.NewValidationError("capacity must not be below the current attendee count")
		}
		e.Attendees = cur.Attendees
		e.CreatedAt = cur.CreatedAt
		cp := *e
		cp.Organizer = nil
		st.events[i] = &cp
		return nil
	})
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.store.view(r.tx, func(st *state) error {
		i := indexOf(st, id)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.events = slices.Delete(st.events, i, i+1)
		return nil
	})
}

func (r *eventRepository) AddAttendees(ctx context.Context, id string, tickets int) (*domain.Event, error) {
	var out *domain.Event
	err := r.store.view(r.tx, func(st *state) error {
		i := indexOf(st, id)
		if i < 0 || !st.events[i].IsPublished {
			return domain.ErrNotFound
		}
		e := st.events[i]
		if e.Attendees+tickets > e.Capacity {
			return domain.ErrCapacityExceeded
		}
		e.Attendees += tickets
		e.UpdatedAt = r.store.now()
		out = withOrganizer(st, e)
		return nil
	})
	return out, err
}
