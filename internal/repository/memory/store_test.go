package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventlisting/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newEvent(title, organizerID string, startDate time.Time, published bool) *domain.Event {
	return &domain.Event{
		Title:       title,
		Description: "desc",
		Category:    domain.CategoryMeetup,
		Location:    "Berlin",
		StartDate:   startDate,
		Capacity:    10,
		IsPublished: published,
		OrganizerID: organizerID,
	}
}

func TestOrganizers_FindOrCreateByNameIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	logo := "a.png"
	other := "b.png"

	first, err := s.Organizers().FindOrCreateByName(ctx, "Acme", &logo)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := s.Organizers().FindOrCreateByName(ctx, "Acme", &other)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Image)
	assert.Equal(t, "a.png", *second.Image, "existing organizer is not updated")
	assert.Len(t, s.st.organizers, 1)
}

func TestOrganizers_ConcurrentFindOrCreateYieldsOneOrganizer(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const workers = 32
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := s.Organizers().FindOrCreateByName(ctx, "Acme", nil)
			if err == nil {
				ids[i] = o.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, s.st.organizers, 1)
}

func TestEvents_CreateRequiresOrganizer(t *testing.T) {
	s := NewStore()
	err := s.Events().Create(context.Background(), newEvent("x", "missing", start, true))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEvents_RoundTripAndOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	org, err := s.Organizers().FindOrCreateByName(ctx, "Acme", nil)
	require.NoError(t, err)

	later := newEvent("Later", org.ID, start.Add(time.Hour), true)
	a := newEvent("A", org.ID, start, true)
	b := newEvent("B", org.ID, start, true)
	draft := newEvent("Draft", org.ID, start.Add(-time.Hour), false)
	for _, e := range []*domain.Event{later, a, b, draft} {
		require.NoError(t, s.Events().Create(ctx, e))
		require.NotEmpty(t, e.ID)
	}

	published, err := s.Events().List(ctx, domain.EventListFilter{PublishedOnly: true})
	require.NoError(t, err)
	require.Len(t, published, 3)
	assert.Equal(t, []string{"A", "B", "Later"}, []string{published[0].Title, published[1].Title, published[2].Title})
	require.NotNil(t, published[0].Organizer)
	assert.Equal(t, "Acme", published[0].Organizer.Name)

	all, err := s.Events().List(ctx, domain.EventListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Draft", all[0].Title)

	got, err := s.Events().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)
	assert.Equal(t, a.StartDate, got.StartDate)
}

func TestEvents_ReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	org, _ := s.Organizers().FindOrCreateByName(ctx, "Acme", nil)
	e := newEvent("Original", org.ID, start, true)
	require.NoError(t, s.Events().Create(ctx, e))

	e.Title = "Mutated by caller"
	got, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)
}

func TestEvents_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	org, _ := s.Organizers().FindOrCreateByName(ctx, "Acme", nil)
	e := newEvent("Original", org.ID, start, true)
	require.NoError(t, s.Events().Create(ctx, e))
	_, err := s.Events().AddAttendees(ctx, e.ID, 4)
	require.NoError(t, err)

	upd := *e
	upd.Title = "Renamed"
	upd.Capacity = 3
	err = s.Events().Update(ctx, &upd)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "capacity below attendees is rejected")

	upd.Capacity = 20
	require.NoError(t, s.Events().Update(ctx, &upd))
	assert.Equal(t, 4, upd.Attendees)

	require.NoError(t, s.Events().Delete(ctx, e.ID))
	_, err = s.Events().GetByID(ctx, e.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.Events().Delete(ctx, e.ID), domain.ErrNotFound)
}

func TestEvents_AddAttendees(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	org, _ := s.Organizers().FindOrCreateByName(ctx, "Acme", nil)
	open := newEvent("Open", org.ID, start, true)
	draft := newEvent("Draft", org.ID, start, false)
	require.NoError(t, s.Events().Create(ctx, open))
	require.NoError(t, s.Events().Create(ctx, draft))

	got, err := s.Events().AddAttendees(ctx, open.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Attendees)

	_, err = s.Events().AddAttendees(ctx, open.ID, 1)
	require.ErrorIs(t, err, domain.ErrCapacityExceeded)

	_, err = s.Events().AddAttendees(ctx, draft.ID, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(stores domain.StoreProvider) error {
		if _, err := stores.Organizers().FindOrCreateByName(ctx, "Ghost", nil); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, s.st.organizers)

	err = s.WithTx(ctx, func(stores domain.StoreProvider) error {
		org, err := stores.Organizers().FindOrCreateByName(ctx, "Acme", nil)
		if err != nil {
			return err
		}
		return stores.Events().Create(ctx, newEvent("Kept", org.ID, start, true))
	})
	require.NoError(t, err)
	events, err := s.Events().List(ctx, domain.EventListFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Acme", events[0].Organizer.Name)
}
