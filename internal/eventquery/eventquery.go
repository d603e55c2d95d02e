// Package eventquery filters and orders already-fetched events for the public site and the admin dashboard.
// Everything here is pure: no I/O, and input slices are never reordered in place.
package eventquery

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"eventlisting/internal/domain"
)

// Tab is an admin dashboard tab.
type Tab string

const (
	TabAll      Tab = "all"
	TabUpcoming Tab = "upcoming"
	TabPast     Tab = "past"
	TabDraft    Tab = "draft"
)

// ParseTab returns the tab named by s. An empty string selects TabAll.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TabAll, nil
	case TabAll, TabUpcoming, TabPast, TabDraft:
		return t, nil
	default:
		return "", domain.NewValidationError(fmt.Sprintf("unknown tab %q", s))
	}
}

// SortByStart returns a copy of events ordered by start date ascending.
// Events with equal start dates keep their relative order.
func SortByStart(events []*domain.Event) []*domain.Event {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b *domain.Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out
}

// Public returns the published events matching q, ordered by start date.
func Public(events []*domain.Event, q domain.PublicEventQuery) []*domain.Event {
	category := strings.TrimSpace(q.Category)
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if !e.IsPublished {
			continue
		}
		if category != "" && !e.Category.Matches(category) {
			continue
		}
		if q.FeaturedOnly && !e.IsFeatured {
			continue
		}
		out = append(out, e)
	}
	return SortByStart(out)
}

// ByCategory returns the events whose category matches category case-insensitively.
// An empty category keeps every event. Order is preserved.
func ByCategory(events []*domain.Event, category string) []*domain.Event {
	category = strings.TrimSpace(category)
	if category == "" {
		return slices.Clone(events)
	}
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if e.Category.Matches(category) {
			out = append(out, e)
		}
	}
	return out
}

// Admin returns the events shown under tab whose title contains search, ordered by start date.
func Admin(events []*domain.Event, tab Tab, search string, now time.Time) []*domain.Event {
	needle := strings.ToLower(search)
	out := make([]*domain.Event, 0, len(events))
	for _, e := range events {
		if needle != "" && !strings.Contains(strings.ToLower(e.Title), needle) {
			continue
		}
		if !InTab(e, tab, now) {
			continue
		}
		out = append(out, e)
	}
	return SortByStart(out)
}

// InTab reports whether e belongs under tab at time now.
// An event starting exactly at now is neither upcoming nor past.
func InTab(e *domain.Event, tab Tab, now time.Time) bool {
	switch tab {
	case TabUpcoming:
		return e.IsPublished && e.StartDate.After(now)
	case TabPast:
		return e.IsPublished && e.StartDate.Before(now)
	case TabDraft:
		return !e.IsPublished
	default:
		return true
	}
}

// StatusOf derives the admin status label for e.
func StatusOf(e *domain.Event, now time.Time) domain.EventStatus {
	switch {
	case !e.IsPublished:
		return domain.EventStatusDraft
	case e.StartDate.After(now):
		return domain.EventStatusUpcoming
	default:
		return domain.EventStatusPast
	}
}

// WithStatus pairs each event with its status label.
func WithStatus(events []*domain.Event, now time.Time) []*domain.AdminEvent {
	out := make([]*domain.AdminEvent, 0, len(events))
	for _, e := range events {
		out = append(out, &domain.AdminEvent{Event: e, Status: StatusOf(e, now)})
	}
	return out
}
