package domain

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// Event is a listed event owned by exactly one organizer.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Content     *string    `json:"content"`
	Image       *string    `json:"image"`
	Category    Category   `json:"category"`
	Location    string     `json:"location"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Price       float64    `json:"price"`
	Capacity    int        `json:"capacity"`
	Attendees   int        `json:"attendees"`
	IsFeatured  bool       `json:"isFeatured"`
	IsPublished bool       `json:"isPublished"`
	OrganizerID string     `json:"organizerId"`
	Organizer   *Organizer `json:"organizer,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsFree reports whether the event has no ticket price.
func (e *Event) IsFree() bool {
	return e.Price == 0
}

// SpotsLeft returns how many more attendees fit.
func (e *Event) SpotsLeft() int {
	if e.Attendees >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Attendees
}

// Storage limits of the events table: price is NUMERIC(10, 2), capacity is INTEGER.
const (
	MaxPrice    = 99999999.99
	MaxCapacity = math.MaxInt32
)

// EventInput carries the caller-supplied fields for creating or replacing an event.
type EventInput struct {
	Title       string
	Description string
	Content     *string
	Image       *string
	Category    string
	Location    string
	StartDate   time.Time
	EndDate     *time.Time
	Price       float64
	Capacity    int
	IsFeatured  bool
	IsPublished bool
	Organizer   OrganizerInput
}

// Validate checks required fields and value ranges. It returns a *ValidationError or nil.
func (in *EventInput) Validate() error {
	var problems []string
	if strings.TrimSpace(in.Title) == "" {
		problems = append(problems, "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		problems = append(problems, "category is required")
	} else if _, ok := ParseCategory(in.Category); !ok {
		problems = append(problems, fmt.Sprintf("unknown category %q", in.Category))
	}
	if strings.TrimSpace(in.Location) == "" {
		problems = append(problems, "location is required")
	}
	if in.StartDate.IsZero() {
		problems = append(problems, "startDate is required")
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		problems = append(problems, "endDate must not be before startDate")
	}
	switch {
	case math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0:
		problems = append(problems, "price must be a non-negative number")
	case in.Price > MaxPrice:
		problems = append(problems, fmt.Sprintf("price must not exceed %.2f", MaxPrice))
	case !hasCents(in.Price):
		problems = append(problems, "price must have at most 2 decimal places")
	}
	if in.Capacity <= 0 {
		problems = append(problems, "capacity must be a positive integer")
	} else if in.Capacity > MaxCapacity {
		problems = append(problems, fmt.Sprintf("capacity must not exceed %d", MaxCapacity))
	}
	if strings.TrimSpace(in.Organizer.Name) == "" {
		problems = append(problems, "organizer name is required")
	}
	return NewValidationError(problems...)
}

// hasCents reports whether p survives rounding to two decimal places unchanged.
func hasCents(p float64) bool {
	return math.Round(p*100)/100 == p
}

// NewEvent builds an Event from validated input. ID is set by the repository on create.
func NewEvent(in *EventInput, organizerID string, createdAt, updatedAt time.Time) *Event {
	e := &Event{
		OrganizerID: organizerID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	e.Apply(in)
	return e
}

// Apply copies the editable fields of in onto e. Attendees and identity are left alone.
func (e *Event) Apply(in *EventInput) {
	category, _ := ParseCategory(in.Category)
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Content = in.Content
	e.Image = in.Image
	e.Category = category
	e.Location = strings.TrimSpace(in.Location)
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	e.Price = in.Price
	e.Capacity = in.Capacity
	e.IsFeatured = in.IsFeatured
	e.IsPublished = in.IsPublished
}

// EventStatus is the label shown next to an event in the admin list.
type EventStatus string

const (
	EventStatusDraft    EventStatus = "draft"
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusPast     EventStatus = "past"
)

// AdminEvent is an event row in the admin list together with its derived status.
// swagger:model AdminEvent
type AdminEvent struct {
	*Event
	Status EventStatus `json:"status"`
}

// EventListFilter restricts List queries.
type EventListFilter struct {
	PublishedOnly bool
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events joined with their organizer, ordered by start date then insertion order.
	List(ctx context.Context, filter EventListFilter) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// AddAttendees atomically adds tickets to a published event's attendee count.
	// Returns ErrCapacityExceeded when the count would pass capacity.
	AddAttendees(ctx context.Context, id string, tickets int) (*Event, error)
}

// StoreProvider exposes the stores bound to one unit of work.
type StoreProvider interface {
	Organizers() OrganizerRepository
	Events() EventRepository
}

// TxRunner runs fn in a transaction. Stores handed to fn share it; an error from fn rolls it back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

// PublicEventQuery selects events for the public site.
type PublicEventQuery struct {
	Category     string
	FeaturedOnly bool
}

// AdminEventQuery selects events for the admin dashboard.
type AdminEventQuery struct {
	Tab    string
	Search string
}

// EventService defines the business logic for listing and managing events.
type EventService interface {
	CreateEvent(ctx context.Context, in *EventInput) (*Event, error)
	ListEvents(ctx context.Context, filter EventListFilter, category string) ([]*Event, error)
	ListPublicEvents(ctx context.Context, q PublicEventQuery) ([]*Event, error)
	GetPublicEvent(ctx context.Context, id string) (*Event, error)
	ListAdminEvents(ctx context.Context, q AdminEventQuery) ([]*AdminEvent, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	UpdateEvent(ctx context.Context, id string, in *EventInput) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
