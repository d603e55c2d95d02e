package domain

import (
	"context"
	"time"
)

// Organizer is the person or group hosting events. Name is unique and is the natural key.
// swagger:model Organizer
type Organizer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrganizerInput identifies an organizer by name when creating an event.
type OrganizerInput struct {
	Name  string
	Image *string
}

// OrganizerRepository defines storage for organizers.
type OrganizerRepository interface {
	// FindOrCreateByName returns the organizer with the given name, creating it when missing.
	// An existing organizer is returned unchanged; image is only used on creation.
	FindOrCreateByName(ctx context.Context, name string, image *string) (*Organizer, error)
	GetByID(ctx context.Context, id string) (*Organizer, error)
}
