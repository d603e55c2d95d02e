package domain

import (
	"context"
	"time"
)

// MaxTicketsPerRegistration caps how many tickets one registration may request.
const MaxTicketsPerRegistration = 10

// RegistrationRequest is an attendee's request to register for an event.
type RegistrationRequest struct {
	Name    string
	Email   string
	Tickets int
}

// Registration is the outcome of a successful registration.
// Token is a signed ticket confirmation the attendee can present later.
// swagger:model Registration
type Registration struct {
	EventID    string    `json:"eventId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Tickets    int       `json:"tickets"`
	TotalPrice float64   `json:"totalPrice"`
	Token      string    `json:"token"`
	CreatedAt  time.Time `json:"createdAt"`
	Event      *Event    `json:"event"`
}

// TicketClaims are the fields carried by a ticket confirmation token.
// swagger:model TicketClaims
type TicketClaims struct {
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Tickets   int       `json:"tickets"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TicketIssuer signs ticket confirmation tokens.
type TicketIssuer interface {
	Issue(reg *Registration) (string, error)
}

// TicketVerifier verifies a ticket confirmation token and returns its claims.
type TicketVerifier interface {
	Verify(token string) (*TicketClaims, error)
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	RegisterForEvent(ctx context.Context, eventID string, req *RegistrationRequest) (*Registration, error)
	VerifyTicket(ctx context.Context, token string) (*TicketClaims, error)
}
