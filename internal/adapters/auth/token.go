package auth

import (
	"errors"
	"fmt"
	"time"

	"eventlisting/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const ticketIssuer = "eventlisting"

type ticketClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Tickets int    `json:"tickets"`
}

type jwtTickets struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTicketIssuer returns a TicketIssuer that signs HS256 JWTs valid for expiry.
// The event id is carried in the subject claim.
func NewTicketIssuer(secret string, expiry time.Duration) domain.TicketIssuer {
	return &jwtTickets{secret: []byte(secret), expiry: expiry, now: time.Now}
}

// NewTicketVerifier returns a TicketVerifier for tokens signed with secret.
func NewTicketVerifier(secret string) domain.TicketVerifier {
	return &jwtTickets{secret: []byte(secret), now: time.Now}
}

func (t *jwtTickets) Issue(reg *domain.Registration) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("ticket secret is not configured")
	}
	now := t.now()
	claims := ticketClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ticketIssuer,
			Subject:   reg.EventID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
		Email:   reg.Email,
		Name:    reg.Name,
		Tickets: reg.Tickets,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign ticket: %w", err)
	}
	return tokenString, nil
}

func (t *jwtTickets) Verify(tokenString string) (*domain.TicketClaims, error) {
	if len(t.secret) == 0 {
		return nil, domain.ErrInvalidTicket
	}
	claims := &ticketClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(ticketIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidTicket, err)
	}
	out := &domain.TicketClaims{
		EventID: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Tickets: claims.Tickets,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
