package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventlisting/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type attendeeService struct {
	eventRepo      domain.EventRepository
	tickets        domain.TicketIssuer
	verifier       domain.TicketVerifier
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAttendeeService creates an AttendeeService. A failed confirmation email is logged and does not
// undo the registration.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	tickets domain.TicketIssuer,
	verifier domain.TicketVerifier,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		tickets:        tickets,
		verifier:       verifier,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func validateRegistration(req *domain.RegistrationRequest) error {
	var problems []string
	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "name is required")
	}
	if !emailRegexp.MatchString(strings.TrimSpace(req.Email)) {
		problems = append(problems, "invalid email format")
	}
	if req.Tickets < 1 || req.Tickets > domain.MaxTicketsPerRegistration {
		problems = append(problems, fmt.Sprintf("tickets must be between 1 and %d", domain.MaxTicketsPerRegistration))
	}
	return domain.NewValidationError(problems...)
}

func (s *attendeeService) RegisterForEvent(ctx context.Context, eventID string, req *domain.RegistrationRequest) (*domain.Registration, error) {
	if req == nil {
		return nil, domain.NewValidationError("registration body is required")
	}
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg := &domain.Registration{
		EventID:   eventID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Tickets:   req.Tickets,
		CreatedAt: s.now(),
	}
	// Issue before AddAttendees: a failed signature must not hold seats.
	token, err := s.tickets.Issue(reg)
	if err != nil {
		return nil, fmt.Errorf("issue ticket: %w", err)
	}

	event, err := s.eventRepo.AddAttendees(ctx, eventID, req.Tickets)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCapacityExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("reserve tickets: %w", err)
		}
	}

	reg.Event = event
	reg.TotalPrice = event.Price * float64(req.Tickets)
	reg.Token = token

	s.sendConfirmation(ctx, reg)
	return reg, nil
}

func (s *attendeeService) sendConfirmation(ctx context.Context, reg *domain.Registration) {
	if s.emailService == nil {
		return
	}
	total := "Free"
	if reg.TotalPrice > 0 {
		total = fmt.Sprintf("%.2f", reg.TotalPrice)
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:      reg.Email,
		Name:       reg.Name,
		EventTitle: reg.Event.Title,
		Location:   reg.Event.Location,
		StartDate:  reg.Event.StartDate.Format("Mon, 02 Jan 2006 15:04 MST"),
		Tickets:    reg.Tickets,
		TotalPrice: total,
		Token:      reg.Token,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation email failed", "event_id", reg.EventID, "err", err)
	}
}

func (s *attendeeService) VerifyTicket(ctx context.Context, token string) (*domain.TicketClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrInvalidTicket
	}
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
