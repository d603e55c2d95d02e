package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventlisting/internal/delivery/http/helpers"
	"eventlisting/internal/domain"
)

// RegistrationRequest is the request body for POST /public/events/{eventID}/registrations.
type RegistrationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Tickets int    `json:"tickets" example:"2"`
}

// Validate implements Validator.
func (req RegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// RegistrationSuccessResponse is the success envelope for POST /public/events/{eventID}/registrations (201).
type RegistrationSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// TicketSuccessResponse is the success envelope for GET /public/tickets/{token}.
type TicketSuccessResponse struct {
	Data  *domain.TicketClaims `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// PublicController serves the unauthenticated event site.
type PublicController struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Attendees domain.AttendeeService
}

func NewPublicController(logger *slog.Logger, events domain.EventService, attendees domain.AttendeeService) *PublicController {
	return &PublicController{
		Logger:    logger,
		Events:    events,
		Attendees: attendees,
	}
}

// ListEvents godoc
// @Summary List published events
// @Description Published events ordered by start date ascending; events with equal start dates keep creation order.
// @Tags public
// @Produce json
// @Param category query string false "Category, case-insensitive"
// @Param featured query bool false "Only featured events"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events [get]
func (c *PublicController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.PublicEventQuery{Category: q.Get("category")}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "featured must be true or false")
			return
		}
		query.FeaturedOnly = featured
	}
	events, err := c.Events.ListPublicEvents(r.Context(), query)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "events not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get a published event
// @Description Drafts are reported as not found.
// @Tags public
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{eventID} [get]
func (c *PublicController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.GetPublicEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Register godoc
// @Summary Register for an event
// @Description Reserves 1 to 10 tickets on a published event and returns a signed ticket code. A confirmation email is sent when mail is configured.
// @Tags public
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param registration body RegistrationRequest true "Attendee details"
// @Success 201 {object} controllers.RegistrationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not enough spots left)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /public/events/{eventID}/registrations [post]
func (c *PublicController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reg, err := c.Attendees.RegisterForEvent(r.Context(), r.PathValue("eventID"), &domain.RegistrationRequest{
		Name:    req.Name,
		Email:   req.Email,
		Tickets: req.Tickets,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// VerifyTicket godoc
// @Summary Verify a ticket code
// @Tags public
// @Produce json
// @Param token path string true "Ticket code returned at registration"
// @Success 200 {object} controllers.TicketSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /public/tickets/{token} [get]
func (c *PublicController) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	claims, err := c.Attendees.VerifyTicket(r.Context(), r.PathValue("token"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "ticket not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, claims)
}
