package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventlisting/internal/delivery/http/helpers"
	"eventlisting/internal/domain"
)

// dateLayouts are the accepted startDate/endDate formats, tried in order. Values without a
// zone are read as UTC.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}

// OrganizerRequest names the organizer of an event. An existing organizer with the same name is
// reused as-is; image is only stored for new organizers.
type OrganizerRequest struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// EventRequest is the request body for POST /events, POST /admin/events and PUT /admin/events/{eventID}.
type EventRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     *string           `json:"content"`
	Image       *string           `json:"image"`
	Category    string            `json:"category"`
	Location    string            `json:"location"`
	StartDate   string            `json:"startDate" example:"2025-06-01T10:00:00Z"`
	EndDate     *string           `json:"endDate" example:"2025-06-01T18:00:00Z"`
	Price       *float64          `json:"price"`
	Capacity    *int              `json:"capacity"`
	IsFeatured  bool              `json:"isFeatured"`
	IsPublished bool              `json:"isPublished"`
	Organizer   *OrganizerRequest `json:"organizer"`
}

// Validate implements Validator. It checks what the JSON shape alone can tell: presence of
// the typed fields and date syntax. Business rules run in the event service.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.StartDate) == "" {
		errs = append(errs, "startDate is required")
	} else if _, err := parseDate(e.StartDate); err != nil {
		errs = append(errs, "startDate must be an ISO-8601 date")
	}
	if e.EndDate != nil && strings.TrimSpace(*e.EndDate) != "" {
		if _, err := parseDate(*e.EndDate); err != nil {
			errs = append(errs, "endDate must be an ISO-8601 date")
		}
	}
	if e.Price == nil {
		errs = append(errs, "price is required")
	}
	if e.Capacity == nil {
		errs = append(errs, "capacity is required")
	}
	if e.Organizer == nil {
		errs = append(errs, "organizer is required")
	}
	return errs
}

// ToInput converts a validated request into the service input.
func (e EventRequest) ToInput() *domain.EventInput {
	in := &domain.EventInput{
		Title:       e.Title,
		Description: e.Description,
		Content:     e.Content,
		Image:       e.Image,
		Category:    e.Category,
		Location:    e.Location,
		IsFeatured:  e.IsFeatured,
		IsPublished: e.IsPublished,
	}
	in.StartDate, _ = parseDate(e.StartDate)
	if e.EndDate != nil && strings.TrimSpace(*e.EndDate) != "" {
		end, _ := parseDate(*e.EndDate)
		in.EndDate = &end
	}
	if e.Price != nil {
		in.Price = *e.Price
	}
	if e.Capacity != nil {
		in.Capacity = *e.Capacity
	}
	if e.Organizer != nil {
		in.Organizer = domain.OrganizerInput{Name: e.Organizer.Name, Image: e.Organizer.Image}
	}
	return in
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for endpoints returning a list of events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AdminEventListSuccessResponse is the success envelope for GET /admin/events.
type AdminEventListSuccessResponse struct {
	Data  []*domain.AdminEvent `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event. The organizer is looked up by name and created when missing; both are stored atomically.
// @Tags events
// @Accept json
// @Produce json
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event with its organizer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
// @Router /admin/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.ToInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "organizer not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Returns events ordered by start date ascending, each with its organizer. Drafts are included unless published=true.
// @Tags events
// @Produce json
// @Param published query bool false "Only published events"
// @Param category query string false "Category, case-insensitive"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.EventListFilter
	if v := q.Get("published"); v != "" {
		published, err := strconv.ParseBool(v)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "published must be true or false")
			return
		}
		filter.PublishedOnly = published
	}
	events, err := c.Service.ListEvents(r.Context(), filter, q.Get("category"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "events not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListAdminEvents godoc
// @Summary List events for the admin dashboard
// @Description Returns all events, including drafts, with a derived status. Filter by tab and a case-insensitive title search.
// @Tags admin
// @Produce json
// @Param tab query string false "all, upcoming, past or draft" Enums(all, upcoming, past, draft)
// @Param q query string false "Title search"
// @Success 200 {object} controllers.AdminEventListSuccessResponse
// @Failure 307 "redirect to /login when the admin gate denies the request"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *EventController) ListAdminEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	events, err := c.Service.ListAdminEvents(r.Context(), domain.AdminEventQuery{Tab: q.Get("tab"), Search: q.Get("q")})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "events not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetAdminEvent godoc
// @Summary Get an event for editing
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 307 "redirect to /login when the admin gate denies the request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [get]
func (c *EventController) GetAdminEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Replace an event
// @Description Replaces the editable fields of an event. Attendee count is kept; capacity may not drop below it.
// @Tags admin
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 307 "redirect to /login when the admin gate denies the request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), r.PathValue("eventID"), req.ToInput())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags admin
// @Param eventID path string true "Event ID"
// @Success 204 "event deleted"
// @Failure 307 "redirect to /login when the admin gate denies the request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteEvent(r.Context(), r.PathValue("eventID")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
