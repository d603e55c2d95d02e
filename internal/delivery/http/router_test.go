package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventlisting/internal/adapters/auth"
	"eventlisting/internal/delivery/http/controllers"
	"eventlisting/internal/delivery/http/middleware"
	"eventlisting/internal/domain"
	"eventlisting/internal/repository/memory"
	"eventlisting/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	events := services.NewEventService(store, store.Events(), time.Second)
	attendees := services.NewAttendeeService(store.Events(),
		auth.NewTicketIssuer("ticket-secret", time.Hour),
		auth.NewTicketVerifier("ticket-secret"),
		nil, logger, time.Second)
	adminAuth := services.NewAdminAuthService(auth.NewBcryptChecker(), string(hash), "gate-secret")

	mux := NewRouter(Controllers{
		Events: controllers.NewEventController(logger, events),
		Public: controllers.NewPublicController(logger, events, attendees),
		Auth:   controllers.NewAuthController(logger, adminAuth, false),
	})
	handler := NewHandler(logger, mux, HandlerConfig{AdminToken: "gate-secret", AdminIPs: []string{"10.9.9.9"}})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func noRedirectClient() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func eventBody(title, start string, published bool) string {
	pub := "false"
	if published {
		pub = "true"
	}
	return `{"title":"` + title + `","description":"d","category":"meetup","location":"Berlin","startDate":"` + start +
		`","price":10,"capacity":3,"isPublished":` + pub + `,"organizer":{"name":"Acme"}}`
}

func postEvent(t *testing.T, srv *httptest.Server, body string) *domain.Event {
	t.Helper()
	resp, err := http.Post(srv.URL+"/events", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out struct {
		Data *domain.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Data
}

func getList(t *testing.T, client *http.Client, req *http.Request) []string {
	t.Helper()
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Data []*domain.Event `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	titles := make([]string, 0, len(out.Data))
	for _, e := range out.Data {
		titles = append(titles, e.Title)
	}
	return titles
}

func TestRouter_DraftHiddenFromPublicButListedInAdminDrafts(t *testing.T) {
	srv := newTestServer(t)
	postEvent(t, srv, eventBody("Secret draft", "2025-06-01T10:00:00Z", false))
	postEvent(t, srv, eventBody("A", "2030-01-01T10:00:00Z", true))
	postEvent(t, srv, eventBody("B", "2030-01-01T10:00:00Z", true))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/public/events", nil)
	assert.Equal(t, []string{"A", "B"}, getList(t, http.DefaultClient, req))

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/admin/events?tab=draft", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminCookieName, Value: "gate-secret"})
	assert.Equal(t, []string{"Secret draft"}, getList(t, http.DefaultClient, req))

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/events", nil)
	assert.Equal(t, []string{"Secret draft", "A", "B"}, getList(t, http.DefaultClient, req))
}

func TestRouter_AdminGate(t *testing.T) {
	srv := newTestServer(t)
	client := noRedirectClient()

	resp, err := client.Get(srv.URL + "/admin/events")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/admin/events", nil)
	req.Header.Set("X-Forwarded-For", "10.9.9.9")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(srv.URL+LoginPath, "application/json", strings.NewReader(`{"password":"letmein"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookies := resp.Cookies()
	require.Len(t, cookies, 1)

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/admin/events", nil)
	req.AddCookie(cookies[0])
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RegistrationFlow(t *testing.T) {
	srv := newTestServer(t)
	event := postEvent(t, srv, eventBody("Go Night", "2030-01-01T10:00:00Z", true))

	resp, err := http.Post(srv.URL+"/public/events/"+event.ID+"/registrations", "application/json",
		strings.NewReader(`{"name":"Ada","email":"ada@example.com","tickets":2}`))
	require.NoError(t, err)
	var reg struct {
		Data *domain.Registration `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reg))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 20.0, reg.Data.TotalPrice)

	resp, err = http.Post(srv.URL+"/public/events/"+event.ID+"/registrations", "application/json",
		strings.NewReader(`{"name":"Bob","email":"bob@example.com","tickets":2}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/public/tickets/" + reg.Data.Token)
	require.NoError(t, err)
	var ticket struct {
		Data *domain.TicketClaims `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ticket))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, event.ID, ticket.Data.EventID)
	assert.Equal(t, 2, ticket.Data.Tickets)
}
