package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func ptr(s string) *string { return &s }

func newTestGate(token string, ips ...string) *Gate {
	return NewGate(GateConfig{Prefix: "/admin", LoginPath: "/login", Token: token, AllowedIPs: ips}, quietLogger)
}

func TestGate_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		allowed    []string
		cookie     *string
		remoteAddr string
		forwarded  string
		want       Decision
	}{
		{name: "matching cookie", token: "s3cret", cookie: ptr("s3cret"), remoteAddr: "203.0.113.9:5000", want: Allowed},
		{name: "wrong cookie", token: "s3cret", cookie: ptr("guess"), remoteAddr: "203.0.113.9:5000", want: Denied},
		{name: "no cookie, unknown ip", token: "s3cret", remoteAddr: "203.0.113.9:5000", want: Denied},
		{name: "allow-listed remote addr", token: "s3cret", allowed: []string{"10.0.0.7"}, remoteAddr: "10.0.0.7:41234", want: Allowed},
		{name: "allow-listed forwarded ip", allowed: []string{"198.51.100.4"}, remoteAddr: "10.0.0.1:80", forwarded: "198.51.100.4, 10.0.0.1", want: Allowed},
		{name: "forwarded header wins over remote addr", allowed: []string{"10.0.0.7"}, remoteAddr: "10.0.0.7:80", forwarded: "198.51.100.4", want: Denied},
		{name: "empty secret never matches empty cookie", token: "", cookie: ptr(""), remoteAddr: "203.0.113.9:5000", want: Denied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGate(tt.token, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/admin/events", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.cookie != nil {
				req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: *tt.cookie})
			}
			assert.Equal(t, tt.want, g.Evaluate(req))
		})
	}
}

func TestGate_MiddlewareRedirectsDeniedAdminRequests(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	handler := newTestGate("s3cret", "127.0.0.1").Middleware(next)

	req := httptest.NewRequest(http.MethodDelete, "/admin/events/123", nil)
	req.RemoteAddr = "203.0.113.9:5000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))
	assert.False(t, reached, "denied request must not reach the handler")
}

func TestGate_MiddlewarePassesAllowedAndPublicRequests(t *testing.T) {
	handler := newTestGate("s3cret").Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	for _, path := range []string{"/events", "/public/events", "/administrators", "/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.9:5000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTeapot, rr.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.RemoteAddr = "203.0.113.9:5000"
	req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: "s3cret"})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.RemoteAddr = "[::1]:1234"
	assert.Equal(t, "::1", ClientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.4 ,10.0.0.1")
	assert.Equal(t, "198.51.100.4", ClientIP(req))
}
