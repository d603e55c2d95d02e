package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// AdminCookieName is the cookie carrying the admin gate token.
const AdminCookieName = "admin_token"

// Decision is the outcome of evaluating a request against the admin gate.
type Decision int

const (
	Denied Decision = iota
	Allowed
)

func (d Decision) String() string {
	if d == Allowed {
		return "allowed"
	}
	return "denied"
}

// GateConfig configures AdminGate.
type GateConfig struct {
	// Prefix is the administrative path root, e.g. "/admin".
	Prefix string
	// LoginPath is where denied requests are redirected.
	LoginPath string
	// Token is the shared secret expected in the admin cookie. Empty never matches.
	Token string
	// AllowedIPs are client addresses admitted without a cookie.
	AllowedIPs []string
}

// Gate admits administrative requests that carry the configured token cookie or come from an
// allow-listed address. It is a coarse placeholder: the token never expires or rotates.
type Gate struct {
	prefix    string
	loginPath string
	token     []byte
	allowed   map[string]struct{}
	logger    *slog.Logger
}

// NewGate builds a Gate from cfg.
func NewGate(cfg GateConfig, logger *slog.Logger) *Gate {
	g := &Gate{
		prefix:    strings.TrimSuffix(cfg.Prefix, "/"),
		loginPath: cfg.LoginPath,
		token:     []byte(cfg.Token),
		allowed:   make(map[string]struct{}, len(cfg.AllowedIPs)),
		logger:    logger,
	}
	for _, ip := range cfg.AllowedIPs {
		if ip = strings.TrimSpace(ip); ip != "" {
			g.allowed[ip] = struct{}{}
		}
	}
	return g
}

// Guards reports whether path falls under the administrative prefix.
func (g *Gate) Guards(path string) bool {
	return path == g.prefix || strings.HasPrefix(path, g.prefix+"/")
}

// Evaluate decides whether r may reach an administrative handler.
func (g *Gate) Evaluate(r *http.Request) Decision {
	if c, err := r.Cookie(AdminCookieName); err == nil && g.tokenMatches(c.Value) {
		return Allowed
	}
	if _, ok := g.allowed[ClientIP(r)]; ok {
		return Allowed
	}
	return Denied
}

func (g *Gate) tokenMatches(v string) bool {
	if len(g.token) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v), g.token) == 1
}

// Middleware redirects denied administrative requests to the login path with 307.
// Other paths pass through untouched.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Guards(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if g.Evaluate(r) == Denied {
			g.logger.WarnContext(r.Context(), "admin gate denied request", "path", r.URL.Path, "client_ip", ClientIP(r))
			http.Redirect(w, r, g.loginPath, http.StatusTemporaryRedirect)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the first X-Forwarded-For entry when present, otherwise the host part of RemoteAddr.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
