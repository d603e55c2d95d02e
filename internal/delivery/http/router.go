package http

import (
	"log/slog"
	"net/http"

	"eventlisting/internal/delivery/http/controllers"
	"eventlisting/internal/delivery/http/helpers"
	"eventlisting/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// AdminPrefix is the path root guarded by the admin gate.
const AdminPrefix = "/admin"

// LoginPath is where the admin gate sends denied requests.
const LoginPath = "/login"

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events *controllers.EventController
	Public *controllers.PublicController
	Auth   *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Core API
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("GET /events", c.Events.ListEvents)

	// Public site
	mux.HandleFunc("GET /public/events", c.Public.ListEvents)
	mux.HandleFunc("GET /public/events/{eventID}", c.Public.GetEvent)
	mux.HandleFunc("POST /public/events/{eventID}/registrations", c.Public.Register)
	mux.HandleFunc("GET /public/tickets/{token}", c.Public.VerifyTicket)

	// Admin dashboard, behind the gate
	mux.HandleFunc("GET "+AdminPrefix+"/events", c.Events.ListAdminEvents)
	mux.HandleFunc("POST "+AdminPrefix+"/events", c.Events.CreateEvent)
	mux.HandleFunc("GET "+AdminPrefix+"/events/{eventID}", c.Events.GetAdminEvent)
	mux.HandleFunc("PUT "+AdminPrefix+"/events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE "+AdminPrefix+"/events/{eventID}", c.Events.DeleteEvent)

	// Auth
	mux.HandleFunc("GET "+LoginPath, c.Auth.LoginPage)
	mux.HandleFunc("POST "+LoginPath, c.Auth.Login)
	mux.HandleFunc("POST /logout", c.Auth.Logout)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// HandlerConfig configures the middleware chain around the router.
type HandlerConfig struct {
	AllowedOrigins []string
	AdminToken     string
	AdminIPs       []string
}

// NewHandler wraps mux with request logging, CORS and the admin gate, outermost first.
// CORS sits outside the gate so preflight requests to admin paths are answered, not redirected.
func NewHandler(logger *slog.Logger, mux http.Handler, cfg HandlerConfig) http.Handler {
	gate := middleware.NewGate(middleware.GateConfig{
		Prefix:     AdminPrefix,
		LoginPath:  LoginPath,
		Token:      cfg.AdminToken,
		AllowedIPs: cfg.AdminIPs,
	}, logger)
	return middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, gate.Middleware(mux)))
}
