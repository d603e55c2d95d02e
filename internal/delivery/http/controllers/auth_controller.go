package controllers

import (
	"log/slog"
	"net/http"

	"eventlisting/internal/delivery/http/helpers"
	"eventlisting/internal/delivery/http/middleware"
	"eventlisting/internal/domain"
)

// LoginRequest is the request body for POST /login
type LoginRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if l.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// LoginStatus is the response body for GET /login and POST /login.
type LoginStatus struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message"`
}

// LoginSuccessResponse is the success envelope for the login endpoints.
type LoginSuccessResponse struct {
	Data  LoginStatus       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AdminAuthService
	// SecureCookie marks the admin cookie Secure; set it whenever the site is served over HTTPS.
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.AdminAuthService, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		SecureCookie: secureCookie,
	}
}

// LoginPage godoc
// @Summary Admin login landing
// @Description Target of the admin gate redirect. Tells the client to POST the admin password here.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.LoginSuccessResponse
// @Router /login [get]
func (c *AuthController) LoginPage(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginStatus{
		Authenticated: false,
		Message:       "admin access required: POST {\"password\": \"...\"} to /login",
	})
}

// Login godoc
// @Summary Admin login
// @Description Checks the admin password and sets the admin_token cookie used by the admin gate.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Admin password"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.Login(r.Context(), req.Password)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "admin login failed", "client_ip", middleware.ClientIP(r))
		helpers.WriteServiceError(w, r, c.Logger, err, "not found")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginStatus{Authenticated: true, Message: "logged in"})
}

// Logout godoc
// @Summary Admin logout
// @Description Clears the admin_token cookie.
// @Tags auth
// @Success 204 "cookie cleared"
// @Router /logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
