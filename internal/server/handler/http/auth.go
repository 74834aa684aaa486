// Package http provides the HTTP handlers of the PatoApp API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atinyakov/PatoApp/internal/middleware"
	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

// AuthService defines the account and session operations
// required by the HTTP handlers.
type AuthService interface {
	// LoginWithToken starts a session for matching credentials and
	// returns the token identifying it.
	LoginWithToken(ctx context.Context, email, password string) (models.User, string, bool)
	// Authenticate returns the session's account if token identifies it.
	Authenticate(token string) (models.User, bool)
	// Register adds an account; false means the email or username is taken.
	Register(ctx context.Context, in models.RegisterInput) bool
	// Logout ends the active session.
	Logout(ctx context.Context)
	// UpdatePlan changes the plan of the active session.
	UpdatePlan(ctx context.Context, plan models.Plan) bool
	// CurrentUser returns the account of the active session.
	CurrentUser() (models.User, bool)
}

// AuthHandler handles HTTP requests for registration, login and the session.
type AuthHandler struct {
	// AuthService performs the underlying account operations.
	AuthService AuthService
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PlanRequest represents the JSON payload for a plan change.
type PlanRequest struct {
	Plan models.Plan `json:"plan"`
}

// Register handles POST /api/register.
// It validates the sign-up form and answers 400 with field errors,
// 409 when the email or username is taken, and 201 on success.
// The new account is not logged in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var form service.RegistrationForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if errs := service.ValidateRegistration(form); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, errs)
		return
	}

	if !h.AuthService.Register(r.Context(), form.RegisterInput) {
		writeFieldErrors(w, http.StatusConflict, service.FieldErrors{
			"general": "email or username already in use",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// Login handles POST /api/login.
// It answers 401 for unknown credentials. Otherwise it returns the account
// and sets the session cookie; the same token is sent in the
// Authorization header for clients without a cookie jar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, token, ok := h.AuthService.LoginWithToken(r.Context(), req.Email, req.Password)
	if !ok {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, sessionCookie(r, token, 0))
	w.Header().Set("Authorization", "Bearer "+token)
	writeJSON(w, http.StatusOK, user.Public())
}

// Logout handles POST /api/logout. It always succeeds with 204 and clears
// the session cookie, but only a request carrying the session's token
// ends the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.AuthService.Authenticate(middleware.TokenFromRequest(r)); ok {
		h.AuthService.Logout(r.Context())
	}
	http.SetCookie(w, sessionCookie(r, "", -1))
	w.WriteHeader(http.StatusNoContent)
}

func sessionCookie(r *http.Request, token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
}

// Me handles GET /api/me and returns the account of the active session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}

// UpdatePlan handles PUT /api/plan.
func (h *AuthHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Plan.Valid() {
		http.Error(w, "invalid plan", http.StatusBadRequest)
		return
	}

	if !h.AuthService.UpdatePlan(r.Context(), req.Plan) {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	user, _ := h.AuthService.CurrentUser()
	writeJSON(w, http.StatusOK, user.Public())
}
