package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/vigil/internal/domain"
	"github.com/DukeRupert/vigil/internal/service"
	"github.com/DukeRupert/vigil/internal/session"
)

// =============================================================================
// Handler Definition
// =============================================================================

// AuthHandler handles login and logout.
type AuthHandler struct {
	users    service.UserService
	logger   *slog.Logger
	isSecure bool // Whether to set Secure flag on cookies (true in production)
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users service.UserService, logger *slog.Logger, isSecure bool) *AuthHandler {
	return &AuthHandler{
		users:    users,
		logger:   logger,
		isSecure: isSecure,
	}
}

// =============================================================================
// Login
// =============================================================================

type loginRequest struct {
	Name string `json:"name"`
}

type loginResponse struct {
	User domain.User `json:"user"`
}

// Login handles POST /login.
//
// The body carries the inspector's display name. On success the session
// cookie is set and the canonical identity is returned.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	result, err := h.users.Login(r.Context(), req.Name)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	setSessionCookie(w, result.Token, h.isSecure)
	writeJSON(w, h.logger, http.StatusOK, loginResponse{User: result.User})
}

// =============================================================================
// Logout
// =============================================================================

// Logout handles POST /logout. Idempotent: logging out without a session
// still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if err := h.users.Logout(r.Context(), cookie.Value); err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
	}

	clearSessionCookie(w, h.isSecure)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Cookie Helpers
// =============================================================================

// setSessionCookie sets the session cookie on the response.
func setSessionCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     session.CookiePath,
		MaxAge:   session.CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie from the client.
func clearSessionCookie(w http.ResponseWriter, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     session.CookiePath,
		MaxAge:   -1, // Delete immediately
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
