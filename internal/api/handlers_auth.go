/**
 * @description
 * This file contains the HTTP handlers for registration, login and the
 * current-user profile endpoint.
 *
 * @dependencies
 * - encoding/json, net/http: Standard Go libraries.
 * - internal/domain: Request DTOs.
 */

package api

import (
	"encoding/json"
	"net/http"

	"github.com/financeflow/finance-service/internal/domain"
)

// RegisterHandler handles new user registration.
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "register", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

// LoginHandler handles credential verification and token issuance.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "login", err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// CurrentUserHandler returns the authenticated user's profile.
func (h *Handlers) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "current_user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}
