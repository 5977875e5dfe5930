/**
 * @description
 * This file contains the shared response helpers for the HTTP handlers:
 * JSON encoding, the error envelope, and the mapping from service and store
 * errors to HTTP status codes.
 *
 * @dependencies
 * - encoding/json, log, net/http: Standard Go libraries.
 * - internal/app, internal/store: For custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/financeflow/finance-service/internal/app"
	"github.com/financeflow/finance-service/internal/store"
)

// writeJSON is a helper for writing JSON responses.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError is a helper for writing JSON error responses.
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps known service and store errors onto status codes.
// Unknown errors log and come back as an opaque 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, endpoint string, err error) {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, store.ErrAccountNotFound):
		h.writeError(w, http.StatusNotFound, "Account not found")
	case errors.Is(err, store.ErrTransactionNotFound):
		h.writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, store.ErrGoalNotFound):
		h.writeError(w, http.StatusNotFound, "Goal not found")
	case errors.Is(err, store.ErrUserNotFound):
		h.writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrEmailTaken):
		h.writeError(w, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, app.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, app.ErrLoginThrottled):
		h.writeError(w, http.StatusTooManyRequests, "Too many login attempts. Please wait and try again.")
	default:
		log.Printf("level=error component=api endpoint=%s msg=\"request failed\" err=%v", endpoint, err)
		h.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
