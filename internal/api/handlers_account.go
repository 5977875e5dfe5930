/**
 * @description
 * This file contains the HTTP handlers for the account endpoints: CRUD,
 * the active-only listing filter, and the aggregate summary.
 *
 * @dependencies
 * - encoding/json, net/http: Standard Go libraries.
 * - github.com/go-chi/chi/v5: URL parameter extraction.
 * - internal/domain: Request DTOs.
 */

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/financeflow/finance-service/internal/domain"
)

// CreateAccountHandler handles requests to open a new account.
func (h *Handlers) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	var req domain.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, "create_account", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, account)
}

// ListAccountsHandler handles listing the user's accounts. The optional
// `active` query parameter filters by is_active.
func (h *Handlers) ListAccountsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	var activeOnly *bool
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid active filter")
			return
		}
		activeOnly = &active
	}

	accounts, err := h.accounts.ListAccounts(r.Context(), userID, activeOnly)
	if err != nil {
		h.writeServiceError(w, "list_accounts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, accounts)
}

// AccountsSummaryHandler returns balance totals across the user's active
// accounts.
func (h *Handlers) AccountsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	summary, err := h.accounts.AccountsSummary(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "accounts_summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// GetAccountHandler handles fetching a single account by its ID.
func (h *Handlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), userID, accountID)
	if err != nil {
		h.writeServiceError(w, "get_account", err)
		return
	}
	h.writeJSON(w, http.StatusOK, account)
}

// UpdateAccountHandler handles partial updates to an account.
func (h *Handlers) UpdateAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	var req domain.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), userID, accountID, req)
	if err != nil {
		h.writeServiceError(w, "update_account", err)
		return
	}
	h.writeJSON(w, http.StatusOK, account)
}

// DeleteAccountHandler handles account deactivation. Accounts are never
// hard-deleted so their transaction history stays intact.
func (h *Handlers) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	accountID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid account ID format")
		return
	}

	if err := h.accounts.DeactivateAccount(r.Context(), userID, accountID); err != nil {
		h.writeServiceError(w, "delete_account", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Account deactivated"})
}
