/**
 * @description
 * This file contains the HTTP handlers for the transaction endpoints:
 * CRUD, the filtered listing, aggregate statistics, and plain-text
 * statement import.
 *
 * @dependencies
 * - encoding/json, net/http: Standard Go libraries.
 * - github.com/go-chi/chi/v5: URL parameter extraction.
 * - github.com/shopspring/decimal: Amount filter parsing.
 * - internal/domain: Request DTOs and filters.
 */

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

// CreateTransactionHandler handles recording a new transaction.
func (h *Handlers) CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	var req domain.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.transactions.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, "create_transaction", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, tx)
}

// ListTransactionsHandler handles the filtered transaction listing.
func (h *Handlers) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	filters, err := parseTransactionFilters(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.transactions.ListTransactions(r.Context(), userID, *filters)
	if err != nil {
		h.writeServiceError(w, "list_transactions", err)
		return
	}
	h.writeJSON(w, http.StatusOK, transactions)
}

// TransactionStatsHandler returns aggregate statistics over the user's
// transaction history, honoring the same filters as the listing.
func (h *Handlers) TransactionStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	filters, err := parseTransactionFilters(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.transactions.TransactionStats(r.Context(), userID, *filters)
	if err != nil {
		h.writeServiceError(w, "transaction_stats", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// TransactionAnomaliesHandler surfaces transactions whose amount is a
// statistical outlier against the user's history.
func (h *Handlers) TransactionAnomaliesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	anomalies, err := h.transactions.AnomalousTransactions(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "transaction_anomalies", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"anomalies": anomalies})
}

// SavingsForecastHandler returns monthly net savings history and a naive
// projection of the months ahead.
func (h *Handlers) SavingsForecastHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	forecast, err := h.transactions.SavingsForecast(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "savings_forecast", err)
		return
	}
	h.writeJSON(w, http.StatusOK, forecast)
}

// importStatementRequest is the DTO for statement import.
type importStatementRequest struct {
	AccountID uuid.UUID `json:"account_id"`
	Text      string    `json:"text"`
}

// ImportStatementHandler parses a plain-text bank statement and records its
// entries as transactions against the given account.
func (h *Handlers) ImportStatementHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	var req importStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccountID == uuid.Nil {
		h.writeError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	result, err := h.transactions.ImportStatement(r.Context(), userID, req.AccountID, req.Text)
	if err != nil {
		h.writeServiceError(w, "import_statement", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// GetTransactionHandler handles fetching a single transaction by its ID.
func (h *Handlers) GetTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	tx, err := h.transactions.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		h.writeServiceError(w, "get_transaction", err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// UpdateTransactionHandler handles partial updates to a transaction.
func (h *Handlers) UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	var req domain.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.transactions.UpdateTransaction(r.Context(), userID, transactionID, req)
	if err != nil {
		h.writeServiceError(w, "update_transaction", err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

// DeleteTransactionHandler handles removing a transaction and un-applying
// its balance effect.
func (h *Handlers) DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transaction ID format")
		return
	}

	if err := h.transactions.DeleteTransaction(r.Context(), userID, transactionID); err != nil {
		h.writeServiceError(w, "delete_transaction", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// parseTransactionFilters extracts the optional filter query parameters
// shared by the listing and stats endpoints.
func parseTransactionFilters(r *http.Request) (*domain.TransactionFilters, error) {
	query := r.URL.Query()
	filters := &domain.TransactionFilters{
		Type:     query.Get("type"),
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	if raw := query.Get("account_id"); raw != "" {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalidFilter("account_id")
		}
		filters.AccountID = &accountID
	}
	if raw := query.Get("start_date"); raw != "" {
		start, err := parseFilterDate(raw)
		if err != nil {
			return nil, errInvalidFilter("start_date")
		}
		filters.StartDate = &start
	}
	if raw := query.Get("end_date"); raw != "" {
		end, err := parseFilterDate(raw)
		if err != nil {
			return nil, errInvalidFilter("end_date")
		}
		filters.EndDate = &end
	}
	if raw := query.Get("min_amount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errInvalidFilter("min_amount")
		}
		filters.MinAmount = &min
	}
	if raw := query.Get("max_amount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errInvalidFilter("max_amount")
		}
		filters.MaxAmount = &max
	}

	return filters, nil
}

func parseFilterDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

type filterError string

func (e filterError) Error() string { return string(e) }

func errInvalidFilter(name string) error {
	return filterError("Invalid " + name + " filter")
}
