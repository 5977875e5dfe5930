/**
 * @description
 * This file contains the HTTP handlers for the savings-goal endpoints:
 * CRUD, contributions, and the aggregate summary.
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

// CreateGoalHandler handles requests to create a new savings goal.
func (h *Handlers) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	var req domain.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), userID, req)
	if err != nil {
		h.writeServiceError(w, "create_goal", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, goal)
}

// ListGoalsHandler handles listing the user's goals. Optional `active` and
// `category` query parameters narrow the result.
func (h *Handlers) ListGoalsHandler(w http.ResponseWriter, r *http.Request) {
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

	goals, err := h.goals.ListGoals(r.Context(), userID, activeOnly, r.URL.Query().Get("category"))
	if err != nil {
		h.writeServiceError(w, "list_goals", err)
		return
	}
	h.writeJSON(w, http.StatusOK, goals)
}

// GoalsSummaryHandler returns aggregate progress across active goals.
func (h *Handlers) GoalsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	summary, err := h.goals.GoalsSummary(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, "goals_summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// GetGoalHandler handles fetching a single goal by its ID.
func (h *Handlers) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	goal, err := h.goals.GetGoal(r.Context(), userID, goalID)
	if err != nil {
		h.writeServiceError(w, "get_goal", err)
		return
	}
	h.writeJSON(w, http.StatusOK, goal)
}

// UpdateGoalHandler handles partial updates to a goal.
func (h *Handlers) UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	var req domain.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.UpdateGoal(r.Context(), userID, goalID, req)
	if err != nil {
		h.writeServiceError(w, "update_goal", err)
		return
	}
	h.writeJSON(w, http.StatusOK, goal)
}

// DeleteGoalHandler handles deactivating a goal. Like accounts, goals are
// soft-deleted.
func (h *Handlers) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	if err := h.goals.DeactivateGoal(r.Context(), userID, goalID); err != nil {
		h.writeServiceError(w, "delete_goal", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deactivated"})
}

// ContributeGoalHandler adds a contribution to a goal's current amount.
func (h *Handlers) ContributeGoalHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Could not get user ID from context")
		return
	}

	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid goal ID format")
		return
	}

	var req domain.ContributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.Contribute(r.Context(), userID, goalID, req)
	if err != nil {
		h.writeServiceError(w, "contribute_goal", err)
		return
	}
	h.writeJSON(w, http.StatusOK, goal)
}
