/**
 * @description
 * This file defines the savings-goal domain model. Goals sit outside the
 * balance-consistency protocol: their current amount moves only through
 * explicit contribute operations, never through transaction activity.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalCategories is the closed set of valid goal categories.
var GoalCategories = []string{"SAVINGS", "DEBT", "INVESTMENT", "PURCHASE", "EMERGENCY", "TRAVEL", "OTHER"}

// Goal maps directly to the `goals` table. Progress, RemainingAmount and
// DaysRemaining are computed per response, never stored.
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	Category      string          `json:"category"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Progress        float64          `json:"progress"`
	RemainingAmount decimal.Decimal  `json:"remaining_amount"`
	DaysRemaining   int              `json:"days_remaining"`
}

// CreateGoalRequest is the DTO for creating a new goal.
type CreateGoalRequest struct {
	Title         string           `json:"title"`
	Description   *string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal  `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    string           `json:"target_date"`
	Category      string           `json:"category"`
}

// UpdateGoalRequest carries partial-update semantics; an explicit JSON null
// on the description clears it.
type UpdateGoalRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   NullableString   `json:"description,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    *string          `json:"target_date,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// ContributeRequest adds to a goal's current amount.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalCategorySummary aggregates the goals sharing a category.
type GoalCategorySummary struct {
	Count         int             `json:"count"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
}

// GoalsSummary aggregates a user's active goals. UrgentGoals are unfinished
// goals whose target date is 30 days or fewer away.
type GoalsSummary struct {
	TotalGoals           int                            `json:"total_goals"`
	ActiveGoals          int                            `json:"active_goals"`
	CompletedGoals       int                            `json:"completed_goals"`
	TotalTargetAmount    decimal.Decimal                `json:"total_target_amount"`
	TotalCurrentAmount   decimal.Decimal                `json:"total_current_amount"`
	TotalRemainingAmount decimal.Decimal                `json:"total_remaining_amount"`
	OverallProgress      float64                        `json:"overall_progress"`
	ByCategory           map[string]GoalCategorySummary `json:"by_category"`
	UrgentGoals          []Goal                         `json:"urgent_goals"`
}
