/**
 * @description
 * Business logic for savings goals. Goals are independent of the account
 * ledger: the current amount only moves through explicit contributions, so
 * none of these operations touch account balances.
 *
 * @dependencies
 * - internal/domain, internal/store: domain models and data access.
 * - pkg/rabbitmq: ledger event publishing for contributions.
 */

package app

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/store"
	"github.com/financeflow/finance-service/pkg/rabbitmq"
)

// GoalService provides the business logic for savings goals.
type GoalService struct {
	repo   store.GoalRepository
	events rabbitmq.Publisher
}

// NewGoalService creates a new goal service instance.
func NewGoalService(repo store.GoalRepository, events rabbitmq.Publisher) *GoalService {
	return &GoalService{repo: repo, events: events}
}

// goalMetrics fills in the computed response fields: progress as a
// percentage capped at 100 and rounded to two decimals, the remaining amount
// floored at zero, and whole days until the target date floored at zero.
func goalMetrics(goal *domain.Goal, now time.Time) {
	goal.Progress = 0
	if goal.TargetAmount.IsPositive() {
		ratio, _ := goal.CurrentAmount.Div(goal.TargetAmount).Float64()
		goal.Progress = math.Round(math.Min(ratio*100, 100)*100) / 100
	}

	goal.RemainingAmount = goal.TargetAmount.Sub(goal.CurrentAmount)
	if goal.RemainingAmount.IsNegative() {
		goal.RemainingAmount = decimal.Zero
	}

	goal.DaysRemaining = 0
	if remaining := goal.TargetDate.Sub(now); remaining > 0 {
		goal.DaysRemaining = int(math.Ceil(remaining.Hours() / 24))
	}
}

// CreateGoal validates and stores a new goal. The current amount defaults to
// zero and the goal starts active.
func (s *GoalService) CreateGoal(ctx context.Context, userID uuid.UUID, req domain.CreateGoalRequest) (*domain.Goal, error) {
	if err := validateGoalTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateGoalCategory(req.Category); err != nil {
		return nil, err
	}
	if !req.TargetAmount.IsPositive() {
		return nil, validationErrorf("target amount must be greater than zero")
	}
	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		return nil, err
	}

	current := decimal.Zero
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return nil, validationErrorf("current amount cannot be negative")
		}
		current = *req.CurrentAmount
	}

	goal := &domain.Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Description:   trimmedOrNil(req.Description),
		TargetAmount:  req.TargetAmount,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Category:      req.Category,
		IsActive:      true,
	}

	if err := s.repo.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}

	goalMetrics(goal, time.Now().UTC())
	return goal, nil
}

// GetGoal retrieves a goal scoped to its owner.
func (s *GoalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*domain.Goal, error) {
	goal, err := s.repo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	goalMetrics(goal, time.Now().UTC())
	return goal, nil
}

// ListGoals returns the owner's goals, nearest target date first.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID, activeOnly *bool, category string) ([]domain.Goal, error) {
	if category != "" {
		if err := validateGoalCategory(category); err != nil {
			return nil, err
		}
	}
	goals, err := s.repo.ListGoalsByUserID(ctx, userID, activeOnly, category)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range goals {
		goalMetrics(&goals[i], now)
	}
	return goals, nil
}

// UpdateGoal applies partial-update semantics: absent fields stay untouched
// and an explicit null clears the description.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID uuid.UUID, req domain.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.repo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validateGoalTitle(*req.Title); err != nil {
			return nil, err
		}
		goal.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description.Set {
		goal.Description = trimmedOrNil(req.Description.Value)
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, validationErrorf("target amount must be greater than zero")
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		if req.CurrentAmount.IsNegative() {
			return nil, validationErrorf("current amount cannot be negative")
		}
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetDate != nil {
		targetDate, err := parseDate(*req.TargetDate)
		if err != nil {
			return nil, err
		}
		goal.TargetDate = targetDate
	}
	if req.IsActive != nil {
		goal.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}

	goalMetrics(goal, time.Now().UTC())
	return goal, nil
}

// DeactivateGoal soft-deletes a goal: the active flag is cleared and the
// goal drops out of listings and the summary, but the row survives.
func (s *GoalService) DeactivateGoal(ctx context.Context, userID, goalID uuid.UUID) error {
	return s.repo.DeactivateGoal(ctx, goalID, userID)
}

// Contribute adds a positive amount to the goal's current amount.
func (s *GoalService) Contribute(ctx context.Context, userID, goalID uuid.UUID, req domain.ContributeRequest) (*domain.Goal, error) {
	if !req.Amount.IsPositive() {
		return nil, validationErrorf("contribution amount must be greater than zero")
	}

	goal, err := s.repo.FindGoalByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(req.Amount)
	if err := s.repo.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}

	if s.events != nil {
		event := rabbitmq.LedgerEvent{
			UserID:    userID,
			EntityID:  goal.ID,
			Amount:    req.Amount.String(),
			Timestamp: time.Now().UTC(),
		}
		if err := s.events.Publish(ctx, rabbitmq.LedgerEventExchange, "goal.contributed", event); err != nil {
			log.Printf("level=warn component=goal_service msg=\"event publish failed\" routing_key=goal.contributed err=%v", err)
		}
	}

	goalMetrics(goal, time.Now().UTC())
	return goal, nil
}

// GoalsSummary aggregates the owner's active goals: overall totals and
// progress, a per-category breakdown, and the urgent goals (unfinished with
// 30 days or fewer to the target date). A goal counts as completed once its
// current amount reaches the target.
func (s *GoalService) GoalsSummary(ctx context.Context, userID uuid.UUID) (*domain.GoalsSummary, error) {
	active := true
	goals, err := s.repo.ListGoalsByUserID(ctx, userID, &active, "")
	if err != nil {
		return nil, err
	}

	summary := &domain.GoalsSummary{
		TotalGoals:           len(goals),
		ActiveGoals:          len(goals),
		TotalTargetAmount:    decimal.Zero,
		TotalCurrentAmount:   decimal.Zero,
		TotalRemainingAmount: decimal.Zero,
		ByCategory:           map[string]domain.GoalCategorySummary{},
		UrgentGoals:          []domain.Goal{},
	}

	now := time.Now().UTC()
	for _, goal := range goals {
		summary.TotalTargetAmount = summary.TotalTargetAmount.Add(goal.TargetAmount)
		summary.TotalCurrentAmount = summary.TotalCurrentAmount.Add(goal.CurrentAmount)
		if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
			summary.CompletedGoals++
		}

		byCategory := summary.ByCategory[goal.Category]
		byCategory.Count++
		byCategory.TargetAmount = byCategory.TargetAmount.Add(goal.TargetAmount)
		byCategory.CurrentAmount = byCategory.CurrentAmount.Add(goal.CurrentAmount)
		summary.ByCategory[goal.Category] = byCategory

		goalMetrics(&goal, now)
		if goal.DaysRemaining > 0 && goal.DaysRemaining <= 30 && goal.CurrentAmount.LessThan(goal.TargetAmount) {
			summary.UrgentGoals = append(summary.UrgentGoals, goal)
		}
	}

	summary.TotalRemainingAmount = summary.TotalTargetAmount.Sub(summary.TotalCurrentAmount)
	if summary.TotalTargetAmount.IsPositive() {
		ratio, _ := summary.TotalCurrentAmount.Div(summary.TotalTargetAmount).Float64()
		summary.OverallProgress = math.Round(ratio*100*100) / 100
	}
	return summary, nil
}
