/**
 * @description
 * PostgreSQL implementation of the GoalRepository interface.
 */

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/financeflow/finance-service/internal/domain"
)

const goalColumns = `id, user_id, title, description, target_amount, current_amount, target_date, category, is_active, created_at, updated_at`

func scanGoal(row pgx.Row, goal *domain.Goal) error {
	return row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Category,
		&goal.IsActive,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
}

// CreateGoal inserts a new goal row.
func (r *PostgresRepository) CreateGoal(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (id, user_id, title, description, target_amount, current_amount, target_date, category, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Category,
		goal.IsActive,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)
}

// FindGoalByID retrieves a goal scoped to its owner.
func (r *PostgresRepository) FindGoalByID(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error) {
	var goal domain.Goal
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	err := scanGoal(r.db.QueryRow(ctx, query, goalID, userID), &goal)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return &goal, nil
}

// ListGoalsByUserID returns a user's goals ordered by target date ascending,
// optionally filtered on the active flag and category.
func (r *PostgresRepository) ListGoalsByUserID(ctx context.Context, userID uuid.UUID, activeOnly *bool, category string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []interface{}{userID}
	if activeOnly != nil {
		args = append(args, *activeOnly)
		query += ` AND is_active = $2`
	}
	if category != "" {
		args = append(args, category)
		if len(args) == 2 {
			query += ` AND category = $2`
		} else {
			query += ` AND category = $3`
		}
	}
	query += ` ORDER BY target_date ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		var goal domain.Goal
		if err := scanGoal(rows, &goal); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// UpdateGoal persists the mutable fields of a goal.
func (r *PostgresRepository) UpdateGoal(ctx context.Context, goal *domain.Goal) error {
	query := `
		UPDATE goals
		SET title = $1, description = $2, target_amount = $3, current_amount = $4,
			target_date = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		goal.Title,
		goal.Description,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.IsActive,
		goal.ID,
		goal.UserID,
	).Scan(&goal.UpdatedAt)
	if err == pgx.ErrNoRows {
		return ErrGoalNotFound
	}
	return err
}

// DeactivateGoal clears the active flag. The goal and its contribution
// history stay queryable.
func (r *PostgresRepository) DeactivateGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE goals SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}
