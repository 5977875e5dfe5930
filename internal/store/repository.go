/**
 * @description
 * This file defines the repository contracts for the finance-service. The
 * interfaces are split per concern so that services depend only on the data
 * access they actually use, and so tests can stand in small fakes.
 *
 * @dependencies
 * - github.com/google/uuid: entity identity.
 * - github.com/shopspring/decimal: monetary values.
 * - internal/domain: domain models.
 */

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

// AccountRepository is the data access contract for the account ledger.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	// FindAccountByID is scoped to the owner: a row owned by another user is
	// reported as not found, identical to an absent row.
	FindAccountByID(ctx context.Context, accountID, userID uuid.UUID) (*domain.Account, error)
	ListAccountsByUserID(ctx context.Context, userID uuid.UUID, activeOnly *bool) ([]domain.Account, error)
	// UpdateAccount persists the non-balance fields. overrideBalance, when
	// non-nil, additionally rewrites the cached balance and re-bases the
	// opening balance in the same statement; when nil the balance columns
	// are never touched, so a recorder commit that lands between the
	// caller's read and this write survives.
	UpdateAccount(ctx context.Context, account *domain.Account, overrideBalance *decimal.Decimal) error
	DeactivateAccount(ctx context.Context, accountID, userID uuid.UUID) error
}

// TransactionRepository is the data access contract for the transaction
// recorder. Every mutation that carries a balance delta commits the ledger
// row and the account row in one database transaction; the delta is applied
// as an in-place increment so concurrent mutations serialize on the account
// row instead of racing a read-modify-write.
type TransactionRepository interface {
	CreateTransactionWithBalance(ctx context.Context, tx *domain.Transaction, delta decimal.Decimal) error
	FindTransactionByID(ctx context.Context, transactionID, userID uuid.UUID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) ([]domain.Transaction, error)
	UpdateTransactionWithBalance(ctx context.Context, tx *domain.Transaction, delta decimal.Decimal) error
	// DeleteTransactionWithBalance hard-deletes the row. The compensating
	// adjustment is skipped silently when the account no longer exists.
	DeleteTransactionWithBalance(ctx context.Context, transactionID, accountID uuid.UUID, delta decimal.Decimal) error
	TransactionStats(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) (*domain.TransactionStats, error)
}

// BalanceAuditRepository exposes the recompute-from-history path used only
// by the periodic drift audit, never by the request path.
type BalanceAuditRepository interface {
	AccountBalanceDrift(ctx context.Context) ([]domain.BalanceDrift, error)
	SetAccountBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) error
}

// GoalRepository is the data access contract for savings goals.
type GoalRepository interface {
	CreateGoal(ctx context.Context, goal *domain.Goal) error
	FindGoalByID(ctx context.Context, goalID, userID uuid.UUID) (*domain.Goal, error)
	ListGoalsByUserID(ctx context.Context, userID uuid.UUID, activeOnly *bool, category string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, goal *domain.Goal) error
	DeactivateGoal(ctx context.Context, goalID, userID uuid.UUID) error
}

// UserRepository is the data access contract for auth.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
