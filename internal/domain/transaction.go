/**
 * @description
 * This file defines the transaction domain model, its request DTOs, and the
 * filter/statistics types used by the listing and stats endpoints.
 *
 * @notes
 * - Amounts are stored non-negative; the direction of the balance effect is
 *   carried by the transaction type, not by the sign of the amount.
 * - Transactions are hard-deleted. The recorder applies a compensating
 *   balance adjustment to the owning account at delete time.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionTypeIncome   = "INCOME"
	TransactionTypeExpense  = "EXPENSE"
	TransactionTypeTransfer = "TRANSFER"
)

// TransactionTypes is the closed set of valid transaction types.
var TransactionTypes = []string{TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer}

// TransactionCategories is the closed set of valid transaction categories.
var TransactionCategories = []string{
	"GROCERIES", "DINING", "TRANSPORT", "HOUSING", "UTILITIES",
	"ENTERTAINMENT", "HEALTHCARE", "SHOPPING", "EDUCATION", "TRAVEL",
	"SALARY", "INVESTMENT", "TRANSFER", "OTHER",
}

// AccountSummary is the denormalized slice of account data attached to
// transaction responses for display.
type AccountSummary struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Transaction maps directly to the `transactions` table.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	Tags        []string        `json:"tags"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Account     *AccountSummary `json:"account,omitempty"`
}

// CreateTransactionRequest is the DTO for recording a new transaction.
type CreateTransactionRequest struct {
	AccountID   uuid.UUID       `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	Tags        []string        `json:"tags,omitempty"`
}

// UpdateTransactionRequest carries partial-update semantics. The account a
// transaction belongs to is immutable; a payload naming a different account
// id is rejected rather than silently corrupting two balances.
type UpdateTransactionRequest struct {
	AccountID   *uuid.UUID       `json:"account_id,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

// TransactionFilters narrows list and stats queries. All bounds are
// inclusive; Search is a case-insensitive substring match on description.
type TransactionFilters struct {
	AccountID *uuid.UUID
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	Search    string
}

// TransactionStats aggregates a user's transaction history.
type TransactionStats struct {
	TotalTransactions  int                        `json:"total_transactions"`
	TotalIncome        decimal.Decimal            `json:"total_income"`
	TotalExpenses      decimal.Decimal            `json:"total_expenses"`
	NetIncome          decimal.Decimal            `json:"net_income"`
	ByCategory         map[string]decimal.Decimal `json:"by_category"`
	RecentTransactions []Transaction              `json:"recent_transactions"`
}

// MonthlyNet is one month's income minus expenses.
type MonthlyNet struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// SavingsForecast carries the monthly net-savings history and a naive
// projection of the months ahead.
type SavingsForecast struct {
	History  []MonthlyNet `json:"history"`
	Forecast []MonthlyNet `json:"forecast"`
}

// BalanceDrift reports an account whose cached balance has diverged from
// the balance implied by history (opening balance plus the signed sum of
// its persisted transactions).
type BalanceDrift struct {
	AccountID     uuid.UUID       `json:"account_id"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
}
