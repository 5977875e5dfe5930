/**
 * @description
 * This file defines the account domain model and its request DTOs. An account
 * carries a cached balance that is maintained incrementally by the transaction
 * recorder; it is never recomputed from scratch on the request path.
 *
 * @notes
 * - Monetary values use shopspring/decimal to avoid floating-point drift.
 * - Accounts are soft-deleted: deactivation clears the active flag and keeps
 *   the transaction history intact.
 */

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supported account types.
const (
	AccountTypeChecking   = "CHECKING"
	AccountTypeSavings    = "SAVINGS"
	AccountTypeCredit     = "CREDIT"
	AccountTypeInvestment = "INVESTMENT"
)

// AccountTypes is the closed set of valid account types.
var AccountTypes = []string{AccountTypeChecking, AccountTypeSavings, AccountTypeCredit, AccountTypeInvestment}

// SupportedCurrencies is the closed set of currency codes an account may use.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD"}

// Account maps directly to the `accounts` table. OpeningBalance is internal
// bookkeeping for the drift audit: the cached balance must always equal
// opening balance plus the signed sum of persisted transactions.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"-"`
	Currency       string          `json:"currency"`
	IsActive       bool            `json:"is_active"`
	BankName       *string         `json:"bank_name,omitempty"`
	AccountNumber  *string         `json:"account_number,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateAccountRequest is the DTO for opening a new account.
type CreateAccountRequest struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
}

// UpdateAccountRequest carries partial-update semantics: absent fields are
// left unchanged, and an explicit JSON null on an optional string field
// clears it.
type UpdateAccountRequest struct {
	Name          *string          `json:"name,omitempty"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	BankName      NullableString   `json:"bank_name,omitempty"`
	AccountNumber NullableString   `json:"account_number,omitempty"`
}

// AccountsSummary aggregates balances across a user's active accounts.
type AccountsSummary struct {
	TotalAccounts int                        `json:"total_accounts"`
	TotalBalance  decimal.Decimal            `json:"total_balance"`
	ByType        map[string]decimal.Decimal `json:"by_type"`
}

// NullableString distinguishes a field that was omitted from one that was
// sent as an explicit JSON null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present; a null token leaves
// Value nil, which callers interpret as "clear".
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// MarshalJSON round-trips the wrapped value.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
