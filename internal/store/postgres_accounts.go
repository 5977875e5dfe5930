/**
 * @description
 * PostgreSQL implementation of the AccountRepository interface. Ownership
 * scoping happens in the WHERE clause of every query so a row owned by a
 * different user is indistinguishable from an absent one.
 */

package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

const accountColumns = `id, user_id, name, type, balance, opening_balance, currency, is_active, bank_name, account_number, created_at, updated_at`

func scanAccount(row pgx.Row, account *domain.Account) error {
	return row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Balance,
		&account.OpeningBalance,
		&account.Currency,
		&account.IsActive,
		&account.BankName,
		&account.AccountNumber,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}

// CreateAccount inserts a new account row and fills in the generated
// timestamps.
func (r *PostgresRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, user_id, name, type, balance, opening_balance, currency, is_active, bank_name, account_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.Type,
		account.Balance,
		account.OpeningBalance,
		account.Currency,
		account.IsActive,
		account.BankName,
		account.AccountNumber,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
}

// FindAccountByID retrieves an account scoped to its owner.
func (r *PostgresRepository) FindAccountByID(ctx context.Context, accountID, userID uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`
	err := scanAccount(r.db.QueryRow(ctx, query, accountID, userID), &account)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ListAccountsByUserID returns a user's accounts, newest first, optionally
// filtered on the active flag.
func (r *PostgresRepository) ListAccountsByUserID(ctx context.Context, userID uuid.UUID, activeOnly *bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1`
	args := []interface{}{userID}
	if activeOnly != nil {
		query += ` AND is_active = $2`
		args = append(args, *activeOnly)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := scanAccount(rows, &account); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateAccount persists the mutable fields of an account. The balance
// columns are only written for an explicit override, which re-bases the
// opening balance by the same delta so the drift audit's invariant
// (balance = opening + signed transaction sum) survives it. Without an
// override the current balance is read back instead, so a transaction
// committed after the caller's read is never clobbered.
func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *domain.Account, overrideBalance *decimal.Decimal) error {
	var err error
	if overrideBalance != nil {
		query := `
			UPDATE accounts
			SET name = $1,
				opening_balance = opening_balance + ($2 - balance),
				balance = $2,
				is_active = $3, bank_name = $4, account_number = $5, updated_at = NOW()
			WHERE id = $6 AND user_id = $7
			RETURNING balance, opening_balance, updated_at
		`
		err = r.db.QueryRow(ctx, query,
			account.Name,
			*overrideBalance,
			account.IsActive,
			account.BankName,
			account.AccountNumber,
			account.ID,
			account.UserID,
		).Scan(&account.Balance, &account.OpeningBalance, &account.UpdatedAt)
	} else {
		query := `
			UPDATE accounts
			SET name = $1, is_active = $2, bank_name = $3, account_number = $4, updated_at = NOW()
			WHERE id = $5 AND user_id = $6
			RETURNING balance, opening_balance, updated_at
		`
		err = r.db.QueryRow(ctx, query,
			account.Name,
			account.IsActive,
			account.BankName,
			account.AccountNumber,
			account.ID,
			account.UserID,
		).Scan(&account.Balance, &account.OpeningBalance, &account.UpdatedAt)
	}
	if err == pgx.ErrNoRows {
		return ErrAccountNotFound
	}
	return err
}

// DeactivateAccount clears the active flag. Balance and history stay put.
func (r *PostgresRepository) DeactivateAccount(ctx context.Context, accountID, userID uuid.UUID) error {
	result, err := r.db.Exec(ctx,
		`UPDATE accounts SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
