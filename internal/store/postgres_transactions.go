/**
 * @description
 * PostgreSQL implementation of the TransactionRepository and
 * BalanceAuditRepository interfaces. This is the storage half of the
 * balance-consistency protocol: every mutation that affects an account's
 * cached balance commits the ledger row and the balance adjustment in a
 * single database transaction, and the adjustment itself is an in-place
 * `balance = balance + delta` so concurrent writers serialize on the
 * account row.
 */

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

const transactionColumns = `t.id, t.user_id, t.account_id, t.amount, t.description, t.category, t.type, t.date, t.tags, t.created_at, t.updated_at`

func scanTransaction(row pgx.Row, tx *domain.Transaction, withAccount bool) error {
	dest := []interface{}{
		&tx.ID,
		&tx.UserID,
		&tx.AccountID,
		&tx.Amount,
		&tx.Description,
		&tx.Category,
		&tx.Type,
		&tx.Date,
		&tx.Tags,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	}
	// Account columns come from a LEFT JOIN and are NULL when the account
	// row no longer exists.
	var accountName, accountType *string
	if withAccount {
		dest = append(dest, &accountName, &accountType)
	}
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if accountName != nil && accountType != nil {
		tx.Account = &domain.AccountSummary{Name: *accountName, Type: *accountType}
	}
	return nil
}

// CreateTransactionWithBalance inserts the transaction row and applies the
// balance delta to the owning account in one atomic commit.
func (r *PostgresRepository) CreateTransactionWithBalance(ctx context.Context, tx *domain.Transaction, delta decimal.Decimal) error {
	dbTx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	insert := `
		INSERT INTO transactions (id, user_id, account_id, amount, description, category, type, date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err = dbTx.QueryRow(ctx, insert,
		tx.ID, tx.UserID, tx.AccountID, tx.Amount, tx.Description, tx.Category, tx.Type, tx.Date, tx.Tags,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return err
	}

	if !delta.IsZero() {
		if _, err := dbTx.Exec(ctx,
			`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
			delta, tx.AccountID,
		); err != nil {
			return err
		}
	}

	return dbTx.Commit(ctx)
}

// FindTransactionByID retrieves a transaction scoped to its owner, with the
// denormalized account summary attached when the account still exists. The
// join is LEFT so a transaction stays readable (and deletable) after its
// account row is gone.
func (r *PostgresRepository) FindTransactionByID(ctx context.Context, transactionID, userID uuid.UUID) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `
		SELECT ` + transactionColumns + `, a.name, a.type
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND t.user_id = $2
	`
	err := scanTransaction(r.db.QueryRow(ctx, query, transactionID, userID), &tx, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

// buildTransactionFilter renders the WHERE conditions shared by the list and
// stats queries. Range bounds are inclusive on both ends.
func buildTransactionFilter(userID uuid.UUID, filters domain.TransactionFilters) (string, []interface{}) {
	conditions := []string{"t.user_id = $1"}
	args := []interface{}{userID}

	add := func(condition string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filters.AccountID != nil {
		add("t.account_id = $%d", *filters.AccountID)
	}
	if filters.Type != "" {
		add("t.type = $%d", filters.Type)
	}
	if filters.Category != "" {
		add("t.category = $%d", filters.Category)
	}
	if filters.StartDate != nil {
		add("t.date >= $%d", *filters.StartDate)
	}
	if filters.EndDate != nil {
		add("t.date <= $%d", *filters.EndDate)
	}
	if filters.MinAmount != nil {
		add("t.amount >= $%d", *filters.MinAmount)
	}
	if filters.MaxAmount != nil {
		add("t.amount <= $%d", *filters.MaxAmount)
	}
	if filters.Search != "" {
		add("t.description ILIKE $%d", "%"+filters.Search+"%")
	}

	return strings.Join(conditions, " AND "), args
}

// ListTransactions returns a user's transactions, newest date first, with
// account summaries attached.
func (r *PostgresRepository) ListTransactions(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	where, args := buildTransactionFilter(userID, filters)
	query := `
		SELECT ` + transactionColumns + `, a.name, a.type
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		WHERE ` + where + `
		ORDER BY t.date DESC, t.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var tx domain.Transaction
		if err := scanTransaction(rows, &tx, true); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// UpdateTransactionWithBalance persists the transaction's mutable fields and
// applies the amount-change delta to the owning account in one atomic commit.
func (r *PostgresRepository) UpdateTransactionWithBalance(ctx context.Context, tx *domain.Transaction, delta decimal.Decimal) error {
	dbTx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	update := `
		UPDATE transactions
		SET amount = $1, description = $2, category = $3, date = $4, tags = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING updated_at
	`
	err = dbTx.QueryRow(ctx, update,
		tx.Amount, tx.Description, tx.Category, tx.Date, tx.Tags, tx.ID, tx.UserID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrTransactionNotFound
		}
		return err
	}

	if !delta.IsZero() {
		if _, err := dbTx.Exec(ctx,
			`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
			delta, tx.AccountID,
		); err != nil {
			return err
		}
	}

	return dbTx.Commit(ctx)
}

// DeleteTransactionWithBalance hard-deletes the transaction and applies the
// compensating delta to the account in one atomic commit. A vanished
// account simply skips the compensation: the balance UPDATE matching zero
// rows is not an error.
func (r *PostgresRepository) DeleteTransactionWithBalance(ctx context.Context, transactionID, accountID uuid.UUID, delta decimal.Decimal) error {
	dbTx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer dbTx.Rollback(ctx)

	if !delta.IsZero() {
		if _, err := dbTx.Exec(ctx,
			`UPDATE accounts SET balance = balance + $1, updated_at = NOW() WHERE id = $2`,
			delta, accountID,
		); err != nil {
			return err
		}
	}

	result, err := dbTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	return dbTx.Commit(ctx)
}

// TransactionStats aggregates totals, per-category expense totals, and the
// five most recent matching transactions.
func (r *PostgresRepository) TransactionStats(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) (*domain.TransactionStats, error) {
	where, args := buildTransactionFilter(userID, filters)

	stats := &domain.TransactionStats{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    map[string]decimal.Decimal{},
	}

	totals := `
		SELECT
			COUNT(*),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'INCOME'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'EXPENSE'), 0)
		FROM transactions t
		WHERE ` + where
	err := r.db.QueryRow(ctx, totals, args...).Scan(&stats.TotalTransactions, &stats.TotalIncome, &stats.TotalExpenses)
	if err != nil {
		return nil, err
	}
	stats.NetIncome = stats.TotalIncome.Sub(stats.TotalExpenses)

	byCategory := `
		SELECT t.category, COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'EXPENSE'), 0)
		FROM transactions t
		WHERE ` + where + `
		GROUP BY t.category
	`
	rows, err := r.db.Query(ctx, byCategory, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent := `
		SELECT ` + transactionColumns + `, a.name, a.type
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		WHERE ` + where + `
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT 5
	`
	recentRows, err := r.db.Query(ctx, recent, args...)
	if err != nil {
		return nil, err
	}
	defer recentRows.Close()

	stats.RecentTransactions = []domain.Transaction{}
	for recentRows.Next() {
		var tx domain.Transaction
		if err := scanTransaction(recentRows, &tx, true); err != nil {
			return nil, err
		}
		stats.RecentTransactions = append(stats.RecentTransactions, tx)
	}
	return stats, recentRows.Err()
}

// AccountBalanceDrift recomputes the signed sum of persisted transactions
// per account and reports accounts whose cached balance disagrees. Only the
// audit job calls this; the request path maintains balances incrementally.
func (r *PostgresRepository) AccountBalanceDrift(ctx context.Context) ([]domain.BalanceDrift, error) {
	query := `
		SELECT a.id, a.balance, a.opening_balance + COALESCE(SUM(
			CASE t.type
				WHEN 'INCOME' THEN t.amount
				WHEN 'EXPENSE' THEN -t.amount
				ELSE 0
			END
		), 0) AS ledger_balance
		FROM accounts a
		LEFT JOIN transactions t ON t.account_id = a.id
		GROUP BY a.id, a.balance, a.opening_balance
		HAVING a.balance <> a.opening_balance + COALESCE(SUM(
			CASE t.type
				WHEN 'INCOME' THEN t.amount
				WHEN 'EXPENSE' THEN -t.amount
				ELSE 0
			END
		), 0)
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drifts := []domain.BalanceDrift{}
	for rows.Next() {
		var drift domain.BalanceDrift
		if err := rows.Scan(&drift.AccountID, &drift.CachedBalance, &drift.LedgerBalance); err != nil {
			return nil, err
		}
		drifts = append(drifts, drift)
	}
	return drifts, rows.Err()
}

// SetAccountBalance overwrites an account's cached balance. Used by the
// audit job to repair drift.
func (r *PostgresRepository) SetAccountBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) error {
	result, err := r.db.Exec(ctx,
		`UPDATE accounts SET balance = $1, updated_at = NOW() WHERE id = $2`,
		balance, accountID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
