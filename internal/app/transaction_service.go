/**
 * @description
 * Business logic for the transaction recorder: the sole mutator of an
 * account's cached balance. Every mutation validates first, resolves the
 * owning account, derives its delta from the sign rule in balance.go, and
 * hands the ledger row and the delta to the store, which commits both in
 * one database transaction.
 *
 * @dependencies
 * - internal/domain, internal/store: domain models and data access.
 * - internal/statement: statement parsing for the import path.
 * - pkg/rabbitmq: ledger event publishing.
 */

package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/statement"
	"github.com/financeflow/finance-service/internal/store"
	"github.com/financeflow/finance-service/pkg/rabbitmq"
)

// TransactionService provides the core business logic for transactions.
type TransactionService struct {
	repo     store.TransactionRepository
	accounts store.AccountRepository
	events   rabbitmq.Publisher
}

// NewTransactionService creates a new transaction service instance.
func NewTransactionService(repo store.TransactionRepository, accounts store.AccountRepository, events rabbitmq.Publisher) *TransactionService {
	return &TransactionService{repo: repo, accounts: accounts, events: events}
}

// CreateTransaction validates the request, resolves the account through the
// owner-scoped read path, and records the transaction together with its
// balance effect.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, req domain.CreateTransactionRequest) (*domain.Transaction, error) {
	if err := validateTransactionAmount(req.Amount); err != nil {
		return nil, err
	}
	if err := validateDescription(req.Description); err != nil {
		return nil, err
	}
	if err := validateTransactionCategory(req.Category); err != nil {
		return nil, err
	}
	if err := validateTransactionType(req.Type); err != nil {
		return nil, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindAccountByID(ctx, req.AccountID, userID)
	if err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	tx := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		AccountID:   account.ID,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Type:        req.Type,
		Date:        date,
		Tags:        tags,
	}

	delta := balanceEffect(tx.Type, tx.Amount)
	if err := s.repo.CreateTransactionWithBalance(ctx, tx, delta); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	tx.Account = &domain.AccountSummary{Name: account.Name, Type: account.Type}

	s.publish(ctx, "transaction.created", rabbitmq.LedgerEvent{
		UserID:    userID,
		EntityID:  tx.ID,
		Amount:    tx.Amount.String(),
		Timestamp: time.Now().UTC(),
	})

	return tx, nil
}

// GetTransaction retrieves a transaction scoped to its owner, with the
// denormalized account summary attached.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error) {
	return s.repo.FindTransactionByID(ctx, transactionID, userID)
}

// ListTransactions returns the owner's transactions, newest date first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filters)
}

// UpdateTransaction applies partial-update semantics. An amount change
// produces a delta of (new - old) under the transaction's existing type.
// Moving a transaction to a different account is not supported: adjusting
// only the original account's balance would corrupt both ledgers, so a
// payload naming another account id is rejected outright.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID uuid.UUID, req domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.repo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil && *req.AccountID != existing.AccountID {
		return nil, validationErrorf("transactions cannot be moved to a different account")
	}

	delta := decimal.Zero
	if req.Amount != nil {
		if err := validateTransactionAmount(*req.Amount); err != nil {
			return nil, err
		}
		delta = amountDiffEffect(existing.Type, existing.Amount, *req.Amount)
		existing.Amount = *req.Amount
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			return nil, err
		}
		existing.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		if err := validateTransactionCategory(*req.Category); err != nil {
			return nil, err
		}
		existing.Category = *req.Category
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		existing.Date = date
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}

	if err := s.repo.UpdateTransactionWithBalance(ctx, existing, delta); err != nil {
		return nil, err
	}

	s.publish(ctx, "transaction.updated", rabbitmq.LedgerEvent{
		UserID:    userID,
		EntityID:  existing.ID,
		Amount:    existing.Amount.String(),
		Timestamp: time.Now().UTC(),
	})

	return existing, nil
}

// DeleteTransaction hard-deletes a transaction after un-applying its
// balance effect. When the account has been removed out of band the
// compensation is silently skipped by the store.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	existing, err := s.repo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return err
	}

	delta := compensationEffect(existing.Type, existing.Amount)
	if err := s.repo.DeleteTransactionWithBalance(ctx, transactionID, existing.AccountID, delta); err != nil {
		return err
	}

	s.publish(ctx, "transaction.deleted", rabbitmq.LedgerEvent{
		UserID:    userID,
		EntityID:  transactionID,
		Amount:    existing.Amount.String(),
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// TransactionStats aggregates the owner's transaction history.
func (s *TransactionService) TransactionStats(ctx context.Context, userID uuid.UUID, filters domain.TransactionFilters) (*domain.TransactionStats, error) {
	return s.repo.TransactionStats(ctx, userID, filters)
}

// ImportResult summarizes a statement import.
type ImportResult struct {
	Created []domain.Transaction `json:"created"`
	Skipped int                  `json:"skipped"`
}

// ImportStatement parses a plain-text statement and records each entry as a
// transaction against the given account: positive amounts become INCOME,
// negative amounts EXPENSE, category assigned by keyword rules. Entries go
// through the normal create path so every row carries its balance effect.
func (s *TransactionService) ImportStatement(ctx context.Context, userID, accountID uuid.UUID, text string) (*ImportResult, error) {
	if _, err := s.accounts.FindAccountByID(ctx, accountID, userID); err != nil {
		return nil, err
	}

	entries, skipped := statement.Parse(text)
	result := &ImportResult{Created: []domain.Transaction{}, Skipped: skipped}

	for _, entry := range entries {
		txType := domain.TransactionTypeIncome
		if entry.Amount.IsNegative() {
			txType = domain.TransactionTypeExpense
		}

		tx, err := s.CreateTransaction(ctx, userID, domain.CreateTransactionRequest{
			AccountID:   accountID,
			Amount:      entry.Amount.Abs(),
			Description: entry.Description,
			Category:    statement.Categorize(entry.Description, entry.Amount),
			Type:        txType,
			Date:        entry.Date.Format("2006-01-02"),
		})
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Created = append(result.Created, *tx)
	}

	return result, nil
}

func (s *TransactionService) publish(ctx context.Context, routingKey string, event rabbitmq.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, rabbitmq.LedgerEventExchange, routingKey, event); err != nil {
		log.Printf("level=warn component=transaction_service msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}
