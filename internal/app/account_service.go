/**
 * @description
 * Business logic for the account ledger: owner-scoped CRUD over accounts
 * and the summary aggregate. The cached balance is only ever adjusted here
 * through an explicit override on update; transaction-driven adjustments
 * belong to the transaction recorder.
 *
 * @dependencies
 * - internal/domain, internal/store: domain models and data access.
 * - pkg/rabbitmq: ledger event publishing.
 */

package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/store"
	"github.com/financeflow/finance-service/pkg/rabbitmq"
)

// DefaultCurrency is applied when an account is created without one.
const DefaultCurrency = "USD"

// AccountService provides the core business logic for the account ledger.
type AccountService struct {
	repo   store.AccountRepository
	events rabbitmq.Publisher
}

// NewAccountService creates a new account service instance.
func NewAccountService(repo store.AccountRepository, events rabbitmq.Publisher) *AccountService {
	return &AccountService{repo: repo, events: events}
}

// CreateAccount validates the request and opens a new active account. The
// initial balance defaults to zero and doubles as the opening balance the
// drift audit measures against.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, req domain.CreateAccountRequest) (*domain.Account, error) {
	if err := validateAccountName(req.Name); err != nil {
		return nil, err
	}
	if err := validateAccountType(req.Type); err != nil {
		return nil, err
	}

	balance := decimal.Zero
	if req.Balance != nil {
		if err := validateBalance(*req.Balance); err != nil {
			return nil, err
		}
		balance = *req.Balance
	}

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	if err := validateCurrency(currency); err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           strings.TrimSpace(req.Name),
		Type:           req.Type,
		Balance:        balance,
		OpeningBalance: balance,
		Currency:       currency,
		IsActive:       true,
		BankName:       trimmedOrNil(req.BankName),
		AccountNumber:  trimmedOrNil(req.AccountNumber),
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.publish(ctx, "account.created", rabbitmq.LedgerEvent{
		UserID:    userID,
		EntityID:  account.ID,
		Amount:    account.Balance.String(),
		Timestamp: time.Now().UTC(),
	})

	return account, nil
}

// GetAccount retrieves an account scoped to its owner. A row owned by
// another user reports the same not-found error as an absent one.
func (s *AccountService) GetAccount(ctx context.Context, userID, accountID uuid.UUID) (*domain.Account, error) {
	return s.repo.FindAccountByID(ctx, accountID, userID)
}

// ListAccounts returns the owner's accounts, newest first.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, activeOnly *bool) ([]domain.Account, error) {
	return s.repo.ListAccountsByUserID(ctx, userID, activeOnly)
}

// UpdateAccount applies partial-update semantics: absent fields are left
// unchanged; an explicit JSON null clears an optional string field. The
// balance is only forwarded to the store when the payload carries one, so a
// transaction committed mid-request never gets overwritten by the stale read
// above.
func (s *AccountService) UpdateAccount(ctx context.Context, userID, accountID uuid.UUID, req domain.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.repo.FindAccountByID(ctx, accountID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateAccountName(*req.Name); err != nil {
			return nil, err
		}
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Balance != nil {
		if err := validateBalance(*req.Balance); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.BankName.Set {
		account.BankName = trimmedOrNil(req.BankName.Value)
	}
	if req.AccountNumber.Set {
		account.AccountNumber = trimmedOrNil(req.AccountNumber.Value)
	}

	if err := s.repo.UpdateAccount(ctx, account, req.Balance); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account: the active flag is cleared and
// the balance and transaction history stay intact.
func (s *AccountService) DeactivateAccount(ctx context.Context, userID, accountID uuid.UUID) error {
	return s.repo.DeactivateAccount(ctx, accountID, userID)
}

// AccountsSummary totals the owner's active accounts by type.
func (s *AccountService) AccountsSummary(ctx context.Context, userID uuid.UUID) (*domain.AccountsSummary, error) {
	active := true
	accounts, err := s.repo.ListAccountsByUserID(ctx, userID, &active)
	if err != nil {
		return nil, err
	}

	summary := &domain.AccountsSummary{
		TotalAccounts: len(accounts),
		TotalBalance:  decimal.Zero,
		ByType:        map[string]decimal.Decimal{},
	}
	for _, accountType := range domain.AccountTypes {
		summary.ByType[accountType] = decimal.Zero
	}
	for _, account := range accounts {
		summary.TotalBalance = summary.TotalBalance.Add(account.Balance)
		summary.ByType[account.Type] = summary.ByType[account.Type].Add(account.Balance)
	}
	return summary, nil
}

func (s *AccountService) publish(ctx context.Context, routingKey string, event rabbitmq.LedgerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, rabbitmq.LedgerEventExchange, routingKey, event); err != nil {
		log.Printf("level=warn component=account_service msg=\"event publish failed\" routing_key=%s err=%v", routingKey, err)
	}
}

// trimmedOrNil trims an optional string, mapping empty results to nil so
// cleared fields store as NULL.
func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
