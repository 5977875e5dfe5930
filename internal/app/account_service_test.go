package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
	"github.com/financeflow/finance-service/internal/store"
)

func TestCreateAccount_Defaults(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	userID := uuid.New()

	account, err := svc.CreateAccount(context.Background(), userID, domain.CreateAccountRequest{
		Name: "Everyday Checking",
		Type: "CHECKING",
	})
	if err != nil {
		t.Fatalf("expected account to be created, got %v", err)
	}
	if !account.Balance.IsZero() {
		t.Fatalf("expected balance to default to zero, got %s", account.Balance)
	}
	if !account.OpeningBalance.Equal(account.Balance) {
		t.Fatalf("expected opening balance to match initial balance, got %s", account.OpeningBalance)
	}
	if account.Currency != "USD" {
		t.Fatalf("expected currency to default to USD, got %s", account.Currency)
	}
	if !account.IsActive {
		t.Fatal("expected new account to start active")
	}
}

func TestCreateAccount_RejectsInvalidInput(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	negative := decimal.RequireFromString("-10")

	tests := []struct {
		name string
		req  domain.CreateAccountRequest
	}{
		{name: "short name", req: domain.CreateAccountRequest{Name: " x ", Type: "CHECKING"}},
		{name: "unknown type", req: domain.CreateAccountRequest{Name: "Wallet", Type: "CRYPTO"}},
		{name: "unknown currency", req: domain.CreateAccountRequest{Name: "Wallet", Type: "CHECKING", Currency: "XYZ"}},
		{name: "negative balance", req: domain.CreateAccountRequest{Name: "Wallet", Type: "CHECKING", Balance: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), uuid.New(), tt.req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateAccount_PartialSemantics(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	userID := uuid.New()
	account := fake.addAccount(userID, "100.00")
	bank := "First National"
	account.BankName = &bank

	// A payload that never mentions bank_name must leave it alone, while an
	// explicit null clears it.
	var untouched domain.UpdateAccountRequest
	if err := json.Unmarshal([]byte(`{"name":"Renamed Checking"}`), &untouched); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	updated, err := svc.UpdateAccount(context.Background(), userID, account.ID, untouched)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Renamed Checking" {
		t.Fatalf("expected name to change, got %q", updated.Name)
	}
	if updated.BankName == nil || *updated.BankName != "First National" {
		t.Fatal("expected absent bank_name to stay untouched")
	}

	var cleared domain.UpdateAccountRequest
	if err := json.Unmarshal([]byte(`{"bank_name":null}`), &cleared); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	updated, err = svc.UpdateAccount(context.Background(), userID, account.ID, cleared)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BankName != nil {
		t.Fatalf("expected explicit null to clear bank_name, got %q", *updated.BankName)
	}
}

func TestUpdateAccount_BalanceOverride(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	userID := uuid.New()
	account := fake.addAccount(userID, "100.00")

	override := decimal.RequireFromString("250.00")
	updated, err := svc.UpdateAccount(context.Background(), userID, account.ID, domain.UpdateAccountRequest{
		Balance: &override,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.Balance.Equal(override) {
		t.Fatalf("expected balance override to 250.00, got %s", updated.Balance)
	}
	if !updated.OpeningBalance.Equal(override) {
		t.Fatalf("expected opening balance re-based to 250.00, got %s", updated.OpeningBalance)
	}
}

// racingLedgerFake lets a test inject a write between the update's account
// read and its store write.
type racingLedgerFake struct {
	*ledgerFake
	onRead func()
}

func (f *racingLedgerFake) FindAccountByID(ctx context.Context, accountID, userID uuid.UUID) (*domain.Account, error) {
	account, err := f.ledgerFake.FindAccountByID(ctx, accountID, userID)
	if err == nil && f.onRead != nil {
		f.onRead()
	}
	return account, err
}

func TestUpdateAccount_NameOnlyKeepsConcurrentBalanceEffect(t *testing.T) {
	inner := newLedgerFake()
	userID := uuid.New()
	account := inner.addAccount(userID, "100.00")

	// An expense commits right after the update reads the account.
	fake := &racingLedgerFake{ledgerFake: inner, onRead: func() {
		inner.applyDelta(account.ID, decimal.RequireFromString("-45.20"))
	}}
	svc := NewAccountService(fake, nil)

	name := "Renamed Checking"
	updated, err := svc.UpdateAccount(context.Background(), userID, account.ID, domain.UpdateAccountRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := inner.balance(account.ID); !got.Equal(decimal.RequireFromString("54.80")) {
		t.Fatalf("expected concurrent expense to survive a name-only update, got %s", got)
	}
	if !updated.Balance.Equal(decimal.RequireFromString("54.80")) {
		t.Fatalf("expected response to carry the stored balance, got %s", updated.Balance)
	}
	if !updated.OpeningBalance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected opening balance untouched without an override, got %s", updated.OpeningBalance)
	}
}

func TestGetAccount_OwnershipIsOpaque(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	account := fake.addAccount(uuid.New(), "0")

	_, err := svc.GetAccount(context.Background(), uuid.New(), account.ID)
	if !errors.Is(err, store.ErrAccountNotFound) {
		t.Fatalf("expected another user's account to read as not found, got %v", err)
	}
}

func TestAccountsSummary_TotalsActiveByType(t *testing.T) {
	fake := newLedgerFake()
	svc := NewAccountService(fake, nil)
	userID := uuid.New()

	checking := fake.addAccount(userID, "100.00")
	savings := fake.addAccount(userID, "900.00")
	savings.Type = "SAVINGS"
	closed := fake.addAccount(userID, "55.00")
	closed.IsActive = false
	_ = checking

	summary, err := svc.AccountsSummary(context.Background(), userID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalAccounts != 2 {
		t.Fatalf("expected 2 active accounts, got %d", summary.TotalAccounts)
	}
	if !summary.TotalBalance.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("expected total balance 1000.00, got %s", summary.TotalBalance)
	}
	if !summary.ByType["SAVINGS"].Equal(decimal.RequireFromString("900.00")) {
		t.Fatalf("expected SAVINGS total 900.00, got %s", summary.ByType["SAVINGS"])
	}
	if got, ok := summary.ByType["CREDIT"]; !ok || !got.IsZero() {
		t.Fatal("expected untouched account types to report zero")
	}
}
