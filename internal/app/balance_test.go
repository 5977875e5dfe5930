package app

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

func TestBalanceEffect(t *testing.T) {
	tests := []struct {
		name            string
		transactionType string
		amount          string
		want            string
	}{
		{name: "income adds to balance", transactionType: domain.TransactionTypeIncome, amount: "3500.00", want: "3500.00"},
		{name: "expense subtracts from balance", transactionType: domain.TransactionTypeExpense, amount: "45.20", want: "-45.20"},
		{name: "transfer leaves balance untouched", transactionType: domain.TransactionTypeTransfer, amount: "100.00", want: "0"},
		{name: "unknown type is a no-op", transactionType: "REFUND", amount: "100.00", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got := balanceEffect(tt.transactionType, amount)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected effect %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCompensationEffectReversesBalanceEffect(t *testing.T) {
	for _, txType := range domain.TransactionTypes {
		amount := decimal.RequireFromString("123.45")
		applied := balanceEffect(txType, amount)
		compensated := compensationEffect(txType, amount)
		if !applied.Add(compensated).IsZero() {
			t.Fatalf("type %s: apply %s then compensate %s does not cancel out", txType, applied, compensated)
		}
	}
}

func TestAmountDiffEffect(t *testing.T) {
	tests := []struct {
		name            string
		transactionType string
		oldAmount       string
		newAmount       string
		want            string
	}{
		{name: "income raised by difference", transactionType: domain.TransactionTypeIncome, oldAmount: "100.00", newAmount: "150.00", want: "50.00"},
		{name: "income lowered by difference", transactionType: domain.TransactionTypeIncome, oldAmount: "150.00", newAmount: "100.00", want: "-50.00"},
		{name: "expense raised subtracts more", transactionType: domain.TransactionTypeExpense, oldAmount: "40.00", newAmount: "60.00", want: "-20.00"},
		{name: "expense lowered refunds difference", transactionType: domain.TransactionTypeExpense, oldAmount: "60.00", newAmount: "40.00", want: "20.00"},
		{name: "transfer change has no effect", transactionType: domain.TransactionTypeTransfer, oldAmount: "10.00", newAmount: "90.00", want: "0"},
		{name: "unchanged amount yields zero", transactionType: domain.TransactionTypeIncome, oldAmount: "75.00", newAmount: "75.00", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amountDiffEffect(tt.transactionType, decimal.RequireFromString(tt.oldAmount), decimal.RequireFromString(tt.newAmount))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected delta %s, got %s", tt.want, got)
			}
		})
	}
}
