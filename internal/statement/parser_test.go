package statement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	text := "2026-03-01, ACME Payroll, 2500.00\n" +
		"\n" +
		"2026-03-02 , Uber trip downtown , -18.50\n" +
		"garbage line without structure\n" +
		"2026-03-03, Zero entry, 0\n" +
		"2026-03-04, Coffee cafe, -4.5\n"

	entries, skipped := Parse(text)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", skipped)
	}

	first := entries[0]
	if first.Description != "ACME Payroll" {
		t.Fatalf("expected trimmed description, got %q", first.Description)
	}
	if !first.Amount.Equal(decimal.RequireFromString("2500.00")) {
		t.Fatalf("expected amount 2500.00, got %s", first.Amount)
	}
	if first.Date.Year() != 2026 || first.Date.Day() != 1 {
		t.Fatalf("unexpected date %v", first.Date)
	}

	second := entries[1]
	if !second.Amount.IsNegative() {
		t.Fatalf("expected negative amount preserved, got %s", second.Amount)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	entries, skipped := Parse("")
	if len(entries) != 0 || skipped != 0 {
		t.Fatalf("expected nothing from empty input, got %d entries %d skipped", len(entries), skipped)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		description string
		amount      string
		want        string
	}{
		{"Uber trip downtown", "-18.50", "TRANSPORT"},
		{"Corner cafe breakfast", "-4.50", "DINING"},
		{"BigBasket grocery order", "-62.00", "GROCERIES"},
		{"April rent payment", "-1200.00", "HOUSING"},
		{"Broadband monthly", "-39.99", "UTILITIES"},
		{"Amazon order 113-552", "-25.00", "SHOPPING"},
		{"UPI to landlord", "-500.00", "TRANSFER"},
		{"ACME Payroll", "2500.00", "SALARY"},
		{"Mystery deposit", "100.00", "SALARY"},
		{"Mystery charge", "-100.00", "OTHER"},
	}

	for _, tt := range tests {
		got := Categorize(tt.description, decimal.RequireFromString(tt.amount))
		if got != tt.want {
			t.Fatalf("Categorize(%q) = %s, expected %s", tt.description, got, tt.want)
		}
	}
}
