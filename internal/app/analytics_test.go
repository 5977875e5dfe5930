package app

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

func makeTransaction(txType, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{
		ID:          uuid.New(),
		Amount:      decimal.RequireFromString(amount),
		Description: "entry",
		Type:        txType,
		Date:        date,
	}
}

func TestFlagAnomalies_FlagsOutlierAmounts(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	for i := 0; i < 9; i++ {
		transactions = append(transactions, makeTransaction(domain.TransactionTypeExpense, "50.00", date))
	}
	outlier := makeTransaction(domain.TransactionTypeExpense, "5000.00", date)
	transactions = append(transactions, outlier)

	flagged := flagAnomalies(transactions)
	if len(flagged) != 1 {
		t.Fatalf("expected 1 anomaly, got %d", len(flagged))
	}
	if flagged[0].ID != outlier.ID {
		t.Fatal("expected the oversized expense to be the anomaly")
	}
}

func TestFlagAnomalies_QuietHistories(t *testing.T) {
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	// Too few samples.
	short := []domain.Transaction{
		makeTransaction(domain.TransactionTypeExpense, "50.00", date),
		makeTransaction(domain.TransactionTypeExpense, "9999.00", date),
	}
	if got := flagAnomalies(short); len(got) != 0 {
		t.Fatalf("expected no anomalies below the minimum sample, got %d", len(got))
	}

	// Zero spread.
	var uniform []domain.Transaction
	for i := 0; i < 8; i++ {
		uniform = append(uniform, makeTransaction(domain.TransactionTypeExpense, "25.00", date))
	}
	if got := flagAnomalies(uniform); len(got) != 0 {
		t.Fatalf("expected no anomalies in a uniform history, got %d", len(got))
	}
}

func TestForecastSavings_ProjectsMeanMonthlyNet(t *testing.T) {
	january := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		makeTransaction(domain.TransactionTypeIncome, "3000.00", january),
		makeTransaction(domain.TransactionTypeExpense, "1000.00", january),
		makeTransaction(domain.TransactionTypeIncome, "3000.00", february),
		makeTransaction(domain.TransactionTypeExpense, "2000.00", february),
		// Transfers carry no net effect.
		makeTransaction(domain.TransactionTypeTransfer, "800.00", february),
	}

	forecast := forecastSavings(transactions)
	if len(forecast.History) != 2 {
		t.Fatalf("expected 2 history months, got %d", len(forecast.History))
	}
	if forecast.History[0].Month != "2026-01" || !forecast.History[0].Value.Equal(decimal.RequireFromString("2000.00")) {
		t.Fatalf("expected January net 2000.00, got %s=%s", forecast.History[0].Month, forecast.History[0].Value)
	}
	if forecast.History[1].Month != "2026-02" || !forecast.History[1].Value.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("expected February net 1000.00, got %s=%s", forecast.History[1].Month, forecast.History[1].Value)
	}

	if len(forecast.Forecast) != 3 {
		t.Fatalf("expected a 3-month projection, got %d", len(forecast.Forecast))
	}
	wantMonths := []string{"2026-03", "2026-04", "2026-05"}
	for i, projected := range forecast.Forecast {
		if projected.Month != wantMonths[i] {
			t.Fatalf("expected projection month %s, got %s", wantMonths[i], projected.Month)
		}
		if !projected.Value.Equal(decimal.RequireFromString("1500")) {
			t.Fatalf("expected projected value 1500, got %s", projected.Value)
		}
	}
}

func TestForecastSavings_EmptyHistory(t *testing.T) {
	forecast := forecastSavings(nil)
	if len(forecast.History) != 0 || len(forecast.Forecast) != 0 {
		t.Fatalf("expected empty history and forecast, got %d/%d", len(forecast.History), len(forecast.Forecast))
	}
}
