/**
 * @description
 * Read-only analytics over the transaction history: statistical outlier
 * detection and a naive savings forecast. Both work on signed amounts
 * derived from the same sign rule the recorder applies to balances, so a
 * large expense and a large income are both visible as outliers.
 *
 * @dependencies
 * - internal/domain: domain models.
 */

package app

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

const (
	// anomalyMinSample is the smallest history that yields a usable spread.
	anomalyMinSample = 5
	// anomalyThreshold flags amounts further than this many standard
	// deviations from the mean.
	anomalyThreshold = 2.0
	// forecastMonths is how far the savings projection extends.
	forecastMonths = 3
)

// AnomalousTransactions flags transactions whose signed amount sits far from
// the rest of the user's history.
func (s *TransactionService) AnomalousTransactions(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListTransactions(ctx, userID, domain.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	return flagAnomalies(transactions), nil
}

func flagAnomalies(transactions []domain.Transaction) []domain.Transaction {
	flagged := []domain.Transaction{}
	if len(transactions) < anomalyMinSample {
		return flagged
	}

	amounts := make([]float64, len(transactions))
	var sum float64
	for i, tx := range transactions {
		amount, _ := balanceEffect(tx.Type, tx.Amount).Float64()
		amounts[i] = amount
		sum += amount
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, amount := range amounts {
		variance += (amount - mean) * (amount - mean)
	}
	stddev := math.Sqrt(variance / float64(len(amounts)))
	if stddev == 0 {
		return flagged
	}

	for i, tx := range transactions {
		if math.Abs(amounts[i]-mean) > anomalyThreshold*stddev {
			flagged = append(flagged, tx)
		}
	}
	return flagged
}

// SavingsForecast folds the history into monthly net savings and projects
// the next months at the historical mean.
func (s *TransactionService) SavingsForecast(ctx context.Context, userID uuid.UUID) (*domain.SavingsForecast, error) {
	transactions, err := s.repo.ListTransactions(ctx, userID, domain.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	return forecastSavings(transactions), nil
}

func forecastSavings(transactions []domain.Transaction) *domain.SavingsForecast {
	result := &domain.SavingsForecast{History: []domain.MonthlyNet{}, Forecast: []domain.MonthlyNet{}}

	byMonth := map[string]decimal.Decimal{}
	for _, tx := range transactions {
		month := tx.Date.Format("2006-01")
		byMonth[month] = byMonth[month].Add(balanceEffect(tx.Type, tx.Amount))
	}
	if len(byMonth) == 0 {
		return result
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	total := decimal.Zero
	for _, month := range months {
		result.History = append(result.History, domain.MonthlyNet{Month: month, Value: byMonth[month]})
		total = total.Add(byMonth[month])
	}
	mean := total.Div(decimal.NewFromInt(int64(len(months)))).Round(2)

	last, err := time.Parse("2006-01", months[len(months)-1])
	if err != nil {
		return result
	}
	for i := 1; i <= forecastMonths; i++ {
		result.Forecast = append(result.Forecast, domain.MonthlyNet{
			Month: last.AddDate(0, i, 0).Format("2006-01"),
			Value: mean,
		})
	}
	return result
}
