/**
 * @description
 * The sign rule of the balance-consistency protocol, kept as pure functions
 * so every recorder mutation derives its account delta from one place.
 *
 * INCOME contributes +amount, EXPENSE contributes -amount, and TRANSFER
 * contributes nothing to the single account it references. Two-sided
 * transfer semantics (debit one account, credit another) would be a
 * separate feature; until then the zero effect keeps transfers out of the
 * cached balance entirely.
 */

package app

import (
	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

// balanceEffect returns the signed contribution a transaction makes to its
// account's cached balance.
func balanceEffect(transactionType string, amount decimal.Decimal) decimal.Decimal {
	switch transactionType {
	case domain.TransactionTypeIncome:
		return amount
	case domain.TransactionTypeExpense:
		return amount.Neg()
	default:
		return decimal.Zero
	}
}

// compensationEffect returns the delta that un-applies a transaction's
// original contribution, used when the transaction is hard-deleted.
func compensationEffect(transactionType string, amount decimal.Decimal) decimal.Decimal {
	return balanceEffect(transactionType, amount).Neg()
}

// amountDiffEffect returns the delta for an amount change on an existing
// transaction: the effect of the difference under the transaction's type.
func amountDiffEffect(transactionType string, oldAmount, newAmount decimal.Decimal) decimal.Decimal {
	return balanceEffect(transactionType, newAmount.Sub(oldAmount))
}
