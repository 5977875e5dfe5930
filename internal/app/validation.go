/**
 * @description
 * Field-level validation for the finance-service. Validators run before any
 * storage access and short-circuit the operation with a ValidationError
 * carrying a field-specific message.
 */

package app

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/finance-service/internal/domain"
)

// ValidationError reports malformed or out-of-range input with a
// field-specific message suitable for the API response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return validationErrorf("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return validationErrorf("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return validationErrorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return validationErrorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return validationErrorf("password must contain at least one number")
	}
	return nil
}

func inSet(value string, set []string) bool {
	for _, candidate := range set {
		if candidate == value {
			return true
		}
	}
	return false
}

func validateAccountName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return validationErrorf("account name must be at least 2 characters")
	}
	return nil
}

func validateAccountType(accountType string) error {
	if !inSet(accountType, domain.AccountTypes) {
		return validationErrorf("account type must be one of: %s", strings.Join(domain.AccountTypes, ", "))
	}
	return nil
}

func validateCurrency(currency string) error {
	if !inSet(currency, domain.SupportedCurrencies) {
		return validationErrorf("currency must be one of: %s", strings.Join(domain.SupportedCurrencies, ", "))
	}
	return nil
}

func validateBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return validationErrorf("balance must be a non-negative number")
	}
	return nil
}

func validateTransactionAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return validationErrorf("amount must be a positive number")
	}
	return nil
}

func validateDescription(description string) error {
	if len(strings.TrimSpace(description)) < 2 {
		return validationErrorf("description must be at least 2 characters")
	}
	return nil
}

func validateTransactionType(transactionType string) error {
	if !inSet(transactionType, domain.TransactionTypes) {
		return validationErrorf("transaction type must be one of: %s", strings.Join(domain.TransactionTypes, ", "))
	}
	return nil
}

func validateTransactionCategory(category string) error {
	if !inSet(category, domain.TransactionCategories) {
		return validationErrorf("invalid transaction category %q", category)
	}
	return nil
}

func validateGoalTitle(title string) error {
	if len(strings.TrimSpace(title)) < 2 {
		return validationErrorf("goal title must be at least 2 characters")
	}
	return nil
}

func validateGoalCategory(category string) error {
	if !inSet(category, domain.GoalCategories) {
		return validationErrorf("goal category must be one of: %s", strings.Join(domain.GoalCategories, ", "))
	}
	return nil
}

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, validationErrorf("invalid date %q; expected RFC 3339 or YYYY-MM-DD", value)
	}
	return t, nil
}
