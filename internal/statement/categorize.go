/**
 * @description
 * Keyword-based category assignment for imported statement entries. Rules
 * are checked in order; the first match wins.
 */

package statement

import (
	"regexp"

	"github.com/shopspring/decimal"
)

type rule struct {
	pattern  *regexp.Regexp
	category string
}

var rules = []rule{
	{regexp.MustCompile(`(?i)uber|ola|ride|cab|metro|fuel`), "TRANSPORT"},
	{regexp.MustCompile(`(?i)swiggy|zomato|restaurant|cafe|food|dining`), "DINING"},
	{regexp.MustCompile(`(?i)grocery|supermarket|mart`), "GROCERIES"},
	{regexp.MustCompile(`(?i)rent|maintenance|housing|flat`), "HOUSING"},
	{regexp.MustCompile(`(?i)electricity|water|gas bill|internet|broadband`), "UTILITIES"},
	{regexp.MustCompile(`(?i)amazon|flipkart|shopping|store`), "SHOPPING"},
	{regexp.MustCompile(`(?i)upi|transfer|imps|neft`), "TRANSFER"},
	{regexp.MustCompile(`(?i)salary|payroll|refund|reversal`), "SALARY"},
}

// Categorize assigns a transaction category to a statement entry from its
// description, falling back on the amount's sign.
func Categorize(description string, amount decimal.Decimal) string {
	for _, r := range rules {
		if r.pattern.MatchString(description) {
			return r.category
		}
	}
	if amount.IsPositive() {
		return "SALARY"
	}
	return "OTHER"
}
