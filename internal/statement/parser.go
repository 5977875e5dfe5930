/**
 * @description
 * Plain-text bank statement parsing for the import endpoint. Statements are
 * bank-SMS-like lines of the form:
 *
 *   2024-08-01, UPI to XYZ, -230.50
 *
 * Lines that do not match, or carry an unparseable date or a zero amount,
 * are skipped rather than failing the whole import.
 */

package statement

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one parsed statement line. Amount keeps the statement's sign:
// positive means money in, negative means money out.
type Entry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

var linePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s*,\s*([^,\n]+),\s*(-?\d+(?:\.\d{1,2})?)`)

// Parse extracts all well-formed entries from statement text. The returned
// skipped count covers non-empty lines that did not yield an entry.
func Parse(text string) (entries []Entry, skipped int) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}

		date, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			skipped++
			continue
		}
		amount, err := decimal.NewFromString(m[3])
		if err != nil || amount.IsZero() {
			skipped++
			continue
		}

		entries = append(entries, Entry{
			Date:        date,
			Description: strings.TrimSpace(m[2]),
			Amount:      amount,
		})
	}
	return entries, skipped
}
