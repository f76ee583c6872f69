// Package money normalizes Brazilian-locale amount and date tokens into
// exact decimal and calendar values.
package money

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseBRL converts a Brazilian-format amount string to an exact decimal.
//
//	"1.234,56"   -> 1234.56
//	"-1.234,56"  -> -1234.56
//	"- 80,00"    -> -80.00 (minus with space, used for credits)
//
// Malformed input yields zero rather than an error: a single bad token must
// not forfeit the rest of a multi-hundred-line statement.
func ParseBRL(s string) decimal.Decimal {
	cleaned := strings.ReplaceAll(s, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDayMonth parses a partial "DD/MM" date, completing it with the given
// statement year.
func ParseDayMonth(s string, year int) (time.Time, error) {
	t, err := time.Parse("02/01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseFullDate parses a full "DD/MM/YYYY" date.
func ParseFullDate(s string) (time.Time, error) {
	return time.Parse("02/01/2006", strings.TrimSpace(s))
}

// FormatDate renders a date as DD/MM/YYYY, the format used by export sinks.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
