package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// EffectiveDays returns the billable day count between two dates,
// ignoring the time-of-day component. Equal or inverted dates yield 1:
// a rental is never billed for less than one day.
func EffectiveDays(start, end time.Time) int {
	days := daysBetween(start, end)
	if days < 1 {
		return 1
	}
	return days
}

// LateDays returns how many calendar days actual falls after expected,
// zero for on-time or early returns.
func LateDays(actual, expected time.Time) int {
	days := daysBetween(expected, actual)
	if days < 0 {
		return 0
	}
	return days
}

// LineTotal calculates rate * days with exact decimal arithmetic.
func LineTotal(rate decimal.Decimal, days int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(days)))
}

// daysBetween computes the signed calendar-day difference end - start.
func daysBetween(start, end time.Time) int {
	s := truncateToDate(start)
	e := truncateToDate(end)
	return int(e.Sub(s).Hours() / 24)
}

// truncateToDate drops the time-of-day, keeping year/month/day in UTC so
// that two timestamps on the same calendar day compare equal.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
