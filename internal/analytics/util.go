package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// calendarDate reduces t to its calendar date, expressed as UTC midnight.
// Record dates carry no meaningful time of day, so the date fields are taken
// as they are rather than converted between zones.
func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayDiff returns the possibly fractional number of days from a to b.
func dayDiff(a, b time.Time) float64 {
	return b.Sub(a).Hours() / hoursPerDay
}

// ceilDays returns dayDiff rounded up to a whole number of days.
func ceilDays(a, b time.Time) int {
	return int(math.Ceil(dayDiff(a, b)))
}

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func fallbackName(name string, id int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("ID: %d", id)
}
