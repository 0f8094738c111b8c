package domain

import (
	"fmt"
	"strings"
	"time"
)

// Uncategorized is the category used when a record carries none
const Uncategorized Category = "Uncategorized"

// Category is a normalized expense category
type Category string

// NormalizeCategory trims the raw label and collapses an empty one to Uncategorized.
func NormalizeCategory(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Uncategorized
	}

	return Category(trimmed)
}

func (c Category) String() string {
	return string(c)
}

// YearMonth is a calendar month used to bucket records for trend analysis
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month of t in t's own location.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Before reports whether ym is chronologically earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}

	return ym.Month < other.Month
}

// String formats the key as YYYY-MM with a zero-padded month.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

func (ym *YearMonth) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01", string(text))
	if err != nil {
		return fmt.Errorf("invalid year-month %q: %w", string(text), err)
	}

	*ym = YearMonthOf(t)

	return nil
}
