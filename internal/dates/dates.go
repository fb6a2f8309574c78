// Package dates converts between the external dd/mm/yyyy display format and
// internal time values. Every date-bearing field in the API goes through this
// package, so the display contract is enforced in exactly one place.
package dates

import (
	"fmt"
	"time"

	"orderdesk/internal/apperr"
)

// DisplayLayout is the only date format accepted from and shown to callers.
const DisplayLayout = "02/01/2006"

// Parse accepts exactly dd/mm/yyyy (two-digit day and month, four-digit year,
// slash separators) and returns the date at local midnight. Impossible
// calendar dates such as 31/02/2025 are rejected.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DisplayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, apperr.New(apperr.InvalidArgument, "date",
			"%q is not a valid date in the dd/mm/yyyy format", s)
	}
	// time.Parse normalizes overflowing components (31/02 becomes 03/03);
	// a round-trip mismatch means the calendar date did not exist.
	if t.Format(DisplayLayout) != s {
		return time.Time{}, apperr.New(apperr.InvalidArgument, "date",
			"%q is not an existing calendar date", s)
	}
	return t, nil
}

// Format renders t in the dd/mm/yyyy display format.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatPtr renders an optional date, mapping a nil time to a nil string.
// Used for fields like paidAt that may be unset.
func FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DisplayLayout)
	return &s
}

// BeforeToday reports whether t's calendar day is strictly before today's,
// both normalized to local midnight. Today itself is not before today.
func BeforeToday(t time.Time) bool {
	return StartOfDay(t).Before(StartOfDay(time.Now()))
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayWindow returns the half-open interval [start of t's day, start of the
// next day), used for deliver-today and planned-day filters.
func DayWindow(t time.Time) (start, next time.Time) {
	start = StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// PeriodBounds widens a from/to day pair to the inclusive statistics period
// [from 00:00:00, to 23:59:59.999].
func PeriodBounds(from, to time.Time) (time.Time, time.Time) {
	start := StartOfDay(from)
	end := StartOfDay(to).AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// ParsePeriod parses both period bounds, requiring them together.
func ParsePeriod(fromDisplay, toDisplay string) (time.Time, time.Time, error) {
	if fromDisplay == "" || toDisplay == "" {
		return time.Time{}, time.Time{}, apperr.New(apperr.InvalidArgument, "period",
			"both fromPeriod and toPeriod must be supplied together")
	}
	from, err := Parse(fromDisplay)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("fromPeriod: %w", err)
	}
	to, err := Parse(toDisplay)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("toPeriod: %w", err)
	}
	start, end := PeriodBounds(from, to)
	return start, end, nil
}
