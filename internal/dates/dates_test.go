package dates_test

import (
	"testing"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"

	"github.com/stretchr/testify/assert"
)

func TestParse_ValidDatesRoundTrip(t *testing.T) {
	inputs := []string{
		"01/01/2025",
		"31/12/2024",
		"29/02/2024", // leap day
		"28/02/2025",
		"15/07/1999",
	}
	for _, s := range inputs {
		parsed, err := dates.Parse(s)
		assert.NoError(t, err, s)
		assert.Equal(t, s, dates.Format(parsed), "round-trip should preserve %s", s)
		assert.Equal(t, 0, parsed.Hour(), "parsed date should sit at midnight")
		assert.Equal(t, 0, parsed.Minute())
	}
}

func TestParse_RejectsBadShapes(t *testing.T) {
	inputs := []string{
		"",
		"2025-01-01",
		"1/1/2025",
		"01-01-2025",
		"01/01/25",
		"32/01/2025",
		"00/01/2025",
		"31/02/2025", // February has no 31st
		"29/02/2025", // not a leap year
		"aa/bb/cccc",
		"01/13/2025",
		"01/01/2025 ",
	}
	for _, s := range inputs {
		_, err := dates.Parse(s)
		assert.Error(t, err, "should reject %q", s)
		assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err), s)
	}
}

func TestBeforeToday(t *testing.T) {
	now := time.Now()
	assert.False(t, dates.BeforeToday(now), "today is not before today")
	assert.False(t, dates.BeforeToday(dates.StartOfDay(now)), "today's midnight is not before today")
	assert.True(t, dates.BeforeToday(now.AddDate(0, 0, -1)), "yesterday is before today")
	assert.False(t, dates.BeforeToday(now.AddDate(0, 0, 1)), "tomorrow is not before today")
	assert.True(t, dates.BeforeToday(now.AddDate(-1, 0, 0)), "last year is before today")
	assert.False(t, dates.BeforeToday(now.AddDate(0, 1, 0)), "next month is not before today")
}

func TestDayWindow(t *testing.T) {
	d, err := dates.Parse("15/06/2025")
	assert.NoError(t, err)
	start, next := dates.DayWindow(d.Add(13 * time.Hour)) // mid-afternoon
	assert.Equal(t, d, start)
	assert.Equal(t, d.AddDate(0, 0, 1), next)

	// Month boundary.
	d, err = dates.Parse("31/01/2025")
	assert.NoError(t, err)
	start, next = dates.DayWindow(d)
	assert.Equal(t, "31/01/2025", dates.Format(start))
	assert.Equal(t, "01/02/2025", dates.Format(next))
}

func TestPeriodBounds_Inclusive(t *testing.T) {
	from, err := dates.Parse("01/01/2025")
	assert.NoError(t, err)
	to, err := dates.Parse("31/01/2025")
	assert.NoError(t, err)

	start, end := dates.PeriodBounds(from, to)
	assert.Equal(t, from, start)
	assert.True(t, end.After(to), "end extends past the last day's midnight")
	assert.True(t, end.Before(to.AddDate(0, 0, 1)), "end stays inside the last day")
}

func TestParsePeriod_RequiresBothBounds(t *testing.T) {
	_, _, err := dates.ParsePeriod("01/01/2025", "")
	assert.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, _, err = dates.ParsePeriod("", "31/01/2025")
	assert.Error(t, err)
	assert.Equal(t, apperr.InvalidArgument, apperr.KindOf(err))

	_, _, err = dates.ParsePeriod("01/01/2025", "31/01/2025")
	assert.NoError(t, err)
}

func TestFormatPtr(t *testing.T) {
	assert.Nil(t, dates.FormatPtr(nil))

	d, err := dates.Parse("05/03/2025")
	assert.NoError(t, err)
	got := dates.FormatPtr(&d)
	if assert.NotNil(t, got) {
		assert.Equal(t, "05/03/2025", *got)
	}
}
