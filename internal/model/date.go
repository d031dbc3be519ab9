package model

import (
	"fmt"
	"time"

	"github.com/ledgerflow/ledgerflow/internal/common"
)

// DateLayout is the canonical textual form of a calendar date.
const DateLayout = "2006-01-02"

// DateOf truncates t to a bare calendar date: midnight UTC.
// All schedule arithmetic operates on dates normalized this way.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// FormatDate renders a date in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// addMonths advances d by n calendar months, clamping the day of month to
// the last valid day of the target month (Jan 31 + 1 month = Feb 28/29).
// The clamp applies per step, so a walk that passes through a short month
// stays on the clamped day afterward.
func addMonths(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
