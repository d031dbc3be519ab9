// Package model defines transactions and the recurrence evaluation engine.
package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/common"
)

// Transaction represents one financial event, singular or recurring.
// Amounts are signed: positive for income, negative for expenses.
type Transaction struct {
	// Start is the current first-occurrence anchor. AdvanceTo moves it
	// forward; OriginalStart keeps the anchor the transaction was created
	// with for audit purposes.
	Start         time.Time
	OriginalStart time.Time

	// End is the last date the transaction can fire; nil means unbounded.
	End *time.Time

	Description string
	Amount      decimal.Decimal
	Frequency   Frequency

	// skip holds occurrence dates that contribute nothing. The schedule
	// still ticks through them; only the amount is suppressed.
	skip map[time.Time]struct{}

	// Scheduled and Cleared are user-facing flags with no engine semantics.
	Scheduled bool
	Cleared   bool
}

// New creates a transaction anchored on start. The anchor is required: the
// engine never reaches for the wall clock. OriginalStart is recorded from
// the same anchor; unknown frequencies are rejected up front.
func New(start time.Time, description string, amount decimal.Decimal, frequency Frequency) (*Transaction, error) {
	if !frequency.Valid() {
		return nil, fmt.Errorf("transaction %q: %w: %q", description, common.ErrUnknownFrequency, string(frequency))
	}
	start = DateOf(start)
	return &Transaction{
		Start:         start,
		OriginalStart: start,
		Description:   description,
		Amount:        amount,
		Frequency:     frequency,
		skip:          make(map[time.Time]struct{}),
	}, nil
}

// SetEnd bounds the schedule at the given date.
func (t *Transaction) SetEnd(end time.Time) {
	d := DateOf(end)
	t.End = &d
}

// AddSkip suppresses the occurrence on the given date.
func (t *Transaction) AddSkip(day time.Time) {
	if t.skip == nil {
		t.skip = make(map[time.Time]struct{})
	}
	t.skip[DateOf(day)] = struct{}{}
}

// RemoveSkip re-enables a previously suppressed occurrence.
func (t *Transaction) RemoveSkip(day time.Time) {
	delete(t.skip, DateOf(day))
}

// Skipped reports whether the occurrence on day is suppressed.
func (t *Transaction) Skipped(day time.Time) bool {
	_, ok := t.skip[DateOf(day)]
	return ok
}

// SkipDates returns the suppressed dates in chronological order.
func (t *Transaction) SkipDates() []time.Time {
	dates := make([]time.Time, 0, len(t.skip))
	for d := range t.skip {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// AmountOn returns the amount the transaction contributes on day: its
// signed amount if an occurrence lands there, zero otherwise. A skipped
// occurrence contributes zero but does not break the chain for later dates.
//
// The walk is linear in elapsed periods from Start; fine for planning
// horizons of a few years.
func (t *Transaction) AmountOn(day time.Time) decimal.Decimal {
	day = DateOf(day)
	if day.Before(t.Start) {
		return decimal.Zero
	}
	if t.End != nil && day.After(*t.End) {
		return decimal.Zero
	}
	if t.Frequency == Once {
		if day.Equal(t.Start) && !t.Skipped(day) {
			return t.Amount
		}
		return decimal.Zero
	}
	for d := t.Start; !d.After(day); d = t.Frequency.next(d) {
		if d.Equal(day) {
			if t.Skipped(d) {
				return decimal.Zero
			}
			return t.Amount
		}
	}
	return decimal.Zero
}

// OccursOn reports whether the transaction contributes a nonzero amount on day.
func (t *Transaction) OccursOn(day time.Time) bool {
	return !t.AmountOn(day).IsZero()
}

// AdvanceTo rolls the anchor forward to the first occurrence at or after
// baseline, preserving cadence phase. A once-only transaction is simply
// rescheduled to the baseline. OriginalStart is never touched.
func (t *Transaction) AdvanceTo(baseline time.Time) {
	baseline = DateOf(baseline)
	if t.Frequency == Once {
		t.Start = baseline
		return
	}
	for t.Start.Before(baseline) {
		t.Start = t.Frequency.next(t.Start)
	}
}

// Duplicate returns a fully independent copy, including its own skip set.
// Mutating either copy's skips never affects the other.
func (t *Transaction) Duplicate() *Transaction {
	dup := *t
	dup.skip = make(map[time.Time]struct{}, len(t.skip))
	for d := range t.skip {
		dup.skip[d] = struct{}{}
	}
	if t.End != nil {
		end := *t.End
		dup.End = &end
	}
	return &dup
}
