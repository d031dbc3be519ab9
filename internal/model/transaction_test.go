package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustNew(t *testing.T, start time.Time, description, amount string, freq Frequency) *Transaction {
	t.Helper()
	txn, err := New(start, description, dec(amount), freq)
	if err != nil {
		t.Fatalf("New(%q) returned error: %v", description, err)
	}
	return txn
}

func TestNewRejectsUnknownFrequency(t *testing.T) {
	_, err := New(date(2024, time.March, 1), "bad", dec("1.00"), Frequency("X"))
	if err == nil {
		t.Fatal("expected error for unknown frequency")
	}
}

func TestNewNormalizesAnchor(t *testing.T) {
	noisy := time.Date(2024, time.March, 1, 13, 45, 2, 999, time.FixedZone("EST", -5*3600))
	txn := mustNew(t, noisy, "Paycheck", "100.00", Weekly)
	if !txn.Start.Equal(date(2024, time.March, 1)) {
		t.Errorf("Start = %v, want normalized date", txn.Start)
	}
	if !txn.OriginalStart.Equal(txn.Start) {
		t.Errorf("OriginalStart = %v, want %v", txn.OriginalStart, txn.Start)
	}
	if txn.End != nil {
		t.Errorf("End = %v, want nil", txn.End)
	}
}

func TestAmountOnWeekly(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Allowance", "25.00", Weekly)

	for offset := -7; offset <= 21; offset++ {
		day := start.AddDate(0, 0, offset)
		got := txn.AmountOn(day)
		onCycle := offset >= 0 && offset%7 == 0
		if onCycle && !got.Equal(dec("25.00")) {
			t.Errorf("day %+d: got %s, want 25.00", offset, got)
		}
		if !onCycle && !got.IsZero() {
			t.Errorf("day %+d: got %s, want 0", offset, got)
		}
	}
}

func TestAmountOnEndTruncation(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Short run", "25.00", Weekly)
	txn.SetEnd(start.AddDate(0, 0, 8))

	if got := txn.AmountOn(start.AddDate(0, 0, 7)); !got.Equal(dec("25.00")) {
		t.Errorf("occurrence before end: got %s, want 25.00", got)
	}
	if got := txn.AmountOn(start.AddDate(0, 0, 14)); !got.IsZero() {
		t.Errorf("occurrence after end: got %s, want 0", got)
	}
}

func TestAmountOnSkipDoesNotBreakChain(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Gym", "-30.00", Weekly)
	txn.AddSkip(start.AddDate(0, 0, 7))

	if got := txn.AmountOn(start.AddDate(0, 0, 7)); !got.IsZero() {
		t.Errorf("skipped occurrence: got %s, want 0", got)
	}
	if got := txn.AmountOn(start.AddDate(0, 0, 14)); !got.Equal(dec("-30.00")) {
		t.Errorf("occurrence after skip: got %s, want -30.00", got)
	}
	txn.RemoveSkip(start.AddDate(0, 0, 7))
	if got := txn.AmountOn(start.AddDate(0, 0, 7)); !got.Equal(dec("-30.00")) {
		t.Errorf("unskipped occurrence: got %s, want -30.00", got)
	}
}

func TestAmountOnOnce(t *testing.T) {
	day := date(2024, time.June, 15)
	txn := mustNew(t, day, "Tax refund", "450.00", Once)

	if got := txn.AmountOn(day); !got.Equal(dec("450.00")) {
		t.Errorf("on the day: got %s, want 450.00", got)
	}
	for _, off := range []int{-1, 1, 7, 30, 365} {
		if got := txn.AmountOn(day.AddDate(0, 0, off)); !got.IsZero() {
			t.Errorf("day %+d: got %s, want 0", off, got)
		}
	}
}

func TestAmountOnOnceSkipped(t *testing.T) {
	day := date(2024, time.June, 15)
	txn := mustNew(t, day, "Maybe bonus", "100.00", Once)
	txn.AddSkip(day)
	if got := txn.AmountOn(day); !got.IsZero() {
		t.Errorf("skipped once occurrence: got %s, want 0", got)
	}
}

func TestAmountOnMonthlyClampsShortMonths(t *testing.T) {
	// Anchored on Jan 31 the walk clamps into February and stays on the
	// clamped day for the rest of the year.
	txn := mustNew(t, date(2023, time.January, 31), "Rent", "-1500.00", Monthly)

	tests := []struct {
		day   time.Time
		fires bool
	}{
		{date(2023, time.January, 31), true},
		{date(2023, time.February, 28), true},
		{date(2023, time.March, 28), true},
		{date(2023, time.March, 31), false},
		{date(2023, time.April, 28), true},
	}
	for _, tt := range tests {
		got := txn.AmountOn(tt.day)
		if tt.fires && got.IsZero() {
			t.Errorf("%s: expected occurrence, got 0", FormatDate(tt.day))
		}
		if !tt.fires && !got.IsZero() {
			t.Errorf("%s: expected no occurrence, got %s", FormatDate(tt.day), got)
		}
	}
}

func TestAmountOnQuarterlyAndAnnually(t *testing.T) {
	start := date(2024, time.February, 29)

	q := mustNew(t, start, "Insurance", "-300.00", Quarterly)
	if got := q.AmountOn(date(2024, time.May, 29)); got.IsZero() {
		t.Error("quarterly: expected occurrence on 2024-05-29")
	}
	if got := q.AmountOn(date(2024, time.May, 30)); !got.IsZero() {
		t.Error("quarterly: unexpected occurrence on 2024-05-30")
	}

	a := mustNew(t, start, "Domain renewal", "-12.00", Annually)
	// Leap day anchor clamps to Feb 28 in common years.
	if got := a.AmountOn(date(2025, time.February, 28)); got.IsZero() {
		t.Error("annually: expected occurrence on 2025-02-28")
	}
	if got := a.AmountOn(date(2025, time.March, 1)); !got.IsZero() {
		t.Error("annually: unexpected occurrence on 2025-03-01")
	}
}

func TestAdvanceToRecurring(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Paycheck", "2000.00", Weekly)

	txn.AdvanceTo(start.AddDate(0, 0, 16))
	if want := start.AddDate(0, 0, 21); !txn.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", txn.Start, want)
	}
	if !txn.OriginalStart.Equal(start) {
		t.Errorf("OriginalStart = %v, want untouched %v", txn.OriginalStart, start)
	}

	// Already at or past baseline: no change.
	before := txn.Start
	txn.AdvanceTo(start)
	if !txn.Start.Equal(before) {
		t.Errorf("Start moved backward to %v", txn.Start)
	}
}

func TestAdvanceToOnce(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Deposit", "50.00", Once)

	baseline := start.AddDate(0, 0, 10)
	txn.AdvanceTo(baseline)
	if !txn.Start.Equal(baseline) {
		t.Errorf("Start = %v, want rescheduled to %v", txn.Start, baseline)
	}
	if !txn.OriginalStart.Equal(start) {
		t.Errorf("OriginalStart = %v, want untouched %v", txn.OriginalStart, start)
	}
}

func TestDuplicateIsIndependent(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Weekly", "1.02", Weekly)
	txn.SetEnd(start.AddDate(0, 0, 56))
	txn.AddSkip(start.AddDate(0, 0, 7))
	txn.Scheduled = true
	txn.Cleared = true

	dup := txn.Duplicate()

	if !dup.Start.Equal(txn.Start) || !dup.OriginalStart.Equal(txn.OriginalStart) {
		t.Error("anchor dates not copied")
	}
	if dup.End == nil || !dup.End.Equal(*txn.End) {
		t.Error("end date not copied")
	}
	if dup.Description != txn.Description || !dup.Amount.Equal(txn.Amount) ||
		dup.Frequency != txn.Frequency || dup.Scheduled != txn.Scheduled ||
		dup.Cleared != txn.Cleared {
		t.Error("fields not copied")
	}
	if !dup.Skipped(start.AddDate(0, 0, 7)) {
		t.Error("skip set not copied")
	}

	// Skip sets must not be shared.
	dup.AddSkip(start.AddDate(0, 0, 14))
	if txn.Skipped(start.AddDate(0, 0, 14)) {
		t.Error("mutating the duplicate's skip set leaked into the original")
	}
	txn.AddSkip(start.AddDate(0, 0, 21))
	if dup.Skipped(start.AddDate(0, 0, 21)) {
		t.Error("mutating the original's skip set leaked into the duplicate")
	}
}

func TestSkipDatesSorted(t *testing.T) {
	start := date(2024, time.January, 1)
	txn := mustNew(t, start, "Weekly", "1.00", Weekly)
	txn.AddSkip(start.AddDate(0, 0, 21))
	txn.AddSkip(start.AddDate(0, 0, 7))
	txn.AddSkip(start.AddDate(0, 0, 14))

	dates := txn.SkipDates()
	if len(dates) != 3 {
		t.Fatalf("got %d skip dates, want 3", len(dates))
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i-1].Before(dates[i]) {
			t.Errorf("skip dates out of order: %v before %v", dates[i-1], dates[i])
		}
	}
}
