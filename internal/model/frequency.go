package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/ledgerflow/ledgerflow/internal/common"
)

// Frequency describes how often a transaction occurs. The underlying codes
// are the stable wire tokens used in ledger files and must not change.
type Frequency string

// The closed set of supported frequencies.
const (
	Once      Frequency = "O"
	Weekly    Frequency = "W"
	Biweekly  Frequency = "2W"
	Monthly   Frequency = "M"
	Quarterly Frequency = "Q"
	Annually  Frequency = "A"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{Once, Weekly, Biweekly, Monthly, Quarterly, Annually}

var frequencyNames = map[Frequency]string{
	Once:      "once",
	Weekly:    "weekly",
	Biweekly:  "biweekly",
	Monthly:   "monthly",
	Quarterly: "quarterly",
	Annually:  "annually",
}

// ParseFrequency resolves a wire code or human name ("W", "weekly") to a
// Frequency. Unknown input is an error, never a silent default.
func ParseFrequency(s string) (Frequency, error) {
	code := Frequency(strings.ToUpper(strings.TrimSpace(s)))
	if code.Valid() {
		return code, nil
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	for f, name := range frequencyNames {
		if name == lower {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownFrequency, s)
}

// Valid reports whether f is one of the six supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := frequencyNames[f]
	return ok
}

// Recurring reports whether f repeats. Once is the only non-recurring value.
func (f Frequency) Recurring() bool {
	return f.Valid() && f != Once
}

// Name returns the human-readable name ("weekly"); the Frequency value
// itself is the wire code ("W").
func (f Frequency) Name() string {
	if name, ok := frequencyNames[f]; ok {
		return name
	}
	return string(f)
}

// next returns the occurrence after d for a recurring frequency. Callers
// must handle Once before stepping; validation at construction keeps
// unknown codes out of the walk entirely.
func (f Frequency) next(d time.Time) time.Time {
	switch f {
	case Weekly:
		return d.AddDate(0, 0, 7)
	case Biweekly:
		return d.AddDate(0, 0, 14)
	case Monthly:
		return addMonths(d, 1)
	case Quarterly:
		return addMonths(d, 3)
	case Annually:
		return addMonths(d, 12)
	default:
		panic(fmt.Sprintf("model: frequency %q has no step", string(f)))
	}
}
