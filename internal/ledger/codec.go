package ledger

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerflow/ledgerflow/internal/common"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

// record is the on-disk form of a transaction. Dates are YYYY-MM-DD
// strings and amounts are decimal strings so the file stays human-editable
// and round-trips without precision loss. Field names and frequency codes
// are part of the format; do not rename.
type record struct {
	Start         string   `yaml:"start"`
	OriginalStart string   `yaml:"original_start"`
	End           *string  `yaml:"end,omitempty"`
	Description   string   `yaml:"description"`
	Amount        string   `yaml:"amount"`
	Frequency     string   `yaml:"frequency"`
	Skip          []string `yaml:"skip,omitempty"`
	Scheduled     bool     `yaml:"scheduled"`
	Cleared       bool     `yaml:"cleared"`
}

func toRecord(txn *model.Transaction) record {
	rec := record{
		Start:         model.FormatDate(txn.Start),
		OriginalStart: model.FormatDate(txn.OriginalStart),
		Description:   txn.Description,
		Amount:        txn.Amount.String(),
		Frequency:     string(txn.Frequency),
		Scheduled:     txn.Scheduled,
		Cleared:       txn.Cleared,
	}
	if txn.End != nil {
		end := model.FormatDate(*txn.End)
		rec.End = &end
	}
	for _, d := range txn.SkipDates() {
		rec.Skip = append(rec.Skip, model.FormatDate(d))
	}
	return rec
}

func fromRecord(rec record) (*model.Transaction, error) {
	start, err := model.ParseDate(rec.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q", common.ErrInvalidAmount, rec.Amount)
	}
	freq, err := model.ParseFrequency(rec.Frequency)
	if err != nil {
		return nil, err
	}

	txn, err := model.New(start, rec.Description, amount, freq)
	if err != nil {
		return nil, err
	}
	if rec.OriginalStart != "" {
		original, parseErr := model.ParseDate(rec.OriginalStart)
		if parseErr != nil {
			return nil, fmt.Errorf("original_start: %w", parseErr)
		}
		txn.OriginalStart = original
	}
	if rec.End != nil {
		end, parseErr := model.ParseDate(*rec.End)
		if parseErr != nil {
			return nil, fmt.Errorf("end: %w", parseErr)
		}
		txn.SetEnd(end)
	}
	for _, s := range rec.Skip {
		day, parseErr := model.ParseDate(s)
		if parseErr != nil {
			return nil, fmt.Errorf("skip: %w", parseErr)
		}
		txn.AddSkip(day)
	}
	txn.Scheduled = rec.Scheduled
	txn.Cleared = rec.Cleared
	return txn, nil
}

// Save writes the full ledger to path as a YAML list of transaction
// records, preserving every field exactly.
func (l *Ledger) Save(path string) error {
	txns := l.Transactions()
	records := make([]record, 0, len(txns))
	for _, txn := range txns {
		records = append(records, toRecord(txn))
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrLedgerWrite, err)
	}
	return nil
}

// Load replaces the ledger contents with the transactions read from path.
// The file is decoded and validated in full before anything is swapped in:
// on any failure the existing in-memory ledger is left untouched. An empty
// file is a valid, empty ledger, not an error.
func (l *Ledger) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLedgerRead, err)
	}

	var records []record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("%w: %v", common.ErrMalformedLedger, err)
	}

	loaded := make([]*model.Transaction, 0, len(records))
	for i, rec := range records {
		txn, convErr := fromRecord(rec)
		if convErr != nil {
			return fmt.Errorf("%w: record %d: %v", common.ErrMalformedLedger, i, convErr)
		}
		loaded = append(loaded, txn)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = loaded
	return nil
}
