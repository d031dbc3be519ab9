// Package ledger manages the ordered collection of transactions and its
// durable YAML representation.
package ledger

import (
	"sync"
	"time"

	"github.com/ledgerflow/ledgerflow/internal/model"
)

// Ledger is the ordered, mutable collection of all known transactions.
// Transactions are tracked by identity: structurally identical entries are
// distinct and duplicates are allowed. A single mutex guards mutation and
// traversal so a projection cannot observe a half-applied edit.
type Ledger struct {
	mu           sync.Mutex
	transactions []*model.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add appends transactions in order. No uniqueness constraint applies.
func (l *Ledger) Add(txns ...*model.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, txns...)
}

// Remove deletes each listed transaction by identity. Transactions not in
// the ledger are ignored, so Remove is idempotent and tolerates a mix of
// present and absent entries.
func (l *Ledger) Remove(txns ...*model.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, txn := range txns {
		for i, held := range l.transactions {
			if held == txn {
				l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
				break
			}
		}
	}
}

// Replace supersedes old with new. It composes Remove and Add: replacing a
// transaction that is not in the ledger simply adds the new one.
func (l *Ledger) Replace(old, replacement *model.Transaction) {
	l.Remove(old)
	l.Add(replacement)
}

// Len returns the number of transactions held.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transactions)
}

// Transactions returns all transactions in insertion order. The slice is a
// copy; the pointed-to transactions are shared.
func (l *Ledger) Transactions() []*model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// TransactionsByFrequency returns transactions matching the given frequency.
func (l *Ledger) TransactionsByFrequency(f model.Frequency) []*model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*model.Transaction
	for _, txn := range l.transactions {
		if txn.Frequency == f {
			out = append(out, txn)
		}
	}
	return out
}

// Find returns all transactions whose description equals the label.
func (l *Ledger) Find(description string) []*model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*model.Transaction
	for _, txn := range l.transactions {
		if txn.Description == description {
			out = append(out, txn)
		}
	}
	return out
}

// FindOn narrows Find to transactions that actually contribute a nonzero
// amount on the given date; skipped or out-of-range occurrences are
// excluded even when the label matches.
func (l *Ledger) FindOn(description string, day time.Time) []*model.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*model.Transaction
	for _, txn := range l.transactions {
		if txn.Description == description && txn.OccursOn(day) {
			out = append(out, txn)
		}
	}
	return out
}

// AdvanceRecurring rolls every recurring transaction's anchor forward to
// the first occurrence at or after baseline. Once-only transactions are
// deliberately excluded from this bulk operation; rescheduling them is the
// business of Transaction.AdvanceTo alone.
func (l *Ledger) AdvanceRecurring(baseline time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, txn := range l.transactions {
		if txn.Frequency.Recurring() {
			txn.AdvanceTo(baseline)
		}
	}
}

// PurgeSingleBefore removes every once-only transaction anchored strictly
// before cutoff. Recurring transactions are never purged regardless of
// their dates.
func (l *Ledger) PurgeSingleBefore(cutoff time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff = model.DateOf(cutoff)
	kept := l.transactions[:0]
	removed := 0
	for _, txn := range l.transactions {
		if txn.Frequency == model.Once && txn.Start.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	for i := len(kept); i < len(l.transactions); i++ {
		l.transactions[i] = nil
	}
	l.transactions = kept
	return removed
}
