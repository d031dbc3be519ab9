// Package projection turns a ledger into a day-by-day forward balance sequence.
package projection

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

// Step is one day of the projection: the date, the running balance after
// applying that day's transactions, and the transactions that fired, in
// ledger order.
type Step struct {
	Date         time.Time
	Balance      decimal.Decimal
	Transactions []*model.Transaction
}

// Projector produces an unbounded, lazily evaluated sequence of daily
// balance snapshots. It reads the ledger fresh on every step, so
// transactions added or removed between steps show up on subsequent days;
// it never mutates the ledger. There is no rewind: to restart, construct a
// new projector.
type Projector struct {
	ledger  *ledger.Ledger
	current time.Time
	balance decimal.Decimal
}

// New creates a projector starting at startDate with the given balance.
func New(startDate time.Time, startBalance decimal.Decimal, l *ledger.Ledger) *Projector {
	return &Projector{
		ledger:  l,
		current: model.DateOf(startDate),
		balance: startBalance,
	}
}

// Next evaluates the current day and advances to the following one.
// Consumers pull as many steps as they need; stopping is simply ceasing
// to call Next.
func (p *Projector) Next() Step {
	var fired []*model.Transaction
	for _, txn := range p.ledger.Transactions() {
		amt := txn.AmountOn(p.current)
		if amt.IsZero() {
			continue
		}
		p.balance = p.balance.Add(amt)
		fired = append(fired, txn)
	}

	step := Step{
		Date:         p.current,
		Balance:      p.balance,
		Transactions: fired,
	}
	p.current = p.current.AddDate(0, 0, 1)
	return step
}

// Take pulls the next n steps.
func (p *Projector) Take(n int) []Step {
	steps := make([]Step, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, p.Next())
	}
	return steps
}
