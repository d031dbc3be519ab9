package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

// LoadLedger reads every stored transaction, in insertion order, into a
// fresh ledger.
func (s *SQLiteStore) LoadLedger(ctx context.Context) (*ledger.Ledger, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start, original_start, end_date, description, amount,
		       frequency, skip, scheduled, cleared
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	l := ledger.New()
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		l.Add(txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return l, nil
}

// ReplaceLedger overwrites the stored ledger with the given one inside a
// single database transaction, preserving its order.
func (s *SQLiteStore) ReplaceLedger(ctx context.Context, l *ledger.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			start, original_start, end_date, description, amount,
			frequency, skip, scheduled, cleared
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range l.Transactions() {
		var endDate sql.NullString
		if txn.End != nil {
			endDate = sql.NullString{String: model.FormatDate(*txn.End), Valid: true}
		}

		skipDates := txn.SkipDates()
		skips := make([]string, 0, len(skipDates))
		for _, d := range skipDates {
			skips = append(skips, model.FormatDate(d))
		}
		skipJSON, marshalErr := json.Marshal(skips)
		if marshalErr != nil {
			return fmt.Errorf("failed to encode skip dates: %w", marshalErr)
		}

		if _, err := stmt.ExecContext(ctx,
			model.FormatDate(txn.Start),
			model.FormatDate(txn.OriginalStart),
			endDate,
			txn.Description,
			txn.Amount.String(),
			string(txn.Frequency),
			string(skipJSON),
			txn.Scheduled,
			txn.Cleared,
		); err != nil {
			return fmt.Errorf("failed to insert transaction %q: %w", txn.Description, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func scanTransaction(rows *sql.Rows) (*model.Transaction, error) {
	var (
		start, originalStart, description, amount, frequency, skipJSON string
		endDate                                                        sql.NullString
		scheduled, cleared                                             bool
	)
	if err := rows.Scan(&start, &originalStart, &endDate, &description,
		&amount, &frequency, &skipJSON, &scheduled, &cleared); err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	startDay, err := model.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("stored transaction %q: %w", description, err)
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("stored transaction %q: bad amount %q: %w", description, amount, err)
	}
	freq, err := model.ParseFrequency(frequency)
	if err != nil {
		return nil, fmt.Errorf("stored transaction %q: %w", description, err)
	}

	txn, err := model.New(startDay, description, amt, freq)
	if err != nil {
		return nil, err
	}

	original, err := model.ParseDate(originalStart)
	if err != nil {
		return nil, fmt.Errorf("stored transaction %q: %w", description, err)
	}
	txn.OriginalStart = original

	if endDate.Valid {
		end, parseErr := model.ParseDate(endDate.String)
		if parseErr != nil {
			return nil, fmt.Errorf("stored transaction %q: %w", description, parseErr)
		}
		txn.SetEnd(end)
	}

	var skips []string
	if err := json.Unmarshal([]byte(skipJSON), &skips); err != nil {
		return nil, fmt.Errorf("stored transaction %q: bad skip set: %w", description, err)
	}
	for _, s := range skips {
		day, parseErr := model.ParseDate(s)
		if parseErr != nil {
			return nil, fmt.Errorf("stored transaction %q: %w", description, parseErr)
		}
		txn.AddSkip(day)
	}

	txn.Scheduled = scheduled
	txn.Cleared = cleared
	return txn, nil
}
