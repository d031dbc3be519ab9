package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/ledgerflow/ledgerflow/internal/common"
	"github.com/ledgerflow/ledgerflow/internal/config"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
	"github.com/ledgerflow/ledgerflow/internal/storage"
)

// openStore opens the working ledger database from config with proper
// path expansion.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	return store, nil
}

// withLedger loads the working ledger, runs fn against it, and — when
// persist is set — writes the whole ledger back in one transaction.
func withLedger(ctx context.Context, persist bool, fn func(*ledger.Ledger) error) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close ledger database", nil)
		}
	}()

	l, err := store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	if err := fn(l); err != nil {
		return err
	}

	if persist {
		if err := store.ReplaceLedger(ctx, l); err != nil {
			return fmt.Errorf("failed to save ledger: %w", err)
		}
	}
	return nil
}

// parseAmount parses a signed decimal amount string.
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return amount, nil
}

// today returns the current calendar date. Only the CLI boundary reaches
// for the wall clock; the engine always takes explicit dates.
func today() time.Time {
	return model.DateOf(time.Now())
}

// lowBalance returns the configured low-balance warning threshold.
func lowBalance() decimal.Decimal {
	raw := viper.GetString("projection.low_balance")
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		slog.Warn("invalid projection.low_balance, using 100.00", "value", raw)
		return decimal.RequireFromString("100.00")
	}
	return threshold
}

// matchTransactions resolves --description/--on selection flags against
// the ledger.
func matchTransactions(l *ledger.Ledger, description, on string) ([]*model.Transaction, error) {
	if description == "" {
		return nil, fmt.Errorf("--description is required")
	}
	if on == "" {
		return l.Find(description), nil
	}
	day, err := model.ParseDate(on)
	if err != nil {
		return nil, err
	}
	return l.FindOn(description, day), nil
}
