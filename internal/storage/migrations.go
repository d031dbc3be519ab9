package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// expectedSchemaVersion is the latest schema version the application expects.
const expectedSchemaVersion = 2

// migration represents a database schema migration.
type migration struct {
	up          func(*sql.Tx) error
	description string
	version     int
}

var migrations = []migration{
	{
		version:     1,
		description: "Initial schema",
		up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					start DATE NOT NULL,
					original_start DATE NOT NULL,
					end_date DATE,
					description TEXT NOT NULL,
					amount TEXT NOT NULL,
					frequency TEXT NOT NULL,
					skip TEXT NOT NULL DEFAULT '[]',
					scheduled INTEGER NOT NULL DEFAULT 0,
					cleared INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_description ON transactions(description)`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		version:     2,
		description: "Index by frequency for filtered listings",
		up: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`CREATE INDEX idx_transactions_frequency ON transactions(frequency)`); err != nil {
				return fmt.Errorf("failed to create frequency index: %w", err)
			}
			return nil
		},
	},
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
		}

		if err := m.up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.description, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
		}

		slog.Debug("applied migration", "version", m.version, "description", m.description)
		current = m.version
	}

	if current != expectedSchemaVersion {
		return fmt.Errorf("schema version %d after migration, expected %d", current, expectedSchemaVersion)
	}
	return nil
}
