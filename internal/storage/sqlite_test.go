package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTxn(t *testing.T, start time.Time, description, amount string, freq model.Frequency) *model.Transaction {
	t.Helper()
	txn, err := model.New(start, description, decimal.RequireFromString(amount), freq)
	require.NoError(t, err)
	return txn
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	start := date(2024, time.January, 15)
	l := ledger.New()

	once := newTxn(t, start, "Tax refund", "450.00", model.Once)
	once.Cleared = true

	weekly := newTxn(t, start, "Groceries", "-82.35", model.Weekly)
	weekly.SetEnd(start.AddDate(0, 2, 0))
	weekly.AddSkip(start.AddDate(0, 0, 7))
	weekly.Scheduled = true
	weekly.OriginalStart = start.AddDate(0, -1, 0)

	l.Add(once, weekly)
	require.NoError(t, store.ReplaceLedger(ctx, l))

	loaded, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	got := loaded.Transactions()

	assert.True(t, got[0].Start.Equal(once.Start))
	assert.Equal(t, "Tax refund", got[0].Description)
	assert.True(t, got[0].Amount.Equal(once.Amount))
	assert.Equal(t, model.Once, got[0].Frequency)
	assert.Nil(t, got[0].End)
	assert.True(t, got[0].Cleared)
	assert.False(t, got[0].Scheduled)

	assert.True(t, got[1].Start.Equal(weekly.Start))
	assert.True(t, got[1].OriginalStart.Equal(weekly.OriginalStart))
	require.NotNil(t, got[1].End)
	assert.True(t, got[1].End.Equal(*weekly.End))
	assert.True(t, got[1].Amount.Equal(weekly.Amount))
	assert.Equal(t, model.Weekly, got[1].Frequency)
	assert.True(t, got[1].Skipped(start.AddDate(0, 0, 7)))
	assert.True(t, got[1].Scheduled)
	assert.False(t, got[1].Cleared)
}

func TestReplaceLedgerOverwrites(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	first := ledger.New()
	first.Add(newTxn(t, date(2024, time.March, 1), "Old", "1.00", model.Once))
	require.NoError(t, store.ReplaceLedger(ctx, first))

	second := ledger.New()
	second.Add(
		newTxn(t, date(2024, time.March, 2), "New A", "2.00", model.Once),
		newTxn(t, date(2024, time.March, 3), "New B", "3.00", model.Weekly),
	)
	require.NoError(t, store.ReplaceLedger(ctx, second))

	loaded, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())
	assert.Empty(t, loaded.Find("Old"))

	// Insertion order survives.
	got := loaded.Transactions()
	assert.Equal(t, "New A", got[0].Description)
	assert.Equal(t, "New B", got[1].Description)
}

func TestLoadEmptyStore(t *testing.T) {
	store := testStore(t)

	loaded, err := store.LoadLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	store, err := NewSQLiteStore(ctx, dbPath)
	require.NoError(t, err)

	l := ledger.New()
	l.Add(newTxn(t, date(2024, time.March, 1), "Durable", "10.00", model.Monthly))
	require.NoError(t, store.ReplaceLedger(ctx, l))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(ctx, dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, reopened.Close()) }()

	loaded, err := reopened.LoadLedger(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "Durable", loaded.Transactions()[0].Description)
}
