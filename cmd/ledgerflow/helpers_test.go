package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/ledgerflow/internal/model"
)

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("-1500.25")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("-1500.25")))

	_, err = parseAmount("twelve dollars")
	assert.Error(t, err)
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"jan.qfx", "feb.qfx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	files, err := expandGlobs([]string{filepath.Join(dir, "*.qfx")})
	require.NoError(t, err)
	assert.Len(t, files, 2)

	// Non-matching literals pass through so the open fails loudly later.
	files, err = expandGlobs([]string{filepath.Join(dir, "missing.ofx")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "missing.ofx")}, files)
}

func TestDedupKey(t *testing.T) {
	day := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	a, err := model.New(day, "COFFEE", decimal.RequireFromString("-4.50"), model.Once)
	require.NoError(t, err)
	b, err := model.New(day, "COFFEE", decimal.RequireFromString("-4.50"), model.Once)
	require.NoError(t, err)
	c, err := model.New(day, "COFFEE", decimal.RequireFromString("-4.51"), model.Once)
	require.NoError(t, err)

	assert.Equal(t, dedupKey(a), dedupKey(b))
	assert.NotEqual(t, dedupKey(a), dedupKey(c))
}
