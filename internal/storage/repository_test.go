package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masareef/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx := core.Transaction{
		Date:        core.NewDate(2024, 6, 15),
		Type:        core.Income,
		Category:    "Salary",
		Source:      "Bank A",
		Amount:      decimal.RequireFromString("1234.56"),
		Description: "June salary",
		UserID:      1,
	}
	require.NoError(t, repo.Append(ctx, 1, tx))

	got, err := repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, core.NewDate(2024, 6, 15), got[0].Date)
	assert.Equal(t, core.Income, got[0].Type)
	assert.Equal(t, "Salary", got[0].Category)
	assert.Equal(t, "Bank A", got[0].Source)
	assert.True(t, got[0].Amount.Equal(tx.Amount))
	assert.Equal(t, "June salary", got[0].Description)
}

func TestSQLiteEmptyLedgerIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.LoadAll(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteUserIsolation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	mine := core.Transaction{
		Date:   core.NewDate(2024, 1, 1),
		Type:   core.Expense,
		Amount: decimal.NewFromInt(10),
	}
	theirs := core.Transaction{
		Date:   core.NewDate(2024, 1, 2),
		Type:   core.Expense,
		Amount: decimal.NewFromInt(20),
	}
	require.NoError(t, repo.Append(ctx, 1, mine))
	require.NoError(t, repo.Append(ctx, 2, theirs))

	got, err := repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "10", got[0].Amount.String())
	assert.Equal(t, int64(1), got[0].UserID)
}

func TestSQLiteOrderNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	old := core.Transaction{Date: core.NewDate(2024, 1, 1), Type: core.Expense, Amount: decimal.NewFromInt(1)}
	recent := core.Transaction{Date: core.NewDate(2024, 3, 1), Type: core.Expense, Amount: decimal.NewFromInt(2)}
	require.NoError(t, repo.Append(ctx, 1, old))
	require.NoError(t, repo.Append(ctx, 1, recent))

	got, err := repo.LoadAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].Amount.String())
}

func TestSQLiteAvailable(t *testing.T) {
	repo := newTestRepo(t)
	assert.True(t, repo.Available(context.Background()))
}
