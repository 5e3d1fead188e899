package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodSliceWeeklyBoundary(t *testing.T) {
	today := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	txns := []Transaction{
		datedTxn(2024, 6, 9, Expense, "10", "Food", "Cash"),
		datedTxn(2024, 6, 7, Expense, "20", "Food", "Cash"),
		datedTxn(2024, 6, 15, Income, "30", "Salary", "Bank A"),
		datedTxn(2024, 6, 8, Expense, "5", "Food", "Cash"), // exactly 7 days back
	}

	slice, err := PeriodSlice(txns, PeriodWeekly, today)
	require.NoError(t, err)

	assert.Equal(t, NewDate(2024, 6, 8), slice.Start)
	assert.Equal(t, NewDate(2024, 6, 15), slice.End)
	assert.Equal(t, "Weekly Report (Last 7 Days)", slice.Label)

	var amounts []string
	for _, tx := range slice.Transactions {
		amounts = append(amounts, tx.Amount.String())
	}
	assert.ElementsMatch(t, []string{"10", "30", "5"}, amounts)
}

func TestPeriodSliceMonthlyMonthToDate(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	txns := []Transaction{
		datedTxn(2024, 6, 1, Expense, "10", "Food", "Cash"),
		datedTxn(2024, 5, 31, Expense, "20", "Food", "Cash"),
		datedTxn(2024, 6, 16, Expense, "30", "Food", "Cash"), // future, out of window
	}

	slice, err := PeriodSlice(txns, PeriodMonthly, today)
	require.NoError(t, err)

	assert.Equal(t, NewDate(2024, 6, 1), slice.Start)
	assert.Equal(t, "Monthly Report (June 2024)", slice.Label)
	require.Len(t, slice.Transactions, 1)
	assert.Equal(t, "10", slice.Transactions[0].Amount.String())
}

func TestPeriodSliceInvalidKind(t *testing.T) {
	_, err := PeriodSlice(nil, PeriodKind("yearly"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestSummaryStats(t *testing.T) {
	txns := []Transaction{
		datedTxn(2024, 6, 1, Income, "1000", "Salary", "Bank A"),
		datedTxn(2024, 6, 2, Expense, "300", "Food", "Cash"),
		datedTxn(2024, 6, 3, Investment, "200", "Gold", "Bank A"),
		datedTxn(2024, 6, 4, Transfer, "50", "To wallet", "Bank A"),
	}

	s := SummaryStats(txns)

	assert.Equal(t, "1000", s.TotalIncome.String())
	assert.Equal(t, "300", s.TotalExpenses.String())
	assert.Equal(t, "200", s.TotalInvestments.String())
	assert.Equal(t, "700", s.NetBalance.String())
	assert.Equal(t, 4, s.TransactionCount)
}

func TestSummaryStatsEmpty(t *testing.T) {
	s := SummaryStats(nil)

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.TotalInvestments.IsZero())
	assert.True(t, s.NetBalance.IsZero())
	assert.Zero(t, s.TransactionCount)
}
