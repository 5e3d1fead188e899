package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

var ErrInvalidPeriod = errors.New("invalid report period")

type (
	PeriodKind string

	// Stats are the summary figures for a report slice. NetBalance is
	// income minus expenses only.
	Stats struct {
		TotalIncome      decimal.Decimal
		TotalExpenses    decimal.Decimal
		TotalInvestments decimal.Decimal
		NetBalance       decimal.Decimal
		TransactionCount int
	}

	// ReportSlice is a period-bounded view of the ledger handed to the
	// rendering layer as plain data.
	ReportSlice struct {
		Transactions []Transaction
		Start        Date
		End          Date
		Label        string
		Stats        Stats
	}
)

// SummaryStats computes report totals over a slice, zero-valued on empty input.
func SummaryStats(txns []Transaction) Stats {
	var s Stats
	for _, t := range txns {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		case Investment:
			s.TotalInvestments = s.TotalInvestments.Add(t.Amount)
		}
	}
	s.NetBalance = s.TotalIncome.Sub(s.TotalExpenses)
	s.TransactionCount = len(txns)
	return s
}

// PeriodSlice selects the transactions inside the report window ending at
// today. Weekly is a rolling last-7-days window, monthly is month-to-date.
// Both bounds are inclusive and compared on calendar date only.
func PeriodSlice(txns []Transaction, kind PeriodKind, today time.Time) (ReportSlice, error) {
	end := DateOf(today)

	var start Date
	var label string
	switch kind {
	case PeriodWeekly:
		start = DateOf(today.AddDate(0, 0, -7))
		label = "Weekly Report (Last 7 Days)"
	case PeriodMonthly:
		start = NewDate(end.Year(), int(end.Month()), 1)
		label = "Monthly Report (" + end.Format("January 2006") + ")"
	default:
		return ReportSlice{}, ErrInvalidPeriod
	}

	selected := Filter(txns, Criteria{Start: &start, End: &end})
	return ReportSlice{
		Transactions: selected,
		Start:        start,
		End:          end,
		Label:        label,
		Stats:        SummaryStats(selected),
	}, nil
}
