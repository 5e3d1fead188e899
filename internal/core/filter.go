package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// Criteria is a conjunction of optional predicates. A nil/empty field
	// means no restriction on that dimension.
	Criteria struct {
		Start      *Date
		End        *Date
		Categories []string
		Sources    []string
		Type       *TxnType
	}

	// MonthBucket is one point of a sparse monthly series. Months with no
	// matching transactions are absent, not zero-filled.
	MonthBucket struct {
		Label string // "2006-01"
		Value decimal.Decimal
	}

	CategoryTotal struct {
		Category string
		Total    decimal.Decimal
	}

	AggregateOp int
)

const (
	AggregateSum AggregateOp = iota
	AggregateCount
)

// Filter selects the transactions matching every set predicate, preserving
// input order.
func Filter(txns []Transaction, c Criteria) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if c.Start != nil && t.Date.Before(c.Start.Time) {
			continue
		}
		if c.End != nil && t.Date.After(c.End.Time) {
			continue
		}
		if len(c.Categories) > 0 && !containsString(c.Categories, t.Category) {
			continue
		}
		if len(c.Sources) > 0 && !containsString(c.Sources, t.Source) {
			continue
		}
		if c.Type != nil && t.Type != *c.Type {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MonthlySummary buckets transactions by calendar month and aggregates the
// amounts with op. The result is sorted by month ascending and sparse:
// callers must not assume contiguous months.
func MonthlySummary(txns []Transaction, op AggregateOp) []MonthBucket {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txns {
		label := t.Date.MonthLabel()
		switch op {
		case AggregateCount:
			totals[label] = totals[label].Add(decimal.NewFromInt(1))
		default:
			totals[label] = totals[label].Add(t.Amount)
		}
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	// "2006-01" labels sort chronologically as plain strings.
	sort.Strings(labels)

	out := make([]MonthBucket, 0, len(labels))
	for _, label := range labels {
		out = append(out, MonthBucket{Label: label, Value: totals[label]})
	}
	return out
}

// GroupByCategory sums amounts per category, descending by total. Ties keep
// first-encountered category order.
func GroupByCategory(txns []Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range txns {
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
