package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Source classification. Wallet names match exactly; bank names match by
// case-insensitive substring. A source matching neither stays unclassified
// and is excluded from both subtotals.
var (
	WalletSources = []string{"Vodafone Cash", "InstaPay", "Wallet"}
	BankMarkers   = []string{"Bank", "Banque", "Ahly", "Misr"}
)

type SourceClass int

const (
	SourceUnclassified SourceClass = iota
	SourceWallet
	SourceBank
)

type (
	// KPIBundle holds the headline metrics derived from a full transaction set.
	// Investment and Transfer amounts are excluded from NetBalance: only cash
	// income/expense nets out. InvestmentsValue is cost basis, not market value.
	KPIBundle struct {
		TotalIncome      decimal.Decimal
		TotalExpenses    decimal.Decimal
		NetBalance       decimal.Decimal
		WalletBalance    decimal.Decimal
		BankBalance      decimal.Decimal
		InvestmentsValue decimal.Decimal
	}

	// SourceBalance is the net flow observed in the ledger for one source.
	// There is no initial-balance concept, so this is never a true account
	// balance.
	SourceBalance struct {
		Source  string
		Balance decimal.Decimal
	}
)

// ClassifySource puts a source name into exactly one of wallet, bank, or
// unclassified. The exact wallet match wins over the bank substring match, so
// no source is ever counted in both subtotals.
func ClassifySource(name string) SourceClass {
	for _, w := range WalletSources {
		if name == w {
			return SourceWallet
		}
	}
	lower := strings.ToLower(name)
	for _, m := range BankMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return SourceBank
		}
	}
	return SourceUnclassified
}

// SourceBalances groups signed amounts by source. Order is the order sources
// first appear in the input; the totals themselves do not depend on input
// order.
func SourceBalances(txns []Transaction) []SourceBalance {
	totals := make(map[string]decimal.Decimal, len(txns))
	order := make([]string, 0, len(txns))
	for _, t := range txns {
		if _, seen := totals[t.Source]; !seen {
			order = append(order, t.Source)
		}
		totals[t.Source] = totals[t.Source].Add(t.SignedAmount())
	}

	out := make([]SourceBalance, 0, len(order))
	for _, src := range order {
		out = append(out, SourceBalance{Source: src, Balance: totals[src]})
	}
	return out
}

// ComputeKPIs derives the KPI bundle from a transaction set. It is a pure,
// total function: empty input yields a zero-valued bundle, never an error.
func ComputeKPIs(txns []Transaction) KPIBundle {
	var b KPIBundle
	for _, t := range txns {
		switch t.Type {
		case Income:
			b.TotalIncome = b.TotalIncome.Add(t.Amount)
		case Expense:
			b.TotalExpenses = b.TotalExpenses.Add(t.Amount)
		case Investment:
			b.InvestmentsValue = b.InvestmentsValue.Add(t.Amount)
		}
	}
	b.NetBalance = b.TotalIncome.Sub(b.TotalExpenses)

	for _, sb := range SourceBalances(txns) {
		switch ClassifySource(sb.Source) {
		case SourceWallet:
			b.WalletBalance = b.WalletBalance.Add(sb.Balance)
		case SourceBank:
			b.BankBalance = b.BankBalance.Add(sb.Balance)
		}
	}
	return b
}
