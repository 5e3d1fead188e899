package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseTxnType(t *testing.T) {
	cases := []struct {
		in   string
		want TxnType
		ok   bool
	}{
		{"Income", Income, true},
		{"Expense", Expense, true},
		{"Investment", Investment, true},
		{"Transfer", Transfer, true},
		{" Income ", Income, true},
		{"income", "", false}, // canonical strings are case-sensitive
		{"Salary", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseTxnType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: expected %q, got %q (err=%v)", i, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:   NewDate(2024, 6, 15),
		Type:   Expense,
		Amount: decimal.NewFromInt(300),
		Source: "Bank A",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amounts are allowed; only negative is rejected.
	zero := good
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Type: Expense, Amount: decimal.NewFromInt(1)},
		{Date: NewDate(2024, 6, 15), Type: "Groceries", Amount: decimal.NewFromInt(1)},
		{Date: NewDate(2024, 6, 15), Type: Expense, Amount: decimal.NewFromInt(-1)},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)
	cases := []struct {
		typ  TxnType
		want string
	}{
		{Income, "250"},
		{Expense, "-250"},
		{Investment, "-250"},
		{Transfer, "-250"},
	}
	for _, tc := range cases {
		tx := Transaction{Type: tc.typ, Amount: amount}
		if got := tx.SignedAmount().String(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.typ, tc.want, got)
		}
	}
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	stamp := time.Date(2024, 6, 15, 23, 59, 58, 0, time.FixedZone("EET", 2*3600))
	d := DateOf(stamp)
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Fatalf("expected midnight, got %v", d.Time)
	}
	if d.MonthLabel() != "2024-06" {
		t.Fatalf("expected 2024-06, got %s", d.MonthLabel())
	}
}
