package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income     TxnType = "Income"
	Expense    TxnType = "Expense"
	Investment TxnType = "Investment"
	Transfer   TxnType = "Transfer"
)

type (
	TxnType string

	Date struct {
		time.Time
	}

	// Transaction is one row of the append-only ledger. Amount is always
	// non-negative; direction comes from Type.
	Transaction struct {
		Date        Date
		Type        TxnType
		Category    string
		Source      string
		Amount      decimal.Decimal
		Description string
		UserID      int64
	}
)

var (
	ErrMissingDate   = errors.New("missing date")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseTxnType parses the canonical type string used in storage and on the wire.
func ParseTxnType(s string) (TxnType, error) {
	t := TxnType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (t TxnType) IsValid() bool {
	switch t {
	case Income, Expense, Investment, Transfer:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (t TxnType) String() string {
	return string(t)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date. Ledger dates carry no
// time-of-day semantics, so every Date in the system goes through here.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// MonthLabel returns the calendar-month bucket label, e.g. "2024-03".
func (d Date) MonthLabel() string {
	return d.Format("2006-01")
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// SignedAmount applies flow direction for balance aggregation: Income adds to
// its source, everything else (Expense, Investment, Transfer) drains it.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}
