package amqp

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masareef/internal/core"
)

func TestMirrorMessageReconstructsTransaction(t *testing.T) {
	original := core.Transaction{
		Date:        core.NewDate(2024, 6, 15),
		Type:        core.Investment,
		Category:    "Gold",
		Source:      "Bank A",
		Amount:      decimal.RequireFromString("499.99"),
		Description: "coins",
		UserID:      3,
	}

	msg := NewMirrorMessage(3, original)
	body, err := msg.ToJSON()
	require.NoError(t, err)

	decoded, err := MirrorMessageFromJSON(body)
	require.NoError(t, err)

	got, err := decoded.Transaction()
	require.NoError(t, err)
	assert.Equal(t, original.Date, got.Date)
	assert.Equal(t, original.Type, got.Type)
	assert.True(t, got.Amount.Equal(original.Amount))
	assert.Equal(t, int64(3), got.UserID)
}

func TestMirrorMessageRejectsBadPayload(t *testing.T) {
	msg := &MirrorMessage{Date: "yesterday", Type: "Expense", Amount: decimal.NewFromInt(1)}
	_, err := msg.Transaction()
	assert.Error(t, err)

	msg = &MirrorMessage{Date: "2024-06-01", Type: "Loan", Amount: decimal.NewFromInt(1)}
	_, err = msg.Transaction()
	assert.ErrorIs(t, err, core.ErrInvalidType)
}
