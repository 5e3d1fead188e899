package worker

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masareef/internal/amqp"
	"masareef/internal/core"
	"masareef/internal/memory"
)

func TestHandleMirrorMessageAppendsToReplica(t *testing.T) {
	replica := memory.New()
	w := NewMirrorWorker(replica)
	ctx := context.Background()

	tx := core.Transaction{
		Date:   core.NewDate(2024, 6, 1),
		Type:   core.Expense,
		Source: "Cash",
		Amount: decimal.NewFromInt(50),
	}
	require.NoError(t, w.HandleMirrorMessage(ctx, amqp.NewMirrorMessage(4, tx)))

	got, err := replica.LoadAll(ctx, 4)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "50", got[0].Amount.String())
}

func TestHandleMirrorMessageDropsMalformedPayload(t *testing.T) {
	replica := memory.New()
	w := NewMirrorWorker(replica)

	msg := &amqp.MirrorMessage{Date: "bad", Type: "Expense"}
	// nil so the broker acks instead of requeueing a poison message
	assert.NoError(t, w.HandleMirrorMessage(context.Background(), msg))

	got, _ := replica.LoadAll(context.Background(), 0)
	assert.Empty(t, got)
}
