package worker

import (
	"context"
	"fmt"
	"log/slog"

	"masareef/internal/amqp"
	"masareef/internal/ledger"
)

// MirrorWorker replays appended transactions into the flat-file replica so
// the fallback backend stays current with the primary. Delivery is
// at-least-once; a duplicate row in the replica is harmless because no
// aggregate depends on it being the ledger of record while the primary is up.
type MirrorWorker struct {
	replica ledger.Store
}

func NewMirrorWorker(replica ledger.Store) *MirrorWorker {
	return &MirrorWorker{replica: replica}
}

// HandleMirrorMessage processes one mirror message from AMQP. Returning an
// error requeues the delivery.
func (w *MirrorWorker) HandleMirrorMessage(ctx context.Context, msg *amqp.MirrorMessage) error {
	t, err := msg.Transaction()
	if err != nil {
		// The payload itself is bad; retrying won't fix it.
		slog.ErrorContext(ctx, "Dropping malformed mirror message",
			"user_id", msg.UserID,
			"error", err)
		return nil
	}

	if !w.replica.Available(ctx) {
		return fmt.Errorf("replica unavailable")
	}

	if err := w.replica.Append(ctx, msg.UserID, t); err != nil {
		return fmt.Errorf("append to replica: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored transaction to replica",
		"user_id", msg.UserID,
		"type", msg.Type,
		"amount", msg.Amount.String())

	return nil
}
