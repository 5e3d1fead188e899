package ledger

import (
	"context"
	"errors"

	"masareef/internal/core"
)

// ErrStoreUnavailable signals that no backend could serve the call. It is
// distinct from an empty ledger: a new user gets an empty slice and a nil
// error.
var ErrStoreUnavailable = errors.New("no ledger backend available")

// Store is the outbound port owned by the core. Backends are interchangeable:
// a relational store, a flat-file store, and an in-memory store all satisfy
// the same contract.
type Store interface {
	// Available reports whether the backend can currently serve calls.
	// Callers re-check per call; a false result never sticks.
	Available(ctx context.Context) bool

	// LoadAll returns every transaction for the user. An empty ledger is an
	// empty slice, not an error. Order is not semantically significant to
	// any aggregate.
	LoadAll(ctx context.Context, userID int64) ([]core.Transaction, error)

	// Append durably adds one record. On error nothing was written.
	Append(ctx context.Context, userID int64, t core.Transaction) error
}
