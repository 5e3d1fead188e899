package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"masareef/internal/amqp"
	"masareef/internal/cache"
	"masareef/internal/core"
	"masareef/internal/ledger"
)

// MirrorPublisher pushes appended transactions toward the mirror worker.
type MirrorPublisher interface {
	PublishMirror(ctx context.Context, msg *amqp.MirrorMessage) error
}

// LedgerService orchestrates loads and appends across the primary and
// fallback backends, memoizing loads behind a refresh token. The token and
// cache live on the service instance, not in package state, so two services
// never share invalidation.
type LedgerService struct {
	primary  ledger.Store
	fallback ledger.Store
	cache    cache.Cache[[]core.Transaction]
	token    atomic.Int64
	mirror   MirrorPublisher
}

func NewLedgerService(primary, fallback ledger.Store, c cache.Cache[[]core.Transaction], mirror MirrorPublisher) *LedgerService {
	return &LedgerService{
		primary:  primary,
		fallback: fallback,
		cache:    c,
		mirror:   mirror,
	}
}

// Load returns the user's full ledger, served from cache while the refresh
// token and TTL allow. On a miss it asks the primary backend first and falls
// back for that call only; availability is re-checked every time, so a
// transient outage never poisons future loads. When no backend can serve the
// call it returns ledger.ErrStoreUnavailable, which callers must not confuse
// with an empty ledger.
func (s *LedgerService) Load(ctx context.Context, userID int64) ([]core.Transaction, error) {
	key := s.cacheKey(userID)
	if txns, ok := s.cache.Get(key); ok {
		return txns, nil
	}

	var lastErr error
	for _, store := range []ledger.Store{s.primary, s.fallback} {
		if store == nil {
			continue
		}
		if !store.Available(ctx) {
			slog.WarnContext(ctx, "Ledger backend unavailable, trying next", "user_id", userID)
			continue
		}

		txns, err := store.LoadAll(ctx, userID)
		if err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Ledger load failed, trying next backend",
				"user_id", userID,
				"error", err)
			continue
		}

		s.cache.Set(key, txns)
		return txns, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ledger.ErrStoreUnavailable, lastErr)
	}
	return nil, ledger.ErrStoreUnavailable
}

// Append validates the transaction, writes it to the first backend that
// takes it, then invalidates the cache before returning so the next Load in
// this session sees the write. Malformed input is rejected before any
// backend is touched; a failed write leaves the cache untouched.
func (s *LedgerService) Append(ctx context.Context, userID int64, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("validate transaction: %w", err)
	}
	t.UserID = userID

	var lastErr error
	for _, store := range []ledger.Store{s.primary, s.fallback} {
		if store == nil {
			continue
		}
		if !store.Available(ctx) {
			continue
		}

		if err := store.Append(ctx, userID, t); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Ledger append failed, trying next backend",
				"user_id", userID,
				"error", err)
			continue
		}

		s.Invalidate()
		s.publishMirror(ctx, userID, t)
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("append transaction: %w", lastErr)
	}
	return fmt.Errorf("append transaction: %w", ledger.ErrStoreUnavailable)
}

// Invalidate bumps the refresh token, changing the memoization key for every
// subsequent load.
func (s *LedgerService) Invalidate() {
	s.token.Add(1)
}

// RefreshToken exposes the current token for observability.
func (s *LedgerService) RefreshToken() int64 {
	return s.token.Load()
}

func (s *LedgerService) cacheKey(userID int64) string {
	return strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(s.token.Load(), 10)
}

// publishMirror is best effort: the append already succeeded, so a publish
// failure is logged and swallowed.
func (s *LedgerService) publishMirror(ctx context.Context, userID int64, t core.Transaction) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.PublishMirror(ctx, amqp.NewMirrorMessage(userID, t)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mirror message",
			"user_id", userID,
			"error", err)
	}
}
