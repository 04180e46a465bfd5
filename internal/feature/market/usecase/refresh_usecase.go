package usecase

import (
	"context"
	"log/slog"
	"time"

	"assetwatch/internal/feature/market/domain/entity"
)

// MarketRepository abstracts the upstream market data source.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	// FetchListings fetches the current listings from the upstream API.
	// Every returned quote carries the same server-reported batch timestamp.
	FetchListings(ctx context.Context) ([]entity.CurrencyQuote, error)
}

// RefreshStore abstracts the write side of the price ledger used by the refresh job.
type RefreshStore interface {
	// EnsureSchema creates the ledger tables if they do not exist yet. Idempotent.
	EnsureSchema(ctx context.Context) error

	// SaveBatch persists one refresh cycle as a single all-or-nothing unit:
	// unknown currency names are created, then one price row per quote is
	// inserted at the batch timestamp.
	SaveBatch(ctx context.Context, quotes []entity.CurrencyQuote) error
}

// ListingCache invalidates cached listing reads after a committed batch.
type ListingCache interface {
	Invalidate(ctx context.Context) error
}

// RefreshUsecase pulls listings from the upstream market API and persists
// them into the price ledger on a fixed interval.
type RefreshUsecase struct {
	market MarketRepository
	store  RefreshStore
	cache  ListingCache // may be nil when no cache is configured
}

// NewRefreshUsecase creates a new RefreshUsecase. cache may be nil.
func NewRefreshUsecase(market MarketRepository, store RefreshStore, cache ListingCache) *RefreshUsecase {
	return &RefreshUsecase{market: market, store: store, cache: cache}
}

// RefreshOnce executes one refresh cycle: ensure schema, fetch the upstream
// listings and commit them in one transaction. A failure anywhere leaves the
// ledger untouched; the error is logged and returned so the caller can decide
// whether to crash (one-shot tool) or wait for the next tick (server loop).
func (u *RefreshUsecase) RefreshOnce(ctx context.Context) error {
	if err := u.store.EnsureSchema(ctx); err != nil {
		slog.Error("refresh: schema check failed", "error", err)
		return err
	}

	quotes, err := u.market.FetchListings(ctx)
	if err != nil {
		slog.Error("refresh: upstream fetch failed", "error", err)
		return err
	}

	if err := u.store.SaveBatch(ctx, quotes); err != nil {
		slog.Error("refresh: batch commit failed", "error", err, "quotes", len(quotes))
		return err
	}

	if u.cache != nil {
		// Best effort: a stale cache entry expires on its own TTL anyway.
		if err := u.cache.Invalidate(ctx); err != nil {
			slog.Warn("refresh: cache invalidation failed", "error", err)
		}
	}

	slog.Info("refresh: price histories updated", "quotes", len(quotes))
	return nil
}

// Run executes RefreshOnce every interval until ctx is cancelled.
// A failed cycle never terminates the loop; it waits for the next tick.
func (u *RefreshUsecase) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("refresh: job started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh: job stopped")
			return
		case <-ticker.C:
			// Errors are already logged; skip the cycle and wait for the next tick.
			_ = u.RefreshOnce(ctx)
		}
	}
}
