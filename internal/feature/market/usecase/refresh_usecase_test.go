package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"assetwatch/internal/feature/market/domain"
	"assetwatch/internal/feature/market/domain/entity"
)

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	FetchListingsFunc func(ctx context.Context) ([]entity.CurrencyQuote, error)
}

func (m *mockMarketRepository) FetchListings(ctx context.Context) ([]entity.CurrencyQuote, error) {
	if m.FetchListingsFunc != nil {
		return m.FetchListingsFunc(ctx)
	}
	return nil, nil
}

// mockRefreshStore is a mock implementation of the RefreshStore interface.
type mockRefreshStore struct {
	EnsureSchemaFunc func(ctx context.Context) error
	SaveBatchFunc    func(ctx context.Context, quotes []entity.CurrencyQuote) error
}

func (m *mockRefreshStore) EnsureSchema(ctx context.Context) error {
	if m.EnsureSchemaFunc != nil {
		return m.EnsureSchemaFunc(ctx)
	}
	return nil
}

func (m *mockRefreshStore) SaveBatch(ctx context.Context, quotes []entity.CurrencyQuote) error {
	if m.SaveBatchFunc != nil {
		return m.SaveBatchFunc(ctx, quotes)
	}
	return nil
}

// mockListingCache is a mock implementation of the ListingCache interface.
type mockListingCache struct {
	InvalidateFunc func(ctx context.Context) error
}

func (m *mockListingCache) Invalidate(ctx context.Context) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx)
	}
	return nil
}

func TestRefreshUsecase_RefreshOnce(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	quotes := []entity.CurrencyQuote{
		{Name: "Bitcoin", Symbol: "BTC", Price: 68000.5, Timestamp: ts},
		{Name: "Ethereum", Symbol: "ETH", Price: 3200.25, Timestamp: ts},
	}

	t.Run("successful cycle saves the batch and drops the cache", func(t *testing.T) {
		var saved []entity.CurrencyQuote
		invalidated := false

		market := &mockMarketRepository{
			FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
				return quotes, nil
			},
		}
		store := &mockRefreshStore{
			SaveBatchFunc: func(ctx context.Context, q []entity.CurrencyQuote) error {
				saved = q
				return nil
			},
		}
		cache := &mockListingCache{
			InvalidateFunc: func(ctx context.Context) error {
				invalidated = true
				return nil
			},
		}

		uc := NewRefreshUsecase(market, store, cache)
		if err := uc.RefreshOnce(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(saved) != 2 {
			t.Errorf("expected 2 quotes saved, got %d", len(saved))
		}
		if !invalidated {
			t.Error("expected cache to be invalidated after commit")
		}
	})

	t.Run("upstream failure skips the cycle", func(t *testing.T) {
		saveCalled := false
		market := &mockMarketRepository{
			FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
				return nil, domain.ErrUpstream
			},
		}
		store := &mockRefreshStore{
			SaveBatchFunc: func(ctx context.Context, q []entity.CurrencyQuote) error {
				saveCalled = true
				return nil
			},
		}

		uc := NewRefreshUsecase(market, store, nil)
		if err := uc.RefreshOnce(context.Background()); !errors.Is(err, domain.ErrUpstream) {
			t.Errorf("expected ErrUpstream, got %v", err)
		}
		if saveCalled {
			t.Error("SaveBatch should not be called when the fetch fails")
		}
	})

	t.Run("schema failure aborts before fetching", func(t *testing.T) {
		fetchCalled := false
		schemaErr := errors.New("migrate failed")
		market := &mockMarketRepository{
			FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
				fetchCalled = true
				return nil, nil
			},
		}
		store := &mockRefreshStore{
			EnsureSchemaFunc: func(ctx context.Context) error { return schemaErr },
		}

		uc := NewRefreshUsecase(market, store, nil)
		if err := uc.RefreshOnce(context.Background()); !errors.Is(err, schemaErr) {
			t.Errorf("expected schema error, got %v", err)
		}
		if fetchCalled {
			t.Error("FetchListings should not be called when the schema check fails")
		}
	})

	t.Run("commit failure propagates", func(t *testing.T) {
		commitErr := errors.New("constraint violation")
		market := &mockMarketRepository{
			FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
				return quotes, nil
			},
		}
		store := &mockRefreshStore{
			SaveBatchFunc: func(ctx context.Context, q []entity.CurrencyQuote) error {
				return commitErr
			},
		}

		uc := NewRefreshUsecase(market, store, nil)
		if err := uc.RefreshOnce(context.Background()); !errors.Is(err, commitErr) {
			t.Errorf("expected commit error, got %v", err)
		}
	})

	t.Run("cache invalidation failure is not fatal", func(t *testing.T) {
		market := &mockMarketRepository{
			FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
				return quotes, nil
			},
		}
		cache := &mockListingCache{
			InvalidateFunc: func(ctx context.Context) error {
				return errors.New("redis down")
			},
		}

		uc := NewRefreshUsecase(market, &mockRefreshStore{}, cache)
		if err := uc.RefreshOnce(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRefreshUsecase_Run(t *testing.T) {
	var cycles atomic.Int32
	market := &mockMarketRepository{
		FetchListingsFunc: func(ctx context.Context) ([]entity.CurrencyQuote, error) {
			cycles.Add(1)
			if cycles.Load() == 1 {
				// A failed cycle must not terminate the loop.
				return nil, domain.ErrUpstream
			}
			return nil, nil
		},
	}

	uc := NewRefreshUsecase(market, &mockRefreshStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uc.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	// Wait for at least two ticks so the loop survives the first failure.
	deadline := time.After(2 * time.Second)
	for cycles.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for refresh cycles")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
