// Package usecase implements the business logic for market-data operations.
package usecase

import (
	"context"

	"assetwatch/internal/feature/market/domain"
	"assetwatch/internal/feature/market/domain/entity"
)

// ListingRepository abstracts the read side of the price ledger.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ListingRepository interface {
	// Listings returns the latest recorded price per currency.
	// Currencies with no price history are omitted.
	Listings(ctx context.Context) ([]entity.Listing, error)
}

// ListingUsecase provides read access to the current market listings.
type ListingUsecase struct {
	repo ListingRepository
}

// NewListingUsecase creates a new ListingUsecase with the given repository.
func NewListingUsecase(r ListingRepository) *ListingUsecase {
	return &ListingUsecase{repo: r}
}

// Listings returns every currency that has at least one recorded price,
// each with its latest price and sync timestamp.
func (u *ListingUsecase) Listings(ctx context.Context) ([]entity.Listing, error) {
	return u.repo.Listings(ctx)
}

// ListingByOrdinal returns the n-th listing (1-based) of the current listing
// set. It returns domain.ErrListingNotFound if n is out of range.
func (u *ListingUsecase) ListingByOrdinal(ctx context.Context, n int) (entity.Listing, error) {
	listings, err := u.repo.Listings(ctx)
	if err != nil {
		return entity.Listing{}, err
	}
	if n < 1 || n > len(listings) {
		return entity.Listing{}, domain.ErrListingNotFound
	}
	return listings[n-1], nil
}
