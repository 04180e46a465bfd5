// Package domain defines domain-level errors for the market feature.
package domain

import "errors"

// Domain errors for market operations.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrUpstream indicates a transport failure or malformed response from
	// the external market data API. The refresh cycle that hit it is skipped.
	ErrUpstream = errors.New("upstream market data error")

	// ErrCurrencyNotFound indicates that no currency with the given name is on file.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrPriceNotFound indicates that a currency has no recorded price history yet.
	ErrPriceNotFound = errors.New("no price recorded for currency")

	// ErrListingNotFound indicates that a listing ordinal is out of range.
	ErrListingNotFound = errors.New("listing not found")
)
