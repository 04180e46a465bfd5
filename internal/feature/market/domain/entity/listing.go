package entity

import "time"

// CurrencyQuote is one normalized row fetched from the upstream market API.
// All quotes of one fetch share the same batch timestamp (the server-reported
// batch time, not per-row wall clock).
type CurrencyQuote struct {
	Name      string
	Symbol    string
	Price     float64
	Timestamp time.Time
}

// Listing is a currency's latest known price plus the timestamp it was
// recorded at. Currencies without any recorded price have no listing.
type Listing struct {
	Name          string
	Symbol        string
	Price         float64
	SyncTimestamp time.Time
}
