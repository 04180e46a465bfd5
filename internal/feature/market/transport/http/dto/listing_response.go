// Package dto defines data transfer objects for the market HTTP API.
package dto

import "time"

// ListingResponse represents one cryptocurrency listing in the API response.
type ListingResponse struct {
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	SyncTimestamp time.Time `json:"sync_timestamp"`
}
