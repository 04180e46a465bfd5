// Package dto defines data transfer objects for the CoinMarketCap API responses.
package dto

// ListingsResponse represents the JSON response from the
// /v1/cryptocurrency/listings/latest endpoint.
type ListingsResponse struct {
	Status struct {
		Timestamp    string `json:"timestamp"`
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message,omitempty"`
	} `json:"status"`
	Data []struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
		Quote  struct {
			USD struct {
				Price float64 `json:"price"`
			} `json:"USD"`
		} `json:"quote"`
	} `json:"data"`
}
