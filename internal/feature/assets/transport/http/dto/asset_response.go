package dto

// AssetInfoResponse represents one asset valuation in the API response.
type AssetInfoResponse struct {
	Currency     string  `json:"currency"`
	Amount       float64 `json:"amount"`
	CurrentCost  float64 `json:"current_cost"`
	CurrentPrice float64 `json:"current_price"`
}
