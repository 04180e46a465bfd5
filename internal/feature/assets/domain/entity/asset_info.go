package entity

// AssetInfo is the valuation of one asset: the latest recorded holding
// amount, the price snapshot taken when that amount was recorded, and the
// cost derived from the two.
type AssetInfo struct {
	Currency     string
	Amount       float64
	CurrentCost  float64
	CurrentPrice float64
}
