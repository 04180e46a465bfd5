package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssetAmountPriceHistory is one entry of the append-only holding ledger:
// the holding quantity of an asset as of a timestamp, together with a
// snapshot of the currency's price at write time. Rows are never updated
// or deleted.
type AssetAmountPriceHistory struct {
	// ID is the unique identifier for the ledger entry.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// AssetID references the asset this entry belongs to.
	// At most one entry exists per asset per timestamp.
	AssetID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:amount_asset_time,priority:1"`

	// Timestamp is the instant the amount was recorded, timezone-aware.
	Timestamp time.Time `gorm:"not null;uniqueIndex:amount_asset_time,priority:2"`

	// Amount is the holding quantity as of Timestamp. Non-negative.
	Amount float64 `gorm:"not null"`

	// Price is the currency's latest known price at the moment the amount
	// was recorded. Valuations of this entry use this snapshot, not the
	// currency's current price.
	Price float64 `gorm:"not null"`
}

// BeforeCreate assigns a UUID primary key before the row is inserted.
func (a *AssetAmountPriceHistory) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
