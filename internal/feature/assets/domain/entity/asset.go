// Package entity defines the domain entities for the assets feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset represents "this user tracks this currency". The holding amount is
// not stored here; it lives in the append-only AssetAmountPriceHistory ledger.
// A user has at most one asset per currency. Assets are never deleted.
type Asset struct {
	// ID is the unique identifier for the asset.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// UserID references the owning user.
	UserID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:asset_user_currency,priority:1"`

	// CurrencyID references the tracked currency.
	CurrencyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:asset_user_currency,priority:2"`

	// CreatedAt is the timestamp when the asset was created.
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID primary key before the row is inserted.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
