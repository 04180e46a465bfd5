package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceHistory is one recorded price of a currency at one instant.
// Rows are append-only: they are written by the refresh job and never
// updated or deleted afterwards.
type PriceHistory struct {
	// ID is the unique identifier for the price record.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// CurrencyID references the currency this price belongs to.
	// At most one price exists per currency per timestamp.
	CurrencyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:price_currency_time,priority:1"`

	// Timestamp is the batch time reported by the upstream API, timezone-aware.
	Timestamp time.Time `gorm:"not null;uniqueIndex:price_currency_time,priority:2"`

	// Price is the recorded USD price. Non-negative.
	Price float64 `gorm:"not null"`
}

// BeforeCreate assigns a UUID primary key before the row is inserted.
func (p *PriceHistory) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
