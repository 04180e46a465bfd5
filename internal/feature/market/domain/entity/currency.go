// Package entity defines the domain entities for the market feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Currency represents one tracked cryptocurrency.
// A currency is created lazily the first time the refresh job observes
// a listing name that is not on file yet.
type Currency struct {
	// ID is the unique identifier for the currency.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Name is the display name (e.g. "Bitcoin"). The (name, symbol) pair is unique.
	Name string `gorm:"size:49;not null;uniqueIndex:currency_name_symbol,priority:1"`

	// Symbol is the ticker symbol (e.g. "BTC"). Upstream delivers it
	// uppercase already; no normalization is performed on ingest.
	Symbol string `gorm:"size:16;not null;uniqueIndex:currency_name_symbol,priority:2"`

	// CreatedAt is the timestamp when the currency was first observed.
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID primary key before the row is inserted.
func (c *Currency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
