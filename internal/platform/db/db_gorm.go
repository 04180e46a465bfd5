// Package db provides the GORM database bootstrap.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	assetentity "assetwatch/internal/feature/assets/domain/entity"
	userentity "assetwatch/internal/feature/auth/domain/entity"
	marketentity "assetwatch/internal/feature/market/domain/entity"
)

// OpenDB opens the Postgres connection described by dsn, retrying for up to
// a minute while the database is coming up, and migrates the schema.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey across drivers.
func OpenDB(dsn string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate creates or updates the ledger tables. Idempotent.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userentity.User{},
		&marketentity.Currency{},
		&marketentity.PriceHistory{},
		&assetentity.Asset{},
		&assetentity.AssetAmountPriceHistory{},
	)
}
