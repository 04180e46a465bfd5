// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user in the system.
// Users are created at registration and never updated or deleted.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Username is the unique, case-sensitive login name. Max 49 characters.
	Username string `gorm:"uniqueIndex;size:49;not null"`

	// HashPassword is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	HashPassword string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}

// BeforeCreate assigns a UUID primary key before the row is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
