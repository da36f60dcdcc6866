package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can operate the POS. Owners carry BusinessID equal
// to their own ID; employees carry the owner's ID. Every tenant-scoped query
// filters by this value.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'employee'"` // "owner" | "employee"
	Email        *string
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
