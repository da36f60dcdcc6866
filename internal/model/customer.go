package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is hydrated onto orders. Its CRUD surface lives outside this core.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Phone      string    `gorm:"not null;index"`
	Name       string    `gorm:"not null"`
	Address    *string
	Notes      *string
	Active     bool      `gorm:"not null;default:true"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
