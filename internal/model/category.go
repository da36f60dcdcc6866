package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and can be the target of a category discount.
// Its CRUD surface lives outside this core; the model exists so discounts
// and product listings can resolve it.
type Category struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string    `gorm:"not null"`
	Active     bool      `gorm:"not null;default:true"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
