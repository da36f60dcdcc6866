package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Price is business-set, independent of recipe
// cost. Stock (integer units) changes only through order creation and
// cancellation.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Active      bool            `gorm:"not null;default:true"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
