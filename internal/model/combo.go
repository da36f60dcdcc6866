package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Combo bundles products at a set price. OriginalPrice is the sum of the
// component product prices at the moment the item set was last saved — a
// snapshot, not live-recomputed. No invariant forces Price <= OriginalPrice.
type Combo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// OriginalPrice = Σ(product price × quantity) over the items, at save time.
	OriginalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	BusinessID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []ComboItem `gorm:"foreignKey:ComboID"`
}

type ComboItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComboID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null;default:1"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (ComboItem) TableName() string { return "combo_items" }
