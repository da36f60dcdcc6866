package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Preparation is a sub-recipe: a batch of YieldQuantity units produced from
// ingredients. CostPerUnit is derived — it is recomputed synchronously every
// time the item set is replaced.
type Preparation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"index;not null"`
	Unit          string          `gorm:"not null;default:'porcion'"`
	YieldQuantity decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Stock         decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes         *string
	Active        bool      `gorm:"not null;default:true"`
	BusinessID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []PreparationItem `gorm:"foreignKey:PreparationID"`
}

// PreparationItem is one (ingredient, quantity) edge of a preparation's
// recipe. The full set is replaced, never merged, on each recipe save.
type PreparationItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PreparationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	IngredientID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(10,3);not null"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (PreparationItem) TableName() string { return "preparation_items" }
