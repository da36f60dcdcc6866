package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recipe item discriminators. Lookups on read switch exhaustively over these.
const (
	RecipeItemIngredient  = "ingredient"
	RecipeItemPreparation = "preparation"
)

// ProductRecipe is one polymorphic edge of a product's recipe: ItemType
// decides whether ItemID points at an Ingredient or a Preparation. A
// product's edge set is fully replaced on each recipe save; no stored cost is
// derived from it (product price is set by the business).
type ProductRecipe struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemType  string          `gorm:"not null"` // ingredient | preparation
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
}

func (ProductRecipe) TableName() string { return "product_recipes" }
