package dto

import "github.com/shopspring/decimal"

// ─── Preparations ────────────────────────────────────────────────────────────

type CreatePreparationRequest struct {
	Name          string          `json:"name"           validate:"required"`
	Unit          string          `json:"unit"           validate:"required"`
	YieldQuantity decimal.Decimal `json:"yield_quantity" validate:"required"`
	Notes         *string         `json:"notes"`
}

type UpdatePreparationRequest struct {
	Name          *string          `json:"name"`
	Unit          *string          `json:"unit"`
	YieldQuantity *decimal.Decimal `json:"yield_quantity"`
	Stock         *decimal.Decimal `json:"stock" validate:"omitempty,min=0"`
	Notes         *string          `json:"notes"`
	Active        *bool            `json:"active"`
}

type PreparationItemResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Quantity       decimal.Decimal `json:"quantity"`
}

type PreparationResponse struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	Unit          string                    `json:"unit"`
	YieldQuantity decimal.Decimal           `json:"yield_quantity"`
	Stock         decimal.Decimal           `json:"stock"`
	CostPerUnit   decimal.Decimal           `json:"cost_per_unit"`
	Active        bool                      `json:"active"`
	Items         []PreparationItemResponse `json:"items"`
}

// ─── Recipes ────────────────────────────────────────────────────────────────

// PreparationRecipeItem is one edge of a preparation's recipe.
type PreparationRecipeItem struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"      validate:"required"`
}

type SavePreparationRecipeRequest struct {
	Items []PreparationRecipeItem `json:"items" validate:"required,dive"`
}

// ProductRecipeItem is one polymorphic edge of a product's recipe.
type ProductRecipeItem struct {
	ItemType string          `json:"item_type" validate:"required,oneof=ingredient preparation"`
	ItemID   string          `json:"item_id"   validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"  validate:"required"`
}

type SaveProductRecipeRequest struct {
	Items []ProductRecipeItem `json:"items" validate:"required,dive"`
}

// ProductRecipeEntry is a recipe edge enriched on read: the referenced
// ingredient or preparation is resolved by item_type.
type ProductRecipeEntry struct {
	ID          string          `json:"id"`
	ItemType    string          `json:"item_type"`
	ItemID      string          `json:"item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	ItemName    string          `json:"item_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}
