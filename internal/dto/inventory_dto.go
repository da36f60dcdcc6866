package dto

import "github.com/shopspring/decimal"

// ─── Ingredients ─────────────────────────────────────────────────────────────

type CreateIngredientRequest struct {
	Name        string          `json:"name"          validate:"required"`
	Unit        string          `json:"unit"          validate:"required"`
	Stock       decimal.Decimal `json:"stock"         validate:"min=0"`
	MinStock    decimal.Decimal `json:"min_stock"     validate:"min=0"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit" validate:"min=0"`
	Notes       *string         `json:"notes"`
}

// UpdateIngredientRequest applies a partial update: nil fields keep their
// current value. Stock is intentionally absent — stock only changes through
// the movement ledger.
type UpdateIngredientRequest struct {
	Name        *string          `json:"name"`
	Unit        *string          `json:"unit"`
	MinStock    *decimal.Decimal `json:"min_stock"     validate:"omitempty,min=0"`
	CostPerUnit *decimal.Decimal `json:"cost_per_unit" validate:"omitempty,min=0"`
	Notes       *string          `json:"notes"`
	Active      *bool            `json:"active"`
}

type IngredientResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
	Notes       *string         `json:"notes,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at"`
}

// ─── Movements ───────────────────────────────────────────────────────────────

type MovementRequest struct {
	IngredientID string           `json:"ingredient_id" validate:"required,uuid"`
	Type         string           `json:"type"          validate:"required,oneof=entrada salida ajuste"`
	Quantity     decimal.Decimal  `json:"quantity"      validate:"required"`
	UnitCost     *decimal.Decimal `json:"unit_cost"     validate:"omitempty,min=0"`
	Reason       *string          `json:"reason"`
	Notes        *string          `json:"notes"`
}

// MovementFilter is bound from the query string of GET /v1/inventory/movements.
type MovementFilter struct {
	IngredientID string `form:"ingredient_id" validate:"omitempty,uuid"`
	Type         string `form:"type"          validate:"omitempty,oneof=entrada salida ajuste"`
	Limit        int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovementIngredientRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Unit  string          `json:"unit"`
	Stock decimal.Decimal `json:"stock"`
}

type MovementResponse struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Quantity   decimal.Decimal        `json:"quantity"`
	UnitCost   *decimal.Decimal       `json:"unit_cost,omitempty"`
	Reason     *string                `json:"reason,omitempty"`
	Ingredient *MovementIngredientRef `json:"ingredient,omitempty"`
	CreatedAt  string                 `json:"created_at"`
}
