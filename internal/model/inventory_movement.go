package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types. Quantity is always a positive magnitude; the type implies
// the direction. Ajuste overwrites stock with the quantity directly.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
	MovementAjuste  = "ajuste"
)

// InventoryMovement is one immutable ledger entry for an ingredient. Rows are
// append-only: they are never updated or deleted, so the ledger replays to
// the ingredient's current stock and cost.
type InventoryMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"not null"` // entrada | salida | ajuste
	Quantity     decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	// UnitCost is only meaningful for entradas; it feeds the weighted average.
	UnitCost   *decimal.Decimal `gorm:"type:decimal(10,2)"`
	Reason     *string
	Notes      *string
	UserID     *uuid.UUID `gorm:"type:uuid"`
	BusinessID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }
