package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is a raw stock item. Stock and CostPerUnit are a materialized
// view of its movement ledger: they change only through recorded movements,
// never by direct edits from other components.
type Ingredient struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string          `gorm:"index;not null"`
	Unit     string          `gorm:"not null;default:'unidad'"`
	Stock    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	MinStock decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	// CostPerUnit is a moving weighted average, recomputed on entradas.
	CostPerUnit decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes       *string
	Active      bool      `gorm:"not null;default:true"`
	BusinessID  uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
