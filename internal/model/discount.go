package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"

	DiscountAppliesAll      = "all"
	DiscountAppliesCategory = "category"
	DiscountAppliesProduct  = "product"
)

// Discount applies a percentage or fixed reduction to an amount. TargetID is
// required iff AppliesTo is category or product. A nil StartDate/EndDate pair
// means always active; otherwise the discount only matches while now falls
// inside the window.
type Discount struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"not null"`
	Type       string          `gorm:"not null"` // percentage | fixed
	Value      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AppliesTo  string          `gorm:"not null;default:'all'"` // all | category | product
	TargetID   *uuid.UUID      `gorm:"type:uuid"`
	StartDate  *time.Time
	EndDate    *time.Time
	Active     bool      `gorm:"not null;default:true"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
