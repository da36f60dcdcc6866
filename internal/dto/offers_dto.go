package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Discounts ───────────────────────────────────────────────────────────────

type CreateDiscountRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Type      string          `json:"type"       validate:"required,oneof=percentage fixed"`
	Value     decimal.Decimal `json:"value"      validate:"required"`
	AppliesTo string          `json:"applies_to" validate:"required,oneof=all category product"`
	TargetID  *string         `json:"target_id"  validate:"omitempty,uuid"`
	StartDate *time.Time      `json:"start_date"`
	EndDate   *time.Time      `json:"end_date"`
	Active    *bool           `json:"active"`
}

type UpdateDiscountRequest struct {
	Name      *string          `json:"name"`
	Type      *string          `json:"type"       validate:"omitempty,oneof=percentage fixed"`
	Value     *decimal.Decimal `json:"value"`
	AppliesTo *string          `json:"applies_to" validate:"omitempty,oneof=all category product"`
	TargetID  *string          `json:"target_id"  validate:"omitempty,uuid"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
	Active    *bool            `json:"active"`
}

type ResolveDiscountRequest struct {
	ProductID  *string         `json:"product_id"  validate:"omitempty,uuid"`
	CategoryID *string         `json:"category_id" validate:"omitempty,uuid"`
	Amount     decimal.Decimal `json:"amount"      validate:"required"`
}

// ResolveDiscountResponse reports the single winning discount, if any.
// FinalAmount = OriginalAmount − DiscountAmount; it is only clamped at zero
// when the floor-clamp policy is enabled.
type ResolveDiscountResponse struct {
	Applied        bool            `json:"discount_applied"`
	DiscountID     string          `json:"discount_id,omitempty"`
	DiscountName   string          `json:"discount_name,omitempty"`
	DiscountType   string          `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// ─── Combos ──────────────────────────────────────────────────────────────────

type CreateComboRequest struct {
	Name        string          `json:"name"  validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Description *string         `json:"description"`
	Active      *bool           `json:"active"`
}

type UpdateComboRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Active      *bool            `json:"active"`
}

type ComboItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"omitempty,min=1"`
}

type SaveComboItemsRequest struct {
	Items []ComboItemRequest `json:"items" validate:"required,dive"`
}

type ComboItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type ComboResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   *string             `json:"description,omitempty"`
	Price         decimal.Decimal     `json:"price"`
	OriginalPrice decimal.Decimal     `json:"original_price"`
	Active        bool                `json:"active"`
	Items         []ComboItemResponse `json:"items"`
}
