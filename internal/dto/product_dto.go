package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name        string          `json:"name"  validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid"`
	Description *string         `json:"description"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	Description *string          `json:"description"`
	Active      *bool            `json:"active"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name,omitempty"`
	Active       bool            `json:"active"`
}
