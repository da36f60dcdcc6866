package dto

import "github.com/shopspring/decimal"

type OrderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
	Notes     *string `json:"notes"`
}

type CreateOrderRequest struct {
	CustomerID       *string            `json:"customer_id" validate:"omitempty,uuid"`
	CustomerTempInfo *string            `json:"customer_temp_info"`
	Items            []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
	PaymentMethod    string             `json:"payment_method" validate:"omitempty,oneof=efectivo tarjeta transferencia"`
	OrderType        string             `json:"order_type"     validate:"omitempty,oneof=comer llevar domicilio"`
	Reference        *string            `json:"reference"`
	DeliveryAddress  *string            `json:"delivery_address"`
	Notes            *string            `json:"notes"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=registrado completado entregado cancelado"`
}

// OrderFilter is bound from the query string of GET /v1/orders.
type OrderFilter struct {
	Status    string `form:"status"     validate:"omitempty,oneof=registrado completado entregado cancelado"`
	OrderType string `form:"order_type" validate:"omitempty,oneof=comer llevar domicilio"`
	DateFrom  string `form:"date_from"` // YYYY-MM-DD
	DateTo    string `form:"date_to"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=500"`
}

type OrderCustomerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Notes       *string         `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID               string              `json:"id"`
	Customer         *OrderCustomerRef   `json:"customer,omitempty"`
	CustomerTempInfo *string             `json:"customer_temp_info,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	Total            decimal.Decimal     `json:"total"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"payment_method"`
	OrderType        string              `json:"order_type"`
	Reference        *string             `json:"reference,omitempty"`
	DeliveryAddress  *string             `json:"delivery_address,omitempty"`
	Notes            *string             `json:"notes,omitempty"`
	CreatedAt        string              `json:"created_at"`
}
