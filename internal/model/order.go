package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order states. Registrado is the only non-terminal state from this core's
// perspective; cancellation is a guarded one-way transition that restores
// stock (see service.OrderService).
const (
	OrderRegistrado = "registrado"
	OrderCompletado = "completado"
	OrderEntregado  = "entregado"
	OrderCancelado  = "cancelado"
)

const (
	PaymentEfectivo      = "efectivo"
	PaymentTarjeta       = "tarjeta"
	PaymentTransferencia = "transferencia"
)

const (
	OrderTypeComer     = "comer"
	OrderTypeLlevar    = "llevar"
	OrderTypeDomicilio = "domicilio"
)

type Order struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID       *uuid.UUID `gorm:"type:uuid;index"`
	CustomerTempInfo *string
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status           string          `gorm:"not null;default:'registrado'"`
	PaymentMethod    string          `gorm:"not null;default:'efectivo'"`
	OrderType        string          `gorm:"not null;default:'comer'"`
	Reference        *string
	DeliveryAddress  *string
	Notes            *string
	BusinessID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Customer *Customer   `gorm:"foreignKey:CustomerID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots UnitPrice and Subtotal at order time, so later product
// price changes never retroactively affect placed orders.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Notes     *string

	Product *Product `gorm:"foreignKey:ProductID"`
}
