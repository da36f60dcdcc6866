package service

import (
	"context"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the transactional boundary for placing, progressing and
// cancelling orders. Creation and cancellation mutate product stock inside
// the same transaction as the order row, so an order never half-applies.
type OrderService interface {
	Create(ctx context.Context, businessID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, businessID, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, businessID uuid.UUID, filter dto.OrderFilter) ([]dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, businessID, id uuid.UUID, newStatus string) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, businessID, id uuid.UUID) (*dto.OrderResponse, error)
}

type orderService struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, customers repository.CustomerRepository) OrderService {
	return &orderService{orders: orders, products: products, customers: customers}
}

// Create places an order. The total is computed server side from the current
// product prices; each line snapshots unit_price and subtotal. Every product
// row is locked before its stock check, and the whole thing rolls back if any
// line fails.
func (s *orderService) Create(ctx context.Context, businessID uuid.UUID, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, apperr.Validation("invalid customer_id")
		}
		if _, err := s.customers.FindByID(ctx, businessID, id); err != nil {
			return nil, lookupErr(err, "customer")
		}
		customerID = &id
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = model.PaymentEfectivo
	}
	orderType := req.OrderType
	if orderType == "" {
		orderType = model.OrderTypeComer
	}

	order := model.Order{
		CustomerID:       customerID,
		CustomerTempInfo: req.CustomerTempInfo,
		Status:           model.OrderRegistrado,
		PaymentMethod:    paymentMethod,
		OrderType:        orderType,
		Reference:        req.Reference,
		DeliveryAddress:  req.DeliveryAddress,
		Notes:            req.Notes,
		BusinessID:       businessID,
	}
	resolved := make(map[uuid.UUID]*model.Product, len(req.Items))

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(req.Items))
		// Lines may repeat a product; each check runs against what earlier
		// lines left, not the row as read, so duplicates cannot overdraw.
		consumed := make(map[uuid.UUID]int, len(req.Items))

		for _, it := range req.Items {
			productID, err := uuid.Parse(it.ProductID)
			if err != nil {
				return apperr.Validation("invalid product_id %s", it.ProductID)
			}
			p, err := s.products.FindByIDForUpdateTx(tx, businessID, productID)
			if err != nil {
				return lookupErr(err, "product")
			}
			if !p.Active {
				return apperr.Validation("product %s is inactive", p.Name)
			}
			remaining := p.Stock - consumed[productID]
			if remaining < it.Quantity {
				return &apperr.InsufficientStockError{
					Item:      p.Name,
					Available: decimal.NewFromInt(int64(remaining)),
					Requested: decimal.NewFromInt(int64(it.Quantity)),
				}
			}
			consumed[productID] += it.Quantity

			subtotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			items = append(items, model.OrderItem{
				ProductID: productID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				Subtotal:  subtotal,
				Notes:     it.Notes,
			})
			total = total.Add(subtotal)
			resolved[productID] = p
		}

		order.Total = total
		order.Items = items
		if err := s.orders.CreateTx(tx, &order); err != nil {
			return apperr.Persistence("creating order", err)
		}
		for _, it := range items {
			if err := s.products.UpdateStockTx(tx, it.ProductID, -it.Quantity); err != nil {
				return apperr.Persistence("decrementing product stock", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("business_id", businessID.String()).
		Str("total", order.Total.String()).
		Int("items", len(order.Items)).
		Msg("order placed")

	// Enrich line names from the products resolved in the transaction so the
	// response does not need a second round trip.
	for i := range order.Items {
		if p, ok := resolved[order.Items[i].ProductID]; ok {
			order.Items[i].Product = p
		}
	}
	resp := orderToResponse(&order)
	return &resp, nil
}

func (s *orderService) Get(ctx context.Context, businessID, id uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "order")
	}
	resp := orderToResponse(o)
	return &resp, nil
}

func (s *orderService) List(ctx context.Context, businessID uuid.UUID, filter dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := s.orders.List(ctx, businessID, filter)
	if err != nil {
		return nil, apperr.Persistence("listing orders", err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderToResponse(&orders[i]))
	}
	return out, nil
}

// UpdateStatus moves an order along the registrado → completado → entregado
// track. Cancellation has stock side effects and goes through Cancel instead.
func (s *orderService) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, newStatus string) (*dto.OrderResponse, error) {
	if newStatus == model.OrderCancelado {
		return nil, apperr.Validation("use the cancel endpoint to cancel an order")
	}

	var allowedFrom []string
	switch newStatus {
	case model.OrderCompletado:
		allowedFrom = []string{model.OrderRegistrado}
	case model.OrderEntregado:
		allowedFrom = []string{model.OrderRegistrado, model.OrderCompletado}
	default:
		return nil, apperr.Validation("invalid status %s", newStatus)
	}

	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		if _, err := s.orders.FindByIDTx(tx, businessID, id); err != nil {
			return lookupErr(err, "order")
		}
		ok, err := s.orders.UpdateStatusGuardedTx(tx, id, newStatus, allowedFrom...)
		if err != nil {
			return apperr.Persistence("updating order status", err)
		}
		if !ok {
			return apperr.Validation("order cannot transition to %s from its current status", newStatus)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, businessID, id)
}

// Cancel flips the order to cancelado and restores the stock it consumed.
// The guarded status update runs first; if another caller already cancelled,
// no stock is restored a second time.
func (s *orderService) Cancel(ctx context.Context, businessID, id uuid.UUID) (*dto.OrderResponse, error) {
	err := runTx(ctx, s.orders.DB(), func(tx *gorm.DB) error {
		o, err := s.orders.FindByIDTx(tx, businessID, id)
		if err != nil {
			return lookupErr(err, "order")
		}
		ok, err := s.orders.UpdateStatusGuardedTx(tx, id, model.OrderCancelado,
			model.OrderRegistrado, model.OrderCompletado, model.OrderEntregado)
		if err != nil {
			return apperr.Persistence("cancelling order", err)
		}
		if !ok {
			return apperr.Validation("order is already cancelled")
		}
		for _, it := range o.Items {
			if err := s.products.UpdateStockTx(tx, it.ProductID, it.Quantity); err != nil {
				return apperr.Persistence("restoring product stock", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", id.String()).
		Str("business_id", businessID.String()).
		Msg("order cancelled, stock restored")

	return s.Get(ctx, businessID, id)
}

func orderToResponse(o *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		entry := dto.OrderItemResponse{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
			Notes:     it.Notes,
		}
		if it.Product != nil {
			entry.ProductName = it.Product.Name
		}
		items = append(items, entry)
	}
	resp := dto.OrderResponse{
		ID:               o.ID.String(),
		CustomerTempInfo: o.CustomerTempInfo,
		Items:            items,
		Total:            o.Total,
		Status:           o.Status,
		PaymentMethod:    o.PaymentMethod,
		OrderType:        o.OrderType,
		Reference:        o.Reference,
		DeliveryAddress:  o.DeliveryAddress,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
	if o.Customer != nil {
		resp.Customer = &dto.OrderCustomerRef{
			ID:    o.Customer.ID.String(),
			Name:  o.Customer.Name,
			Phone: o.Customer.Phone,
		}
	}
	return resp
}
