package repository

import (
	"context"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the data access contract for orders and their line items.
type OrderRepository interface {
	// CreateTx inserts the order and its items (via association) inside tx.
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, businessID uuid.UUID, filter dto.OrderFilter) ([]model.Order, error)

	// UpdateStatusGuardedTx transitions the order's status only when its
	// current status is one of allowedFrom, reporting whether a row changed.
	// The conditional UPDATE makes the transition atomic — two concurrent
	// cancellations cannot both win.
	UpdateStatusGuardedTx(tx *gorm.DB, id uuid.UUID, newStatus string, allowedFrom ...string) (bool, error)

	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := tx.Preload("Items").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, businessID uuid.UUID, filter dto.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Where("business_id = ?", businessID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.OrderType != "" {
		q = q.Where("order_type = ?", filter.OrderType)
	}
	if filter.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if filter.DateTo != "" {
		if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
			q = q.Where("created_at <= ?", to.Add(24*time.Hour))
		}
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var orders []model.Order
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) UpdateStatusGuardedTx(tx *gorm.DB, id uuid.UUID, newStatus string, allowedFrom ...string) (bool, error) {
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status IN ?", id, allowedFrom).
		Update("status", newStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
