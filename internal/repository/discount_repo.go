package repository

import (
	"context"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountRepository is the data access contract for discounts. Resolution is
// read-only; the window predicate (both dates null, or now inside the range)
// lives here so the service only expresses priority.
type DiscountRepository interface {
	Create(ctx context.Context, d *model.Discount) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Discount, error)
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Discount, error)
	ListCurrentlyActive(ctx context.Context, businessID uuid.UUID, now time.Time) ([]model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error

	// FindApplicable returns the first active discount of the given scope
	// whose validity window contains now. targetID is nil for applies_to=all.
	FindApplicable(ctx context.Context, businessID uuid.UUID, appliesTo string, targetID *uuid.UUID, now time.Time) (*model.Discount, error)
}

type discountRepo struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository { return &discountRepo{db: db} }

func (r *discountRepo) Create(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *discountRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Discount, error) {
	var d model.Discount
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *discountRepo) List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Discount, error) {
	q := r.db.WithContext(ctx).Where("business_id = ?", businessID)
	if activeOnly {
		q = q.Where("active = true")
	}
	var discounts []model.Discount
	err := q.Order("created_at DESC").Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) ListCurrentlyActive(ctx context.Context, businessID uuid.UUID, now time.Time) ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true", businessID).
		Where("(start_date IS NULL AND end_date IS NULL) OR (start_date <= ? AND end_date >= ?)", now, now).
		Find(&discounts).Error
	return discounts, err
}

func (r *discountRepo) Update(ctx context.Context, d *model.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *discountRepo) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false).Error
}

func (r *discountRepo) FindApplicable(ctx context.Context, businessID uuid.UUID, appliesTo string, targetID *uuid.UUID, now time.Time) (*model.Discount, error) {
	q := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true AND applies_to = ?", businessID, appliesTo).
		Where("(start_date IS NULL AND end_date IS NULL) OR (start_date <= ? AND end_date >= ?)", now, now)
	if targetID != nil {
		q = q.Where("target_id = ?", *targetID)
	}
	var d model.Discount
	if err := q.First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
