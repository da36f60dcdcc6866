package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PreparationRepository is the data access contract for preparations and
// their recipe items.
type PreparationRepository interface {
	Create(ctx context.Context, p *model.Preparation) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Preparation, error)
	FindWithItems(ctx context.Context, businessID, id uuid.UUID) (*model.Preparation, error)
	List(ctx context.Context, businessID uuid.UUID) ([]model.Preparation, error)
	Update(ctx context.Context, p *model.Preparation) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error

	FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Preparation, error)
	// ReplaceItemsTx deletes the preparation's entire item set and inserts the
	// new one — recipes are snapshot-replaced, never merged.
	ReplaceItemsTx(tx *gorm.DB, preparationID uuid.UUID, items []model.PreparationItem) error
	UpdateCostTx(tx *gorm.DB, preparationID uuid.UUID, costPerUnit decimal.Decimal) error

	DB() *gorm.DB
}

type preparationRepo struct{ db *gorm.DB }

func NewPreparationRepository(db *gorm.DB) PreparationRepository { return &preparationRepo{db: db} }

func (r *preparationRepo) Create(ctx context.Context, p *model.Preparation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *preparationRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Preparation, error) {
	var p model.Preparation
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preparationRepo) FindWithItems(ctx context.Context, businessID, id uuid.UUID) (*model.Preparation, error) {
	var p model.Preparation
	err := r.db.WithContext(ctx).
		Preload("Items.Ingredient").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preparationRepo) List(ctx context.Context, businessID uuid.UUID) ([]model.Preparation, error) {
	var preparations []model.Preparation
	err := r.db.WithContext(ctx).
		Preload("Items.Ingredient").
		Where("business_id = ? AND active = true", businessID).
		Order("name ASC").
		Find(&preparations).Error
	return preparations, err
}

func (r *preparationRepo) Update(ctx context.Context, p *model.Preparation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *preparationRepo) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Preparation{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false).Error
}

func (r *preparationRepo) FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Preparation, error) {
	var p model.Preparation
	err := tx.Where("id = ? AND business_id = ?", id, businessID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preparationRepo) ReplaceItemsTx(tx *gorm.DB, preparationID uuid.UUID, items []model.PreparationItem) error {
	if err := tx.Where("preparation_id = ?", preparationID).
		Delete(&model.PreparationItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *preparationRepo) UpdateCostTx(tx *gorm.DB, preparationID uuid.UUID, costPerUnit decimal.Decimal) error {
	return tx.Model(&model.Preparation{}).
		Where("id = ?", preparationID).
		Update("cost_per_unit", costPerUnit).Error
}

func (r *preparationRepo) DB() *gorm.DB { return r.db }
