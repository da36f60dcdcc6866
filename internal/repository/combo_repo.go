package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComboRepository is the data access contract for combos and their items.
type ComboRepository interface {
	Create(ctx context.Context, c *model.Combo) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Combo, error)
	FindWithItems(ctx context.Context, businessID, id uuid.UUID) (*model.Combo, error)
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Combo, error)
	Update(ctx context.Context, c *model.Combo) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error

	FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Combo, error)
	ReplaceItemsTx(tx *gorm.DB, comboID uuid.UUID, items []model.ComboItem) error
	UpdateOriginalPriceTx(tx *gorm.DB, comboID uuid.UUID, originalPrice decimal.Decimal) error

	DB() *gorm.DB
}

type comboRepo struct{ db *gorm.DB }

func NewComboRepository(db *gorm.DB) ComboRepository { return &comboRepo{db: db} }

func (r *comboRepo) Create(ctx context.Context, c *model.Combo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comboRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comboRepo) FindWithItems(ctx context.Context, businessID, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comboRepo) List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Combo, error) {
	q := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("business_id = ?", businessID)
	if activeOnly {
		q = q.Where("active = true")
	}
	var combos []model.Combo
	err := q.Order("name ASC").Find(&combos).Error
	return combos, err
}

func (r *comboRepo) Update(ctx context.Context, c *model.Combo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *comboRepo) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Combo{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false).Error
}

func (r *comboRepo) FindByIDTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Combo, error) {
	var c model.Combo
	err := tx.Where("id = ? AND business_id = ?", id, businessID).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *comboRepo) ReplaceItemsTx(tx *gorm.DB, comboID uuid.UUID, items []model.ComboItem) error {
	if err := tx.Where("combo_id = ?", comboID).
		Delete(&model.ComboItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *comboRepo) UpdateOriginalPriceTx(tx *gorm.DB, comboID uuid.UUID, originalPrice decimal.Decimal) error {
	return tx.Model(&model.Combo{}).
		Where("id = ?", comboID).
		Update("original_price", originalPrice).Error
}

func (r *comboRepo) DB() *gorm.DB { return r.db }
