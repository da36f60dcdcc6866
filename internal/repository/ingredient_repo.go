package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository is the data access contract for ingredients. Services
// depend on this interface, not on the concrete GORM implementation, enabling
// unit testing via in-memory stubs. Every read and write is scoped to the
// caller's business — a foreign id behaves exactly like a missing row.
type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Ingredient, error)
	List(ctx context.Context, businessID uuid.UUID) ([]model.Ingredient, error)
	Update(ctx context.Context, i *model.Ingredient) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error

	// FindByIDForUpdateTx locks the ingredient row (SELECT … FOR UPDATE) for
	// the duration of tx, so concurrent movements on the same ingredient
	// serialize instead of losing updates.
	FindByIDForUpdateTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Ingredient, error)

	// UpdateStockCostTx writes the recomputed stock and cost inside tx.
	UpdateStockCostTx(tx *gorm.DB, id uuid.UUID, stock, costPerUnit decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredientRepo) List(ctx context.Context, businessID uuid.UUID) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true", businessID).
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredientRepo) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false).Error
}

func (r *ingredientRepo) FindByIDForUpdateTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ingredientRepo) UpdateStockCostTx(tx *gorm.DB, id uuid.UUID, stock, costPerUnit decimal.Decimal) error {
	return tx.Model(&model.Ingredient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":         stock,
		"cost_per_unit": costPerUnit,
	}).Error
}

func (r *ingredientRepo) DB() *gorm.DB { return r.db }
