package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the data access contract for products and their
// polymorphic recipes.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error

	// FindByIDForUpdateTx locks the product row for the duration of tx so two
	// orders decrementing the same product serialize.
	FindByIDForUpdateTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Product, error)
	// UpdateStockTx applies a signed delta to product stock inside tx.
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// Recipe edges (replace-all snapshot semantics).
	ReplaceRecipeTx(tx *gorm.DB, productID uuid.UUID, items []model.ProductRecipe) error
	GetRecipe(ctx context.Context, productID uuid.UUID) ([]model.ProductRecipe, error)

	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]model.Product, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Where("business_id = ?", businessID)
	if !includeInactive {
		q = q.Where("active = true")
	}
	var products []model.Product
	err := q.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Update("active", false).Error
}

func (r *productRepo) FindByIDForUpdateTx(tx *gorm.DB, businessID, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *productRepo) ReplaceRecipeTx(tx *gorm.DB, productID uuid.UUID, items []model.ProductRecipe) error {
	if err := tx.Where("product_id = ?", productID).
		Delete(&model.ProductRecipe{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

func (r *productRepo) GetRecipe(ctx context.Context, productID uuid.UUID) ([]model.ProductRecipe, error) {
	var recipe []model.ProductRecipe
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&recipe).Error
	return recipe, err
}

func (r *productRepo) DB() *gorm.DB { return r.db }
