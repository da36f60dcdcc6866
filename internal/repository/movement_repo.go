package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementRepository appends to and reads the inventory ledger. There are no
// update or delete methods: movements are immutable history.
type MovementRepository interface {
	// CreateTx appends a movement inside the same transaction that updates
	// the ingredient's stock and cost.
	CreateTx(tx *gorm.DB, m *model.InventoryMovement) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.InventoryMovement, error)
	List(ctx context.Context, businessID uuid.UUID, filter dto.MovementFilter) ([]model.InventoryMovement, error)
}

type movementRepo struct{ db *gorm.DB }

func NewMovementRepository(db *gorm.DB) MovementRepository { return &movementRepo{db: db} }

func (r *movementRepo) CreateTx(tx *gorm.DB, m *model.InventoryMovement) error {
	return tx.Create(m).Error
}

func (r *movementRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.InventoryMovement, error) {
	var m model.InventoryMovement
	err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movementRepo) List(ctx context.Context, businessID uuid.UUID, filter dto.MovementFilter) ([]model.InventoryMovement, error) {
	q := r.db.WithContext(ctx).
		Preload("Ingredient").
		Where("business_id = ?", businessID)

	if filter.IngredientID != "" {
		q = q.Where("ingredient_id = ?", filter.IngredientID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var movements []model.InventoryMovement
	err := q.Order("created_at DESC").Limit(limit).Find(&movements).Error
	return movements, err
}
