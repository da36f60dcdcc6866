package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository only resolves categories for product assignment and
// discount targeting — category CRUD is an external collaborator of this core.
type CategoryRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Category, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
