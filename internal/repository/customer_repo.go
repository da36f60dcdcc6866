package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository only resolves customers for order hydration — the
// customer CRUD surface is an external collaborator of this core.
type CustomerRepository interface {
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) FindByID(ctx context.Context, businessID, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
