package repository

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindOwner(ctx context.Context, businessID uuid.UUID) (*model.User, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND active = true", username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindOwner returns the owner account of a business — the alert worker mails
// low-stock notices to this user.
func (r *userRepo) FindOwner(ctx context.Context, businessID uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND role = 'owner' AND active = true", businessID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
