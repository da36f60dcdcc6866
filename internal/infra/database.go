package infra

import (
	"fmt"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// for all tables. gen_random_uuid() defaults require PostgreSQL 13+.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Customer{},
		&model.Ingredient{},
		&model.InventoryMovement{},
		&model.Preparation{},
		&model.PreparationItem{},
		&model.Product{},
		&model.ProductRecipe{},
		&model.Discount{},
		&model.Combo{},
		&model.ComboItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
