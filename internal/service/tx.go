package service

import (
	"context"
	"errors"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with stub repositories).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lookupErr maps a repository read failure to the domain taxonomy: a missing
// row (or a row hidden by tenant scoping) is NotFound, anything else is a
// storage failure.
func lookupErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return apperr.Persistence("loading "+entity, err)
}
