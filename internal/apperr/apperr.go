// Package apperr defines the typed error taxonomy for the transactional core.
// Services return these errors; the HTTP layer maps them to status codes
// without ever exposing internal causes (driver errors, SQL state) to clients.
package apperr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError: the referenced entity is absent or belongs to another
// business. Cross-tenant lookups always fail closed with this error so that
// valid ids from other tenants are indistinguishable from missing rows.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NotFound(entity string) error { return &NotFoundError{Entity: entity} }

// ValidationError: bad or missing input — the caller's fault.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError: a business-rule violation distinct from validation —
// the request was well-formed, but stock on hand cannot cover it.
type InsufficientStockError struct {
	Item      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %s, requested %s",
		e.Item, e.Available.String(), e.Requested.String())
}

// PersistenceError wraps a storage failure. The wrapped cause is for logs
// only; after this error the enclosing transaction has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "persistence failure during " + e.Op }
func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
