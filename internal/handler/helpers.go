package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apperr.NewFieldErrors(fields))
		return false
	}
	return true
}

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apperr.NewFieldErrors(fields))
		return false
	}
	return true
}

// respondError maps domain errors onto HTTP statuses. Anything that is not a
// typed domain error becomes an opaque 500 — callers never see driver errors.
func respondError(c *gin.Context, err error) {
	var notFound *apperr.NotFoundError
	var validation *apperr.ValidationError
	var insufficient *apperr.InsufficientStockError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apperr.NewEnvelope(notFound.Error()))
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope(validation.Error()))
	case errors.As(err, &insufficient):
		c.JSON(http.StatusConflict, apperr.NewEnvelope(insufficient.Error()))
	default:
		log.Error().
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Err(err).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, apperr.NewEnvelope("internal server error"))
	}
}
