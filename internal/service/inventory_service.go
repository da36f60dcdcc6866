package service

import (
	"context"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryService owns the ingredient ledger. All ingredient stock and cost
// changes go through RecordMovement — no other component writes them.
type InventoryService interface {
	CreateIngredient(ctx context.Context, businessID uuid.UUID, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	UpdateIngredient(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	DeactivateIngredient(ctx context.Context, businessID, id uuid.UUID) error
	ListIngredients(ctx context.Context, businessID uuid.UUID) ([]dto.IngredientResponse, error)
	GetIngredient(ctx context.Context, businessID, id uuid.UUID) (*dto.IngredientResponse, error)

	RecordMovement(ctx context.Context, businessID uuid.UUID, userID *uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context, businessID uuid.UUID, filter dto.MovementFilter) ([]dto.MovementResponse, error)
}

type inventoryService struct {
	ingredients repository.IngredientRepository
	movements   repository.MovementRepository
	dispatcher  *worker.Dispatcher
	// allowNegativeStock: policy switch — when false, a salida that would
	// leave stock below zero fails with InsufficientStockError.
	allowNegativeStock bool
}

func NewInventoryService(
	ingredients repository.IngredientRepository,
	movements repository.MovementRepository,
	dispatcher *worker.Dispatcher,
	allowNegativeStock bool,
) InventoryService {
	return &inventoryService{
		ingredients:        ingredients,
		movements:          movements,
		dispatcher:         dispatcher,
		allowNegativeStock: allowNegativeStock,
	}
}

// ── Movements ────────────────────────────────────────────────────────────────

// RecordMovement appends one immutable ledger entry and updates the
// ingredient's materialized stock/cost in the same transaction. The
// ingredient row is locked for the duration, so concurrent movements on the
// same ingredient serialize instead of losing updates.
//
// entrada: stock += qty; with a unit cost, cost becomes the quantity-weighted
// mean of old and new. salida: stock -= qty, cost untouched. ajuste: stock is
// overwritten with qty, cost untouched.
func (s *inventoryService) RecordMovement(ctx context.Context, businessID uuid.UUID, userID *uuid.UUID, req dto.MovementRequest) (*dto.MovementResponse, error) {
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return nil, apperr.Validation("invalid ingredient_id")
	}
	if !req.Quantity.IsPositive() {
		return nil, apperr.Validation("quantity must be greater than zero")
	}

	var (
		movement model.InventoryMovement
		newStock decimal.Decimal
		lowStock bool
		ingName  string
		ingUnit  string
		minStock decimal.Decimal
	)

	txErr := runTx(ctx, s.ingredients.DB(), func(tx *gorm.DB) error {
		ing, err := s.ingredients.FindByIDForUpdateTx(tx, businessID, ingredientID)
		if err != nil {
			return lookupErr(err, "ingredient")
		}
		if !ing.Active {
			return apperr.Validation("ingredient %s is inactive", ing.Name)
		}

		newStock = ing.Stock
		newCost := ing.CostPerUnit

		switch req.Type {
		case model.MovementEntrada:
			newStock = ing.Stock.Add(req.Quantity)
			if req.UnitCost != nil && !newStock.IsZero() {
				// Weighted average: (old_stock×old_cost + qty×unit_cost) / new_stock
				totalValue := ing.Stock.Mul(ing.CostPerUnit).
					Add(req.Quantity.Mul(*req.UnitCost))
				newCost = totalValue.Div(newStock)
			}
		case model.MovementSalida:
			newStock = ing.Stock.Sub(req.Quantity)
			if newStock.IsNegative() && !s.allowNegativeStock {
				return &apperr.InsufficientStockError{
					Item:      ing.Name,
					Available: ing.Stock,
					Requested: req.Quantity,
				}
			}
		case model.MovementAjuste:
			newStock = req.Quantity
		default:
			return apperr.Validation("unknown movement type %q", req.Type)
		}

		movement = model.InventoryMovement{
			IngredientID: ingredientID,
			Type:         req.Type,
			Quantity:     req.Quantity,
			UnitCost:     req.UnitCost,
			Reason:       req.Reason,
			Notes:        req.Notes,
			UserID:       userID,
			BusinessID:   businessID,
		}
		if err := s.movements.CreateTx(tx, &movement); err != nil {
			return apperr.Persistence("recording movement", err)
		}
		if err := s.ingredients.UpdateStockCostTx(tx, ingredientID, newStock, newCost); err != nil {
			return apperr.Persistence("updating ingredient stock", err)
		}

		ingName, ingUnit, minStock = ing.Name, ing.Unit, ing.MinStock
		lowStock = newStock.LessThan(ing.MinStock)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Alert is fire-and-forget: the ledger write above is already committed
	// and must never be affected by queueing trouble.
	if lowStock && s.dispatcher != nil {
		payload := worker.StockAlertPayload{
			IngredientID:   ingredientID.String(),
			IngredientName: ingName,
			Unit:           ingUnit,
			Stock:          newStock.String(),
			MinStock:       minStock.String(),
			BusinessID:     businessID.String(),
		}
		if err := s.dispatcher.EnqueueStockAlert(ctx, payload); err != nil {
			log.Warn().Err(err).Str("ingredient", ingName).Msg("failed to enqueue low-stock alert")
		}
	}

	resp := movementToResponse(&movement)
	resp.Ingredient = &dto.MovementIngredientRef{
		ID:    ingredientID.String(),
		Name:  ingName,
		Unit:  ingUnit,
		Stock: newStock,
	}
	return resp, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, businessID uuid.UUID, filter dto.MovementFilter) ([]dto.MovementResponse, error) {
	movements, err := s.movements.List(ctx, businessID, filter)
	if err != nil {
		return nil, apperr.Persistence("listing movements", err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		resp := movementToResponse(m)
		if m.Ingredient != nil {
			resp.Ingredient = &dto.MovementIngredientRef{
				ID:    m.Ingredient.ID.String(),
				Name:  m.Ingredient.Name,
				Unit:  m.Ingredient.Unit,
				Stock: m.Ingredient.Stock,
			}
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ── Ingredient CRUD ──────────────────────────────────────────────────────────

func (s *inventoryService) CreateIngredient(ctx context.Context, businessID uuid.UUID, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing := model.Ingredient{
		Name:        req.Name,
		Unit:        req.Unit,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		CostPerUnit: req.CostPerUnit,
		Notes:       req.Notes,
		Active:      true,
		BusinessID:  businessID,
	}
	if err := s.ingredients.Create(ctx, &ing); err != nil {
		return nil, apperr.Persistence("creating ingredient", err)
	}
	return ingredientToResponse(&ing), nil
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.ingredients.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "ingredient")
	}
	if req.Name != nil {
		ing.Name = *req.Name
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.MinStock != nil {
		ing.MinStock = *req.MinStock
	}
	if req.CostPerUnit != nil {
		ing.CostPerUnit = *req.CostPerUnit
	}
	if req.Notes != nil {
		ing.Notes = req.Notes
	}
	if req.Active != nil {
		ing.Active = *req.Active
	}
	if err := s.ingredients.Update(ctx, ing); err != nil {
		return nil, apperr.Persistence("updating ingredient", err)
	}
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) DeactivateIngredient(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.ingredients.FindByID(ctx, businessID, id); err != nil {
		return lookupErr(err, "ingredient")
	}
	if err := s.ingredients.SoftDelete(ctx, businessID, id); err != nil {
		return apperr.Persistence("deactivating ingredient", err)
	}
	return nil
}

func (s *inventoryService) ListIngredients(ctx context.Context, businessID uuid.UUID) ([]dto.IngredientResponse, error) {
	ingredients, err := s.ingredients.List(ctx, businessID)
	if err != nil {
		return nil, apperr.Persistence("listing ingredients", err)
	}
	out := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, *ingredientToResponse(&ingredients[i]))
	}
	return out, nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, businessID, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.ingredients.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "ingredient")
	}
	return ingredientToResponse(ing), nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func ingredientToResponse(i *model.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:          i.ID.String(),
		Name:        i.Name,
		Unit:        i.Unit,
		Stock:       i.Stock,
		MinStock:    i.MinStock,
		CostPerUnit: i.CostPerUnit,
		Notes:       i.Notes,
		Active:      i.Active,
		CreatedAt:   i.CreatedAt.Format(time.RFC3339),
	}
}

func movementToResponse(m *model.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID.String(),
		Type:      m.Type,
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
