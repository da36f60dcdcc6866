package service

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostingService owns the recipe graph: preparation recipes with synchronous
// cost roll-up, and the polymorphic product recipes that are read-enriched on
// demand.
type CostingService interface {
	CreatePreparation(ctx context.Context, businessID uuid.UUID, req dto.CreatePreparationRequest) (*dto.PreparationResponse, error)
	UpdatePreparation(ctx context.Context, businessID, id uuid.UUID, req dto.UpdatePreparationRequest) (*dto.PreparationResponse, error)
	DeactivatePreparation(ctx context.Context, businessID, id uuid.UUID) error
	ListPreparations(ctx context.Context, businessID uuid.UUID) ([]dto.PreparationResponse, error)
	GetPreparation(ctx context.Context, businessID, id uuid.UUID) (*dto.PreparationResponse, error)

	SavePreparationRecipe(ctx context.Context, businessID, preparationID uuid.UUID, req dto.SavePreparationRecipeRequest) (*dto.PreparationResponse, error)
	SaveProductRecipe(ctx context.Context, businessID, productID uuid.UUID, req dto.SaveProductRecipeRequest) ([]dto.ProductRecipeEntry, error)
	GetProductRecipe(ctx context.Context, businessID, productID uuid.UUID) ([]dto.ProductRecipeEntry, error)
}

type costingService struct {
	preparations repository.PreparationRepository
	ingredients  repository.IngredientRepository
	products     repository.ProductRepository
}

func NewCostingService(
	preparations repository.PreparationRepository,
	ingredients repository.IngredientRepository,
	products repository.ProductRepository,
) CostingService {
	return &costingService{
		preparations: preparations,
		ingredients:  ingredients,
		products:     products,
	}
}

// ── Preparation recipe ───────────────────────────────────────────────────────

// SavePreparationRecipe replaces the preparation's entire item set and
// recomputes its cost per unit, atomically: either the new snapshot and the
// new cost are both visible, or neither is.
//
// An item whose ingredient cannot be resolved inside the caller's business
// contributes zero cost but is still stored — the recipe can be completed
// once the ingredient exists.
func (s *costingService) SavePreparationRecipe(ctx context.Context, businessID, preparationID uuid.UUID, req dto.SavePreparationRecipeRequest) (*dto.PreparationResponse, error) {
	txErr := runTx(ctx, s.preparations.DB(), func(tx *gorm.DB) error {
		prep, err := s.preparations.FindByIDTx(tx, businessID, preparationID)
		if err != nil {
			return lookupErr(err, "preparation")
		}
		if !prep.YieldQuantity.IsPositive() {
			return apperr.Validation("preparation yield_quantity must be greater than zero")
		}

		items := make([]model.PreparationItem, 0, len(req.Items))
		totalCost := decimal.Zero
		for _, item := range req.Items {
			ingredientID, err := uuid.Parse(item.IngredientID)
			if err != nil {
				return apperr.Validation("invalid ingredient_id %q", item.IngredientID)
			}
			if !item.Quantity.IsPositive() {
				return apperr.Validation("item quantity must be greater than zero")
			}
			items = append(items, model.PreparationItem{
				PreparationID: preparationID,
				IngredientID:  ingredientID,
				Quantity:      item.Quantity,
			})
			if ing, err := s.ingredients.FindByID(ctx, businessID, ingredientID); err == nil {
				totalCost = totalCost.Add(ing.CostPerUnit.Mul(item.Quantity))
			}
		}

		if err := s.preparations.ReplaceItemsTx(tx, preparationID, items); err != nil {
			return apperr.Persistence("replacing preparation items", err)
		}
		costPerUnit := totalCost.Div(prep.YieldQuantity)
		if err := s.preparations.UpdateCostTx(tx, preparationID, costPerUnit); err != nil {
			return apperr.Persistence("updating preparation cost", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	prep, err := s.preparations.FindWithItems(ctx, businessID, preparationID)
	if err != nil {
		return nil, lookupErr(err, "preparation")
	}
	return preparationToResponse(prep), nil
}

// ── Product recipe ───────────────────────────────────────────────────────────

// SaveProductRecipe replaces the product's polymorphic recipe edges. Unlike
// preparations, no cost is stored: product price is set by the business, and
// recipe cost is resolved on read.
func (s *costingService) SaveProductRecipe(ctx context.Context, businessID, productID uuid.UUID, req dto.SaveProductRecipeRequest) ([]dto.ProductRecipeEntry, error) {
	if _, err := s.products.FindByID(ctx, businessID, productID); err != nil {
		return nil, lookupErr(err, "product")
	}

	items := make([]model.ProductRecipe, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			return nil, apperr.Validation("invalid item_id %q", item.ItemID)
		}
		if !item.Quantity.IsPositive() {
			return nil, apperr.Validation("item quantity must be greater than zero")
		}
		items = append(items, model.ProductRecipe{
			ProductID: productID,
			ItemType:  item.ItemType,
			ItemID:    itemID,
			Quantity:  item.Quantity,
		})
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.ReplaceRecipeTx(tx, productID, items); err != nil {
			return apperr.Persistence("replacing product recipe", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.GetProductRecipe(ctx, businessID, productID)
}

// GetProductRecipe returns the product's recipe edges enriched on read: each
// item_id is resolved against Ingredient or Preparation by item_type. A
// read never mutates state.
func (s *costingService) GetProductRecipe(ctx context.Context, businessID, productID uuid.UUID) ([]dto.ProductRecipeEntry, error) {
	if _, err := s.products.FindByID(ctx, businessID, productID); err != nil {
		return nil, lookupErr(err, "product")
	}
	recipe, err := s.products.GetRecipe(ctx, productID)
	if err != nil {
		return nil, apperr.Persistence("loading product recipe", err)
	}

	entries := make([]dto.ProductRecipeEntry, 0, len(recipe))
	for _, edge := range recipe {
		entry := dto.ProductRecipeEntry{
			ID:       edge.ID.String(),
			ItemType: edge.ItemType,
			ItemID:   edge.ItemID.String(),
			Quantity: edge.Quantity,
		}
		switch edge.ItemType {
		case model.RecipeItemIngredient:
			if ing, err := s.ingredients.FindByID(ctx, businessID, edge.ItemID); err == nil {
				entry.ItemName = ing.Name
				entry.Unit = ing.Unit
				entry.CostPerUnit = ing.CostPerUnit
			}
		case model.RecipeItemPreparation:
			if prep, err := s.preparations.FindByID(ctx, businessID, edge.ItemID); err == nil {
				entry.ItemName = prep.Name
				entry.Unit = prep.Unit
				entry.CostPerUnit = prep.CostPerUnit
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ── Preparation CRUD ─────────────────────────────────────────────────────────

func (s *costingService) CreatePreparation(ctx context.Context, businessID uuid.UUID, req dto.CreatePreparationRequest) (*dto.PreparationResponse, error) {
	if !req.YieldQuantity.IsPositive() {
		return nil, apperr.Validation("yield_quantity must be greater than zero")
	}
	prep := model.Preparation{
		Name:          req.Name,
		Unit:          req.Unit,
		YieldQuantity: req.YieldQuantity,
		Notes:         req.Notes,
		Active:        true,
		BusinessID:    businessID,
	}
	if err := s.preparations.Create(ctx, &prep); err != nil {
		return nil, apperr.Persistence("creating preparation", err)
	}
	return preparationToResponse(&prep), nil
}

func (s *costingService) UpdatePreparation(ctx context.Context, businessID, id uuid.UUID, req dto.UpdatePreparationRequest) (*dto.PreparationResponse, error) {
	prep, err := s.preparations.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "preparation")
	}
	if req.Name != nil {
		prep.Name = *req.Name
	}
	if req.Unit != nil {
		prep.Unit = *req.Unit
	}
	if req.YieldQuantity != nil {
		if !req.YieldQuantity.IsPositive() {
			return nil, apperr.Validation("yield_quantity must be greater than zero")
		}
		prep.YieldQuantity = *req.YieldQuantity
	}
	if req.Stock != nil {
		prep.Stock = *req.Stock
	}
	if req.Notes != nil {
		prep.Notes = req.Notes
	}
	if req.Active != nil {
		prep.Active = *req.Active
	}
	if err := s.preparations.Update(ctx, prep); err != nil {
		return nil, apperr.Persistence("updating preparation", err)
	}
	return preparationToResponse(prep), nil
}

func (s *costingService) DeactivatePreparation(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.preparations.FindByID(ctx, businessID, id); err != nil {
		return lookupErr(err, "preparation")
	}
	if err := s.preparations.SoftDelete(ctx, businessID, id); err != nil {
		return apperr.Persistence("deactivating preparation", err)
	}
	return nil
}

func (s *costingService) ListPreparations(ctx context.Context, businessID uuid.UUID) ([]dto.PreparationResponse, error) {
	preparations, err := s.preparations.List(ctx, businessID)
	if err != nil {
		return nil, apperr.Persistence("listing preparations", err)
	}
	out := make([]dto.PreparationResponse, 0, len(preparations))
	for i := range preparations {
		out = append(out, *preparationToResponse(&preparations[i]))
	}
	return out, nil
}

func (s *costingService) GetPreparation(ctx context.Context, businessID, id uuid.UUID) (*dto.PreparationResponse, error) {
	prep, err := s.preparations.FindWithItems(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "preparation")
	}
	return preparationToResponse(prep), nil
}

func preparationToResponse(p *model.Preparation) *dto.PreparationResponse {
	items := make([]dto.PreparationItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		resp := dto.PreparationItemResponse{
			IngredientID: item.IngredientID.String(),
			Quantity:     item.Quantity,
		}
		if item.Ingredient != nil {
			resp.IngredientName = item.Ingredient.Name
			resp.Unit = item.Ingredient.Unit
		}
		items = append(items, resp)
	}
	return &dto.PreparationResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Unit:          p.Unit,
		YieldQuantity: p.YieldQuantity,
		Stock:         p.Stock,
		CostPerUnit:   p.CostPerUnit,
		Active:        p.Active,
		Items:         items,
	}
}
