package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type costingFixture struct {
	preparations *stubPreparationRepo
	ingredients  *stubIngredientRepo
	products     *stubProductRepo
	svc          service.CostingService
	businessID   uuid.UUID
}

func newCostingFixture(t *testing.T) *costingFixture {
	t.Helper()
	ingredients := newStubIngredientRepo()
	preparations := newStubPreparationRepo(ingredients)
	products := newStubProductRepo()
	return &costingFixture{
		preparations: preparations,
		ingredients:  ingredients,
		products:     products,
		svc:          service.NewCostingService(preparations, ingredients, products),
		businessID:   uuid.New(),
	}
}

func TestSavePreparationRecipeRollsUpCost(t *testing.T) {
	f := newCostingFixture(t)
	harina := f.ingredients.seed(&model.Ingredient{
		Name: "harina", Unit: "kg", CostPerUnit: dec("1.50"), Active: true, BusinessID: f.businessID,
	})
	huevo := f.ingredients.seed(&model.Ingredient{
		Name: "huevo", Unit: "unidad", CostPerUnit: dec("3.00"), Active: true, BusinessID: f.businessID,
	})
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("3"), Active: true, BusinessID: f.businessID,
	})

	resp, err := f.svc.SavePreparationRecipe(context.Background(), f.businessID, masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{
			{IngredientID: harina.ID.String(), Quantity: dec("2")},
			{IngredientID: huevo.ID.String(), Quantity: dec("1")},
		},
	})

	assert.NoError(t, err)
	// (2×1.50 + 1×3.00) / 3 = 2.00
	assert.True(t, resp.CostPerUnit.Equal(dec("2")), "cost = %s", resp.CostPerUnit)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "harina", resp.Items[0].IngredientName)
}

func TestSavePreparationRecipeReplacesPreviousItems(t *testing.T) {
	f := newCostingFixture(t)
	harina := f.ingredients.seed(&model.Ingredient{
		Name: "harina", Unit: "kg", CostPerUnit: dec("2.00"), Active: true, BusinessID: f.businessID,
	})
	azucar := f.ingredients.seed(&model.Ingredient{
		Name: "azucar", Unit: "kg", CostPerUnit: dec("1.00"), Active: true, BusinessID: f.businessID,
	})
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("1"), Active: true, BusinessID: f.businessID,
	})

	_, err := f.svc.SavePreparationRecipe(context.Background(), f.businessID, masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{
			{IngredientID: harina.ID.String(), Quantity: dec("1")},
			{IngredientID: azucar.ID.String(), Quantity: dec("1")},
		},
	})
	assert.NoError(t, err)

	resp, err := f.svc.SavePreparationRecipe(context.Background(), f.businessID, masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{
			{IngredientID: azucar.ID.String(), Quantity: dec("3")},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.CostPerUnit.Equal(dec("3")))
}

func TestSavePreparationRecipeMissingIngredientContributesZero(t *testing.T) {
	f := newCostingFixture(t)
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("2"), Active: true, BusinessID: f.businessID,
	})

	resp, err := f.svc.SavePreparationRecipe(context.Background(), f.businessID, masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{
			{IngredientID: uuid.NewString(), Quantity: dec("5")},
		},
	})

	assert.NoError(t, err)
	// The edge is stored so the recipe completes once the ingredient exists.
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.CostPerUnit.IsZero())
}

func TestSavePreparationRecipeRejectsNonPositiveItemQuantity(t *testing.T) {
	f := newCostingFixture(t)
	harina := f.ingredients.seed(&model.Ingredient{
		Name: "harina", Unit: "kg", CostPerUnit: dec("2.00"), Active: true, BusinessID: f.businessID,
	})
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("1"), Active: true, BusinessID: f.businessID,
	})

	_, err := f.svc.SavePreparationRecipe(context.Background(), f.businessID, masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{
			{IngredientID: harina.ID.String(), Quantity: dec("0")},
		},
	})

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Empty(t, f.preparations.items[masa.ID])
}

func TestSavePreparationRecipeOtherBusinessPreparation(t *testing.T) {
	f := newCostingFixture(t)
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("1"), Active: true, BusinessID: f.businessID,
	})

	_, err := f.svc.SavePreparationRecipe(context.Background(), uuid.New(), masa.ID, dto.SavePreparationRecipeRequest{
		Items: []dto.PreparationRecipeItem{},
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreatePreparationRejectsNonPositiveYield(t *testing.T) {
	f := newCostingFixture(t)

	_, err := f.svc.CreatePreparation(context.Background(), f.businessID, dto.CreatePreparationRequest{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("0"),
	})

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestSaveProductRecipeAndReadEnrichment(t *testing.T) {
	f := newCostingFixture(t)
	queso := f.ingredients.seed(&model.Ingredient{
		Name: "queso", Unit: "kg", CostPerUnit: dec("6.00"), Active: true, BusinessID: f.businessID,
	})
	masa := f.preparations.seed(&model.Preparation{
		Name: "masa", Unit: "porcion", YieldQuantity: dec("1"), CostPerUnit: dec("2.00"),
		Active: true, BusinessID: f.businessID,
	})
	pizza := f.products.seed(&model.Product{
		Name: "pizza", Price: dec("12.00"), Active: true, BusinessID: f.businessID,
	})

	entries, err := f.svc.SaveProductRecipe(context.Background(), f.businessID, pizza.ID, dto.SaveProductRecipeRequest{
		Items: []dto.ProductRecipeItem{
			{ItemType: model.RecipeItemIngredient, ItemID: queso.ID.String(), Quantity: dec("0.3")},
			{ItemType: model.RecipeItemPreparation, ItemID: masa.ID.String(), Quantity: dec("1")},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "queso", entries[0].ItemName)
	assert.True(t, entries[0].CostPerUnit.Equal(dec("6.00")))
	assert.Equal(t, "masa", entries[1].ItemName)
	assert.True(t, entries[1].CostPerUnit.Equal(dec("2.00")))
}

func TestGetProductRecipeUnresolvableItemKeptBare(t *testing.T) {
	f := newCostingFixture(t)
	pizza := f.products.seed(&model.Product{
		Name: "pizza", Price: dec("12.00"), Active: true, BusinessID: f.businessID,
	})

	entries, err := f.svc.SaveProductRecipe(context.Background(), f.businessID, pizza.ID, dto.SaveProductRecipeRequest{
		Items: []dto.ProductRecipeItem{
			{ItemType: model.RecipeItemIngredient, ItemID: uuid.NewString(), Quantity: dec("1")},
		},
	})

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Empty(t, entries[0].ItemName)
	assert.True(t, entries[0].CostPerUnit.IsZero())
}

func TestSaveProductRecipeProductNotFound(t *testing.T) {
	f := newCostingFixture(t)

	_, err := f.svc.SaveProductRecipe(context.Background(), f.businessID, uuid.New(), dto.SaveProductRecipeRequest{})

	assert.True(t, apperr.IsNotFound(err))
}
