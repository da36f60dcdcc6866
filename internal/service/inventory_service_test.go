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

type inventoryFixture struct {
	ingredients *stubIngredientRepo
	movements   *stubMovementRepo
	svc         service.InventoryService
	businessID  uuid.UUID
}

func newInventoryFixture(t *testing.T, allowNegativeStock bool) *inventoryFixture {
	t.Helper()
	ingredients := newStubIngredientRepo()
	movements := &stubMovementRepo{}
	return &inventoryFixture{
		ingredients: ingredients,
		movements:   movements,
		svc:         service.NewInventoryService(ingredients, movements, nil, allowNegativeStock),
		businessID:  uuid.New(),
	}
}

func (f *inventoryFixture) seedIngredient(name, stock, cost string) *model.Ingredient {
	return f.ingredients.seed(&model.Ingredient{
		Name:        name,
		Unit:        "kg",
		Stock:       dec(stock),
		CostPerUnit: dec(cost),
		Active:      true,
		BusinessID:  f.businessID,
	})
}

func TestRecordMovementEntradaWeightedAverage(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("harina", "10", "2.00")

	unitCost := dec("4.00")
	resp, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementEntrada,
		Quantity:     dec("10"),
		UnitCost:     &unitCost,
	})

	assert.NoError(t, err)
	// (10×2 + 10×4) / 20 = 3
	stored := f.ingredients.ingredients[ing.ID]
	assert.True(t, stored.Stock.Equal(dec("20")), "stock = %s", stored.Stock)
	assert.True(t, stored.CostPerUnit.Equal(dec("3")), "cost = %s", stored.CostPerUnit)
	assert.Len(t, f.movements.movements, 1)
	assert.Equal(t, "harina", resp.Ingredient.Name)
	assert.True(t, resp.Ingredient.Stock.Equal(dec("20")))
}

func TestRecordMovementEntradaWithoutUnitCostKeepsCost(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("azucar", "5", "1.50")

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementEntrada,
		Quantity:     dec("3"),
	})

	assert.NoError(t, err)
	stored := f.ingredients.ingredients[ing.ID]
	assert.True(t, stored.Stock.Equal(dec("8")))
	assert.True(t, stored.CostPerUnit.Equal(dec("1.50")))
}

func TestRecordMovementEntradaFromZeroStock(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("cafe", "0", "0")

	unitCost := dec("2.50")
	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementEntrada,
		Quantity:     dec("4"),
		UnitCost:     &unitCost,
	})

	assert.NoError(t, err)
	stored := f.ingredients.ingredients[ing.ID]
	assert.True(t, stored.CostPerUnit.Equal(dec("2.50")))
}

func TestRecordMovementSalidaInsufficientStock(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("leche", "5", "1.00")

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementSalida,
		Quantity:     dec("8"),
	})

	var insuf *apperr.InsufficientStockError
	assert.True(t, errors.As(err, &insuf))
	assert.Equal(t, "leche", insuf.Item)
	// Nothing recorded, nothing mutated.
	assert.Empty(t, f.movements.movements)
	assert.True(t, f.ingredients.ingredients[ing.ID].Stock.Equal(dec("5")))
}

func TestRecordMovementSalidaNegativeStockAllowed(t *testing.T) {
	f := newInventoryFixture(t, true)
	ing := f.seedIngredient("leche", "5", "1.00")

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementSalida,
		Quantity:     dec("8"),
	})

	assert.NoError(t, err)
	assert.True(t, f.ingredients.ingredients[ing.ID].Stock.Equal(dec("-3")))
}

func TestRecordMovementSalidaKeepsCost(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("queso", "10", "6.25")

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementSalida,
		Quantity:     dec("4"),
	})

	assert.NoError(t, err)
	stored := f.ingredients.ingredients[ing.ID]
	assert.True(t, stored.Stock.Equal(dec("6")))
	assert.True(t, stored.CostPerUnit.Equal(dec("6.25")))
}

func TestRecordMovementAjusteOverwritesStock(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("tomate", "7", "0.80")

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementAjuste,
		Quantity:     dec("3"),
	})

	assert.NoError(t, err)
	stored := f.ingredients.ingredients[ing.ID]
	assert.True(t, stored.Stock.Equal(dec("3")))
	assert.True(t, stored.CostPerUnit.Equal(dec("0.80")))
}

func TestRecordMovementSequenceReplaysToClosedForm(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("harina", "0", "0")

	steps := []struct {
		movType   string
		qty       string
		unitCost  string // "" = omitted
		wantStock string
		wantCost  string
	}{
		{model.MovementEntrada, "10", "2.00", "10", "2"},
		{model.MovementSalida, "4", "", "6", "2"},
		{model.MovementAjuste, "3", "", "3", "2"},
		// (3×2 + 9×4) / 12 = 3.5
		{model.MovementEntrada, "9", "4.00", "12", "3.5"},
	}

	for i, step := range steps {
		req := dto.MovementRequest{
			IngredientID: ing.ID.String(),
			Type:         step.movType,
			Quantity:     dec(step.qty),
		}
		if step.unitCost != "" {
			uc := dec(step.unitCost)
			req.UnitCost = &uc
		}
		_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, req)
		assert.NoError(t, err, "step %d", i)

		stored := f.ingredients.ingredients[ing.ID]
		assert.True(t, stored.Stock.Equal(dec(step.wantStock)), "step %d stock = %s", i, stored.Stock)
		assert.True(t, stored.CostPerUnit.Equal(dec(step.wantCost)), "step %d cost = %s", i, stored.CostPerUnit)
	}
	assert.Len(t, f.movements.movements, len(steps))
}

func TestRecordMovementInactiveIngredient(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.ingredients.seed(&model.Ingredient{
		Name:       "descontinuado",
		Unit:       "kg",
		Active:     false,
		BusinessID: f.businessID,
	})

	_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementEntrada,
		Quantity:     dec("1"),
	})

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestRecordMovementRejectsNonPositiveQuantity(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("sal", "2", "0.30")

	for _, qty := range []string{"0", "-1"} {
		_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
			IngredientID: ing.ID.String(),
			Type:         model.MovementEntrada,
			Quantity:     dec(qty),
		})
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve), "quantity %s", qty)
	}
}

func TestRecordMovementOtherBusinessIngredientNotFound(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("harina", "10", "2.00")

	_, err := f.svc.RecordMovement(context.Background(), uuid.New(), nil, dto.MovementRequest{
		IngredientID: ing.ID.String(),
		Type:         model.MovementSalida,
		Quantity:     dec("1"),
	})

	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, f.ingredients.ingredients[ing.ID].Stock.Equal(dec("10")))
}

func TestListMovementsFiltersByIngredient(t *testing.T) {
	f := newInventoryFixture(t, false)
	a := f.seedIngredient("harina", "10", "2.00")
	b := f.seedIngredient("azucar", "10", "1.00")

	for _, id := range []uuid.UUID{a.ID, b.ID} {
		_, err := f.svc.RecordMovement(context.Background(), f.businessID, nil, dto.MovementRequest{
			IngredientID: id.String(),
			Type:         model.MovementSalida,
			Quantity:     dec("1"),
		})
		assert.NoError(t, err)
	}

	out, err := f.svc.ListMovements(context.Background(), f.businessID, dto.MovementFilter{
		IngredientID: a.ID.String(),
	})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestDeactivateIngredientSoftDeletes(t *testing.T) {
	f := newInventoryFixture(t, false)
	ing := f.seedIngredient("harina", "10", "2.00")

	err := f.svc.DeactivateIngredient(context.Background(), f.businessID, ing.ID)
	assert.NoError(t, err)
	assert.False(t, f.ingredients.ingredients[ing.ID].Active)

	// The row stays: movement history must keep resolving.
	list, err := f.svc.ListIngredients(context.Background(), f.businessID)
	assert.NoError(t, err)
	assert.Empty(t, list)
}
