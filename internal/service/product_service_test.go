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

type productFixture struct {
	products   *stubProductRepo
	categories *stubCategoryRepo
	svc        service.ProductService
	businessID uuid.UUID
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	return &productFixture{
		products:   products,
		categories: categories,
		svc:        service.NewProductService(products, categories),
		businessID: uuid.New(),
	}
}

func TestCreateProductWithCategory(t *testing.T) {
	f := newProductFixture(t)
	cat := &model.Category{ID: uuid.New(), Name: "pizzas", BusinessID: f.businessID}
	f.categories.categories[cat.ID] = cat

	resp, err := f.svc.Create(context.Background(), f.businessID, dto.CreateProductRequest{
		Name: "pizza napolitana", Price: dec("14.00"), Stock: 5,
		CategoryID: strPtr(cat.ID.String()),
	})

	assert.NoError(t, err)
	assert.Equal(t, cat.ID.String(), *resp.CategoryID)
	assert.Equal(t, 5, resp.Stock)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(context.Background(), f.businessID, dto.CreateProductRequest{
		Name: "pizza", Price: dec("14.00"), CategoryID: strPtr(uuid.NewString()),
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateProductOtherBusinessCategory(t *testing.T) {
	f := newProductFixture(t)
	cat := &model.Category{ID: uuid.New(), Name: "ajena", BusinessID: uuid.New()}
	f.categories.categories[cat.ID] = cat

	_, err := f.svc.Create(context.Background(), f.businessID, dto.CreateProductRequest{
		Name: "pizza", Price: dec("14.00"), CategoryID: strPtr(cat.ID.String()),
	})

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateProductInvalidCategoryID(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(context.Background(), f.businessID, dto.CreateProductRequest{
		Name: "pizza", Price: dec("14.00"), CategoryID: strPtr("no-uuid"),
	})

	var ve *apperr.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestListProductsExcludesInactiveByDefault(t *testing.T) {
	f := newProductFixture(t)
	f.products.seed(&model.Product{Name: "activa", Price: dec("10"), Active: true, BusinessID: f.businessID})
	f.products.seed(&model.Product{Name: "retirada", Price: dec("10"), Active: false, BusinessID: f.businessID})

	list, err := f.svc.List(context.Background(), f.businessID, false)
	assert.NoError(t, err)
	assert.Len(t, list, 1)

	all, err := f.svc.List(context.Background(), f.businessID, true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeactivateProduct(t *testing.T) {
	f := newProductFixture(t)
	p := f.products.seed(&model.Product{Name: "pizza", Price: dec("10"), Active: true, BusinessID: f.businessID})

	err := f.svc.Deactivate(context.Background(), f.businessID, p.ID)
	assert.NoError(t, err)
	assert.False(t, f.products.products[p.ID].Active)
}
