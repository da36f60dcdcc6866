package service_test

// In-memory repository stubs. They return a nil *gorm.DB from DB(), which
// makes services run their transactional closures directly — mutations are
// visible immediately, and failures surface as errors without a rollback.
// Tests therefore assert on the order of operations the services guarantee.

import (
	"context"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Ingredients ──────────────────────────────────────────────────────────────

type stubIngredientRepo struct {
	ingredients map[uuid.UUID]*model.Ingredient
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{ingredients: make(map[uuid.UUID]*model.Ingredient)}
}

func (r *stubIngredientRepo) seed(i *model.Ingredient) *model.Ingredient {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredients[i.ID] = i
	return i
}

func (r *stubIngredientRepo) Create(_ context.Context, i *model.Ingredient) error {
	i.ID = uuid.New()
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) find(businessID, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok || i.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Ingredient, error) {
	return r.find(businessID, id)
}

func (r *stubIngredientRepo) List(_ context.Context, businessID uuid.UUID) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, i := range r.ingredients {
		if i.BusinessID == businessID && i.Active {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, i *model.Ingredient) error {
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) SoftDelete(_ context.Context, businessID, id uuid.UUID) error {
	if i, ok := r.ingredients[id]; ok && i.BusinessID == businessID {
		i.Active = false
	}
	return nil
}

func (r *stubIngredientRepo) FindByIDForUpdateTx(_ *gorm.DB, businessID, id uuid.UUID) (*model.Ingredient, error) {
	return r.find(businessID, id)
}

func (r *stubIngredientRepo) UpdateStockCostTx(_ *gorm.DB, id uuid.UUID, stock, costPerUnit decimal.Decimal) error {
	i := r.ingredients[id]
	i.Stock = stock
	i.CostPerUnit = costPerUnit
	return nil
}

func (r *stubIngredientRepo) DB() *gorm.DB { return nil }

// ── Movements ────────────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements []model.InventoryMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.InventoryMovement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.InventoryMovement, error) {
	for i := range r.movements {
		if r.movements[i].ID == id && r.movements[i].BusinessID == businessID {
			return &r.movements[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMovementRepo) List(_ context.Context, businessID uuid.UUID, filter dto.MovementFilter) ([]model.InventoryMovement, error) {
	var out []model.InventoryMovement
	for _, m := range r.movements {
		if m.BusinessID != businessID {
			continue
		}
		if filter.IngredientID != "" && m.IngredientID.String() != filter.IngredientID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// ── Preparations ─────────────────────────────────────────────────────────────

type stubPreparationRepo struct {
	preparations map[uuid.UUID]*model.Preparation
	items        map[uuid.UUID][]model.PreparationItem
	// ingredients hydrates recipe items on FindWithItems, like a Preload.
	ingredients *stubIngredientRepo
}

func newStubPreparationRepo(ingredients *stubIngredientRepo) *stubPreparationRepo {
	return &stubPreparationRepo{
		preparations: make(map[uuid.UUID]*model.Preparation),
		items:        make(map[uuid.UUID][]model.PreparationItem),
		ingredients:  ingredients,
	}
}

func (r *stubPreparationRepo) seed(p *model.Preparation) *model.Preparation {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.preparations[p.ID] = p
	return p
}

func (r *stubPreparationRepo) Create(_ context.Context, p *model.Preparation) error {
	p.ID = uuid.New()
	r.preparations[p.ID] = p
	return nil
}

func (r *stubPreparationRepo) find(businessID, id uuid.UUID) (*model.Preparation, error) {
	p, ok := r.preparations[id]
	if !ok || p.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPreparationRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Preparation, error) {
	return r.find(businessID, id)
}

func (r *stubPreparationRepo) FindWithItems(_ context.Context, businessID, id uuid.UUID) (*model.Preparation, error) {
	p, err := r.find(businessID, id)
	if err != nil {
		return nil, err
	}
	items := make([]model.PreparationItem, len(r.items[id]))
	copy(items, r.items[id])
	for i := range items {
		if ing, ok := r.ingredients.ingredients[items[i].IngredientID]; ok {
			items[i].Ingredient = ing
		}
	}
	p.Items = items
	return p, nil
}

func (r *stubPreparationRepo) List(_ context.Context, businessID uuid.UUID) ([]model.Preparation, error) {
	var out []model.Preparation
	for _, p := range r.preparations {
		if p.BusinessID == businessID && p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPreparationRepo) Update(_ context.Context, p *model.Preparation) error {
	r.preparations[p.ID] = p
	return nil
}

func (r *stubPreparationRepo) SoftDelete(_ context.Context, businessID, id uuid.UUID) error {
	if p, ok := r.preparations[id]; ok && p.BusinessID == businessID {
		p.Active = false
	}
	return nil
}

func (r *stubPreparationRepo) FindByIDTx(_ *gorm.DB, businessID, id uuid.UUID) (*model.Preparation, error) {
	return r.find(businessID, id)
}

func (r *stubPreparationRepo) ReplaceItemsTx(_ *gorm.DB, preparationID uuid.UUID, items []model.PreparationItem) error {
	r.items[preparationID] = items
	return nil
}

func (r *stubPreparationRepo) UpdateCostTx(_ *gorm.DB, preparationID uuid.UUID, costPerUnit decimal.Decimal) error {
	r.preparations[preparationID].CostPerUnit = costPerUnit
	return nil
}

func (r *stubPreparationRepo) DB() *gorm.DB { return nil }

// ── Products ─────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	recipes  map[uuid.UUID][]model.ProductRecipe
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		recipes:  make(map[uuid.UUID][]model.ProductRecipe),
	}
}

func (r *stubProductRepo) seed(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = uuid.New()
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) find(businessID, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok || p.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Product, error) {
	return r.find(businessID, id)
}

func (r *stubProductRepo) List(_ context.Context, businessID uuid.UUID, includeInactive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.BusinessID != businessID {
			continue
		}
		if !includeInactive && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, businessID, id uuid.UUID) error {
	if p, ok := r.products[id]; ok && p.BusinessID == businessID {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, businessID, id uuid.UUID) (*model.Product, error) {
	return r.find(businessID, id)
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	r.products[id].Stock += delta
	return nil
}

func (r *stubProductRepo) ReplaceRecipeTx(_ *gorm.DB, productID uuid.UUID, items []model.ProductRecipe) error {
	for i := range items {
		items[i].ID = uuid.New()
	}
	r.recipes[productID] = items
	return nil
}

func (r *stubProductRepo) GetRecipe(_ context.Context, productID uuid.UUID) ([]model.ProductRecipe, error) {
	return r.recipes[productID], nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── Discounts ────────────────────────────────────────────────────────────────

type stubDiscountRepo struct {
	discounts map[uuid.UUID]*model.Discount
}

func newStubDiscountRepo() *stubDiscountRepo {
	return &stubDiscountRepo{discounts: make(map[uuid.UUID]*model.Discount)}
}

func (r *stubDiscountRepo) seed(d *model.Discount) *model.Discount {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.discounts[d.ID] = d
	return d
}

func (r *stubDiscountRepo) Create(_ context.Context, d *model.Discount) error {
	d.ID = uuid.New()
	r.discounts[d.ID] = d
	return nil
}

func (r *stubDiscountRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Discount, error) {
	d, ok := r.discounts[id]
	if !ok || d.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *stubDiscountRepo) List(_ context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Discount, error) {
	var out []model.Discount
	for _, d := range r.discounts {
		if d.BusinessID != businessID {
			continue
		}
		if activeOnly && !d.Active {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func inWindow(d *model.Discount, now time.Time) bool {
	if d.StartDate == nil && d.EndDate == nil {
		return true
	}
	return d.StartDate != nil && d.EndDate != nil &&
		!now.Before(*d.StartDate) && !now.After(*d.EndDate)
}

func (r *stubDiscountRepo) ListCurrentlyActive(_ context.Context, businessID uuid.UUID, now time.Time) ([]model.Discount, error) {
	var out []model.Discount
	for _, d := range r.discounts {
		if d.BusinessID == businessID && d.Active && inWindow(d, now) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubDiscountRepo) Update(_ context.Context, d *model.Discount) error {
	r.discounts[d.ID] = d
	return nil
}

func (r *stubDiscountRepo) SoftDelete(_ context.Context, businessID, id uuid.UUID) error {
	if d, ok := r.discounts[id]; ok && d.BusinessID == businessID {
		d.Active = false
	}
	return nil
}

func (r *stubDiscountRepo) FindApplicable(_ context.Context, businessID uuid.UUID, appliesTo string, targetID *uuid.UUID, now time.Time) (*model.Discount, error) {
	for _, d := range r.discounts {
		if d.BusinessID != businessID || !d.Active || d.AppliesTo != appliesTo {
			continue
		}
		if targetID != nil && (d.TargetID == nil || *d.TargetID != *targetID) {
			continue
		}
		if !inWindow(d, now) {
			continue
		}
		cp := *d
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Combos ───────────────────────────────────────────────────────────────────

type stubComboRepo struct {
	combos   map[uuid.UUID]*model.Combo
	items    map[uuid.UUID][]model.ComboItem
	products *stubProductRepo
}

func newStubComboRepo(products *stubProductRepo) *stubComboRepo {
	return &stubComboRepo{
		combos:   make(map[uuid.UUID]*model.Combo),
		items:    make(map[uuid.UUID][]model.ComboItem),
		products: products,
	}
}

func (r *stubComboRepo) seed(c *model.Combo) *model.Combo {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.combos[c.ID] = c
	return c
}

func (r *stubComboRepo) Create(_ context.Context, c *model.Combo) error {
	c.ID = uuid.New()
	r.combos[c.ID] = c
	return nil
}

func (r *stubComboRepo) find(businessID, id uuid.UUID) (*model.Combo, error) {
	c, ok := r.combos[id]
	if !ok || c.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubComboRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Combo, error) {
	return r.find(businessID, id)
}

func (r *stubComboRepo) FindWithItems(_ context.Context, businessID, id uuid.UUID) (*model.Combo, error) {
	c, err := r.find(businessID, id)
	if err != nil {
		return nil, err
	}
	items := make([]model.ComboItem, len(r.items[id]))
	copy(items, r.items[id])
	for i := range items {
		if p, ok := r.products.products[items[i].ProductID]; ok {
			items[i].Product = p
		}
	}
	c.Items = items
	return c, nil
}

func (r *stubComboRepo) List(_ context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Combo, error) {
	var out []model.Combo
	for _, c := range r.combos {
		if c.BusinessID != businessID {
			continue
		}
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubComboRepo) Update(_ context.Context, c *model.Combo) error {
	r.combos[c.ID] = c
	return nil
}

func (r *stubComboRepo) SoftDelete(_ context.Context, businessID, id uuid.UUID) error {
	if c, ok := r.combos[id]; ok && c.BusinessID == businessID {
		c.Active = false
	}
	return nil
}

func (r *stubComboRepo) FindByIDTx(_ *gorm.DB, businessID, id uuid.UUID) (*model.Combo, error) {
	return r.find(businessID, id)
}

func (r *stubComboRepo) ReplaceItemsTx(_ *gorm.DB, comboID uuid.UUID, items []model.ComboItem) error {
	for i := range items {
		items[i].ID = uuid.New()
	}
	r.items[comboID] = items
	return nil
}

func (r *stubComboRepo) UpdateOriginalPriceTx(_ *gorm.DB, comboID uuid.UUID, originalPrice decimal.Decimal) error {
	r.combos[comboID].OriginalPrice = originalPrice
	return nil
}

func (r *stubComboRepo) DB() *gorm.DB { return nil }

// ── Orders ───────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders    map[uuid.UUID]*model.Order
	products  *stubProductRepo
	customers *stubCustomerRepo
}

func newStubOrderRepo(products *stubProductRepo, customers *stubCustomerRepo) *stubOrderRepo {
	return &stubOrderRepo{
		orders:    make(map[uuid.UUID]*model.Order),
		products:  products,
		customers: customers,
	}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *stubOrderRepo) find(businessID, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Order, error) {
	o, err := r.find(businessID, id)
	if err != nil {
		return nil, err
	}
	for i := range o.Items {
		if p, ok := r.products.products[o.Items[i].ProductID]; ok {
			o.Items[i].Product = p
		}
	}
	if o.CustomerID != nil {
		if c, ok := r.customers.customers[*o.CustomerID]; ok {
			o.Customer = c
		}
	}
	return o, nil
}

func (r *stubOrderRepo) FindByIDTx(_ *gorm.DB, businessID, id uuid.UUID) (*model.Order, error) {
	return r.find(businessID, id)
}

func (r *stubOrderRepo) List(_ context.Context, businessID uuid.UUID, filter dto.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.BusinessID != businessID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.OrderType != "" && o.OrderType != filter.OrderType {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatusGuardedTx(_ *gorm.DB, id uuid.UUID, newStatus string, allowedFrom ...string) (bool, error) {
	o, ok := r.orders[id]
	if !ok {
		return false, nil
	}
	for _, from := range allowedFrom {
		if o.Status == from {
			o.Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

// ── Customers / Categories / Users ───────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) seed(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) FindByID(_ context.Context, businessID, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok || c.BusinessID != businessID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u, ok := r.users[username]
	if !ok || !u.Active {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindOwner(_ context.Context, businessID uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.BusinessID == businessID && u.Role == "owner" && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// dec builds a decimal from a string literal; invalid input panics, which is
// fine for test fixtures.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
