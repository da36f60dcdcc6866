package service

import (
	"context"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
)

// ProductService is the catalog CRUD surface. Stock is not editable here —
// it only moves through orders.
type ProductService interface {
	Create(ctx context.Context, businessID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	Get(ctx context.Context, businessID, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]dto.ProductResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) ProductService {
	return &productService{products: products, categories: categories}
}

func (s *productService) Create(ctx context.Context, businessID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := s.resolveCategory(ctx, businessID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	p := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  categoryID,
		Active:      true,
		BusinessID:  businessID,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return nil, apperr.Persistence("creating product", err)
	}
	resp := productToResponse(&p)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "product")
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := s.resolveCategory(ctx, businessID, req.CategoryID)
		if err != nil {
			return nil, err
		}
		p.CategoryID = categoryID
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, apperr.Persistence("updating product", err)
	}
	return s.Get(ctx, businessID, id)
}

func (s *productService) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, businessID, id); err != nil {
		return lookupErr(err, "product")
	}
	if err := s.products.SoftDelete(ctx, businessID, id); err != nil {
		return apperr.Persistence("deactivating product", err)
	}
	return nil
}

func (s *productService) Get(ctx context.Context, businessID, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "product")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, businessID uuid.UUID, includeInactive bool) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, businessID, includeInactive)
	if err != nil {
		return nil, apperr.Persistence("listing products", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) resolveCategory(ctx context.Context, businessID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	categoryID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperr.Validation("invalid category_id")
	}
	if _, err := s.categories.FindByID(ctx, businessID, categoryID); err != nil {
		return nil, lookupErr(err, "category")
	}
	return &categoryID, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Active:      p.Active,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
