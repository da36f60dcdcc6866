package service

import (
	"context"
	"errors"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ComboService manages combo bundles. Saving a combo's items replaces the
// whole set and snapshots original_price from the component products' current
// prices; later product price changes do not rewrite the snapshot.
type ComboService interface {
	Create(ctx context.Context, businessID uuid.UUID, req dto.CreateComboRequest) (*dto.ComboResponse, error)
	Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateComboRequest) (*dto.ComboResponse, error)
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	Get(ctx context.Context, businessID, id uuid.UUID) (*dto.ComboResponse, error)
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]dto.ComboResponse, error)

	SaveItems(ctx context.Context, businessID, comboID uuid.UUID, req dto.SaveComboItemsRequest) (*dto.ComboResponse, error)
}

type comboService struct {
	combos   repository.ComboRepository
	products repository.ProductRepository
}

func NewComboService(combos repository.ComboRepository, products repository.ProductRepository) ComboService {
	return &comboService{combos: combos, products: products}
}

func (s *comboService) Create(ctx context.Context, businessID uuid.UUID, req dto.CreateComboRequest) (*dto.ComboResponse, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	c := model.Combo{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: decimal.Zero,
		Active:        active,
		BusinessID:    businessID,
	}
	if err := s.combos.Create(ctx, &c); err != nil {
		return nil, apperr.Persistence("creating combo", err)
	}
	resp := comboToResponse(&c)
	return &resp, nil
}

func (s *comboService) Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateComboRequest) (*dto.ComboResponse, error) {
	c, err := s.combos.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "combo")
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Price != nil {
		c.Price = *req.Price
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.combos.Update(ctx, c); err != nil {
		return nil, apperr.Persistence("updating combo", err)
	}
	return s.Get(ctx, businessID, id)
}

func (s *comboService) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.combos.FindByID(ctx, businessID, id); err != nil {
		return lookupErr(err, "combo")
	}
	if err := s.combos.SoftDelete(ctx, businessID, id); err != nil {
		return apperr.Persistence("deactivating combo", err)
	}
	return nil
}

func (s *comboService) Get(ctx context.Context, businessID, id uuid.UUID) (*dto.ComboResponse, error) {
	c, err := s.combos.FindWithItems(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "combo")
	}
	resp := comboToResponse(c)
	return &resp, nil
}

func (s *comboService) List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]dto.ComboResponse, error) {
	combos, err := s.combos.List(ctx, businessID, activeOnly)
	if err != nil {
		return nil, apperr.Persistence("listing combos", err)
	}
	out := make([]dto.ComboResponse, 0, len(combos))
	for i := range combos {
		out = append(out, comboToResponse(&combos[i]))
	}
	return out, nil
}

// SaveItems atomically replaces the combo's item set and re-snapshots
// original_price from the referenced products' current prices. Items naming
// unknown products are dropped rather than failing the save.
func (s *comboService) SaveItems(ctx context.Context, businessID, comboID uuid.UUID, req dto.SaveComboItemsRequest) (*dto.ComboResponse, error) {
	err := runTx(ctx, s.combos.DB(), func(tx *gorm.DB) error {
		if _, err := s.combos.FindByIDTx(tx, businessID, comboID); err != nil {
			return lookupErr(err, "combo")
		}

		var items []model.ComboItem
		originalPrice := decimal.Zero
		for _, it := range req.Items {
			productID, err := uuid.Parse(it.ProductID)
			if err != nil {
				return apperr.Validation("invalid product_id %s", it.ProductID)
			}
			qty := it.Quantity
			if qty <= 0 {
				qty = 1
			}
			p, err := s.products.FindByIDForUpdateTx(tx, businessID, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return apperr.Persistence("loading combo product", err)
			}
			items = append(items, model.ComboItem{
				ComboID:   comboID,
				ProductID: productID,
				Quantity:  qty,
			})
			originalPrice = originalPrice.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		if err := s.combos.ReplaceItemsTx(tx, comboID, items); err != nil {
			return apperr.Persistence("replacing combo items", err)
		}
		if err := s.combos.UpdateOriginalPriceTx(tx, comboID, originalPrice); err != nil {
			return apperr.Persistence("updating combo original price", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, businessID, comboID)
}

func comboToResponse(c *model.Combo) dto.ComboResponse {
	items := make([]dto.ComboItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		entry := dto.ComboItemResponse{
			ProductID: it.ProductID.String(),
			Quantity:  it.Quantity,
		}
		if it.Product != nil {
			entry.ProductName = it.Product.Name
			entry.UnitPrice = it.Product.Price
		}
		items = append(items, entry)
	}
	return dto.ComboResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		OriginalPrice: c.OriginalPrice,
		Active:        c.Active,
		Items:         items,
	}
}
