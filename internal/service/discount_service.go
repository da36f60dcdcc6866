package service

import (
	"context"
	"errors"
	"time"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/model"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountService resolves the single applicable discount for an amount and
// manages the discount catalog. Resolution is a pure read — it never mutates
// state.
type DiscountService interface {
	Create(ctx context.Context, businessID uuid.UUID, req dto.CreateDiscountRequest) (*model.Discount, error)
	Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateDiscountRequest) (*model.Discount, error)
	Deactivate(ctx context.Context, businessID, id uuid.UUID) error
	List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Discount, error)
	ListCurrentlyActive(ctx context.Context, businessID uuid.UUID) ([]model.Discount, error)

	Resolve(ctx context.Context, businessID uuid.UUID, req dto.ResolveDiscountRequest) (*dto.ResolveDiscountResponse, error)
}

type discountService struct {
	discounts repository.DiscountRepository
	// clampFloor: policy switch — when true, final amounts never go below
	// zero (a fixed discount larger than the amount would otherwise produce
	// a negative result, which the reference behavior preserves).
	clampFloor bool
	// now is swappable for deterministic window tests.
	now func() time.Time
}

func NewDiscountService(discounts repository.DiscountRepository, clampFloor bool) DiscountService {
	return &discountService{discounts: discounts, clampFloor: clampFloor, now: time.Now}
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Resolve picks the single applicable discount by priority — product target
// first, then category target, then business-wide — and computes the
// discounted amount. First match wins: a matching product discount beats an
// "all" discount regardless of value.
func (s *discountService) Resolve(ctx context.Context, businessID uuid.UUID, req dto.ResolveDiscountRequest) (*dto.ResolveDiscountResponse, error) {
	now := s.now()

	var discount *model.Discount
	if req.ProductID != nil {
		productID, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, apperr.Validation("invalid product_id")
		}
		d, err := s.discounts.FindApplicable(ctx, businessID, model.DiscountAppliesProduct, &productID, now)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Persistence("resolving discount", err)
		}
		discount = d
	}
	if discount == nil && req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperr.Validation("invalid category_id")
		}
		d, err := s.discounts.FindApplicable(ctx, businessID, model.DiscountAppliesCategory, &categoryID, now)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Persistence("resolving discount", err)
		}
		discount = d
	}
	if discount == nil {
		d, err := s.discounts.FindApplicable(ctx, businessID, model.DiscountAppliesAll, nil, now)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Persistence("resolving discount", err)
		}
		discount = d
	}

	if discount == nil {
		return &dto.ResolveDiscountResponse{
			Applied:        false,
			OriginalAmount: req.Amount,
			DiscountAmount: decimal.Zero,
			FinalAmount:    req.Amount,
		}, nil
	}

	var discountAmount decimal.Decimal
	if discount.Type == model.DiscountPercentage {
		discountAmount = req.Amount.Mul(discount.Value).Div(oneHundred)
	} else {
		discountAmount = discount.Value
	}
	finalAmount := req.Amount.Sub(discountAmount)
	if s.clampFloor && finalAmount.IsNegative() {
		finalAmount = decimal.Zero
	}

	return &dto.ResolveDiscountResponse{
		Applied:        true,
		DiscountID:     discount.ID.String(),
		DiscountName:   discount.Name,
		DiscountType:   discount.Type,
		DiscountValue:  discount.Value,
		OriginalAmount: req.Amount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
	}, nil
}

// ── Catalog CRUD ─────────────────────────────────────────────────────────────

func (s *discountService) Create(ctx context.Context, businessID uuid.UUID, req dto.CreateDiscountRequest) (*model.Discount, error) {
	if req.Type == model.DiscountPercentage &&
		(req.Value.IsNegative() || req.Value.GreaterThan(oneHundred)) {
		return nil, apperr.Validation("percentage value must be between 0 and 100")
	}

	targetID, err := parseTarget(req.AppliesTo, req.TargetID)
	if err != nil {
		return nil, err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	d := model.Discount{
		Name:       req.Name,
		Type:       req.Type,
		Value:      req.Value,
		AppliesTo:  req.AppliesTo,
		TargetID:   targetID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Active:     active,
		BusinessID: businessID,
	}
	if err := s.discounts.Create(ctx, &d); err != nil {
		return nil, apperr.Persistence("creating discount", err)
	}
	return &d, nil
}

func (s *discountService) Update(ctx context.Context, businessID, id uuid.UUID, req dto.UpdateDiscountRequest) (*model.Discount, error) {
	d, err := s.discounts.FindByID(ctx, businessID, id)
	if err != nil {
		return nil, lookupErr(err, "discount")
	}
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Type != nil {
		d.Type = *req.Type
	}
	if req.Value != nil {
		d.Value = *req.Value
	}
	if req.AppliesTo != nil {
		d.AppliesTo = *req.AppliesTo
	}
	if req.TargetID != nil {
		targetID, err := uuid.Parse(*req.TargetID)
		if err != nil {
			return nil, apperr.Validation("invalid target_id")
		}
		d.TargetID = &targetID
	}
	if req.StartDate != nil {
		d.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = req.EndDate
	}
	if req.Active != nil {
		d.Active = *req.Active
	}
	if d.Type == model.DiscountPercentage &&
		(d.Value.IsNegative() || d.Value.GreaterThan(oneHundred)) {
		return nil, apperr.Validation("percentage value must be between 0 and 100")
	}
	if d.AppliesTo != model.DiscountAppliesAll && d.TargetID == nil {
		return nil, apperr.Validation("target_id is required when applies_to is %s", d.AppliesTo)
	}
	if err := s.discounts.Update(ctx, d); err != nil {
		return nil, apperr.Persistence("updating discount", err)
	}
	return d, nil
}

func (s *discountService) Deactivate(ctx context.Context, businessID, id uuid.UUID) error {
	if _, err := s.discounts.FindByID(ctx, businessID, id); err != nil {
		return lookupErr(err, "discount")
	}
	if err := s.discounts.SoftDelete(ctx, businessID, id); err != nil {
		return apperr.Persistence("deactivating discount", err)
	}
	return nil
}

func (s *discountService) List(ctx context.Context, businessID uuid.UUID, activeOnly bool) ([]model.Discount, error) {
	discounts, err := s.discounts.List(ctx, businessID, activeOnly)
	if err != nil {
		return nil, apperr.Persistence("listing discounts", err)
	}
	return discounts, nil
}

func (s *discountService) ListCurrentlyActive(ctx context.Context, businessID uuid.UUID) ([]model.Discount, error) {
	discounts, err := s.discounts.ListCurrentlyActive(ctx, businessID, s.now())
	if err != nil {
		return nil, apperr.Persistence("listing active discounts", err)
	}
	return discounts, nil
}

// parseTarget enforces: target_id is required iff applies_to is not "all".
func parseTarget(appliesTo string, raw *string) (*uuid.UUID, error) {
	if appliesTo == model.DiscountAppliesAll {
		return nil, nil
	}
	if raw == nil {
		return nil, apperr.Validation("target_id is required when applies_to is %s", appliesTo)
	}
	targetID, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apperr.Validation("invalid target_id")
	}
	return &targetID, nil
}
