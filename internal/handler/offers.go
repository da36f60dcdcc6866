package handler

import (
	"net/http"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/middleware"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OffersHandler serves discounts and combos — the pricing side of the catalog.
type OffersHandler struct {
	discounts service.DiscountService
	combos    service.ComboService
}

func NewOffersHandler(discounts service.DiscountService, combos service.ComboService) *OffersHandler {
	return &OffersHandler{discounts: discounts, combos: combos}
}

// ── Discounts ────────────────────────────────────────────────────────────────

func (h *OffersHandler) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.discounts.Create(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OffersHandler) UpdateDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.UpdateDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.discounts.Update(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OffersHandler) DeactivateDiscount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	if err := h.discounts.Deactivate(c.Request.Context(), middleware.BusinessID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OffersHandler) ListDiscounts(c *gin.Context) {
	if c.Query("current") == "true" {
		resp, err := h.discounts.ListCurrentlyActive(c.Request.Context(), middleware.BusinessID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.discounts.List(c.Request.Context(), middleware.BusinessID(c), c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResolveDiscount godoc
// @Summary      Resolver descuento aplicable
// @Description  Elige el único descuento aplicable por prioridad producto > categoría > todos y calcula el monto final. Solo lectura.
// @Tags         descuentos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ResolveDiscountRequest true "Monto y contexto"
// @Success      200  {object} dto.ResolveDiscountResponse
// @Failure      400  {object} apperr.Envelope
// @Router       /v1/discounts/resolve [post]
func (h *OffersHandler) ResolveDiscount(c *gin.Context) {
	var req dto.ResolveDiscountRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.discounts.Resolve(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Combos ───────────────────────────────────────────────────────────────────

func (h *OffersHandler) CreateCombo(c *gin.Context) {
	var req dto.CreateComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.combos.Create(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OffersHandler) UpdateCombo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.UpdateComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.combos.Update(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OffersHandler) DeactivateCombo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	if err := h.combos.Deactivate(c.Request.Context(), middleware.BusinessID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OffersHandler) GetCombo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.combos.Get(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OffersHandler) ListCombos(c *gin.Context) {
	resp, err := h.combos.List(c.Request.Context(), middleware.BusinessID(c), c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveComboItems godoc
// @Summary      Guardar items del combo
// @Description  Reemplaza los items del combo y recalcula original_price como snapshot de los precios actuales de los productos.
// @Tags         combos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                    true "UUID del combo"
// @Param        body body dto.SaveComboItemsRequest true "Items del combo"
// @Success      200  {object} dto.ComboResponse
// @Failure      404  {object} apperr.Envelope
// @Router       /v1/combos/{id}/items [put]
func (h *OffersHandler) SaveComboItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.SaveComboItemsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.combos.SaveItems(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
