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

type CostingHandler struct{ svc service.CostingService }

func NewCostingHandler(svc service.CostingService) *CostingHandler {
	return &CostingHandler{svc: svc}
}

// ── Preparations ─────────────────────────────────────────────────────────────

func (h *CostingHandler) CreatePreparation(c *gin.Context) {
	var req dto.CreatePreparationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePreparation(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CostingHandler) UpdatePreparation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.UpdatePreparationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePreparation(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CostingHandler) DeactivatePreparation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	if err := h.svc.DeactivatePreparation(c.Request.Context(), middleware.BusinessID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CostingHandler) ListPreparations(c *gin.Context) {
	resp, err := h.svc.ListPreparations(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CostingHandler) GetPreparation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.svc.GetPreparation(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Recipes ──────────────────────────────────────────────────────────────────

// SavePreparationRecipe godoc
// @Summary      Guardar receta de preparación
// @Description  Reemplaza todos los items de la receta y recalcula el costo por unidad en la misma transacción.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                           true "UUID de la preparación"
// @Param        body body dto.SavePreparationRecipeRequest true "Items de la receta"
// @Success      200  {object} dto.PreparationResponse
// @Failure      404  {object} apperr.Envelope
// @Router       /v1/preparations/{id}/recipe [put]
func (h *CostingHandler) SavePreparationRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.SavePreparationRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SavePreparationRecipe(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CostingHandler) SaveProductRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.SaveProductRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveProductRecipe(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CostingHandler) GetProductRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.svc.GetProductRecipe(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
