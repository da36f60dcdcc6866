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

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ── Ingredients ──────────────────────────────────────────────────────────────

// CreateIngredient godoc
// @Summary      Crear ingrediente
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateIngredientRequest true "Ingrediente"
// @Success      201  {object} dto.IngredientResponse
// @Failure      400  {object} apperr.Envelope
// @Router       /v1/ingredients [post]
func (h *InventoryHandler) CreateIngredient(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateIngredient(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) UpdateIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.UpdateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateIngredient(c.Request.Context(), middleware.BusinessID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) DeactivateIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	if err := h.svc.DeactivateIngredient(c.Request.Context(), middleware.BusinessID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) ListIngredients(c *gin.Context) {
	resp, err := h.svc.ListIngredients(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.svc.GetIngredient(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Movements ────────────────────────────────────────────────────────────────

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Asienta una entrada, salida o ajuste sobre un ingrediente. Las entradas con costo recalculan el costo promedio ponderado.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovementRequest true "Movimiento"
// @Success      201  {object} dto.MovementResponse
// @Failure      400  {object} apperr.Envelope
// @Failure      409  {object} apperr.Envelope
// @Router       /v1/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *gin.Context) {
	var req dto.MovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	var userID *uuid.UUID
	if claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			userID = &id
		}
	}
	resp, err := h.svc.RecordMovement(c.Request.Context(), middleware.BusinessID(c), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), middleware.BusinessID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
