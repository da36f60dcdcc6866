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

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Create godoc
// @Summary      Crear orden
// @Description  Crea una orden ACID: valida stock con bloqueo de fila, congela precios por línea y descuenta stock de productos.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Detalle de la orden"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apperr.Envelope
// @Failure      409  {object} apperr.Envelope
// @Router       /v1/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.BusinessID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.BusinessID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Actualizar estado de la orden
// @Description  Avanza la orden registrado → completado → entregado. Cancelar tiene su propio endpoint porque restaura stock.
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "UUID de la orden"
// @Param        body body dto.UpdateOrderStatusRequest true "Nuevo estado"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apperr.Envelope
// @Router       /v1/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), middleware.BusinessID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Cancela la orden y restaura el stock de sus productos. Idempotencia garantizada: una segunda cancelación falla sin duplicar el stock.
// @Tags         ordenes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la orden"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apperr.Envelope
// @Router       /v1/orders/{id} [delete]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apperr.NewEnvelope("invalid id"))
		return
	}
	resp, err := h.svc.Cancel(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
