package handler

import (
	"errors"
	"net/http"

	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/apperr"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/dto"
	"github.com/jsimonbenitezc-gif/zenit-pos-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida credenciales y devuelve un JWT con el tenant del usuario.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciales"
// @Success      200  {object} dto.LoginResponse
// @Failure      401  {object} apperr.Envelope
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, apperr.NewEnvelope("invalid credentials"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
