package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/agents"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
)

// AuthHandler maneja el login de agentes y el listado del plantel comercial.
type AuthHandler struct {
	svc *agents.Service
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc *agents.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Valida email y DNI contra la planilla de personal y devuelve el perfil con un JWT.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, dni"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.svc.Login(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "usuario inactivo"})
		}
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListAgents godoc
// @Summary      Agentes activos
// @Description  Nombres canónicos del plantel de ventas activo, ordenados.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {array}   string
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/agents [get]
func (h *AuthHandler) ListAgents(c *fiber.Ctx) error {
	names, err := h.svc.ActiveAgents(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(names)
}
