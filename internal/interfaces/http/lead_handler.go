package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/crm"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
)

// LeadHandler tablero CRM de compradores y vendedores.
type LeadHandler struct {
	svc *crm.Service
}

// NewLeadHandler construye el handler.
func NewLeadHandler(svc *crm.Service) *LeadHandler {
	return &LeadHandler{svc: svc}
}

// List godoc
// @Summary      Leads visibles
// @Description  Un AGENTE ve solo sus leads. Un ADMIN ve todos o filtra con ?agente=.
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        agente  query  string  false  "filtro por agente (solo ADMIN)"
// @Success      200   {array}   entity.Lead
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	requester := GetName(c)
	if GetRole(c) == entity.RoleAdmin {
		requester = c.Query("agente")
	} else if requester == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "el token no identifica al agente"})
	}
	leads, err := h.svc.ListLeads(c.UserContext(), requester)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(leads)
}

// Update godoc
// @Summary      Actualizar un lead
// @Description  Cambia etapa, agenda ("" o "DELETE" la borra; ausente no se toca) y antepone una nota fechada.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateLeadRequest  true  "id, etapa, agenda, nota"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.SuccessResponse
// @Router       /api/leads [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SuccessResponse{Success: false, Error: "cuerpo de la petición inválido"})
	}
	err := h.svc.UpdateLead(c.UserContext(), crm.UpdateLeadInput{
		ID:     req.ID,
		Stage:  req.Stage,
		Agenda: req.Agenda,
		Note:   req.Note,
	})
	if err != nil {
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.SuccessResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
