package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/property"
)

// PropertyHandler listados de la cartera de inmuebles.
type PropertyHandler struct {
	svc *property.Service
}

// NewPropertyHandler construye el handler.
func NewPropertyHandler(svc *property.Service) *PropertyHandler {
	return &PropertyHandler{svc: svc}
}

// ListCaptured godoc
// @Summary      Inmuebles captados
// @Description  Inmuebles en estado CAPTADO ordenados por dirección. Con filtro_carteles=true
//               se excluyen los que ya tienen cartel.
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Param        filtro_carteles  query  bool  false  "excluir inmuebles con cartel"
// @Success      200   {array}   entity.PropertySummary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) ListCaptured(c *fiber.Ctx) error {
	list, err := h.svc.ListCaptured(c.UserContext(), c.QueryBool("filtro_carteles", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListReservable godoc
// @Summary      Inmuebles reservables
// @Tags         properties
// @Security     Bearer
// @Produce      json
// @Success      200   {array}   entity.PropertySummary
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/properties/reservable [get]
func (h *PropertyHandler) ListReservable(c *fiber.Ctx) error {
	list, err := h.svc.ListReservable(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
