package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/reservation"
)

// ReservationHandler alta de reservas.
type ReservationHandler struct {
	coordinator *reservation.Coordinator
}

// NewReservationHandler construye el handler.
func NewReservationHandler(coordinator *reservation.Coordinator) *ReservationHandler {
	return &ReservationHandler{coordinator: coordinator}
}

// Create godoc
// @Summary      Registrar una reserva
// @Description  Escribe el asiento en el libro de reservas y marca el inmueble como RESERVADO.
//               Si el inmueble no está en la cartera el asiento queda escrito y la respuesta
//               sigue siendo success.
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReservationRequest  true  "padron, direccion, agente, valor, moneda, operacion"
// @Success      200   {object}  dto.StatusResponse
// @Failure      400   {object}  dto.StatusResponse
// @Failure      409   {object}  dto.StatusResponse
// @Failure      503   {object}  dto.StatusResponse
// @Router       /api/reservas [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req dto.ReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.StatusResponse{Status: dto.StatusError, Message: "cuerpo de la petición inválido"})
	}
	res, err := h.coordinator.Reserve(c.UserContext(), reservation.Input{
		PropertyID: req.PropertyID,
		Address:    req.Address,
		Agent:      req.Agent,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Operation:  req.Operation,
	})
	if err != nil {
		status, _ := errorStatus(err)
		return c.Status(status).JSON(dto.StatusResponse{Status: dto.StatusError, Message: err.Error()})
	}
	out := dto.StatusResponse{Status: dto.StatusSuccess}
	if !res.InventoryUpdated {
		out.Message = "reserva registrada; el inmueble no figura en la cartera"
	}
	return c.JSON(out)
}
