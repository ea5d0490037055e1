package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/warner-inmobiliaria/internal/application/analytics"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
)

// AIHandler asistente analítico sobre los datos del tablero.
type AIHandler struct {
	assistant *appanalytics.Assistant
}

// NewAIHandler construye el handler.
func NewAIHandler(assistant *appanalytics.Assistant) *AIHandler {
	return &AIHandler{assistant: assistant}
}

// Chat godoc
// @Summary      Consultar al asistente analítico
// @Description  Responde preguntas sobre la evolución comercial. Sin pregunta devuelve el saludo.
//               Si el modelo falla o tarda más de 10 s devuelve una respuesta fija; nunca error.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskRequest  true  "pregunta"
// @Success      200   {object}  dto.AskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req dto.AskRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return invalidBody(c)
		}
	}
	return c.JSON(dto.AskResponse{Answer: h.assistant.Ask(c.UserContext(), req.Question)})
}
