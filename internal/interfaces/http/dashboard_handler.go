package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/warner-inmobiliaria/internal/application/analytics"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero de evolución comercial.
type DashboardHandler struct {
	svc *appanalytics.DashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc *appanalytics.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GetMetrics devuelve el plantel activo y los eventos de evolución.
// GET /api/dashboard
//
// La respuesta sale de la caché (DASHBOARD_DATA_V1) mientras esté vigente.
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	m, err := h.svc.GetMetrics(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// GetSeries serie por día o por mes para el gráfico.
// GET /api/dashboard/series?granularity=day|month
func (h *DashboardHandler) GetSeries(c *fiber.Ctx) error {
	s, err := h.svc.GetSeries(c.UserContext(), c.Query("granularity"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// GetReport informe PDF con totales por agente y evolución mensual.
// GET /api/dashboard/report.pdf
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	pdf, err := h.svc.RenderReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="tablero.pdf"`)
	return c.Send(pdf)
}

// Invalidate borra la caché del tablero. Solo ADMIN.
// DELETE /api/dashboard/cache
func (h *DashboardHandler) Invalidate(c *fiber.Ctx) error {
	if err := h.svc.Invalidate(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
