package ports

import (
	"context"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
)

// ReportRenderer genera el PDF del informe de evolución del tablero.
type ReportRenderer interface {
	RenderDashboard(ctx context.Context, report dto.DashboardReport) ([]byte, error)
}
