package dto

import (
	"time"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
)

// DashboardMetrics respuesta de GET /api/dashboard (lo que se guarda en caché).
type DashboardMetrics struct {
	ActiveAgents []string                `json:"agentes_activos"`
	Events       []entity.EvolutionEvent `json:"evolucion_data"`
}

// SeriesPoint punto de la serie temporal del gráfico de evolución.
type SeriesPoint struct {
	Bucket string `json:"periodo"` // YYYY-MM-DD o YYYY-MM
	Agent  string `json:"agente"`
	Action string `json:"accion"`
	Count  int    `json:"cantidad"`
}

// SeriesResponse respuesta de GET /api/dashboard/series.
type SeriesResponse struct {
	Granularity string        `json:"granularidad"`
	Points      []SeriesPoint `json:"puntos"`
}

// AgentTotals total de acciones de un agente en la ventana, por acción.
type AgentTotals struct {
	Agent    string         `json:"agente"`
	ByAction map[string]int `json:"por_accion"`
	Total    int            `json:"total"`
}

// DashboardReport datos del informe PDF.
type DashboardReport struct {
	GeneratedAt time.Time
	Actions     []string // columnas del cuadro, en orden
	Agents      []AgentTotals
	Months      []SeriesPoint // serie mensual
}

// AskRequest cuerpo de POST /api/ai/chat.
type AskRequest struct {
	Question string `json:"pregunta"`
}

// AskResponse respuesta del asistente.
type AskResponse struct {
	Answer string `json:"answer"`
}
