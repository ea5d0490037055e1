package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/evolution"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

// Respuestas fijas del asistente.
const (
	AssistantGreeting = "Analista listo. ¿Qué revisamos hoy?"
	AssistantFallback = "El servicio de IA está experimentando alta latencia. Intenta nuevamente."
)

const promptTemplate = `Rol: Analista Senior de Datos Inmobiliarios.
Contexto: Tienes los siguientes datos detallados por fecha (YYYY-MM-DD):
%s
Instrucciones:
1. Identifica tendencias comparando periodos recientes.
2. Si preguntan por tasas, calcula porcentajes reales basados en los datos.
3. Sé breve y profesional.

Pregunta del Usuario: "%s"`

// Assistant responde preguntas en lenguaje natural sobre las métricas del tablero, inyectando
// los eventos en el prompt. Nunca devuelve error: ante cualquier falla responde AssistantFallback.
type Assistant struct {
	dashboard *DashboardService
	llm       ports.LLMService
	timeout   time.Duration
	log       zerolog.Logger
}

// NewAssistant construye el asistente. timeout acota cada llamada al LLM (10 s por defecto).
func NewAssistant(dashboard *DashboardService, llm ports.LLMService, timeout time.Duration, log zerolog.Logger) *Assistant {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Assistant{dashboard: dashboard, llm: llm, timeout: timeout, log: log}
}

// Ask responde la pregunta. Pregunta vacía → saludo.
func (a *Assistant) Ask(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)
	if question == "" {
		return AssistantGreeting
	}

	m, err := a.dashboard.GetMetrics(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("asistente: no se pudieron obtener métricas")
		return AssistantFallback
	}
	prompt := BuildPrompt(evolution.ContextBrief(m.Events), question)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	answer, err := a.llm.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		a.log.Error().Err(err).Msg("asistente: falla del proveedor de IA")
		return AssistantFallback
	}
	return answer
}

// BuildPrompt arma el prompt con rol, contexto e instrucciones.
func BuildPrompt(contextBrief, question string) string {
	return fmt.Sprintf(promptTemplate, contextBrief, question)
}
