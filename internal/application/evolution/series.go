package evolution

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
)

// Granularity resolución temporal de la serie.
type Granularity string

const (
	Daily   Granularity = "day"
	Monthly Granularity = "month"
)

// ParseGranularity valida el parámetro de la consulta. Vacío = mensual.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case "", Monthly:
		return Monthly, nil
	case Daily:
		return Daily, nil
	default:
		return "", fmt.Errorf("granularidad %q: %w", s, domain.ErrInvalidInput)
	}
}

type seriesKey struct {
	bucket, agent, action string
}

// Series suma los eventos por período, agente y acción. Orden: período, agente, acción.
func Series(events []entity.EvolutionEvent, g Granularity) []dto.SeriesPoint {
	sums := make(map[seriesKey]int)
	for _, e := range events {
		bucket := e.Day
		if g == Monthly {
			bucket = e.Month()
		}
		sums[seriesKey{bucket, e.Agent, e.Action}] += e.Count
	}
	out := make([]dto.SeriesPoint, 0, len(sums))
	for k, n := range sums {
		out = append(out, dto.SeriesPoint{Bucket: k.bucket, Agent: k.agent, Action: k.action, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bucket != out[j].Bucket {
			return out[i].Bucket < out[j].Bucket
		}
		if out[i].Agent != out[j].Agent {
			return out[i].Agent < out[j].Agent
		}
		return out[i].Action < out[j].Action
	})
	return out
}

// Totals acumulado por agente y acción en toda la ventana. Incluye a los agentes del plantel
// sin eventos; ordenado por total descendente y luego por nombre.
func Totals(events []entity.EvolutionEvent, agents []string) []dto.AgentTotals {
	byAgent := make(map[string]*dto.AgentTotals, len(agents))
	for _, name := range agents {
		byAgent[name] = &dto.AgentTotals{Agent: name, ByAction: map[string]int{}}
	}
	for _, e := range events {
		t, ok := byAgent[e.Agent]
		if !ok {
			t = &dto.AgentTotals{Agent: e.Agent, ByAction: map[string]int{}}
			byAgent[e.Agent] = t
		}
		t.ByAction[e.Action] += e.Count
		t.Total += e.Count
	}
	out := make([]dto.AgentTotals, 0, len(byAgent))
	for _, t := range byAgent {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Agent < out[j].Agent
	})
	return out
}

// ContextBrief tabla de texto con los eventos, en el orden recibido, para el prompt del asistente.
func ContextBrief(events []entity.EvolutionEvent) string {
	var b strings.Builder
	b.WriteString("MÉTRICAS DETALLADAS (FECHA | AGENTE | ACCIÓN | CANTIDAD):\n")
	for _, e := range events {
		fmt.Fprintf(&b, "%s | %s | %s | %d\n", e.Day, e.Agent, e.Action, e.Count)
	}
	return b.String()
}
