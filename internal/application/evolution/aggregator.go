package evolution

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

// RosterProvider plantel activo (nombres canónicos).
type RosterProvider interface {
	ActiveAgents(ctx context.Context) ([]string, error)
}

// Result salida de una pasada del agregador.
type Result struct {
	Events       []entity.EvolutionEvent
	ActiveAgents []string
}

// Aggregator recorre las fuentes configuradas y produce un evento por fila válida.
type Aggregator struct {
	store   repository.RecordStore
	roster  RosterProvider
	norm    *identity.Normalizer
	sources []Source
	window  time.Duration
	now     func() time.Time
	metrics ports.Metrics
	log     zerolog.Logger
}

// Option configura el agregador.
type Option func(*Aggregator)

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// WithSources reemplaza DefaultSources.
func WithSources(sources []Source) Option {
	return func(a *Aggregator) { a.sources = sources }
}

// NewAggregator construye el agregador. window es la antigüedad máxima de un evento.
func NewAggregator(store repository.RecordStore, roster RosterProvider, norm *identity.Normalizer,
	window time.Duration, metrics ports.Metrics, log zerolog.Logger, opts ...Option) *Aggregator {
	a := &Aggregator{
		store:   store,
		roster:  roster,
		norm:    norm,
		sources: DefaultSources(),
		window:  window,
		now:     time.Now,
		metrics: metrics,
		log:     log,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sources fuentes configuradas.
func (a *Aggregator) Sources() []Source { return a.sources }

// Aggregate carga el plantel una vez y procesa las fuentes en orden. Un error del plantel
// corta la pasada; el error de una fuente se registra y la fuente se omite.
// Misma entrada y mismo reloj producen la misma salida.
func (a *Aggregator) Aggregate(ctx context.Context) (*Result, error) {
	agents, err := a.roster.ActiveAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("plantel activo: %w", err)
	}
	active := make(map[string]struct{}, len(agents))
	for _, name := range agents {
		active[name] = struct{}{}
	}

	minDate := a.now().Add(-a.window)

	// Lecturas en paralelo, un canal por fuente; el resultado se concatena en el orden
	// configurado para que la salida sea determinista.
	type sourceResult struct {
		events []entity.EvolutionEvent
		err    error
	}
	pending := make([]chan sourceResult, len(a.sources))
	for i, src := range a.sources {
		ch := make(chan sourceResult, 1)
		pending[i] = ch
		go func(src Source) {
			produced, err := a.processSource(ctx, src, active, minDate)
			ch <- sourceResult{produced, err}
		}(src)
	}

	events := []entity.EvolutionEvent{}
	for i, src := range a.sources {
		r := <-pending[i]
		if r.err != nil {
			a.log.Error().Err(r.err).Str("accion", src.Action).Str("table", string(src.Table)).
				Msg("error procesando fuente de evolución")
			continue
		}
		a.log.Info().Str("accion", src.Action).Int("procesados", len(r.events)).Msg("fuente procesada")
		a.metrics.EvolutionEvents(src.Action, len(r.events))
		events = append(events, r.events...)
	}
	return &Result{Events: events, ActiveAgents: agents}, nil
}

func (a *Aggregator) processSource(ctx context.Context, src Source, active map[string]struct{}, minDate time.Time) ([]entity.EvolutionEvent, error) {
	rows, err := a.store.ReadTable(ctx, src.Table)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	header := sheet.HeaderOf(rows)
	agentIdx := header.IndexOrFind(src.AgentColumn, "AGENTE")
	dateIdx := header.Find("MARCA TEMPORAL", "FECHA")
	if agentIdx < 0 || dateIdx < 0 {
		a.log.Warn().Str("accion", src.Action).Msg("columnas de agente o fecha no encontradas")
		return nil, nil
	}

	var out []entity.EvolutionEvent
	for _, row := range rows[1:] {
		name := a.norm.Normalize(sheet.String(row.Cell(agentIdx)))
		if name == "" {
			continue
		}
		if _, ok := active[name]; !ok {
			continue
		}
		at, ok := sheet.Time(row.Cell(dateIdx))
		if !ok || at.Before(minDate) {
			continue
		}
		if src.Predicate != nil && !src.Predicate(row, header) {
			continue
		}
		out = append(out, entity.EvolutionEvent{
			Agent:  name,
			Action: src.Action,
			Day:    sheet.Day(at),
			Count:  1,
		})
	}
	return out, nil
}
