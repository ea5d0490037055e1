// Package analytics contiene los casos de uso del tablero de evolución comercial
// (métricas en caché, series, informe PDF) y el asistente analítico.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/evolution"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

// DashboardConfig clave y vigencia de la caché.
type DashboardConfig struct {
	CacheKey string
	CacheTTL time.Duration
}

// DashboardService métricas del tablero: agregación de evolución memoizada.
type DashboardService struct {
	aggregator *evolution.Aggregator
	cache      *DashboardCache
	renderer   ports.ReportRenderer
	cfg        DashboardConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewDashboardService construye el servicio. renderer puede ser nil si no se expone el PDF.
func NewDashboardService(aggregator *evolution.Aggregator, cache *DashboardCache, renderer ports.ReportRenderer,
	cfg DashboardConfig, log zerolog.Logger) *DashboardService {
	if cfg.CacheKey == "" {
		cfg.CacheKey = "DASHBOARD_DATA_V1"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 900 * time.Second
	}
	return &DashboardService{aggregator: aggregator, cache: cache, renderer: renderer, cfg: cfg, now: time.Now, log: log}
}

// GetMetrics plantel activo + eventos crudos, desde caché o recalculados.
func (s *DashboardService) GetMetrics(ctx context.Context) (*dto.DashboardMetrics, error) {
	m, err := GetOrCompute(ctx, s.cache, s.cfg.CacheKey, s.cfg.CacheTTL, s.compute)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *DashboardService) compute(ctx context.Context) (dto.DashboardMetrics, error) {
	start := time.Now()
	res, err := s.aggregator.Aggregate(ctx)
	if err != nil {
		return dto.DashboardMetrics{}, fmt.Errorf("calcular evolución: %w", err)
	}
	s.log.Info().Int("eventos", len(res.Events)).Int("agentes", len(res.ActiveAgents)).
		Dur("duracion", time.Since(start)).Msg("métricas del tablero recalculadas")
	return dto.DashboardMetrics{ActiveAgents: res.ActiveAgents, Events: res.Events}, nil
}

// Invalidate borra la caché del tablero; el próximo GetMetrics recalcula.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, s.cfg.CacheKey)
}

// GetSeries serie temporal de los eventos en caché.
func (s *DashboardService) GetSeries(ctx context.Context, granularity string) (*dto.SeriesResponse, error) {
	g, err := evolution.ParseGranularity(granularity)
	if err != nil {
		return nil, err
	}
	m, err := s.GetMetrics(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SeriesResponse{Granularity: string(g), Points: evolution.Series(m.Events, g)}, nil
}

// RenderReport genera el PDF con totales por agente y la serie mensual.
func (s *DashboardService) RenderReport(ctx context.Context) ([]byte, error) {
	if s.renderer == nil {
		return nil, fmt.Errorf("generador de informes no configurado")
	}
	m, err := s.GetMetrics(ctx)
	if err != nil {
		return nil, err
	}
	report := dto.DashboardReport{
		GeneratedAt: s.now(),
		Actions:     evolution.Actions(s.aggregator.Sources()),
		Agents:      evolution.Totals(m.Events, m.ActiveAgents),
		Months:      evolution.Series(m.Events, evolution.Monthly),
	}
	pdf, err := s.renderer.RenderDashboard(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generar informe: %w", err)
	}
	return pdf, nil
}
