package analytics_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/analytics"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/evolution"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/cache"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/memstore"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/metrics"
)

var clock = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

// countingRoster cuenta las consultas al plantel: una por recálculo.
type countingRoster struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *countingRoster) ActiveAgents(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return []string{"ANA LOPEZ", "JUAN PEREZ"}, r.err
}

type captureRenderer struct {
	report dto.DashboardReport
}

func (c *captureRenderer) RenderDashboard(_ context.Context, r dto.DashboardReport) ([]byte, error) {
	c.report = r
	return []byte("%PDF-1.4"), nil
}

func newDashboard(t *testing.T, r *countingRoster, renderer *captureRenderer) *analytics.DashboardService {
	t.Helper()
	store := memstore.New()
	store.Seed(repository.TableVisits,
		sheet.Row{"Marca temporal", "AGENTE"},
		sheet.Row{clock.Add(-48 * time.Hour), "Juan Pérez"},
		sheet.Row{clock.Add(-40 * 24 * time.Hour), "Ana López"},
	)
	agg := evolution.NewAggregator(store, r, identity.NewNormalizer(nil), 365*24*time.Hour,
		metrics.Nop{}, zerolog.Nop(), evolution.WithClock(func() time.Time { return clock }))
	dc := analytics.NewDashboardCache(cache.NewMemoryCache(nil), metrics.Nop{}, zerolog.Nop())
	var cfg analytics.DashboardConfig
	if renderer == nil {
		return analytics.NewDashboardService(agg, dc, nil, cfg, zerolog.Nop())
	}
	return analytics.NewDashboardService(agg, dc, renderer, cfg, zerolog.Nop())
}

func TestDashboard_MetricasEnCacheHastaInvalidar(t *testing.T) {
	r := &countingRoster{}
	svc := newDashboard(t, r, nil)
	ctx := context.Background()

	m, err := svc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ANA LOPEZ", "JUAN PEREZ"}, m.ActiveAgents)
	assert.Len(t, m.Events, 2)

	_, err = svc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls)

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.GetMetrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls)
}

func TestDashboard_ErrorDelPlantelNoSeCachea(t *testing.T) {
	r := &countingRoster{err: errors.New("personal caído")}
	svc := newDashboard(t, r, nil)

	_, err := svc.GetMetrics(context.Background())
	require.Error(t, err)

	r.err = nil
	m, err := svc.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.Events, 2)
}

func TestDashboard_Series(t *testing.T) {
	svc := newDashboard(t, &countingRoster{}, nil)

	s, err := svc.GetSeries(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "month", s.Granularity)
	require.Len(t, s.Points, 2)
	for _, p := range s.Points {
		assert.Len(t, p.Bucket, len("2006-01"))
		assert.Equal(t, evolution.ActionVisits, p.Action)
	}

	_, err = svc.GetSeries(context.Background(), "semana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_Informe(t *testing.T) {
	_, err := newDashboard(t, &countingRoster{}, nil).RenderReport(context.Background())
	require.Error(t, err, "sin generador configurado")

	renderer := &captureRenderer{}
	pdf, err := newDashboard(t, &countingRoster{}, renderer).RenderReport(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))

	assert.Equal(t, evolution.Actions(evolution.DefaultSources()), renderer.report.Actions)
	require.Len(t, renderer.report.Agents, 2)
	assert.Len(t, renderer.report.Months, 2)
	assert.False(t, renderer.report.GeneratedAt.IsZero())
}
