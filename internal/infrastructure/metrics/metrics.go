package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

var _ ports.Metrics = (*Collectors)(nil)

// Collectors colectores Prometheus de la API.
type Collectors struct {
	reservations   *prometheus.CounterVec
	lockWait       prometheus.Histogram
	cacheRequests  *prometheus.CounterVec
	evolutionEvent *prometheus.CounterVec
}

// New registra los colectores en reg (prometheus.DefaultRegisterer en producción,
// un registro propio en tests).
func New(reg prometheus.Registerer) *Collectors {
	f := promauto.With(reg)
	return &Collectors{
		reservations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Reservas procesadas por resultado",
			},
			[]string{"result"},
		),
		lockWait: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "reservation_lock_wait_seconds",
				Help:    "Espera hasta obtener (o agotar) el bloqueo de reservas",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
			},
		),
		cacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_cache_requests_total",
				Help: "Consultas a la caché del tablero por resultado (hit|miss)",
			},
			[]string{"result"},
		),
		evolutionEvent: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evolution_events_total",
				Help: "Eventos de evolución producidos por el agregador, por acción",
			},
			[]string{"action"},
		),
	}
}

// ReservationOutcome implementa ports.Metrics.
func (c *Collectors) ReservationOutcome(result string) {
	c.reservations.WithLabelValues(result).Inc()
}

// LockWait implementa ports.Metrics.
func (c *Collectors) LockWait(d time.Duration) {
	c.lockWait.Observe(d.Seconds())
}

// DashboardCache implementa ports.Metrics.
func (c *Collectors) DashboardCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.cacheRequests.WithLabelValues(result).Inc()
}

// EvolutionEvents implementa ports.Metrics.
func (c *Collectors) EvolutionEvents(action string, n int) {
	c.evolutionEvent.WithLabelValues(action).Add(float64(n))
}

// Nop métricas descartadas (tests y herramientas).
type Nop struct{}

func (Nop) ReservationOutcome(string)   {}
func (Nop) LockWait(time.Duration)      {}
func (Nop) DashboardCache(bool)         {}
func (Nop) EvolutionEvents(string, int) {}
