package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
)

// DashboardCache memoiza cálculos costosos con TTL sobre ports.Cache. Los valores se guardan
// en JSON. Un miss bloquea hasta que el cálculo termina; los miss simultáneos de la misma
// clave comparten un único cálculo. Un cálculo que empezó antes de una invalidación no se
// guarda: el siguiente GetOrCompute vuelve a calcular.
type DashboardCache struct {
	cache   ports.Cache
	group   singleflight.Group
	metrics ports.Metrics
	log     zerolog.Logger

	mu   sync.Mutex
	gens map[string]uint64
}

// NewDashboardCache construye la caché del tablero.
func NewDashboardCache(cache ports.Cache, metrics ports.Metrics, log zerolog.Logger) *DashboardCache {
	return &DashboardCache{cache: cache, metrics: metrics, log: log, gens: make(map[string]uint64)}
}

// GetOrCompute devuelve el valor guardado en key si sigue vigente; si no, ejecuta compute,
// lo guarda con ttl y lo devuelve. Un error de la caché se trata como miss; un error de
// compute no se guarda.
func GetOrCompute[T any](ctx context.Context, c *DashboardCache, key string, ttl time.Duration,
	compute func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, ok := c.get(ctx, key); ok {
		var cached T
		err := json.Unmarshal(raw, &cached)
		if err == nil {
			c.metrics.DashboardCache(true)
			return cached, nil
		}
		c.log.Warn().Err(err).Str("key", key).Msg("valor en caché ilegible; se recalcula")
	}
	c.metrics.DashboardCache(false)

	v, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation(key)
		value, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("serializar %s: %w", key, err)
		}
		// La verificación y la escritura van bajo mu para no intercalarse con Invalidate.
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.gens[key] != gen {
			c.log.Info().Str("key", key).Msg("caché invalidado durante el cálculo; no se guarda")
			return value, nil
		}
		if err := c.cache.Set(ctx, key, payload, ttl); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar en caché")
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (c *DashboardCache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

func (c *DashboardCache) get(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("caché no disponible; se recalcula")
		return nil, false
	}
	return raw, ok
}

// Invalidate borra la clave de inmediato, sin importar el TTL restante.
func (c *DashboardCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[key]++
	c.group.Forget(key)
	if err := c.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("invalidar %s: %w", key, err)
	}
	c.log.Info().Str("key", key).Msg("caché invalidado manualmente")
	return nil
}
