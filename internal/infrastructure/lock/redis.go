package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
)

var _ ports.Locker = (*RedisLocker)(nil)

// retryInterval intervalo entre intentos mientras se espera el bloqueo.
const retryInterval = 100 * time.Millisecond

// RedisLocker bloqueo distribuido sobre una clave Redis (varias instancias de la API).
// El TTL acota cuánto queda tomado el bloqueo si el proceso muere sin liberarlo.
type RedisLocker struct {
	client *redislock.Client
	key    string
	ttl    time.Duration
}

// NewRedisLocker construye el bloqueo para key.
func NewRedisLocker(rdb *redis.Client, key string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), key: key, ttl: ttl}
}

// Acquire implementa ports.Locker. Reintenta cada retryInterval hasta agotar wait.
func (l *RedisLocker) Acquire(ctx context.Context, wait time.Duration) (ports.Lease, error) {
	waitCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	lk, err := l.client.Obtain(waitCtx, l.key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LinearBackoff(retryInterval),
	})
	switch {
	case err == nil:
		return &redisLease{lock: lk}, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, redislock.ErrNotObtained), errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("clave %s tras %s: %w", l.key, wait, domain.ErrLockTimeout)
	default:
		return nil, fmt.Errorf("obtener bloqueo %s: %w", l.key, err)
	}
}

type redisLease struct {
	lock *redislock.Lock
}

// Release libera la clave. Si el TTL ya expiró, no es error.
func (l *redisLease) Release(ctx context.Context) error {
	err := l.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		return nil
	}
	return err
}
