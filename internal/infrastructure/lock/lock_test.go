package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/lock"
)

func newRedisLocker(t *testing.T) (*lock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return lock.NewRedisLocker(rdb, "test:lock:reservas", 5*time.Second), mr
}

func lockers(t *testing.T) map[string]ports.Locker {
	rl, _ := newRedisLocker(t)
	return map[string]ports.Locker{
		"local": lock.NewLocalLocker(),
		"redis": rl,
	}
}

func TestLocker_ExclusionYTimeout(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lease, err := l.Acquire(ctx, time.Second)
			require.NoError(t, err)

			_, err = l.Acquire(ctx, 250*time.Millisecond)
			require.ErrorIs(t, err, domain.ErrLockTimeout)

			require.NoError(t, lease.Release(ctx))

			again, err := l.Acquire(ctx, time.Second)
			require.NoError(t, err)
			assert.NoError(t, again.Release(ctx))
		})
	}
}

func TestLocker_EsperaHastaLiberacion(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			lease, err := l.Acquire(ctx, time.Second)
			require.NoError(t, err)

			go func() {
				time.Sleep(150 * time.Millisecond)
				_ = lease.Release(ctx)
			}()

			second, err := l.Acquire(ctx, 3*time.Second)
			require.NoError(t, err)
			assert.NoError(t, second.Release(ctx))
		})
	}
}

func TestLocalLocker_ContextoCancelado(t *testing.T) {
	l := lock.NewLocalLocker()
	lease, err := l.Acquire(context.Background(), time.Second)
	require.NoError(t, err)
	defer lease.Release(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Acquire(ctx, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalLocker_ReleaseDobleNoLiberaDeMas(t *testing.T) {
	l := lock.NewLocalLocker()
	ctx := context.Background()
	lease, err := l.Acquire(ctx, time.Second)
	require.NoError(t, err)
	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx))

	held, err := l.Acquire(ctx, time.Second)
	require.NoError(t, err)
	_, err = l.Acquire(ctx, 50*time.Millisecond)
	require.ErrorIs(t, err, domain.ErrLockTimeout)
	require.NoError(t, held.Release(ctx))
}

func TestRedisLocker_ExpiraPorTTL(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()
	_, err := l.Acquire(ctx, time.Second)
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)

	lease, err := l.Acquire(ctx, time.Second)
	require.NoError(t, err)
	assert.NoError(t, lease.Release(ctx))
}
