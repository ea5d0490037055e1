package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
)

var _ ports.Locker = (*LocalLocker)(nil)

// LocalLocker bloqueo exclusivo dentro del proceso. Sirve cuando hay una sola instancia de la API.
type LocalLocker struct {
	sem chan struct{}
}

// NewLocalLocker crea el bloqueo libre.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{sem: make(chan struct{}, 1)}
}

// Acquire implementa ports.Locker.
func (l *LocalLocker) Acquire(ctx context.Context, wait time.Duration) (ports.Lease, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case l.sem <- struct{}{}:
		return &localLease{sem: l.sem}, nil
	case <-timer.C:
		return nil, fmt.Errorf("esperando %s: %w", wait, domain.ErrLockTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type localLease struct {
	sem  chan struct{}
	once sync.Once
}

// Release libera el bloqueo; llamadas repetidas no hacen nada.
func (l *localLease) Release(context.Context) error {
	l.once.Do(func() { <-l.sem })
	return nil
}
