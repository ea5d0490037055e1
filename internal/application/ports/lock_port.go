package ports

import (
	"context"
	"time"
)

// Locker exclusión mutua para secciones leer-modificar-escribir sobre el almacén.
// Acquire espera como máximo wait; si no obtiene el bloqueo devuelve domain.ErrLockTimeout.
type Locker interface {
	Acquire(ctx context.Context, wait time.Duration) (Lease, error)
}

// Lease bloqueo obtenido. Release debe llamarse en todos los caminos de salida.
type Lease interface {
	Release(ctx context.Context) error
}
