package ports

import (
	"context"
	"time"
)

// Cache almacén clave → bytes con expiración. Get devuelve ok=false si no existe o expiró.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
