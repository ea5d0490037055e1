package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("registro no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrStoreUnavailable = errors.New("almacén de datos no disponible")
	ErrLockTimeout      = errors.New("no se obtuvo el bloqueo a tiempo")
)

// ErrRecordNotFound alias usado por los casos de uso de reservas y CRM.
var ErrRecordNotFound = ErrNotFound
