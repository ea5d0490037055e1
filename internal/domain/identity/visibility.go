package identity

import "strings"

// VisibilityPolicy decide si quien consulta puede ver un registro del propietario dado.
// Ambos nombres deben llegar canónicos.
type VisibilityPolicy func(requester, owner string) bool

// IsVisible política por defecto (contención mutua de subcadenas).
//
// Un solicitante vacío es un administrador: ve todo. En otro caso el registro es visible si
// un nombre contiene al otro, para tolerar filas guardadas con nombre corto y pedidos con
// nombre completo (y al revés).
//
// Limitación conocida: dos agentes cuyos nombres se contienen ("ANA" y "ANA MARIA") se ven
// mutuamente los registros. Un propietario vacío es visible para cualquiera.
func IsVisible(requester, owner string) bool {
	if requester == "" {
		return true
	}
	return strings.Contains(owner, requester) || strings.Contains(requester, owner)
}

var _ VisibilityPolicy = IsVisible
