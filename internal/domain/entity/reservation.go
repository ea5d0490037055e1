package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationLedgerEntry asiento inmutable de la planilla de Reservas.
// Se escribe una vez por intento de reserva, independientemente de si el inmueble
// se encontró en la cartera.
type ReservationLedgerEntry struct {
	Timestamp  time.Time
	PropertyID string
	Address    string
	Agent      string
	Amount     decimal.Decimal
	Currency   string
	Operation  string
}

// Row devuelve la fila en el orden de columnas de la planilla:
// marca temporal, padrón, dirección, agente, valor, moneda, operación.
func (e ReservationLedgerEntry) Row() []any {
	return []any{e.Timestamp, e.PropertyID, e.Address, e.Agent, e.Amount, e.Currency, e.Operation}
}
