package dto

import "github.com/shopspring/decimal"

// ReservationRequest cuerpo de POST /api/reservas.
type ReservationRequest struct {
	PropertyID string          `json:"padron"`
	Address    string          `json:"direccion"`
	Agent      string          `json:"agente"`
	Amount     decimal.Decimal `json:"valor"`
	Currency   string          `json:"moneda"`
	Operation  string          `json:"operacion"`
}
