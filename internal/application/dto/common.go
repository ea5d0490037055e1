package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Valores de StatusResponse.Status.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusResponse respuesta de operaciones de escritura que el frontend evalúa por status
// (reservas).
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse respuesta de operaciones del CRM evaluadas por success.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
