package ports

import "context"

// LLMService define el puerto de salida hacia el modelo de lenguaje del asistente analítico.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
type LLMService interface {
	// Generate envía el prompt completo y devuelve el texto generado.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Generate(ctx context.Context, prompt string) (string, error)
}
