package entity

// EvolutionEvent hecho derivado: una acción de un agente en un día.
// Se produce en cada pasada del agregador y no se persiste fuera de la caché.
type EvolutionEvent struct {
	Agent  string `json:"agente"`
	Action string `json:"accion"`
	Day    string `json:"fecha"` // YYYY-MM-DD
	Count  int    `json:"cantidad"`
}

// Month devuelve el mes (YYYY-MM) del evento.
func (e EvolutionEvent) Month() string {
	if len(e.Day) < 7 {
		return e.Day
	}
	return e.Day[:7]
}
