package ports

import "time"

// Metrics contadores operativos de los casos de uso.
type Metrics interface {
	ReservationOutcome(result string)
	LockWait(d time.Duration)
	DashboardCache(hit bool)
	EvolutionEvents(action string, n int)
}
