package entity

import "strings"

// Roles de la aplicación (derivados del cargo en RRHH).
const (
	RoleAgent = "AGENTE"
	RoleAdmin = "ADMIN"
)

// EmploymentActive estado laboral considerado activo en la planilla de personal.
const EmploymentActive = "ACTIVO"

// Agent fila de la planilla de personal (RRHH).
type Agent struct {
	Name       string
	DNI        string
	Email      string
	Phone      string
	Position   string // cargo
	Department string
	HiredAt    string
	Status     string
	AvatarURL  string
}

// Role deriva el rol de la aplicación a partir del cargo.
func (a Agent) Role() string {
	if strings.Contains(strings.ToLower(a.Position), "agente") {
		return RoleAgent
	}
	return RoleAdmin
}
