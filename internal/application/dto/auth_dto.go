package dto

// LoginRequest credenciales: email institucional y DNI (con o sin puntos).
type LoginRequest struct {
	Email string `json:"email"`
	DNI   string `json:"dni"`
}

// AgentProfile perfil devuelto al iniciar sesión.
type AgentProfile struct {
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	Phone      string `json:"telefono"`
	Position   string `json:"cargo"`
	Department string `json:"departamento"`
	HiredAt    string `json:"fecha_ingreso"`
	AvatarURL  string `json:"avatar"`
	Role       string `json:"rol"`
}

// LoginResponse token + perfil.
type LoginResponse struct {
	Token   string       `json:"token"`
	Profile AgentProfile `json:"perfil"`
}
