package entity

// PropertyStatus estado de un inmueble en la cartera (columna ESTADO de la planilla).
type PropertyStatus string

// Estados posibles de un inmueble. Los valores son los que se guardan en la planilla.
const (
	PropertyStatusCaptured PropertyStatus = "CAPTADO"
	PropertyStatusReserved PropertyStatus = "RESERVADO"
	PropertyStatusSold     PropertyStatus = "VENDIDO"
	PropertyStatusRented   PropertyStatus = "ALQUILADO"
	PropertyStatusLost     PropertyStatus = "PERDIDO"
)

// Property representa un inmueble de la cartera. PadronCatastral es la clave estable.
// Solo el coordinador de reservas modifica Status (CAPTADO → RESERVADO).
type Property struct {
	PadronCatastral string
	Address         string // calle + número
	Status          PropertyStatus
	CaptorAgent     string
	HasSign         bool // columna CARTEL = SI
}

// PropertySummary elemento de los listados de inmuebles (selector de reservas y cartelería).
type PropertySummary struct {
	Address string `json:"direccion"`
	Padron  string `json:"padron"`
}
