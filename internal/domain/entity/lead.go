package entity

import "time"

// LeadSource origen de un lead: planilla de compradores (CLI) o de vendedores (VEN).
type LeadSource string

const (
	LeadSourceBuyers  LeadSource = "CLI"
	LeadSourceSellers LeadSource = "VEN"
)

// Categorías derivadas del tipo de operación del lead.
const (
	LeadCategoryTenant = "INQUILINO"
	LeadCategoryBuyer  = "COMPRADOR"
	LeadCategoryOwner  = "PROPIETARIO"
	LeadCategorySeller = "VENDEDOR"
)

// PipelineStage etapa del embudo comercial.
type PipelineStage string

const (
	StageIngreso    PipelineStage = "INGRESO"
	StageContactado PipelineStage = "CONTACTADO"
	StageGestion    PipelineStage = "GESTION"
	StageReserva    PipelineStage = "RESERVA"
	StageCerrado    PipelineStage = "CERRADO"
)

// PipelineStages orden fijo de las etapas del embudo.
var PipelineStages = []PipelineStage{StageIngreso, StageContactado, StageGestion, StageReserva, StageCerrado}

// Valid indica si la etapa pertenece al embudo.
func (s PipelineStage) Valid() bool {
	for _, st := range PipelineStages {
		if st == s {
			return true
		}
	}
	return false
}

// Lead contacto del CRM (interesado o propietario).
// ID = "<origen>||<marca temporal de la fila>", clave externa estable.
type Lead struct {
	ID         string        `json:"id"`
	CreatedAt  string        `json:"fecha"`
	Category   string        `json:"cat"`
	Stage      PipelineStage `json:"etapa"`
	Agent      string        `json:"agente"`
	Name       string        `json:"nom"`
	Phone      string        `json:"tel"`
	Email      string        `json:"mail"`
	Property   string        `json:"prop"`
	Zone       string        `json:"zona"`
	NextAction *time.Time    `json:"agenda"`
	Notes      string        `json:"notas"`
}
