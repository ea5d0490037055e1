package evolution

import (
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

// Predicate filtro adicional por fila; recibe la cabecera para resolver columnas.
type Predicate func(row sheet.Row, header sheet.Header) bool

// Source tabla que aporta eventos de evolución: cada fila válida es una acción de su agente.
type Source struct {
	Table       repository.TableID
	AgentColumn string // nombre exacto preferido; si no está se usa cualquier cabecera con AGENTE
	Action      string
	Predicate   Predicate // opcional
}

// Acciones registradas en el tablero.
const (
	ActionSellerClients = "CLIENTES VENDEDORES"
	ActionClients       = "CLIENTES"
	ActionSigns         = "CARTELES"
	ActionVisits        = "VISITAS"
	ActionValuations    = "VALUACIONES"
	ActionBookings      = "RESERVAS"
	ActionReviews       = "RESEÑAS"
	ActionCaptures      = "CAPTACIONES"
)

const defaultAgentColumn = "AGENTE INMOBILIARIO"

// DefaultSources las ocho fuentes del tablero, en el orden en que se concatenan.
func DefaultSources() []Source {
	return []Source{
		{Table: repository.TableSellers, AgentColumn: defaultAgentColumn, Action: ActionSellerClients},
		{Table: repository.TableBuyers, AgentColumn: defaultAgentColumn, Action: ActionClients},
		{Table: repository.TableSigns, AgentColumn: defaultAgentColumn, Action: ActionSigns},
		{Table: repository.TableVisits, AgentColumn: defaultAgentColumn, Action: ActionVisits},
		{Table: repository.TableValuations, AgentColumn: defaultAgentColumn, Action: ActionValuations},
		{Table: repository.TableBookings, AgentColumn: defaultAgentColumn, Action: ActionBookings},
		{Table: repository.TableReviews, AgentColumn: defaultAgentColumn, Action: ActionReviews},
		{Table: repository.TablePortfolio, AgentColumn: "AGENTE_CAPTADOR", Action: ActionCaptures, Predicate: CapturedOnly},
	}
}

// Actions nombres de acción de las fuentes, en orden.
func Actions(sources []Source) []string {
	out := make([]string, 0, len(sources))
	seen := map[string]bool{}
	for _, s := range sources {
		if !seen[s.Action] {
			seen[s.Action] = true
			out = append(out, s.Action)
		}
	}
	return out
}

// CapturedOnly acepta solo inmuebles en estado CAPTADO. Si la tabla no tiene columna ESTADO
// acepta todas las filas.
func CapturedOnly(row sheet.Row, header sheet.Header) bool {
	idx := header.Index("ESTADO")
	if idx < 0 {
		return true
	}
	return sheet.Upper(row.Cell(idx)) == string(entity.PropertyStatusCaptured)
}
