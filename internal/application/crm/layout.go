package crm

import (
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
)

// columns posiciones fijas (base 0) de las planillas del CRM. Las planillas de formulario no
// tienen cabeceras estables, por eso aquí no se busca por cabecera.
type columns struct {
	agent, name, phone, email, operation, property, zone, stage, agenda, notes int
}

// leadSource planilla de origen de leads.
type leadSource struct {
	tag   entity.LeadSource
	table repository.TableID
	cols  columns
}

var (
	buyersSource = leadSource{
		tag:   entity.LeadSourceBuyers,
		table: repository.TableBuyers,
		cols:  columns{agent: 1, name: 3, phone: 4, email: 5, operation: 6, property: 7, zone: 14, stage: 18, agenda: 19, notes: 20},
	}
	// En vendedores nombre y zona comparten la columna 8.
	sellersSource = leadSource{
		tag:   entity.LeadSourceSellers,
		table: repository.TableSellers,
		cols:  columns{agent: 1, name: 8, phone: 3, email: 4, operation: 5, property: 6, zone: 8, stage: 9, agenda: 10, notes: 11},
	}
	leadSources = []leadSource{buyersSource, sellersSource}
)

func sourceFor(tag string) (leadSource, bool) {
	for _, s := range leadSources {
		if string(s.tag) == tag {
			return s, true
		}
	}
	return leadSource{}, false
}

// category deriva la categoría del lead a partir del texto de operación.
func (s leadSource) category(operationUpper string) string {
	rent := containsRent(operationUpper)
	switch {
	case s.tag == entity.LeadSourceBuyers && rent:
		return entity.LeadCategoryTenant
	case s.tag == entity.LeadSourceBuyers:
		return entity.LeadCategoryBuyer
	case rent:
		return entity.LeadCategoryOwner
	default:
		return entity.LeadCategorySeller
	}
}
