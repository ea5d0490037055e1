package repository

import "github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"

// Cabeceras compartidas por los formularios de actividad.
const (
	headerStamp = "Marca temporal"
	headerAgent = "AGENTE INMOBILIARIO"
)

// DefaultHeaders cabecera de cada tabla con los rótulos que resuelven los casos de uso.
// Las planillas de CRM y de personal respetan además las posiciones fijas de sus formularios.
// Un almacén vacío arranca con estas filas para que el primer alta no ocupe la cabecera.
func DefaultHeaders() map[TableID]sheet.Row {
	activity := func() sheet.Row { return sheet.Row{headerStamp, headerAgent, "DIRECCION"} }
	return map[TableID]sheet.Row{
		TablePersonnel: {
			headerStamp, "NOMBRE", "DNI", "NACIMIENTO", "EMAIL", "TELEFONO", "", "", "",
			"CARGO", "DEPARTAMENTO", "FECHA INGRESO", "", "", "", "ESTADO", "", "", "", "", "AVATAR",
		},
		TableSellers: {
			headerStamp, headerAgent, "", "TELEFONO", "EMAIL", "OPERACION", "PROPIEDAD", "",
			"ZONA", "ETAPA", "AGENDA", "NOTAS",
		},
		TableBuyers: {
			headerStamp, headerAgent, "", "NOMBRE", "TELEFONO", "EMAIL", "OPERACION", "PROPIEDAD",
			"", "", "", "", "", "", "ZONA", "", "", "", "ETAPA", "AGENDA", "NOTAS",
		},
		TableSigns:      activity(),
		TableVisits:     activity(),
		TableValuations: activity(),
		TableReviews:    activity(),
		TablePortfolio: {
			"FECHA DE CAPTACION", "AGENTE_CAPTADOR", "PADRON_CATASTRAL", "CALLE", "NUMERO", "ESTADO", "CARTEL",
		},
		// Mismo orden que el asiento que escribe reservation.Coordinator.
		TableBookings: {headerStamp, "PADRON", "DIRECCION", headerAgent, "VALOR", "MONEDA", "OPERACION"},
	}
}
