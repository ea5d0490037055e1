package repository

import (
	"context"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

// TableID identificador lógico de una tabla (una planilla en el almacén).
type TableID string

// Tablas del sistema.
const (
	TablePersonnel  TableID = "PERSONAL"
	TableSellers    TableID = "VENDEDORES"
	TableBuyers     TableID = "COMPRADORES"
	TableSigns      TableID = "CARTELES"
	TableVisits     TableID = "VISITAS"
	TablePortfolio  TableID = "CARTERA"
	TableBookings   TableID = "RESERVAS"
	TableValuations TableID = "VALUACION"
	TableReviews    TableID = "RESENAS"
)

// AllTables todas las tablas conocidas, en orden estable.
var AllTables = []TableID{
	TablePersonnel, TableSellers, TableBuyers, TableSigns, TableVisits,
	TablePortfolio, TableBookings, TableValuations, TableReviews,
}

// RecordStore puerto sobre el almacén tabular externo (planillas).
//
// Contrato:
//   - ReadTable devuelve todas las filas, cabecera incluida (fila 0), en el orden natural
//     del almacén (orden de inserción). El adaptador nunca reordena.
//   - AppendRow agrega al final. Devuelve domain.ErrStoreUnavailable si la tabla no es accesible.
//   - UpdateCell escribe una sola celda; índices base 0 contando la cabecera.
//
// No hay atomicidad entre llamadas: quien necesite leer-modificar-escribir debe bloquear
// por su cuenta (ver reservation.Coordinator).
type RecordStore interface {
	ReadTable(ctx context.Context, table TableID) ([]sheet.Row, error)
	AppendRow(ctx context.Context, table TableID, row sheet.Row) error
	UpdateCell(ctx context.Context, table TableID, rowIndex, colIndex int, value any) error
}
