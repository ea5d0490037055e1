// Package sheet modela las filas semiestructuradas de las planillas (strings, números y
// fechas mezclados) y concentra la heurística de búsqueda de columnas por cabecera.
//
// Ningún caso de uso compara cabeceras a mano: resuelven índices una vez con Header y
// luego leen celdas con los conversores de este paquete.
package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row una fila de planilla. La fila 0 de cada tabla es la cabecera.
type Row []any

// Cell devuelve la celda i o nil si la fila es más corta.
func (r Row) Cell(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// Clone copia la fila (las celdas son valores inmutables).
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Header cabecera de una tabla con etiquetas normalizadas (mayúsculas, sin espacios extremos).
type Header struct {
	labels []string
}

// NewHeader construye la cabecera a partir de la primera fila.
func NewHeader(r Row) Header {
	labels := make([]string, len(r))
	for i, v := range r {
		labels[i] = NormalizeLabel(String(v))
	}
	return Header{labels: labels}
}

// HeaderOf devuelve la cabecera de una tabla completa (vacía si no hay filas).
func HeaderOf(rows []Row) Header {
	if len(rows) == 0 {
		return Header{}
	}
	return NewHeader(rows[0])
}

// NormalizeLabel normaliza una etiqueta de cabecera para compararla.
func NormalizeLabel(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Len cantidad de columnas.
func (h Header) Len() int { return len(h.labels) }

// Labels etiquetas normalizadas.
func (h Header) Labels() []string { return append([]string(nil), h.labels...) }

// Index índice de la primera columna cuya etiqueta es exactamente name (normalizada), o -1.
func (h Header) Index(name string) int {
	want := NormalizeLabel(name)
	for i, l := range h.labels {
		if l == want {
			return i
		}
	}
	return -1
}

// Find índice de la primera columna que contiene alguna de las subcadenas, o -1.
// Tolera la deriva de cabeceras de las planillas ("FECHA DE VISITA", "MARCA TEMPORAL").
func (h Header) Find(substrs ...string) int {
	for i, l := range h.labels {
		for _, s := range substrs {
			if s != "" && strings.Contains(l, NormalizeLabel(s)) {
				return i
			}
		}
	}
	return -1
}

// IndexOrFind índice de la primera columna (en orden) cuya etiqueta es exactamente exact o
// contiene alguna de las subcadenas, o -1.
func (h Header) IndexOrFind(exact string, substrs ...string) int {
	for i, l := range h.labels {
		if l == NormalizeLabel(exact) {
			return i
		}
		for _, s := range substrs {
			if s != "" && strings.Contains(l, NormalizeLabel(s)) {
				return i
			}
		}
	}
	return -1
}

// String convierte una celda a texto. nil → "". Las fechas salen en ISO (ver ISO).
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return ISOTime(x)
	case *time.Time:
		if x == nil {
			return ""
		}
		return ISOTime(*x)
	case decimal.Decimal:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Upper texto de la celda en mayúsculas y recortado (comparaciones de ESTADO, CARTEL, etc.).
func Upper(v any) string {
	return strings.ToUpper(strings.TrimSpace(String(v)))
}

// isoLayout formato de Date.toISOString: milisegundos y Z.
const isoLayout = "2006-01-02T15:04:05.000Z"

// ISOTime formatea en UTC con milisegundos.
func ISOTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ISO clave textual de una celda de marca temporal: todo lo que Time reconoce como fecha
// (time.Time, texto o número de serie de Excel) sale en ISO; el resto, como texto.
func ISO(v any) string {
	if t, ok := Time(v); ok {
		return ISOTime(t)
	}
	return String(v)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	isoLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"01-02-06 15:04", // formato por defecto de excelize para celdas de fecha
}

// excelEpoch origen de los números de serie de fecha de Excel/Sheets.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Time interpreta una celda como fecha. Acepta time.Time, textos en los formatos habituales
// de las planillas y números de serie de Excel. Las fechas sin zona se toman en UTC.
func Time(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case float64:
		return serialTime(x)
	case int:
		return serialTime(float64(x))
	case int64:
		return serialTime(float64(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return serialTime(f)
		}
		return time.Time{}, false
	default:
		return Time(String(v))
	}
}

func serialTime(days float64) (time.Time, bool) {
	if days < 1 {
		return time.Time{}, false
	}
	return excelEpoch.Add(time.Duration(days * float64(24*time.Hour))).Round(time.Second), true
}

// Day fecha en formato YYYY-MM-DD (UTC).
func Day(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
