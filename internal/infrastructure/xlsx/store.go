// Package xlsx implementa repository.RecordStore sobre libros Excel (un archivo .xlsx por
// tabla) usando excelize. Es el reemplazo local de las planillas de Google Sheets: mismas
// hojas, mismas cabeceras, filas en orden de inserción.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

var _ repository.RecordStore = (*Store)(nil)

// Store abre el libro en cada operación para leer siempre el estado actual del archivo.
// Las escrituras sobre un mismo libro se serializan con un mutex por tabla; no hay
// atomicidad entre llamadas (ver contrato de RecordStore).
type Store struct {
	dir    string
	sheets map[repository.TableID]string
	log    zerolog.Logger

	mu    sync.Mutex
	locks map[repository.TableID]*sync.Mutex
}

// New construye el almacén. sheets asigna a cada tabla el nombre de la hoja dentro del libro;
// si la hoja no existe se usa la primera del libro.
func New(dir string, sheets map[repository.TableID]string, log zerolog.Logger) *Store {
	return &Store{
		dir:    dir,
		sheets: sheets,
		log:    log,
		locks:  make(map[repository.TableID]*sync.Mutex),
	}
}

// Path ruta del libro de una tabla.
func (s *Store) Path(table repository.TableID) string {
	return WorkbookPath(s.dir, table)
}

// WorkbookPath ruta del libro de una tabla dentro de dir.
func WorkbookPath(dir string, table repository.TableID) string {
	return filepath.Join(dir, strings.ToLower(string(table))+".xlsx")
}

// ReadTable implementa repository.RecordStore. Las celdas se leen en crudo: las fechas
// nativas de Excel llegan como número de serie y sheet.Time las interpreta.
func (s *Store) ReadTable(_ context.Context, table repository.TableID) ([]sheet.Row, error) {
	l := s.tableLock(table)
	l.Lock()
	defer l.Unlock()

	f, name, err := s.open(table)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer %s: %w", table, err)
	}
	rows := make([]sheet.Row, len(raw))
	for i, r := range raw {
		row := make(sheet.Row, len(r))
		for j, v := range r {
			if v != "" {
				row[j] = v
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// AppendRow implementa repository.RecordStore.
func (s *Store) AppendRow(_ context.Context, table repository.TableID, row sheet.Row) error {
	l := s.tableLock(table)
	l.Lock()
	defer l.Unlock()

	f, name, err := s.open(table)
	if err != nil {
		return err
	}
	defer f.Close()

	existing, err := f.GetRows(name)
	if err != nil {
		return fmt.Errorf("xlsx: leer %s: %w", table, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(existing)+1)
	if err != nil {
		return fmt.Errorf("xlsx: coordenada: %w", err)
	}
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = toCellValue(v)
	}
	if err := f.SetSheetRow(name, cell, &values); err != nil {
		return fmt.Errorf("xlsx: escribir fila en %s: %w", table, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", table, errors.Join(domain.ErrStoreUnavailable, err))
	}
	return nil
}

// UpdateCell implementa repository.RecordStore (índices base 0, fila 0 = cabecera).
func (s *Store) UpdateCell(_ context.Context, table repository.TableID, rowIndex, colIndex int, value any) error {
	if rowIndex < 0 || colIndex < 0 {
		return fmt.Errorf("xlsx: celda %s[%d,%d]: %w", table, rowIndex, colIndex, domain.ErrNotFound)
	}
	l := s.tableLock(table)
	l.Lock()
	defer l.Unlock()

	f, name, err := s.open(table)
	if err != nil {
		return err
	}
	defer f.Close()

	cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+1)
	if err != nil {
		return fmt.Errorf("xlsx: coordenada: %w", err)
	}
	if err := f.SetCellValue(name, cell, toCellValue(value)); err != nil {
		return fmt.Errorf("xlsx: escribir %s!%s: %w", table, cell, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("xlsx: guardar %s: %w", table, errors.Join(domain.ErrStoreUnavailable, err))
	}
	return nil
}

// open abre el libro y resuelve la hoja (fallback a la primera hoja).
func (s *Store) open(table repository.TableID) (*excelize.File, string, error) {
	path := s.Path(table)
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("xlsx: libro %s: %w", path, domain.ErrStoreUnavailable)
		}
		return nil, "", fmt.Errorf("xlsx: abrir %s: %w", path, errors.Join(domain.ErrStoreUnavailable, err))
	}
	name, ok := resolveSheet(f, s.sheets[table])
	if !ok {
		_ = f.Close()
		return nil, "", fmt.Errorf("xlsx: libro %s sin hojas: %w", path, domain.ErrStoreUnavailable)
	}
	if name != s.sheets[table] && s.sheets[table] != "" {
		s.log.Debug().Str("table", string(table)).Str("hoja", name).Msg("hoja configurada no encontrada, se usa la primera")
	}
	return f, name, nil
}

func resolveSheet(f *excelize.File, want string) (string, bool) {
	if want != "" {
		if idx, err := f.GetSheetIndex(want); err == nil && idx >= 0 {
			return want, true
		}
	}
	list := f.GetSheetList()
	if len(list) == 0 {
		return "", false
	}
	return list[0], true
}

func (s *Store) tableLock(table repository.TableID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[table]
	if !ok {
		l = &sync.Mutex{}
		s.locks[table] = l
	}
	return l
}

// toCellValue adapta valores de dominio a tipos que excelize escribe sin pérdida.
// Las fechas se guardan como texto ISO para que la lectura cruda sea estable.
func toCellValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return sheet.ISOTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return sheet.ISOTime(*x)
	case decimal.Decimal:
		return x.InexactFloat64()
	default:
		return v
	}
}

// CreateWorkbook crea (o sobrescribe) el libro de una tabla con una hoja y sus filas.
// Lo usa la herramienta de carga inicial y los tests.
func CreateWorkbook(dir string, table repository.TableID, sheetName string, rows []sheet.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if sheetName != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheetName); err != nil {
			return fmt.Errorf("xlsx: renombrar hoja: %w", err)
		}
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(r))
		for j, v := range r {
			values[j] = toCellValue(v)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("xlsx: crear directorio: %w", err)
	}
	return f.SaveAs(WorkbookPath(dir, table))
}
