// Package memstore implementa repository.RecordStore en memoria. Se usa en los tests y en
// el modo de desarrollo (STORE_DRIVER=memory).
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

var _ repository.RecordStore = (*Store)(nil)

// Store tablas en memoria protegidas por un RWMutex. Las filas se copian al leer y al
// escribir para que los llamadores no compartan slices con el almacén.
type Store struct {
	mu          sync.RWMutex
	tables      map[repository.TableID][]sheet.Row
	unavailable bool
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{tables: make(map[repository.TableID][]sheet.Row)}
}

// Seed reemplaza el contenido de una tabla (cabecera + filas).
func (s *Store) Seed(table repository.TableID, rows ...sheet.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]sheet.Row, len(rows))
	for i, r := range rows {
		copied[i] = r.Clone()
	}
	s.tables[table] = copied
}

// SetUnavailable simula una caída del almacén: toda operación devuelve ErrStoreUnavailable.
func (s *Store) SetUnavailable(v bool) {
	s.mu.Lock()
	s.unavailable = v
	s.mu.Unlock()
}

// Rows devuelve una copia del contenido actual (para aserciones en tests).
func (s *Store) Rows(table repository.TableID) []sheet.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.tables[table])
}

// ReadTable implementa repository.RecordStore.
func (s *Store) ReadTable(_ context.Context, table repository.TableID) ([]sheet.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.reachable(table); err != nil {
		return nil, err
	}
	return cloneRows(s.tables[table]), nil
}

// AppendRow implementa repository.RecordStore.
func (s *Store) AppendRow(_ context.Context, table repository.TableID, row sheet.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reachable(table); err != nil {
		return err
	}
	s.tables[table] = append(s.tables[table], row.Clone())
	return nil
}

// UpdateCell implementa repository.RecordStore. Extiende la fila si la columna no existe.
func (s *Store) UpdateCell(_ context.Context, table repository.TableID, rowIndex, colIndex int, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reachable(table); err != nil {
		return err
	}
	rows := s.tables[table]
	if rowIndex < 0 || rowIndex >= len(rows) || colIndex < 0 {
		return fmt.Errorf("memstore: celda %s[%d,%d]: %w", table, rowIndex, colIndex, domain.ErrNotFound)
	}
	row := rows[rowIndex]
	for len(row) <= colIndex {
		row = append(row, nil)
	}
	row[colIndex] = value
	rows[rowIndex] = row
	return nil
}

func (s *Store) reachable(table repository.TableID) error {
	if s.unavailable {
		return fmt.Errorf("memstore: %s: %w", table, domain.ErrStoreUnavailable)
	}
	if _, ok := s.tables[table]; !ok {
		return fmt.Errorf("memstore: tabla %s inexistente: %w", table, domain.ErrStoreUnavailable)
	}
	return nil
}

func cloneRows(rows []sheet.Row) []sheet.Row {
	out := make([]sheet.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
