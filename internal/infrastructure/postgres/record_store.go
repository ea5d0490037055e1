package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// schemaSQL tabla única que guarda todas las planillas: una fila por fila de planilla,
// celdas como arreglo JSONB. row_index 0 es la cabecera.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS sheet_rows (
	table_id  TEXT    NOT NULL,
	row_index INTEGER NOT NULL,
	cells     JSONB   NOT NULL DEFAULT '[]'::jsonb,
	PRIMARY KEY (table_id, row_index)
)`

// appendRetries reintentos ante colisión de row_index entre dos inserciones concurrentes.
const appendRetries = 3

// RecordStore implementación de repository.RecordStore sobre PostgreSQL.
type RecordStore struct {
	pool *pgxpool.Pool
}

// NewRecordStore construye el adaptador.
func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

// EnsureSchema crea la tabla sheet_rows si no existe.
func (s *RecordStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear esquema sheet_rows: %w", err)
	}
	return nil
}

// ReadTable implementa repository.RecordStore (orden por row_index = orden de inserción).
func (s *RecordStore) ReadTable(ctx context.Context, table repository.TableID) ([]sheet.Row, error) {
	return readRows(ctx, s.pool, table)
}

func readRows(ctx context.Context, q Querier, table repository.TableID) ([]sheet.Row, error) {
	rows, err := q.Query(ctx,
		`SELECT cells FROM sheet_rows WHERE table_id = $1 ORDER BY row_index`, string(table))
	if err != nil {
		return nil, unavailable("leer "+string(table), err)
	}
	defer rows.Close()

	var out []sheet.Row
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan fila %s: %w", table, err)
		}
		row, err := decodeCells(raw)
		if err != nil {
			return nil, fmt.Errorf("decodificar fila %s: %w", table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("leer "+string(table), err)
	}
	return out, nil
}

// AppendRow implementa repository.RecordStore.
func (s *RecordStore) AppendRow(ctx context.Context, table repository.TableID, row sheet.Row) error {
	cells, err := encodeCells(row)
	if err != nil {
		return fmt.Errorf("codificar fila %s: %w", table, err)
	}
	query := `
		INSERT INTO sheet_rows (table_id, row_index, cells)
		SELECT $1, COALESCE(MAX(row_index) + 1, 0), $2::jsonb
		FROM sheet_rows WHERE table_id = $1`
	for attempt := 1; ; attempt++ {
		_, err = s.pool.Exec(ctx, query, string(table), cells)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) || attempt >= appendRetries {
			return unavailable("agregar fila en "+string(table), err)
		}
	}
}

// UpdateCell implementa repository.RecordStore. Bloquea la fila (SELECT FOR UPDATE) durante
// el leer-modificar-escribir de la celda.
func (s *RecordStore) UpdateCell(ctx context.Context, table repository.TableID, rowIndex, colIndex int, value any) error {
	if colIndex < 0 {
		return fmt.Errorf("columna %d: %w", colIndex, domain.ErrNotFound)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return unavailable("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT cells FROM sheet_rows WHERE table_id = $1 AND row_index = $2 FOR UPDATE`,
		string(table), rowIndex).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("fila %s[%d]: %w", table, rowIndex, domain.ErrNotFound)
		}
		return unavailable("leer celda", err)
	}
	row, err := decodeCells(raw)
	if err != nil {
		return fmt.Errorf("decodificar fila %s[%d]: %w", table, rowIndex, err)
	}
	for len(row) <= colIndex {
		row = append(row, nil)
	}
	row[colIndex] = value

	cells, err := encodeCells(row)
	if err != nil {
		return fmt.Errorf("codificar fila %s[%d]: %w", table, rowIndex, err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE sheet_rows SET cells = $3::jsonb WHERE table_id = $1 AND row_index = $2`,
		string(table), rowIndex, cells); err != nil {
		return unavailable("actualizar celda", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return unavailable("commit transaction", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}

// encodeCells serializa una fila a JSON. Fechas en ISO, decimales como texto exacto.
func encodeCells(row sheet.Row) ([]byte, error) {
	cells := make([]any, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case time.Time:
			cells[i] = sheet.ISOTime(x)
		case decimal.Decimal:
			cells[i] = x.String()
		default:
			cells[i] = v
		}
	}
	return json.Marshal(cells)
}

func decodeCells(raw []byte) (sheet.Row, error) {
	var cells []any
	if len(raw) == 0 {
		return sheet.Row{}, nil
	}
	if err := json.Unmarshal(raw, &cells); err != nil {
		return nil, err
	}
	return sheet.Row(cells), nil
}
