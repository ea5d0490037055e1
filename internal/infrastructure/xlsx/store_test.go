package xlsx_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/xlsx"
)

func newStore(t *testing.T) (*xlsx.Store, string) {
	t.Helper()
	dir := t.TempDir()
	sheets := map[repository.TableID]string{repository.TablePortfolio: "Respuestas de formulario 1"}
	return xlsx.New(dir, sheets, zerolog.Nop()), dir
}

func TestStore_LeeLibroCreado(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, xlsx.CreateWorkbook(dir, repository.TablePortfolio, "Respuestas de formulario 1", []sheet.Row{
		{"Marca temporal", "PADRON_CATASTRAL", "ESTADO"},
		{"2026-01-02", "1234", "CAPTADO"},
	}))

	rows, err := s.ReadTable(context.Background(), repository.TablePortfolio)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PADRON_CATASTRAL", rows[0][1])
	assert.Equal(t, "1234", sheet.String(rows[1][1]))
}

func TestStore_AppendYUpdatePersisten(t *testing.T) {
	ctx := context.Background()
	s, dir := newStore(t)
	require.NoError(t, xlsx.CreateWorkbook(dir, repository.TablePortfolio, "", []sheet.Row{
		{"Marca temporal", "PADRON_CATASTRAL", "ESTADO"},
		{"2026-01-02", "1234", "CAPTADO"},
	}))

	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.AppendRow(ctx, repository.TablePortfolio, sheet.Row{at, "5678", decimal.RequireFromString("50000")}))
	require.NoError(t, s.UpdateCell(ctx, repository.TablePortfolio, 1, 2, "RESERVADO"))

	rows, err := s.ReadTable(ctx, repository.TablePortfolio)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "RESERVADO", sheet.String(rows[1][2]))

	got, ok := sheet.Time(rows[2][0])
	require.True(t, ok)
	assert.True(t, at.Equal(got))
	assert.Equal(t, "5678", sheet.String(rows[2][1]))
	assert.Equal(t, "50000", sheet.String(rows[2][2]))
}

func TestStore_LibroInexistente(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.ReadTable(context.Background(), repository.TableVisits)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = s.AppendRow(context.Background(), repository.TableVisits, sheet.Row{"x"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
