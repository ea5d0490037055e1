package crm_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/crm"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/memstore"
)

var (
	stamp1 = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	stamp2 = time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)
	stamp3 = time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	today  = time.Date(2026, 7, 9, 18, 0, 0, 0, time.UTC)
)

func buyerRow(at any, agent, name, operation, property, stage, agenda, notes string) sheet.Row {
	r := make(sheet.Row, 21)
	r[0], r[1], r[3], r[4], r[5], r[6], r[7] = at, agent, name, "111", "mail@x", operation, property
	r[14], r[18], r[19], r[20] = "Centro", stage, agenda, notes
	return r
}

func sellerRow(at any, agent, nameZone, operation string) sheet.Row {
	r := make(sheet.Row, 12)
	r[0], r[1], r[3], r[4], r[5], r[6], r[8] = at, agent, "222", "v@x", operation, "Casa quinta", nameZone
	return r
}

func newService(t *testing.T) (*crm.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.Seed(repository.TableBuyers,
		make(sheet.Row, 21),
		buyerRow(stamp1, "Juan Pérez", "Cliente Uno", "COMPRA", "Casa", "", "", ""),
		buyerRow(stamp2, "Juan", "", "ALQUILER", "Depto 3B", "GESTION", "2026-07-20", "nota vieja"),
		buyerRow(stamp3, "María", "", "COMPRA", "", "", "", ""),
		buyerRow(nil, "Juan Pérez", "Fila sin marca", "COMPRA", "", "", "", ""),
	)
	store.Seed(repository.TableSellers,
		make(sheet.Row, 12),
		sellerRow(stamp1, "Agente Uno Completo", "Zona Sur", "VENTA"),
		sellerRow(stamp2, "JUAN PEREZ", "Zona Norte", "ALQUILER TEMPORARIO"),
	)
	norm := identity.NewNormalizer(nil)
	names := identity.NewDisplayNames(norm, map[string]string{"Agente Uno Completo": "AGENTE UNO"})
	svc := crm.NewService(store, norm, names, zerolog.Nop()).WithClock(func() time.Time { return today })
	return svc, store
}

func TestListLeads_VisibilidadPorContencion(t *testing.T) {
	svc, _ := newService(t)

	leads, err := svc.ListLeads(context.Background(), "juan pérez")
	require.NoError(t, err)
	// JUAN PEREZ ve sus filas y las de "JUAN"; no ve las de MARIA ni AGENTE UNO
	require.Len(t, leads, 3)
	for _, l := range leads {
		assert.Contains(t, []string{"JUAN PEREZ", "JUAN"}, l.Agent)
	}

	leads, err = svc.ListLeads(context.Background(), "Maria")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "MARIA", leads[0].Agent)
	assert.Equal(t, entity.LeadCategoryBuyer, leads[0].Category)
	assert.Equal(t, "Sin Nombre", leads[0].Name)
}

func TestListLeads_SolicitanteVacioVeTodo(t *testing.T) {
	svc, _ := newService(t)
	leads, err := svc.ListLeads(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, leads, 5, "las filas sin marca temporal se omiten")
}

func TestListLeads_TraduceNombreLegalAlNombreCRM(t *testing.T) {
	svc, _ := newService(t)
	leads, err := svc.ListLeads(context.Background(), "agente uno completo")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "VEN||"+sheet.ISOTime(stamp1), leads[0].ID)
	assert.Equal(t, entity.LeadCategorySeller, leads[0].Category)
}

func TestListLeads_CamposDerivados(t *testing.T) {
	svc, _ := newService(t)
	leads, err := svc.ListLeads(context.Background(), "")
	require.NoError(t, err)

	byID := map[string]entity.Lead{}
	for _, l := range leads {
		byID[l.ID] = l
	}

	rent := byID["CLI||"+sheet.ISOTime(stamp2)]
	assert.Equal(t, entity.LeadCategoryTenant, rent.Category)
	assert.Equal(t, entity.StageGestion, rent.Stage)
	assert.Equal(t, "Depto 3B", rent.Name, "sin nombre se usa la propiedad")
	require.NotNil(t, rent.NextAction)
	assert.Equal(t, "2026-07-20", rent.NextAction.Format("2006-01-02"))
	assert.Equal(t, "nota vieja", rent.Notes)

	first := byID["CLI||"+sheet.ISOTime(stamp1)]
	assert.Equal(t, entity.StageIngreso, first.Stage)
	assert.Nil(t, first.NextAction)
	assert.Equal(t, "Centro", first.Zone)

	owner := byID["VEN||"+sheet.ISOTime(stamp2)]
	assert.Equal(t, entity.LeadCategoryOwner, owner.Category)
	assert.Equal(t, "Zona Norte", owner.Name)
	assert.Equal(t, "Zona Norte", owner.Zone)
}

func TestListLeads_FuenteCaidaSeOmite(t *testing.T) {
	store := memstore.New()
	store.Seed(repository.TableSellers, make(sheet.Row, 12), sellerRow(stamp1, "Juan", "Zona", "VENTA"))
	svc := crm.NewService(store, identity.NewNormalizer(nil), nil, zerolog.Nop())

	leads, err := svc.ListLeads(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, leads, 1)
}

func TestUpdateLead_EtapaAgendaYNota(t *testing.T) {
	svc, store := newService(t)
	agenda := "2026-08-01"
	err := svc.UpdateLead(context.Background(), crm.UpdateLeadInput{
		ID:     "CLI||" + sheet.ISOTime(stamp2),
		Stage:  "reserva",
		Agenda: &agenda,
		Note:   "Visitó la propiedad",
	})
	require.NoError(t, err)

	row := store.Rows(repository.TableBuyers)[2]
	assert.Equal(t, "RESERVA", row[18])
	at, ok := row[19].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2026-08-01", at.Format("2006-01-02"))
	assert.Equal(t, "[9/7/2026] Visitó la propiedad\nnota vieja", row[20])
}

func TestUpdateLead_BorraAgendaYNoTocaLoAusente(t *testing.T) {
	svc, store := newService(t)
	del := "DELETE"
	require.NoError(t, svc.UpdateLead(context.Background(), crm.UpdateLeadInput{
		ID:     "CLI||" + sheet.ISOTime(stamp2),
		Agenda: &del,
	}))
	row := store.Rows(repository.TableBuyers)[2]
	assert.Nil(t, row[19])
	assert.Equal(t, "GESTION", row[18])
	assert.Equal(t, "nota vieja", row[20])
}

func TestUpdateLead_Errores(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	bad := "pasado mañana"

	cases := []struct {
		name string
		in   crm.UpdateLeadInput
		want error
	}{
		{"id sin separador", crm.UpdateLeadInput{ID: "CLI-123"}, domain.ErrInvalidInput},
		{"origen desconocido", crm.UpdateLeadInput{ID: "XXX||" + sheet.ISOTime(stamp1)}, domain.ErrInvalidInput},
		{"etapa inválida", crm.UpdateLeadInput{ID: "CLI||" + sheet.ISOTime(stamp1), Stage: "PERDIDO"}, domain.ErrInvalidInput},
		{"agenda ilegible", crm.UpdateLeadInput{ID: "CLI||" + sheet.ISOTime(stamp1), Agenda: &bad}, domain.ErrInvalidInput},
		{"marca inexistente", crm.UpdateLeadInput{ID: "CLI||2020-01-01T00:00:00.000Z", Stage: "GESTION"}, domain.ErrNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.UpdateLead(ctx, c.in), c.want)
		})
	}
}

func TestLeads_MarcaTemporalComoNumeroDeSerie(t *testing.T) {
	store := memstore.New()
	// Así llega una fecha nativa desde el almacén xlsx (valor crudo de la celda).
	store.Seed(repository.TableBuyers,
		make(sheet.Row, 21),
		buyerRow("45292.4375", "Juan", "Cliente Serie", "COMPRA", "", "", "", ""),
	)
	svc := crm.NewService(store, identity.NewNormalizer(nil), nil, zerolog.Nop()).
		WithClock(func() time.Time { return today })

	leads, err := svc.ListLeads(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "2024-01-01T10:30:00.000Z", leads[0].CreatedAt)
	assert.Equal(t, "CLI||2024-01-01T10:30:00.000Z", leads[0].ID)

	require.NoError(t, svc.UpdateLead(context.Background(), crm.UpdateLeadInput{ID: leads[0].ID, Stage: "CONTACTADO"}))
	assert.Equal(t, "CONTACTADO", store.Rows(repository.TableBuyers)[1][18])
}
