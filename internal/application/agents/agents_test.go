package agents_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/agents"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/memstore"
	"github.com/jhoicas/warner-inmobiliaria/pkg/jwt"
)

const testSecret = "agents-test-secret"

// personnelRow fila de RRHH con las posiciones históricas de la planilla.
func personnelRow(name, dni, email, position, department, status string) sheet.Row {
	r := make(sheet.Row, 21)
	r[1], r[2], r[4], r[9], r[10], r[15] = name, dni, email, position, department, status
	r[5] = "555-0000"
	r[20] = "https://avatars.test/" + dni
	return r
}

func newService(t *testing.T, rows ...sheet.Row) (*agents.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	store.Seed(repository.TablePersonnel, rows...)
	norm := identity.NewNormalizer(map[string]string{"Juancho": "JUAN PEREZ"})
	svc := agents.NewService(store, norm, agents.JWTConfig{Secret: testSecret, ExpMinutes: 30, Issuer: "test"}, zerolog.Nop())
	return svc, store
}

// Sin cabeceras reconocibles se usan las posiciones fijas.
func headerless() sheet.Row { return make(sheet.Row, 21) }

func TestActiveAgents_FiltraVentasActivosYNormaliza(t *testing.T) {
	svc, _ := newService(t,
		headerless(),
		personnelRow("Juan Pérez", "1", "juan@x", "Agente", "VENTAS NORTE", "Activo"),
		personnelRow("juancho", "2", "j2@x", "Agente", "Ventas", "ACTIVO "),
		personnelRow("Ana López", "3", "ana@x", "Agente", "VENTAS", "ACTIVO"),
		personnelRow("Pedro Ruiz", "4", "pedro@x", "Agente", "VENTAS", "INACTIVO"),
		personnelRow("Marta Díaz", "5", "marta@x", "Contadora", "ADMINISTRACION", "ACTIVO"),
		personnelRow("", "6", "vacio@x", "Agente", "VENTAS", "ACTIVO"),
	)

	got, err := svc.ActiveAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ANA LOPEZ", "JUAN PEREZ"}, got)
}

func TestActiveAgents_ColumnasPorCabecera(t *testing.T) {
	svc, _ := newService(t,
		sheet.Row{"NOMBRE", "ESTADO", "DEPARTAMENTO"},
		sheet.Row{"Lucía Fernández", "ACTIVO", "VENTAS"},
	)
	got, err := svc.ActiveAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"LUCIA FERNANDEZ"}, got)
}

func TestActiveAgents_AlmacenCaido(t *testing.T) {
	svc, store := newService(t, headerless())
	store.SetUnavailable(true)
	_, err := svc.ActiveAgents(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestLogin_ExitoEmiteTokenConNombreCanonico(t *testing.T) {
	svc, _ := newService(t,
		headerless(),
		personnelRow("Juan Pérez", "30.123.456", "Juan@Warner.test", "Agente inmobiliario", "VENTAS", "ACTIVO"),
	)

	out, err := svc.Login(context.Background(), dto.LoginRequest{Email: " juan@warner.TEST ", DNI: "30 123 456"})
	require.NoError(t, err)
	assert.Equal(t, "JUAN PEREZ", out.Profile.Name)
	assert.Equal(t, entity.RoleAgent, out.Profile.Role)
	assert.Equal(t, "https://avatars.test/30.123.456", out.Profile.AvatarURL)

	id, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{Name: "JUAN PEREZ", Email: "juan@warner.test", Role: entity.RoleAgent}, id)
}

func TestLogin_CargoNoAgenteEsAdmin(t *testing.T) {
	svc, _ := newService(t,
		headerless(),
		personnelRow("Marta Díaz", "5", "marta@x", "Gerente comercial", "VENTAS", "ACTIVO"),
	)
	out, err := svc.Login(context.Background(), dto.LoginRequest{Email: "marta@x", DNI: "5"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Profile.Role)
}

func TestLogin_Errores(t *testing.T) {
	svc, _ := newService(t,
		headerless(),
		personnelRow("Pedro Ruiz", "4", "pedro@x", "Agente", "VENTAS", "INACTIVO/BAJA"),
	)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "pedro@x", DNI: "4"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "pedro@x", DNI: "99"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "", DNI: "4"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
