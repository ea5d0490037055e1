package agents

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

// salesDepartment subcadena del departamento que identifica a los agentes comerciales.
const salesDepartment = "VENTAS"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Service casos de uso sobre la planilla de personal: plantel activo y login.
type Service struct {
	store repository.RecordStore
	norm  *identity.Normalizer
	jwt   JWTConfig
	log   zerolog.Logger
}

// NewService construye el servicio.
func NewService(store repository.RecordStore, norm *identity.Normalizer, jwtCfg JWTConfig, log zerolog.Logger) *Service {
	return &Service{store: store, norm: norm, jwt: jwtCfg, log: log}
}

// personnelLayout índices de columna de la planilla de personal.
type personnelLayout struct {
	name, dni, email, phone, position, department, hiredAt, status, avatar int
}

// layoutOf resuelve las columnas por cabecera; si una no aparece usa la posición histórica
// de la planilla de RRHH.
func layoutOf(h sheet.Header) personnelLayout {
	pick := func(fallback int, exact string, substrs ...string) int {
		if i := h.IndexOrFind(exact, substrs...); i >= 0 {
			return i
		}
		return fallback
	}
	return personnelLayout{
		name:       pick(1, "NOMBRE", "NOMBRE Y APELLIDO", "APELLIDO Y NOMBRE"),
		dni:        pick(2, "DNI"),
		email:      pick(4, "EMAIL", "CORREO", "MAIL"),
		phone:      pick(5, "TELEFONO", "TELÉFONO", "CELULAR"),
		position:   pick(9, "CARGO"),
		department: pick(10, "DEPARTAMENTO", "AREA", "ÁREA"),
		hiredAt:    pick(11, "FECHA INGRESO", "FECHA DE INGRESO", "INGRESO"),
		status:     pick(15, "ESTADO"),
		avatar:     pick(20, "AVATAR", "FOTO"),
	}
}

func (l personnelLayout) agent(r sheet.Row) entity.Agent {
	return entity.Agent{
		Name:       strings.TrimSpace(sheet.String(r.Cell(l.name))),
		DNI:        sheet.String(r.Cell(l.dni)),
		Email:      sheet.String(r.Cell(l.email)),
		Phone:      sheet.String(r.Cell(l.phone)),
		Position:   sheet.String(r.Cell(l.position)),
		Department: sheet.String(r.Cell(l.department)),
		HiredAt:    sheet.String(r.Cell(l.hiredAt)),
		Status:     sheet.String(r.Cell(l.status)),
		AvatarURL:  sheet.String(r.Cell(l.avatar)),
	}
}

// personnel lee la planilla de personal completa.
func (s *Service) personnel(ctx context.Context) ([]entity.Agent, error) {
	rows, err := s.store.ReadTable(ctx, repository.TablePersonnel)
	if err != nil {
		return nil, fmt.Errorf("leer personal: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	layout := layoutOf(sheet.HeaderOf(rows))
	out := make([]entity.Agent, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, layout.agent(r))
	}
	return out, nil
}

// ActiveAgents plantel comercial activo: departamento que contiene VENTAS y estado exactamente
// ACTIVO. Nombres normalizados, sin repetidos, ordenados.
func (s *Service) ActiveAgents(ctx context.Context) ([]string, error) {
	people, err := s.personnel(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(people))
	out := make([]string, 0, len(people))
	for _, a := range people {
		if !strings.Contains(strings.ToUpper(a.Department), salesDepartment) {
			continue
		}
		if sheet.Upper(a.Status) != entity.EmploymentActive {
			continue
		}
		name := s.norm.Normalize(a.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	s.log.Debug().Int("agentes", len(out)).Msg("plantel activo cargado")
	return out, nil
}
