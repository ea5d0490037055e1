package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

const (
	idSeparator    = "||"
	unnamedLead    = "Sin Nombre"
	agendaDelete   = "DELETE"
	noteDateLayout = "2/1/2006"
)

// Service casos de uso del CRM: listado con filtro por fila y actualización del embudo.
type Service struct {
	store   repository.RecordStore
	norm    *identity.Normalizer
	names   *identity.DisplayNames
	visible identity.VisibilityPolicy
	now     func() time.Time
	log     zerolog.Logger
}

// NewService construye el servicio con la política de visibilidad por defecto.
func NewService(store repository.RecordStore, norm *identity.Normalizer, names *identity.DisplayNames, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		norm:    norm,
		names:   names,
		visible: identity.IsVisible,
		now:     time.Now,
		log:     log,
	}
}

// WithClock reemplaza el reloj usado en el prefijo de las notas.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithPolicy reemplaza la política de visibilidad.
func (s *Service) WithPolicy(p identity.VisibilityPolicy) *Service {
	s.visible = p
	return s
}

// ListLeads devuelve los leads de compradores y vendedores visibles para requester.
// requester vacío = sin filtro. El nombre se normaliza y luego se traduce al nombre corto
// del CRM. Si una planilla falla se registra y se continúa con la otra.
func (s *Service) ListLeads(ctx context.Context, requester string) ([]entity.Lead, error) {
	who := s.names.Short(s.norm.Normalize(requester))

	leads := []entity.Lead{}
	for _, src := range leadSources {
		rows, err := s.store.ReadTable(ctx, src.table)
		if err != nil {
			s.log.Error().Err(err).Str("table", string(src.table)).Msg("error en lectura CRM")
			continue
		}
		for i := 1; i < len(rows); i++ {
			r := rows[i]
			if sheet.String(r.Cell(0)) == "" {
				continue
			}
			owner := s.norm.Normalize(sheet.String(r.Cell(src.cols.agent)))
			if !s.visible(who, owner) {
				continue
			}
			leads = append(leads, s.toLead(src, owner, r))
		}
	}
	return leads, nil
}

func (s *Service) toLead(src leadSource, owner string, r sheet.Row) entity.Lead {
	c := src.cols
	created := sheet.ISO(r.Cell(0))

	name := strings.TrimSpace(sheet.String(r.Cell(c.name)))
	if name == "" {
		name = strings.TrimSpace(sheet.String(r.Cell(c.property)))
	}
	if name == "" {
		name = unnamedLead
	}
	stage := entity.PipelineStage(strings.TrimSpace(sheet.String(r.Cell(c.stage))))
	if stage == "" {
		stage = entity.StageIngreso
	}
	var agenda *time.Time
	if t, ok := sheet.Time(r.Cell(c.agenda)); ok {
		agenda = &t
	}
	return entity.Lead{
		ID:         string(src.tag) + idSeparator + created,
		CreatedAt:  created,
		Category:   src.category(sheet.Upper(r.Cell(c.operation))),
		Stage:      stage,
		Agent:      owner,
		Name:       name,
		Phone:      sheet.String(r.Cell(c.phone)),
		Email:      sheet.String(r.Cell(c.email)),
		Property:   sheet.String(r.Cell(c.property)),
		Zone:       sheet.String(r.Cell(c.zone)),
		NextAction: agenda,
		Notes:      sheet.String(r.Cell(c.notes)),
	}
}

// UpdateLeadInput cambios sobre un lead. Campos vacíos no se tocan; Agenda nil no se toca,
// Agenda "" o "DELETE" la borra.
type UpdateLeadInput struct {
	ID     string
	Stage  string
	Agenda *string
	Note   string
}

// UpdateLead ubica la fila por la marca temporal del id y escribe etapa, agenda y nota.
// La nota se antepone al historial con la fecha del día: "[d/m/aaaa] nota".
func (s *Service) UpdateLead(ctx context.Context, in UpdateLeadInput) error {
	tag, stamp, ok := strings.Cut(in.ID, idSeparator)
	src, known := sourceFor(tag)
	if !ok || !known || stamp == "" {
		return fmt.Errorf("id de lead %q: %w", in.ID, domain.ErrInvalidInput)
	}

	stage := entity.PipelineStage(strings.ToUpper(strings.TrimSpace(in.Stage)))
	if stage != "" && !stage.Valid() {
		return fmt.Errorf("etapa %q: %w", in.Stage, domain.ErrInvalidInput)
	}
	var agenda any
	if in.Agenda != nil {
		raw := strings.TrimSpace(*in.Agenda)
		if raw != "" && raw != agendaDelete {
			t, ok := sheet.Time(raw)
			if !ok {
				return fmt.Errorf("agenda %q: %w", raw, domain.ErrInvalidInput)
			}
			agenda = t
		}
	}

	rows, err := s.store.ReadTable(ctx, src.table)
	if err != nil {
		return fmt.Errorf("leer %s: %w", src.table, err)
	}
	rowIdx := -1
	for i := 1; i < len(rows); i++ {
		cell := rows[i].Cell(0)
		if sheet.ISO(cell) == stamp || sheet.String(cell) == stamp {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		return fmt.Errorf("lead %s: %w", in.ID, domain.ErrRecordNotFound)
	}

	if stage != "" {
		if err := s.store.UpdateCell(ctx, src.table, rowIdx, src.cols.stage, string(stage)); err != nil {
			return fmt.Errorf("actualizar etapa: %w", err)
		}
	}
	if in.Agenda != nil {
		if err := s.store.UpdateCell(ctx, src.table, rowIdx, src.cols.agenda, agenda); err != nil {
			return fmt.Errorf("actualizar agenda: %w", err)
		}
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		old := sheet.String(rows[rowIdx].Cell(src.cols.notes))
		entry := fmt.Sprintf("[%s] %s\n%s", s.now().Format(noteDateLayout), note, old)
		if err := s.store.UpdateCell(ctx, src.table, rowIdx, src.cols.notes, entry); err != nil {
			return fmt.Errorf("agregar nota: %w", err)
		}
	}
	s.log.Info().Str("lead", in.ID).Str("etapa", string(stage)).Bool("nota", in.Note != "").Msg("lead actualizado")
	return nil
}

func containsRent(s string) bool {
	return strings.Contains(s, "ALQUILER")
}
