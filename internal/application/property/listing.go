package property

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

const noPadron = "S/N"

// Service listados de la cartera de inmuebles (solo lectura).
type Service struct {
	store repository.RecordStore
}

// NewService construye el servicio.
func NewService(store repository.RecordStore) *Service {
	return &Service{store: store}
}

type portfolioLayout struct {
	status, street, number, padron, sign int
}

func layoutOf(h sheet.Header) (portfolioLayout, error) {
	l := portfolioLayout{
		status: h.Index("ESTADO"),
		street: h.Index("CALLE"),
		number: h.Index("NUMERO"),
		padron: h.Index("PADRON_CATASTRAL"),
		sign:   h.Find("CARTEL"),
	}
	if l.status < 0 || l.street < 0 || l.padron < 0 {
		return l, fmt.Errorf("error de estructura: faltan columnas críticas en la cartera: %w", domain.ErrInvalidInput)
	}
	return l, nil
}

func (l portfolioLayout) property(r sheet.Row) entity.Property {
	address := strings.TrimSpace(sheet.String(r.Cell(l.street)) + " " + sheet.String(r.Cell(l.number)))
	return entity.Property{
		PadronCatastral: sheet.String(r.Cell(l.padron)),
		Address:         address,
		Status:          entity.PropertyStatus(sheet.Upper(r.Cell(l.status))),
		HasSign:         l.sign >= 0 && sheet.Upper(r.Cell(l.sign)) == "SI",
	}
}

// ListCaptured inmuebles en estado CAPTADO ordenados por dirección. Con excludeWithSign se
// omiten los que ya tienen cartel (selector del formulario de cartelería).
func (s *Service) ListCaptured(ctx context.Context, excludeWithSign bool) ([]entity.PropertySummary, error) {
	return s.list(ctx, func(p entity.Property) bool {
		return p.Status == entity.PropertyStatusCaptured && !(excludeWithSign && p.HasSign)
	})
}

// ListReservable inmuebles que pueden reservarse (CAPTADO).
func (s *Service) ListReservable(ctx context.Context) ([]entity.PropertySummary, error) {
	return s.ListCaptured(ctx, false)
}

func (s *Service) list(ctx context.Context, keep func(entity.Property) bool) ([]entity.PropertySummary, error) {
	rows, err := s.store.ReadTable(ctx, repository.TablePortfolio)
	if err != nil {
		return nil, fmt.Errorf("leer cartera: %w", err)
	}
	layout, err := layoutOf(sheet.HeaderOf(rows))
	if err != nil {
		return nil, err
	}
	out := []entity.PropertySummary{}
	for i := 1; i < len(rows); i++ {
		p := layout.property(rows[i])
		if !keep(p) {
			continue
		}
		padron := p.PadronCatastral
		if padron == "" {
			padron = noPadron
		}
		out = append(out, entity.PropertySummary{Address: p.Address, Padron: padron})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}
