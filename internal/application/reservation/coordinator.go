package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/entity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/sheet"
)

// LockPolicy qué hacer cuando el bloqueo no se obtiene dentro de la espera.
type LockPolicy string

const (
	// ProceedOnTimeout registra una advertencia y continúa sin bloqueo (comportamiento histórico).
	ProceedOnTimeout LockPolicy = "proceed"
	// FailOnTimeout aborta la reserva con domain.ErrLockTimeout sin escribir nada.
	FailOnTimeout LockPolicy = "fail"
)

// Resultados para métricas.
const (
	outcomeSuccess = "success"
	outcomePartial = "partial"
	outcomeInvalid = "invalid"
	outcomeTimeout = "lock_timeout"
	outcomeFailed  = "error"
)

// Cabeceras de la cartera que usa el paso de inventario.
const (
	inventoryIDLabel = "PADRON_CATASTRAL"
	inventoryStatus  = "ESTADO"
)

// Input datos de una reserva.
type Input struct {
	PropertyID string
	Address    string
	Agent      string
	Amount     decimal.Decimal
	Currency   string
	Operation  string
}

// Result resultado en dos fases. La API externa lo resume en éxito/error, pero internamente
// se distingue el caso "asiento escrito, inmueble no encontrado".
type Result struct {
	OperationID      string
	LedgerWritten    bool
	InventoryUpdated bool
	LockAcquired     bool
}

// Config parámetros del coordinador.
type Config struct {
	LockWait time.Duration
	Policy   LockPolicy
}

// Coordinator serializa las reservas: bloqueo → asiento en Reservas → estado en Cartera.
// Dos reservas del mismo inmueble dejan dos asientos; el estado lo escribe la última en
// ejecutar el paso de inventario (no hay comparación previa del estado).
type Coordinator struct {
	store   repository.RecordStore
	locker  ports.Locker
	cfg     Config
	metrics ports.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// Option configura el coordinador.
type Option func(*Coordinator)

// WithClock reemplaza time.Now para la marca temporal del asiento.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator construye el coordinador. Espera por defecto: 10 s.
func NewCoordinator(store repository.RecordStore, locker ports.Locker, cfg Config, metrics ports.Metrics, log zerolog.Logger, opts ...Option) *Coordinator {
	if cfg.LockWait <= 0 {
		cfg.LockWait = 10 * time.Second
	}
	if cfg.Policy == "" {
		cfg.Policy = ProceedOnTimeout
	}
	c := &Coordinator{store: store, locker: locker, cfg: cfg, metrics: metrics, log: log, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate campos obligatorios: padrón, agente, moneda y monto positivo.
func (in Input) Validate() error {
	var missing []string
	if strings.TrimSpace(in.PropertyID) == "" {
		missing = append(missing, "padron")
	}
	if strings.TrimSpace(in.Agent) == "" {
		missing = append(missing, "agente")
	}
	if strings.TrimSpace(in.Currency) == "" {
		missing = append(missing, "moneda")
	}
	if len(missing) > 0 {
		return fmt.Errorf("faltan campos %s: %w", strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return fmt.Errorf("el valor debe ser mayor a cero: %w", domain.ErrInvalidInput)
	}
	return nil
}

// Reserve ejecuta el protocolo completo. Devuelve error ante validación, timeout del bloqueo
// (solo con FailOnTimeout) o fallas del almacén; un inmueble inexistente no es error:
// Result.InventoryUpdated queda en false.
func (c *Coordinator) Reserve(ctx context.Context, in Input) (*Result, error) {
	res := &Result{OperationID: uuid.NewString()}
	log := c.log.With().Str("operation_id", res.OperationID).Str("padron", in.PropertyID).Str("agente", in.Agent).Logger()

	if err := in.Validate(); err != nil {
		c.metrics.ReservationOutcome(outcomeInvalid)
		return res, err
	}

	start := time.Now()
	lease, err := c.locker.Acquire(ctx, c.cfg.LockWait)
	c.metrics.LockWait(time.Since(start))
	switch {
	case err == nil:
		res.LockAcquired = true
		defer func() {
			// el bloqueo se libera aunque el contexto del request ya esté cancelado
			if relErr := lease.Release(context.WithoutCancel(ctx)); relErr != nil {
				log.Error().Err(relErr).Msg("error liberando bloqueo de reservas")
			}
		}()
	case errors.Is(err, domain.ErrLockTimeout) && c.cfg.Policy == ProceedOnTimeout:
		log.Warn().Dur("espera", c.cfg.LockWait).Msg("bloqueo de reservas no obtenido; se continúa sin exclusión")
	case errors.Is(err, domain.ErrLockTimeout):
		c.metrics.ReservationOutcome(outcomeTimeout)
		return res, err
	default:
		c.metrics.ReservationOutcome(outcomeFailed)
		return res, fmt.Errorf("obtener bloqueo: %w", err)
	}

	entry := entity.ReservationLedgerEntry{
		Timestamp:  c.now(),
		PropertyID: strings.TrimSpace(in.PropertyID),
		Address:    strings.TrimSpace(in.Address),
		Agent:      strings.TrimSpace(in.Agent),
		Amount:     in.Amount,
		Currency:   strings.TrimSpace(in.Currency),
		Operation:  strings.TrimSpace(in.Operation),
	}
	if err := c.store.AppendRow(ctx, repository.TableBookings, entry.Row()); err != nil {
		c.metrics.ReservationOutcome(outcomeFailed)
		return res, fmt.Errorf("registrar reserva: %w", err)
	}
	res.LedgerWritten = true

	updated, err := c.markReserved(ctx, entry.PropertyID)
	if err != nil {
		c.metrics.ReservationOutcome(outcomeFailed)
		return res, fmt.Errorf("actualizar cartera: %w", err)
	}
	res.InventoryUpdated = updated

	if !updated {
		log.Warn().Msg("reserva registrada pero el inmueble no está en la cartera")
		c.metrics.ReservationOutcome(outcomePartial)
		return res, nil
	}
	log.Info().Str("moneda", entry.Currency).Str("valor", entry.Amount.String()).Msg("reserva registrada")
	c.metrics.ReservationOutcome(outcomeSuccess)
	return res, nil
}

// markReserved relee la cartera y marca RESERVADO la primera fila cuyo padrón coincide.
// Sin columnas PADRON_CATASTRAL/ESTADO o sin fila coincidente devuelve false.
func (c *Coordinator) markReserved(ctx context.Context, propertyID string) (bool, error) {
	rows, err := c.store.ReadTable(ctx, repository.TablePortfolio)
	if err != nil {
		return false, err
	}
	header := sheet.HeaderOf(rows)
	idIdx, statusIdx := header.Index(inventoryIDLabel), header.Index(inventoryStatus)
	if idIdx < 0 || statusIdx < 0 {
		return false, nil
	}
	for i := 1; i < len(rows); i++ {
		if strings.TrimSpace(sheet.String(rows[i].Cell(idIdx))) != propertyID {
			continue
		}
		if err := c.store.UpdateCell(ctx, repository.TablePortfolio, i, statusIdx, string(entity.PropertyStatusReserved)); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
