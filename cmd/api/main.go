package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/agents"
	appanalytics "github.com/jhoicas/warner-inmobiliaria/internal/application/analytics"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/crm"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/evolution"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/ports"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/property"
	"github.com/jhoicas/warner-inmobiliaria/internal/application/reservation"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/identity"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain/repository"
	infraai "github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/ai"
	infracache "github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/cache"
	infralock "github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/lock"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/memstore"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/pdf"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/postgres"
	"github.com/jhoicas/warner-inmobiliaria/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/warner-inmobiliaria/internal/interfaces/http"
	"github.com/jhoicas/warner-inmobiliaria/pkg/config"
	"github.com/jhoicas/warner-inmobiliaria/pkg/logger"
)

// lockTTL vida máxima del bloqueo distribuido si el proceso muere sin liberarlo.
const lockTTL = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén")
	}
	defer closeStore()

	// Bloqueo y caché: Redis si está configurado, si no en memoria (una sola instancia).
	var (
		locker ports.Locker
		cache  ports.Cache
	)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		locker = infralock.NewRedisLocker(rdb, cfg.Reservation.LockKey, lockTTL)
		cache = infracache.NewRedisCache(rdb, "warner:")
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: bloqueo y caché en memoria del proceso")
		locker = infralock.NewLocalLocker()
		cache = infracache.NewMemoryCache(time.Now)
	}

	collectors := metrics.New(prometheus.DefaultRegisterer)

	norm := identity.NewNormalizer(cfg.Identity.Aliases)
	names := identity.NewDisplayNames(norm, cfg.Identity.CRMNames)

	agentSvc := agents.NewService(store, norm, agents.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("agents"))
	propertySvc := property.NewService(store)
	policy := reservation.ProceedOnTimeout
	if cfg.Reservation.LockPolicy == config.LockPolicyFail {
		policy = reservation.FailOnTimeout
	}
	coordinator := reservation.NewCoordinator(store, locker, reservation.Config{
		LockWait: cfg.Reservation.LockWait,
		Policy:   policy,
	}, collectors, log.Component("reservation"))
	crmSvc := crm.NewService(store, norm, names, log.Component("crm"))

	aggregator := evolution.NewAggregator(store, agentSvc, norm, cfg.Evolution.Window(), collectors, log.Component("evolution"))
	dashboard := appanalytics.NewDashboardService(
		aggregator,
		appanalytics.NewDashboardCache(cache, collectors, log.Component("dashboard_cache")),
		infrapdf.NewDashboardReportGenerator(cfg.App.Name),
		appanalytics.DashboardConfig{CacheKey: cfg.Dashboard.CacheKey, CacheTTL: cfg.Dashboard.CacheTTL},
		log.Component("dashboard"),
	)
	assistant := appanalytics.NewAssistant(dashboard, newLLM(cfg.AI), cfg.AI.Timeout, log.Component("assistant"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Warner Inmobiliaria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Agents:      agentSvc,
		Properties:  propertySvc,
		Reservation: coordinator,
		Leads:       crmSvc,
		Dashboard:   dashboard,
		Assistant:   assistant,
		Gatherer:    prometheus.DefaultGatherer,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newStore construye el RecordStore según STORE_DRIVER. La función de cierre libera el pool
// de PostgreSQL cuando corresponde.
func newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.RecordStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		rs := postgres.NewRecordStore(pool)
		if err := rs.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return rs, pool.Close, nil
	case config.StoreXLSX:
		sheets := make(map[repository.TableID]string, len(cfg.Store.Sheets))
		for table, name := range cfg.Store.Sheets {
			sheets[repository.TableID(strings.ToUpper(table))] = name
		}
		return xlsx.New(cfg.Store.Dir, sheets, log.Component("xlsx")), func() {}, nil
	default:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store := memstore.New()
		headers := repository.DefaultHeaders()
		for _, table := range repository.AllTables {
			store.Seed(table, headers[table])
		}
		return store, func() {}, nil
	}
}

// newLLM elige el proveedor del asistente analítico.
func newLLM(cfg config.AIConfig) ports.LLMService {
	if cfg.Provider == config.AIProviderAnthropic {
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
	return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
}
