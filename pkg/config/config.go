package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	JWT         JWTConfig
	Store       StoreConfig
	DB          DBConfig
	Redis       RedisConfig
	Reservation ReservationConfig
	Dashboard   DashboardConfig
	Evolution   EvolutionConfig
	Identity    IdentityConfig
	AI          AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Drivers de almacén soportados.
const (
	StoreMemory   = "memory"
	StoreXLSX     = "xlsx"
	StorePostgres = "postgres"
)

// StoreConfig almacén tabular. Sheets mapea tabla lógica → nombre de hoja del libro.
type StoreConfig struct {
	Driver string
	Dir    string // directorio de libros xlsx
	Sheets map[string]string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig Redis para bloqueo distribuido y caché. Addr vacío = implementaciones en memoria.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled indica si hay un Redis configurado.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Políticas ante timeout del bloqueo de reservas.
const (
	LockPolicyProceed = "proceed"
	LockPolicyFail    = "fail"
)

// ReservationConfig coordinador de reservas.
type ReservationConfig struct {
	LockWait   time.Duration
	LockPolicy string
	LockKey    string
}

// DashboardConfig caché del tablero.
type DashboardConfig struct {
	CacheKey string
	CacheTTL time.Duration
}

// EvolutionConfig ventana del agregador de evolución.
type EvolutionConfig struct {
	WindowDays int
}

// Window duración de la ventana.
func (c EvolutionConfig) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// IdentityConfig tablas de identidad: alias → nombre canónico, y nombre legal → nombre corto del CRM.
type IdentityConfig struct {
	Aliases  map[string]string
	CRMNames map[string]string
}

// Proveedores de IA.
const (
	AIProviderGemini    = "gemini"
	AIProviderAnthropic = "anthropic"
)

// AIConfig asistente analítico.
type AIConfig struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	Timeout         time.Duration
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Los mapas (alias, nombres de hojas) vienen de config.yaml.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio de trabajo
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	maps, err := loadMaps()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "warner-inmobiliaria"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "warner-inmobiliaria"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreMemory)),
			Dir:    getString(v, "STORE_DIR", "data"),
			Sheets: withDefaults(maps.GetStringMapString("store.sheets"), DefaultSheetNames()),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "warner"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Reservation: ReservationConfig{
			LockWait:   time.Duration(getInt(v, "RESERVATION_LOCK_WAIT_MS", 10000)) * time.Millisecond,
			LockPolicy: strings.ToLower(getString(v, "RESERVATION_LOCK_POLICY", LockPolicyProceed)),
			LockKey:    getString(v, "RESERVATION_LOCK_KEY", "warner:lock:reservas"),
		},
		Dashboard: DashboardConfig{
			CacheKey: getString(v, "DASHBOARD_CACHE_KEY", "DASHBOARD_DATA_V1"),
			CacheTTL: time.Duration(getInt(v, "DASHBOARD_CACHE_TTL_SECONDS", 900)) * time.Second,
		},
		Evolution: EvolutionConfig{
			WindowDays: getInt(v, "EVOLUTION_WINDOW_DAYS", 365),
		},
		Identity: IdentityConfig{
			Aliases:  withDefaults(maps.GetStringMapString("identity.aliases"), DefaultAliases()),
			CRMNames: withDefaults(maps.GetStringMapString("identity.crm_names"), DefaultCRMNames()),
		},
		AI: AIConfig{
			Provider:        strings.ToLower(getString(v, "AI_PROVIDER", AIProviderGemini)),
			GeminiAPIKey:    getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:     getString(v, "GEMINI_MODEL", "gemini-2.0-flash"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			Timeout:         time.Duration(getInt(v, "AI_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET es obligatorio")
	}
	switch c.Store.Driver {
	case StoreMemory, StoreXLSX, StorePostgres:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.Store.Driver)
	}
	switch c.Reservation.LockPolicy {
	case LockPolicyProceed, LockPolicyFail:
	default:
		return fmt.Errorf("RESERVATION_LOCK_POLICY inválido: %q", c.Reservation.LockPolicy)
	}
	if c.Reservation.LockWait <= 0 {
		return fmt.Errorf("RESERVATION_LOCK_WAIT_MS debe ser positivo")
	}
	if c.Evolution.WindowDays <= 0 {
		return fmt.Errorf("EVOLUTION_WINDOW_DAYS debe ser positivo")
	}
	return nil
}

// loadMaps lee config.yaml (opcional) con las tablas que no caben en variables de entorno.
func loadMaps() (*viper.Viper, error) {
	m := viper.New()
	m.SetConfigName("config")
	m.SetConfigType("yaml")
	m.AddConfigPath(".")
	m.AddConfigPath("./config")
	if err := m.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("leer config.yaml: %w", err)
		}
	}
	return m, nil
}

// withDefaults usa los valores por defecto si el archivo no define el mapa.
// Viper baja a minúsculas las claves; los consumidores normalizan.
func withDefaults(m, def map[string]string) map[string]string {
	if len(m) == 0 {
		return def
	}
	return m
}

// DefaultSheetNames nombres de pestaña de cada tabla en los libros de la inmobiliaria.
func DefaultSheetNames() map[string]string {
	return map[string]string{
		"PERSONAL":    "Hoja 1",
		"CARTELES":    "Respuestas de formulario 3",
		"VENDEDORES":  "Respuestas de formulario 1",
		"COMPRADORES": "Respuestas de formulario 1",
		"VISITAS":     "Respuestas de formulario 1",
		"CARTERA":     "Respuestas de formulario 1",
		"RESERVAS":    "Respuestas de formulario 1",
		"VALUACION":   "Respuestas de formulario 1",
		"RESENAS":     "Respuestas de formulario 1",
	}
}

// DefaultAliases variantes de nombre conocidas → nombre legal.
func DefaultAliases() map[string]string {
	return map[string]string{
		"AGUSTIN REYNOSO": "AGUSTIN ISAIAS REYNOSO",
		"ALEXIA RIVAS":    "ALEXIA RIVAS BORQUE",
		"ALONSO CASTAÑO":  "ALONSO CASTAÑO SEPULVEDA",
		"ANGEL HERRERA":   "ANGEL MARIANO HERRERA",
	}
}

// DefaultCRMNames nombre legal → nombre corto usado en las planillas del CRM.
func DefaultCRMNames() map[string]string {
	return map[string]string{
		"AGENTE UNO COMPLETO":    "AGENTE UNO",
		"AGENTE DOS COMPLETO":    "AGENTE DOS",
		"AGENTE TRES COMPLETO":   "AGENTE TRES",
		"AGENTE CUATRO COMPLETO": "AGENTE CUATRO",
	}
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
