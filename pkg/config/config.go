package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "AUTOCALC"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv              = "AUTOCALC_APP_ENV"
	EnvPort                = "AUTOCALC_APP_PORT"
	EnvLogLevel            = "AUTOCALC_LOG_LEVEL"
	EnvRedisURL            = "AUTOCALC_REDIS_URL"
	EnvRedisAddr           = "AUTOCALC_REDIS_ADDR"
	EnvVINCacheTTL         = "AUTOCALC_VIN_CACHE_TTL"
	EnvVPICBaseURL         = "AUTOCALC_VPIC_BASE_URL"
	EnvVPICTimeout         = "AUTOCALC_VPIC_TIMEOUT"
	EnvDefaultJurisdiction = "AUTOCALC_DEFAULT_JURISDICTION"
	EnvCatalogDir          = "AUTOCALC_CATALOG_DIR"
	EnvCORSOrigins         = "AUTOCALC_CORS_ORIGINS"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	VPIC      VPICConfig
	Catalogs  CatalogConfig
	HTTP      HTTPConfig
	VINCache  VINCacheConfig
	Telemetry TelemetryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Catalogs.DefaultJurisdiction = strings.ToUpper(strings.TrimSpace(cfg.Catalogs.DefaultJurisdiction))
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AUTOCALC_APP_ENV" required:"true"`
	Port         string `envconfig:"AUTOCALC_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AUTOCALC_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AUTOCALC_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig is optional; with neither URL nor Address set, VIN decodes are not cached.
type RedisConfig struct {
	URL          string        `envconfig:"AUTOCALC_REDIS_URL"`
	Address      string        `envconfig:"AUTOCALC_REDIS_ADDR"`
	Password     string        `envconfig:"AUTOCALC_REDIS_PASSWORD"`
	DB           int           `envconfig:"AUTOCALC_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AUTOCALC_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AUTOCALC_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AUTOCALC_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AUTOCALC_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AUTOCALC_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type VPICConfig struct {
	BaseURL string        `envconfig:"AUTOCALC_VPIC_BASE_URL" default:"https://vpic.nhtsa.dot.gov/api"`
	Timeout time.Duration `envconfig:"AUTOCALC_VPIC_TIMEOUT" default:"10s"`
}

type VINCacheConfig struct {
	TTL time.Duration `envconfig:"AUTOCALC_VIN_CACHE_TTL" default:"720h"`
}

type CatalogConfig struct {
	DefaultJurisdiction string `envconfig:"AUTOCALC_DEFAULT_JURISDICTION" default:"FL"`
	Dir                 string `envconfig:"AUTOCALC_CATALOG_DIR"`
}

type HTTPConfig struct {
	CORSOrigins     []string      `envconfig:"AUTOCALC_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	ReadTimeout     time.Duration `envconfig:"AUTOCALC_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"AUTOCALC_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"AUTOCALC_HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type TelemetryConfig struct {
	MetricsEnabled bool `envconfig:"AUTOCALC_METRICS_ENABLED" default:"true"`
}
