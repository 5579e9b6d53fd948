package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Commerce CommerceConfig
	Store    StoreConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Catalog  CatalogConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPVUE_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPVUE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPVUE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPVUE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CommerceConfig points the gateway at the remote commerce API.
type CommerceConfig struct {
	BaseURL string        `envconfig:"SHOPVUE_COMMERCE_BASE_URL" default:"http://localhost:8000/api"`
	Timeout time.Duration `envconfig:"SHOPVUE_COMMERCE_TIMEOUT" default:"10s"`
}

// StoreConfig describes the persisted local store. Sqlite is the default so a
// profile works with no external database, mirroring the always-available
// browser storage the gateway replaces.
type StoreConfig struct {
	Driver string `envconfig:"SHOPVUE_STORE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SHOPVUE_STORE_DSN" default:"shopvue.db"`

	MaxOpenConns    int           `envconfig:"SHOPVUE_STORE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPVUE_STORE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPVUE_STORE_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"SHOPVUE_STORE_AUTO_MIGRATE" default:"true"`
}

func (s *StoreConfig) validate() error {
	driver := strings.ToLower(strings.TrimSpace(s.Driver))
	switch driver {
	case StoreDriverSqlite, StoreDriverPostgres:
		s.Driver = driver
	default:
		return fmt.Errorf("store driver must be %q or %q", StoreDriverSqlite, StoreDriverPostgres)
	}
	if strings.TrimSpace(s.DSN) == "" {
		return fmt.Errorf("store DSN is required")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPVUE_REDIS_URL"`
	Address      string        `envconfig:"SHOPVUE_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPVUE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPVUE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPVUE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPVUE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPVUE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPVUE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPVUE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a cache backend was configured at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret string `envconfig:"SHOPVUE_JWT_SECRET" default:"dev-secret"`
	Issuer string `envconfig:"SHOPVUE_JWT_ISSUER" default:"shopvue"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPVUE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPVUE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPVUE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPVUE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPVUE_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	CacheTTL      time.Duration `envconfig:"SHOPVUE_CATALOG_CACHE_TTL" default:"5m"`
	FeaturedCount int           `envconfig:"SHOPVUE_CATALOG_FEATURED_COUNT" default:"8"`
}

type CheckoutConfig struct {
	TaxRate        string `envconfig:"SHOPVUE_CHECKOUT_TAX_RATE" default:"0.10"`
	DefaultCountry string `envconfig:"SHOPVUE_CHECKOUT_DEFAULT_COUNTRY" default:"Kuwait"`
}
