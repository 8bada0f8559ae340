// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// when present), loads them into structured Go types, and validates
// them so the application fails fast on a bad configuration.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config.
//   - Provide defaults so the API runs locally with no configuration at all.
//   - Validate required values and the observability block.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Environment keys are mapped onto koanf keys like this:

	- STARWARS_SERVER__READ_TIMEOUT -> server.read_timeout
	  (prefix removed, lowercased, "__" marks nesting)
	- DATABASE_URL                  -> database.url
	- PORT                          -> server.port

	The two unprefixed names are kept because hosting platforms inject them.
*/

const (
	// EnvPrefix is the prefix every namespaced variable carries.
	EnvPrefix = "STARWARS_"

	// ServiceName tags logs and APM data.
	ServiceName = "starwars-api"

	// DefaultSQLitePath is used when DATABASE_URL is not set.
	DefaultSQLitePath = "/tmp/test.db"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from, the
// `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit      float64 `koanf:"rate_limit" validate:"min=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=0"`
}

// DatabaseConfig selects the store and tunes its connection pool.
//
// URL wins when set (PostgreSQL). Otherwise the API falls back to the
// SQLite file at SQLitePath.
type DatabaseConfig struct {
	URL             string `koanf:"url"`
	SQLitePath      string `koanf:"sqlite_path"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"min=0"`
}

// UsesPostgres reports whether a PostgreSQL connection string was configured.
func (d DatabaseConfig) UsesPostgres() bool {
	return d.URL != ""
}

// RedisConfig contains Redis connection details.
// An empty Address disables Redis and the background jobs that depend on it.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// IntegrationConfig stores credentials for third-party providers.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Default returns the configuration used when nothing is set in the environment.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3000",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
			RateLimitBurst:     40,
		},
		Database: DatabaseConfig{
			SQLitePath:      DefaultSQLitePath,
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 300,
		},
		Integration: IntegrationConfig{
			EmailFrom: "Star Wars Blog <onboarding@resend.dev>",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps a raw environment variable to a koanf key.
// Returning "" tells the koanf env provider to skip the variable; empty
// values are skipped too so they behave like unset ones.
func envKey(s, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}

	switch s {
	case "DATABASE_URL":
		return "database.url", value
	case "PORT":
		return "server.port", value
	}

	if !strings.HasPrefix(s, EnvPrefix) {
		return "", nil
	}

	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

// Load reads the environment into a Config, on top of Default(), and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// An empty prefix lets envKey see every variable; it filters them itself.
	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal only overwrites keys that are present, so defaults survive.
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// Service name and environment always follow the primary block.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}
