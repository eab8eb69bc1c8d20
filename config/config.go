package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPITimeout is the client-wide request timeout.
const DefaultAPITimeout = 10 * time.Second

// Config struct to hold the configuration settings
type Config struct {
	API           APIConfig           `yaml:"api"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
	DevAPI        DevAPIConfig        `yaml:"devapi"`
}

// APIConfig holds the remote API settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// StorageConfig selects and configures the persistent key-value backend.
type StorageConfig struct {
	Backend  string         `yaml:"backend"` // file|memory|nats|postgres|redis
	Path     string         `yaml:"path"`
	NATS     NATSConfig     `yaml:"nats"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// NATSConfig holds NATS KV configuration.
type NATSConfig struct {
	URL      string `yaml:"url"`
	Bucket   string `yaml:"bucket"`
	NkeySeed string `yaml:"nkey_seed"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL    string `yaml:"url"`
	Prefix string `yaml:"prefix"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // text|json
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	Environment    string `yaml:"environment"`
}

// DevAPIConfig configures the local stand-in API server.
type DevAPIConfig struct {
	Address    string        `yaml:"address"`
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	LoginRate  float64       `yaml:"login_rate"`
	LoginBurst int           `yaml:"login_burst"`
	Seed       int64         `yaml:"seed"`
}

// LoadConfig loads the configuration from a YAML file, then applies .env and
// environment overrides and finally fills defaults. A missing file is not an
// error.
func LoadConfig(filename string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var cfg Config
	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with environment variables when present.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("ESPORTIVO_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("ESPORTIVO_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ESPORTIVO_API_TIMEOUT value: %v", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("ESPORTIVO_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("ESPORTIVO_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.Storage.NATS.URL = v
	}
	if v := os.Getenv("NATS_KV_BUCKET"); v != "" {
		cfg.Storage.NATS.Bucket = v
	}
	if v := os.Getenv("NATS_NKEY_SEED"); v != "" {
		cfg.Storage.NATS.NkeySeed = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Storage.Redis.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("DEVAPI_ADDRESS"); v != "" {
		cfg.DevAPI.Address = v
	}
	if v := os.Getenv("DEVAPI_JWT_SECRET"); v != "" {
		cfg.DevAPI.JWTSecret = v
	}
	if v := os.Getenv("DEVAPI_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DEVAPI_TOKEN_TTL value: %v", err)
		}
		cfg.DevAPI.TokenTTL = d
	}
	if v := os.Getenv("DEVAPI_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DEVAPI_SEED value: %v", err)
		}
		cfg.DevAPI.Seed = seed
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080/api"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.Backend == "file" && cfg.Storage.Path == "" {
		cfg.Storage.Path = defaultStoragePath()
	}
	if cfg.Storage.NATS.Bucket == "" {
		cfg.Storage.NATS.Bucket = "esportivo"
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "esportivo:"
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "warn"
	}
	if cfg.Observability.LogFormat == "" {
		cfg.Observability.LogFormat = "text"
	}
	if cfg.DevAPI.Address == "" {
		cfg.DevAPI.Address = ":8080"
	}
	if cfg.DevAPI.JWTSecret == "" {
		cfg.DevAPI.JWTSecret = "dev-secret-at-least-32-chars-long!!"
	}
	if cfg.DevAPI.TokenTTL == 0 {
		cfg.DevAPI.TokenTTL = 24 * time.Hour
	}
	if cfg.DevAPI.LoginRate == 0 {
		cfg.DevAPI.LoginRate = 1
	}
	if cfg.DevAPI.LoginBurst == 0 {
		cfg.DevAPI.LoginBurst = 5
	}
	if cfg.DevAPI.Seed == 0 {
		cfg.DevAPI.Seed = 42
	}
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the file backend")
		}
	case "memory":
	case "nats":
		if c.Storage.NATS.URL == "" {
			return fmt.Errorf("NATS_URL environment variable not set")
		}
	case "postgres":
		if c.Storage.Postgres.DSN == "" {
			return fmt.Errorf("DATABASE_URL environment variable not set")
		}
	case "redis":
		if c.Storage.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL environment variable not set")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	return nil
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "esportivo", "session.yaml")
}
