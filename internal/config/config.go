package config

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	InventoryBackendMemory   = "memory"
	InventoryBackendPostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Inventory InventoryConfig `yaml:"inventory"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// InventoryConfig selects where tools live and which tools are seeded at startup
type InventoryConfig struct {
	Backend         string       `yaml:"backend"` // "memory" or "postgres"
	CacheTTLSeconds int          `yaml:"cache_ttl_seconds"`
	Tools           []ToolConfig `yaml:"tools"`
}

// ToolConfig is a seeded inventory entry
type ToolConfig struct {
	Code  string `yaml:"code"`
	Type  string `yaml:"type"`
	Brand string `yaml:"brand"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled            bool   `yaml:"enabled"`
	WarmInventoryCache string `yaml:"warm_inventory_cache"`
}

// RateLimitConfig limits checkout API traffic. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// DefaultTools is the standard rental inventory
func DefaultTools() []ToolConfig {
	return []ToolConfig{
		{Code: "CHNS", Type: "Chainsaw", Brand: "Stihl"},
		{Code: "LADW", Type: "Ladder", Brand: "Werner"},
		{Code: "JAKD", Type: "Jackhammer", Brand: "DeWalt"},
		{Code: "JAKR", Type: "Jackhammer", Brand: "Ridgid"},
	}
}

// Default returns a configuration usable without a config file
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
	}
	cfg.overrideWithEnv()
	_ = cfg.Validate()
	return cfg
}

// Load reads configuration from a YAML file. A .env file in the working directory,
// when present, is loaded into the environment before overrides are applied.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "failed to load .env file")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Inventory
	if val := os.Getenv("INVENTORY_BACKEND"); val != "" {
		c.Inventory.Backend = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("invalid server port: %d", c.Server.Port)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	c.Inventory.Backend = strings.ToLower(strings.TrimSpace(c.Inventory.Backend))
	switch c.Inventory.Backend {
	case "":
		c.Inventory.Backend = InventoryBackendMemory
	case InventoryBackendMemory:
	case InventoryBackendPostgres:
		if c.Database.Host == "" {
			return errors.New("database host is required for the postgres inventory")
		}
		if c.Database.User == "" {
			return errors.New("database user is required for the postgres inventory")
		}
		if c.Database.Database == "" {
			return errors.New("database name is required for the postgres inventory")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	default:
		return errors.Newf("unsupported inventory backend: %s", c.Inventory.Backend)
	}

	if c.Inventory.CacheTTLSeconds < 0 {
		return errors.Newf("invalid inventory cache ttl: %d", c.Inventory.CacheTTLSeconds)
	}
	if c.Inventory.CacheTTLSeconds == 0 {
		c.Inventory.CacheTTLSeconds = 300
	}
	if len(c.Inventory.Tools) == 0 {
		c.Inventory.Tools = DefaultTools()
	}

	if c.Scheduler.WarmInventoryCache == "" {
		c.Scheduler.WarmInventoryCache = "0 */5 * * * *" // Every 5 minutes
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return errors.Newf("invalid rate limit: %v", c.RateLimit.RequestsPerSecond)
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond) + 1
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
