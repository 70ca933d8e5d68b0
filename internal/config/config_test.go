package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Memory inventory with defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
		assert.Equal(t, InventoryBackendMemory, cfg.Inventory.Backend)
		assert.Equal(t, DefaultTools(), cfg.Inventory.Tools)
		assert.Equal(t, 300, cfg.Inventory.CacheTTLSeconds)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.WarmInventoryCache)
	})

	t.Run("Seeded tools and postgres", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 8080
database:
  host: db
  user: rental
  database: inventory
inventory:
  backend: Postgres
  tools:
    - code: LADR
      type: Ladder
      brand: Little Giant
rate_limit:
  requests_per_second: 5
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, InventoryBackendPostgres, cfg.Inventory.Backend)
		assert.Equal(t, []ToolConfig{{Code: "LADR", Type: "Ladder", Brand: "Little Giant"}}, cfg.Inventory.Tools)
		assert.Equal(t, "postgres://rental:@db:5432/inventory?sslmode=disable", cfg.GetDatabaseConnectionString())
		assert.Equal(t, 6, cfg.RateLimit.Burst)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "7070")
		t.Setenv("LOG_LEVEL", "debug")
		path := writeConfig(t, "server:\n  port: 8080\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [port"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"Bad port", Config{Server: ServerConfig{Port: 0}}, "invalid server port"},
		{"Unknown backend", Config{Server: ServerConfig{Port: 80}, Inventory: InventoryConfig{Backend: "redis"}}, "unsupported inventory backend"},
		{"Postgres without host", Config{Server: ServerConfig{Port: 80}, Inventory: InventoryConfig{Backend: "postgres"}}, "database host is required"},
		{"Negative TTL", Config{Server: ServerConfig{Port: 80}, Inventory: InventoryConfig{CacheTTLSeconds: -1}}, "invalid inventory cache ttl"},
		{"Negative rate", Config{Server: ServerConfig{Port: 80}, RateLimit: RateLimitConfig{RequestsPerSecond: -1}}, "invalid rate limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, InventoryBackendMemory, cfg.Inventory.Backend)
	assert.Len(t, cfg.Inventory.Tools, 4)
}
