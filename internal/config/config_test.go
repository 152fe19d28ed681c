package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
path = "/var/lib/conflicts/conflicts.db"

[booking_service]
url = "http://bookings:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Conflicts.TravelBufferMinutes)
	assert.Equal(t, 120, cfg.Conflicts.UnknownTravelGapMinutes)
	assert.Equal(t, 0, cfg.Conflicts.ScanWindowDays)
	assert.Equal(t, 3*time.Second, cfg.EstimatorTimeout())
	assert.Equal(t, TravelProviderHaversine, cfg.Travel.Provider)
	assert.Contains(t, cfg.Database.DSN(), "/var/lib/conflicts/conflicts.db?")
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "postgres"
host = "db"
port = 5433
user = "gig"
password = "secret"
dbname = "gig"

[booking_service]
url = "http://bookings:8080"
timeout = 2

[travel]
provider = "http"
url = "http://routes:8080"
timeout_ms = 1500

[conflicts]
travel_buffer_minutes = 45
scan_window_days = 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 45, cfg.Conflicts.TravelBufferMinutes)
	assert.Equal(t, 1, cfg.Conflicts.ScanWindowDays)
	assert.Equal(t, 1500*time.Millisecond, cfg.EstimatorTimeout())
	assert.Equal(t, "host=db port=5433 user=gig password=secret dbname=gig sslmode=disable", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"estimator timeout above 3s", func(c *Config) { c.Travel.TimeoutMs = 3001 }},
		{"negative buffer", func(c *Config) { c.Conflicts.TravelBufferMinutes = -1 }},
		{"scan window too wide", func(c *Config) { c.Conflicts.ScanWindowDays = 2 }},
		{"http provider without url", func(c *Config) { c.Travel.Provider = TravelProviderHTTP }},
		{"unknown provider", func(c *Config) { c.Travel.Provider = "carrier-pigeon" }},
		{"missing booking service", func(c *Config) { c.BookingService.URL = "" }},
		{"zero parallelism", func(c *Config) { c.Conflicts.MaxParallelEstimates = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "gig"
			cfg.BookingService.URL = "http://bookings:8080"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
