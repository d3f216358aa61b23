package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, StoreBackendFile, cfg.Store.Backend)
		assert.Equal(t, 7, cfg.Pantry.NearExpiryDays)
		assert.Equal(t, "insertion", cfg.Pantry.DeductionOrder)
		assert.Equal(t, 3, cfg.Pantry.ConflictRetries)
		assert.Equal(t, ReportSinkFile, cfg.Report.Sink)
		assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("PORT", "9090")
		t.Setenv("RATE_WINDOW", "30s")
		t.Setenv("CORS_ORIGINS", "https://pantry.example, https://app.example")
		t.Setenv("MONGODB_ENABLED", "true")
		t.Setenv("NEAR_EXPIRY_DAYS", "3")
		t.Setenv("DEDUCTION_ORDER", "expiry")
		t.Setenv("ADMIN_NAME", "admin")
		t.Setenv("ADMIN_PASSWORD", "s3cret")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Contains(t, cfg.Server.CORSOrigins, "https://pantry.example")
		assert.Contains(t, cfg.Server.CORSOrigins, "https://app.example")
		assert.True(t, cfg.Database.Enabled)
		assert.Equal(t, 3, cfg.Pantry.NearExpiryDays)
		assert.Equal(t, "expiry", cfg.Pantry.DeductionOrder)
		assert.Equal(t, "admin", cfg.Auth.AdminName)
	})

	t.Run("reads yaml file with env override", func(t *testing.T) {
		os.Clearenv()
		path := filepath.Join(t.TempDir(), "pantry.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "7070"
store:
  backend: http
  url: https://sheets.example/pantry
  timeout: 5s
report:
  sink: s3
  s3_bucket: pantry-reports
`), 0o600))
		t.Setenv("PORT", "6060")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "6060", cfg.Server.Port)
		assert.Equal(t, StoreBackendHTTP, cfg.Store.Backend)
		assert.Equal(t, "https://sheets.example/pantry", cfg.Store.URL)
		assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
		assert.Equal(t, "pantry-reports", cfg.Report.S3Bucket)
	})

	t.Run("missing config file", func(t *testing.T) {
		os.Clearenv()
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("RATE_LIMIT", "invalid")

		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Store:  StoreConfig{Backend: StoreBackendFile, Path: "data/pantry.json"},
			Pantry: PantryConfig{NearExpiryDays: 7, DeductionOrder: "insertion", ConflictRetries: 3},
			Report: ReportConfig{Sink: ReportSinkFile, Dir: "reports"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown deduction order", mutate: func(c *Config) { c.Pantry.DeductionOrder = "fifo" }, wantErr: "fifo"},
		{name: "negative near expiry", mutate: func(c *Config) { c.Pantry.NearExpiryDays = -1 }, wantErr: "near_expiry_days"},
		{name: "http store without url", mutate: func(c *Config) { c.Store.Backend = StoreBackendHTTP }, wantErr: "store.url"},
		{name: "unknown store backend", mutate: func(c *Config) { c.Store.Backend = "ftp" }, wantErr: "ftp"},
		{name: "store ignored with mongo", mutate: func(c *Config) { c.Database.Enabled = true; c.Store.Backend = "ftp" }},
		{name: "s3 sink without bucket", mutate: func(c *Config) { c.Report.Sink = ReportSinkS3 }, wantErr: "s3_bucket"},
		{name: "admin name without password", mutate: func(c *Config) { c.Auth.AdminName = "admin" }, wantErr: "admin_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
