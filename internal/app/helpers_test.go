package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/pantry-service/config"
)

// fileStoreConfig returns a configuration backed by a document store file
// and report directory under a temporary directory.
func fileStoreConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Server: config.ServerConfig{
			Port:       "8080",
			RateLimit:  100,
			RateWindow: time.Minute,
			Language:   "en",
		},
		Log: config.LogConfig{Level: "error"},
		Auth: config.AuthConfig{
			JWTSecretKey:     "test-secret",
			JWTRefreshSecret: "test-refresh-secret",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  time.Hour,
		},
		Database: config.DatabaseConfig{
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Store: config.StoreConfig{
			Backend: config.StoreBackendFile,
			Path:    filepath.Join(dir, "pantry.json"),
		},
		Pantry: config.PantryConfig{
			NearExpiryDays:  3,
			DeductionOrder:  "insertion",
			ConflictRetries: 3,
		},
		Report: config.ReportConfig{
			Sink: config.ReportSinkFile,
			Dir:  filepath.Join(dir, "reports"),
		},
	}
}
