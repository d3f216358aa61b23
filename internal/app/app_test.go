//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/guttosm/pantry-service/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr bool
	}{
		{
			name:   "file store with defaults",
			modify: func(*config.Config) {},
		},
		{
			name: "bootstraps admin household",
			modify: func(c *config.Config) {
				c.Auth.AdminName = "Verwaltung"
				c.Auth.AdminPassword = "admin-geheim"
			},
		},
		{
			name: "missing seed file is not fatal",
			modify: func(c *config.Config) {
				c.Recipes.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")
			},
		},
		{
			name: "unknown store backend",
			modify: func(c *config.Config) {
				c.Store.Backend = "floppy"
			},
			wantErr: true,
		},
		{
			name: "unknown deduction order",
			modify: func(c *config.Config) {
				c.Pantry.DeductionOrder = "random"
			},
			wantErr: true,
		},
		{
			name: "unknown report sink",
			modify: func(c *config.Config) {
				c.Report.Sink = "fax"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fileStoreConfig(t)
			tt.modify(&cfg)

			application, err := InitializeApp(context.Background(), cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, application)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, application)
			assert.NotNil(t, application.Router)
			assert.NotNil(t, application.Services.Pantry)
			assert.NotNil(t, application.Services.Auth)
			assert.NoError(t, application.Close(context.Background()))
		})
	}
}

func TestInitializeApp_ServesHealthEndpoints(t *testing.T) {
	application, err := InitializeApp(context.Background(), fileStoreConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	for _, path := range []string{"/healthz", "/readyz"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		application.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	application.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInitializeApp_AdminCanLogin(t *testing.T) {
	cfg := fileStoreConfig(t)
	cfg.Auth.AdminName = "Verwaltung"
	cfg.Auth.AdminPassword = "admin-geheim"

	application, err := InitializeApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close(context.Background()) })

	pair, _, err := application.Services.Auth.Login(context.Background(), "Verwaltung", "admin-geheim")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

type countingCleaner struct {
	calls chan struct{}
}

func (c *countingCleaner) CleanupExpired(context.Context) error {
	select {
	case c.calls <- struct{}{}:
	default:
	}
	return nil
}

func TestCleanupTokens_StopsOnCancel(t *testing.T) {
	cleaner := &countingCleaner{calls: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		cleanupTokens(ctx, cleaner, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-cleaner.calls:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not run")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop")
	}
}
