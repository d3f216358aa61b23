//go:build !integration

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/guttosm/pantry-service/config"
	"github.com/guttosm/pantry-service/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `recipes:
  - name: Pfannkuchen
    ingredients:
      Mehl: 250
      Milch: 0.5
      Eier: 3
  - name: Rührei
    ingredients:
      Eier: 3
      Butter: 10
`

func TestInitializeServices(t *testing.T) {
	cfg := fileStoreConfig(t)
	db, err := InitializeDatabase(context.Background(), cfg)
	require.NoError(t, err)

	services, err := InitializeServices(context.Background(), cfg, db)
	require.NoError(t, err)

	assert.NotNil(t, services.Pantry)
	assert.NotNil(t, services.Cooking)
	assert.NotNil(t, services.Recipes)
	assert.NotNil(t, services.Reports)
	assert.NotNil(t, services.Admin)
	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Roles)
}

func TestInitializeServices_InvalidPantryConfig(t *testing.T) {
	cfg := fileStoreConfig(t)
	db, err := InitializeDatabase(context.Background(), cfg)
	require.NoError(t, err)

	cfg.Pantry.DeductionOrder = "alphabetical"
	services, err := InitializeServices(context.Background(), cfg, db)
	assert.Error(t, err)
	assert.Nil(t, services)
}

func TestNewReportSink(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.ReportConfig
		wantKind string
		wantErr  bool
	}{
		{
			name:     "file sink",
			cfg:      config.ReportConfig{Sink: config.ReportSinkFile, Dir: t.TempDir()},
			wantKind: "file",
		},
		{
			name:     "empty sink defaults to file",
			cfg:      config.ReportConfig{Dir: t.TempDir()},
			wantKind: "file",
		},
		{
			name:    "unknown sink",
			cfg:     config.ReportConfig{Sink: "carrier-pigeon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := NewReportSink(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, sink)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &report.FileSink{}, sink)
			assert.Equal(t, tt.wantKind, sink.Kind())
		})
	}
}

func TestSeedRecipes(t *testing.T) {
	cfg := fileStoreConfig(t)
	seed := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(seedYAML), 0o644))

	db, err := InitializeDatabase(context.Background(), cfg)
	require.NoError(t, err)
	services, err := InitializeServices(context.Background(), cfg, db)
	require.NoError(t, err)

	seedRecipes(context.Background(), services.Recipes, seed)
	recipes, err := services.Recipes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	// A second run leaves the catalog untouched.
	seedRecipes(context.Background(), services.Recipes, seed)
	recipes, err = services.Recipes.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	assert.NotPanics(t, func() {
		seedRecipes(context.Background(), services.Recipes, "")
		seedRecipes(context.Background(), services.Recipes, filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
