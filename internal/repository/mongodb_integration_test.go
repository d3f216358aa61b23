//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestMongoDB(t)

	t.Run("collections are bound", func(t *testing.T) {
		assert.NotNil(t, db.Households)
		assert.NotNil(t, db.Pantries)
		assert.NotNil(t, db.Recipes)
		assert.NotNil(t, db.Logs)
		assert.NotNil(t, db.Roles)
		assert.NotNil(t, db.Tokens)
	})

	t.Run("health check", func(t *testing.T) {
		hcCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		assert.NoError(t, db.HealthCheck(hcCtx))
	})

	t.Run("set logs TTL is idempotent", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30))
		assert.NoError(t, db.SetLogsTTL(ctx, 30))
	})
}
