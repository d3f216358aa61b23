//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/pantry-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongoDB(m))
}

// newTestMongoDB connects to a database of its own in the shared container
// and drops it when the test ends.
func newTestMongoDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.MongoURI(t), testutil.DatabaseName(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx := context.Background()
		_ = db.Database.Drop(ctx)
		_ = db.Close(ctx)
	})
	return db
}
