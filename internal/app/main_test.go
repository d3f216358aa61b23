//go:build integration

package app

import (
	"os"
	"testing"

	"github.com/guttosm/pantry-service/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithMongoDB(m))
}
