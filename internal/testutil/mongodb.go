//go:build integration

// Package testutil runs the MongoDB container used by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

// maxDatabaseName is MongoDB's limit on database name length in bytes.
const maxDatabaseName = 63

// MongoDBContainer is a running MongoDB container.
type MongoDBContainer struct {
	Container *mongodb.MongoDBContainer
	URI       string
}

// StartMongoDB starts a dedicated container. Most tests should share one
// through RunWithMongoDB instead.
func StartMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("start MongoDB container: %w", err)
	}
	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("MongoDB connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Terminate stops and removes the container.
func (m *MongoDBContainer) Terminate(ctx context.Context) error {
	if m == nil || m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}

var (
	sharedMu sync.RWMutex
	shared   *MongoDBContainer
)

// RunWithMongoDB starts the package's shared container, runs the tests and
// removes the container. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithMongoDB(m))
//	}
func RunWithMongoDB(m *testing.M) int {
	ctx := context.Background()

	container, err := StartMongoDB(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sharedMu.Lock()
	shared = container
	sharedMu.Unlock()

	code := m.Run()

	sharedMu.Lock()
	shared = nil
	sharedMu.Unlock()
	if err := container.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "terminate MongoDB container: %v\n", err)
	}
	return code
}

// MongoURI returns the URI of the shared container.
func MongoURI(t testing.TB) string {
	t.Helper()
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	if shared == nil {
		t.Fatal("shared MongoDB container is not running; call RunWithMongoDB from TestMain")
	}
	return shared.URI
}

// DatabaseName derives a database name unique to the running test, so
// tests sharing a container do not see each other's households.
func DatabaseName(t testing.TB) string {
	t.Helper()
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		return r
	}, t.Name())

	suffix := fmt.Sprintf("_%06d", time.Now().UnixNano()%1000000)
	if len(name) > maxDatabaseName-len(suffix) {
		name = name[:maxDatabaseName-len(suffix)]
	}
	return name + suffix
}
