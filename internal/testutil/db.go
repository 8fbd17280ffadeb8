// Package testutil holds shared test helpers: a throwaway Mongo database per
// test and request builders for handler tests.
package testutil

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/system/indexes"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultTestDBURI is used when STRATATRIPS_TEST_MONGO_URI is unset.
	DefaultTestDBURI = "mongodb://localhost:27017"
	// TestDBName prefixes every per-test database.
	TestDBName = "stratatrips_test"

	// Mongo caps database names at 63 bytes: prefix, "_", name, "_", 8-char tag.
	maxDBName = 63
	tagLen    = 8
)

// TestDBURI returns the MongoDB connection string for tests.
func TestDBURI() string {
	if uri := os.Getenv("STRATATRIPS_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return DefaultTestDBURI
}

var shared struct {
	once   sync.Once
	client *mongo.Client
	err    error
}

func testClient() (*mongo.Client, error) {
	shared.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Client().
			ApplyURI(TestDBURI()).
			SetMaxPoolSize(100).
			SetMaxConnIdleTime(30 * time.Second).
			SetServerSelectionTimeout(10 * time.Second)

		shared.client, shared.err = mongo.Connect(ctx, opts)
		if shared.err == nil {
			shared.err = shared.client.Ping(ctx, nil)
		}
	})
	return shared.client, shared.err
}

// SetupTestDB returns an empty database with production indexes in place.
// Each call gets its own database, dropped again in t.Cleanup, so tests with
// the same name in different packages never share state.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := testClient()
	if err != nil {
		t.Fatalf("connect test MongoDB at %s: %v", TestDBURI(), err)
	}

	db := client.Database(dbNameFor(t.Name()))

	ctx, cancel := TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop %s: %v", db.Name(), err)
		}
	})
	return db
}

// dbNameFor maps a test name to a unique, valid database name.
func dbNameFor(testName string) string {
	tag := strings.ReplaceAll(uuid.NewString(), "-", "")[:tagLen]
	room := maxDBName - len(TestDBName) - len(tag) - 2

	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, testName)
	if len(name) > room {
		name = name[:room]
	}
	return TestDBName + "_" + name + "_" + tag
}

// TestContext returns a context bounded for a single test's database work.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
