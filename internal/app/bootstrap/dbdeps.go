// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratatrips/internal/app/system/capabilities"
	"github.com/dalemusser/stratatrips/internal/app/system/catalogcache"
	"github.com/dalemusser/stratatrips/internal/app/system/llm"
	"github.com/dalemusser/stratatrips/internal/app/system/mailer"
	"github.com/dalemusser/stratatrips/internal/app/system/throttle"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to EnsureSchema, Startup,
// BuildHandler and Shutdown. Optional backends are nil when not configured.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis is nil unless redis_addr is set.
	Redis *redis.Client

	// CatalogCache holds the chat assistant's catalog snapshot.
	CatalogCache *catalogcache.Cache

	// FileStorage for image uploads
	FileStorage storage.Store

	// Mailer sends enquiry and chat callback notifications; a no-op when unconfigured.
	Mailer *mailer.Mailer

	// LLM answers chat turns; disabled without an API key.
	LLM *llm.Client

	// PublicLimiter throttles public writes per client IP. Shared by the
	// routes and the prune job.
	PublicLimiter *throttle.Limiter

	// Capabilities records which optional features are on.
	Capabilities capabilities.Set
}
