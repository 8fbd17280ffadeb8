// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatrips/internal/app/system/seeding"
	"github.com/dalemusser/stratatrips/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Stale login-attempt records and idle throttle buckets older than these are purged.
const (
	loginAttemptMaxAge = 24 * time.Hour
	throttleMaxIdle    = 10 * time.Minute
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It seeds the bootstrap admin and, when enabled, demo catalog content, then
// starts the background task runner. A seeding failure aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := seeding.SeedAdmin(ctx, deps.MongoDatabase, appCfg.SeedAdminEmail, appCfg.SeedAdminPassword, logger); err != nil {
		logger.Error("failed to seed admin user", zap.Error(err))
		return err
	}

	if appCfg.SeedDemoContent {
		if err := seeding.SeedDemoContent(ctx, deps.MongoDatabase, logger); err != nil {
			logger.Error("failed to seed demo content", zap.Error(err))
			return err
		}
	}

	deps.Capabilities.Log(logger)

	startTaskRunner(appCfg, deps, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner registers the cleanup jobs and starts them.
func startTaskRunner(appCfg AppConfig, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	taskRunner.Register(tasks.AdminSessionExpiryJob(adminsessions.New(deps.MongoDatabase), logger))
	taskRunner.Register(tasks.LoginAttemptPurgeJob(
		ratelimit.New(deps.MongoDatabase, appCfg.RateLimitLoginAttempts, appCfg.RateLimitLoginWindow, appCfg.RateLimitLoginLockout),
		loginAttemptMaxAge,
		logger,
	))
	if deps.PublicLimiter != nil {
		taskRunner.Register(tasks.ThrottlePruneJob(deps.PublicLimiter, throttleMaxIdle, logger))
	}

	taskRunner.Start()
}
