// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratatrips/internal/app/system/capabilities"
	"github.com/dalemusser/stratatrips/internal/app/system/catalogcache"
	"github.com/dalemusser/stratatrips/internal/app/system/indexes"
	"github.com/dalemusser/stratatrips/internal/app/system/llm"
	"github.com/dalemusser/stratatrips/internal/app/system/mailer"
	"github.com/dalemusser/stratatrips/internal/app/system/throttle"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/dalemusser/stratatrips/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and builds the optional backends: file
// storage, mailer, LLM client, Redis catalog cache and the public throttle.
//
// Only MongoDB is fatal. Redis that is configured but unreachable is logged
// and kept; the catalog cache falls through to a fresh load until it answers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{Mail: appCfg.MailTimeout})

	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	store, err := newFileStorage(ctx, appCfg, logger)
	if err != nil {
		return DBDeps{}, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
		NotifyTo: appCfg.NotifyEmail,
	}, logger)
	if mail.Enabled() {
		logger.Info("initialized email mailer",
			zap.String("host", appCfg.MailSMTPHost),
			zap.Int("port", appCfg.MailSMTPPort),
		)
	}

	chat := llm.New(llm.Config{
		APIKey:     appCfg.LLMAPIKey,
		BaseURL:    appCfg.LLMBaseURL,
		Model:      appCfg.LLMModel,
		MaxTokens:  appCfg.LLMMaxTokens,
		MaxHistory: appCfg.LLMMaxHistory,
		Timeout:    appCfg.LLMTimeout,
	}, logger)
	if chat.Enabled() {
		logger.Info("initialized chat assistant", zap.String("model", chat.Model()))
	}

	var rdb *redis.Client
	cache := catalogcache.NewMemory(appCfg.CatalogCacheTTL, logger)
	if appCfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     appCfg.RedisAddr,
			Password: appCfg.RedisPassword,
			DB:       appCfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis unreachable at startup; catalog cache will retry", zap.String("addr", appCfg.RedisAddr), zap.Error(err))
		} else {
			logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))
		}
		cancel()
		cache = catalogcache.NewRedis(rdb, appCfg.CatalogCacheTTL, logger)
	}
	logger.Info("catalog cache ready",
		zap.String("backend", cache.Backend()),
		zap.Duration("ttl", appCfg.CatalogCacheTTL),
	)

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Redis:         rdb,
		CatalogCache:  cache,
		FileStorage:   store,
		Mailer:        mail,
		LLM:           chat,
		PublicLimiter: throttle.New(appCfg.PublicRatePerMinute, appCfg.PublicRateBurst, logger),
		Capabilities: capabilities.Compute(capabilities.Inputs{
			MailHost:    appCfg.MailSMTPHost,
			MailFrom:    appCfg.MailFrom,
			NotifyEmail: appCfg.NotifyEmail,
			LLMAPIKey:   appCfg.LLMAPIKey,
			RedisAddr:   appCfg.RedisAddr,
			SeedDemo:    appCfg.SeedDemoContent,
			StorageType: appCfg.StorageType,
		}),
	}, nil
}

func newFileStorage(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		store, err := storage.NewS3(ctx, storage.S3Config{
			Region:                   appCfg.StorageS3Region,
			Bucket:                   appCfg.StorageS3Bucket,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		logger.Info("initialized S3/CloudFront file storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("prefix", appCfg.StorageS3Prefix),
		)
		return store, nil
	case "local", "":
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Info("initialized local file storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL),
		)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}
}

// EnsureSchema creates collections, attaches JSON-Schema validators and
// reconciles indexes. Seeding happens later in Startup.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Collections and validators first so indexes land on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
