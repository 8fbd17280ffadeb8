// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATATRIPS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STRATATRIPS_MONGO_URI, STRATATRIPS_LLM_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --llm_api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (required)"},
	{Name: "mongo_database", Default: "stratatrips", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratatrips-admin", Desc: "Admin session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Admin session lifetime (e.g., 12h, 30m)"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Admin login lockout
	{Name: "rate_limit_enabled", Default: true, Desc: "Enable lockout after repeated failed admin logins"},
	{Name: "rate_limit_login_attempts", Default: 5, Desc: "Max failed login attempts before lockout"},
	{Name: "rate_limit_login_window", Default: "15m", Desc: "Time window for counting failed attempts"},
	{Name: "rate_limit_login_lockout", Default: "15m", Desc: "Lockout duration after exceeding limit"},

	// Public write throttling
	{Name: "public_rate_per_minute", Default: 20, Desc: "Per-IP limit on public enquiry, chat and package submissions (0 disables)"},
	{Name: "public_rate_burst", Default: 5, Desc: "Per-IP burst for public submissions"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded images"},
	{Name: "storage_local_url", Default: "/files", Desc: "URL prefix for serving local files"},
	{Name: "upload_max_bytes", Default: 10 << 20, Desc: "Largest accepted image upload in bytes"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "", Desc: "SMTP server host (blank disables email)"},
	{Name: "mail_smtp_port", Default: 587, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "", Desc: "From email address"},
	{Name: "mail_from_name", Default: "StrataTrips", Desc: "From display name"},
	{Name: "notify_email", Default: "", Desc: "Address that receives enquiry and chat callback notifications"},
	{Name: "mail_timeout", Default: "15s", Desc: "Timeout for one notification email"},

	// Agency contact details
	{Name: "agency_phone", Default: "", Desc: "Agency phone number quoted by the chat assistant"},
	{Name: "agency_email", Default: "", Desc: "Agency email address quoted by the chat assistant"},

	// LLM chat configuration
	{Name: "llm_api_key", Default: "", Desc: "OpenAI-compatible API key (blank disables chat)"},
	{Name: "llm_base_url", Default: "", Desc: "OpenAI-compatible API base URL (blank means provider default)"},
	{Name: "llm_model", Default: "gpt-4o-mini", Desc: "Chat completion model"},
	{Name: "llm_max_tokens", Default: 500, Desc: "Max tokens per assistant reply"},
	{Name: "llm_max_history", Default: 20, Desc: "Most recent conversation messages sent to the model"},
	{Name: "llm_timeout", Default: "30s", Desc: "Timeout for one completion call"},

	// Redis catalog cache
	{Name: "redis_addr", Default: "", Desc: "Redis address for the catalog cache (blank uses in-process cache)"},
	{Name: "redis_password", Default: "", Desc: "Redis password"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},
	{Name: "catalog_cache_ttl", Default: "5m", Desc: "How long the chat catalog snapshot is cached"},

	// Seeding
	{Name: "seed_admin_email", Default: "", Desc: "Email of the bootstrap admin created on startup"},
	{Name: "seed_admin_password", Default: "", Desc: "Password of the bootstrap admin created on startup"},
	{Name: "seed_demo_content", Default: false, Desc: "Fill empty catalog collections with demo content on startup"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public URL of the site front end"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config.yaml/json/toml
// files, WAFFLE_* and STRATATRIPS_* environment variables and command-line
// flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),
		SessionMaxAge:    appValues.Duration("session_max_age", 12*time.Hour),
		CSRFKey:          appValues.String("csrf_key"),

		// Login lockout
		RateLimitEnabled:       appValues.Bool("rate_limit_enabled"),
		RateLimitLoginAttempts: appValues.Int("rate_limit_login_attempts"),
		RateLimitLoginWindow:   appValues.Duration("rate_limit_login_window", 15*time.Minute),
		RateLimitLoginLockout:  appValues.Duration("rate_limit_login_lockout", 15*time.Minute),

		// Public throttle
		PublicRatePerMinute: appValues.Int("public_rate_per_minute"),
		PublicRateBurst:     appValues.Int("public_rate_burst"),

		// File storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),
		UploadMaxBytes:   int64(appValues.Int("upload_max_bytes")),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		// Email/SMTP
		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		NotifyEmail:  appValues.String("notify_email"),
		MailTimeout:  appValues.Duration("mail_timeout", 15*time.Second),

		// Agency
		AgencyPhone: appValues.String("agency_phone"),
		AgencyEmail: appValues.String("agency_email"),

		// LLM
		LLMAPIKey:     appValues.String("llm_api_key"),
		LLMBaseURL:    appValues.String("llm_base_url"),
		LLMModel:      appValues.String("llm_model"),
		LLMMaxTokens:  appValues.Int("llm_max_tokens"),
		LLMMaxHistory: appValues.Int("llm_max_history"),
		LLMTimeout:    appValues.Duration("llm_timeout", 30*time.Second),

		// Redis
		RedisAddr:       appValues.String("redis_addr"),
		RedisPassword:   appValues.String("redis_password"),
		RedisDB:         appValues.Int("redis_db"),
		CatalogCacheTTL: appValues.Duration("catalog_cache_ttl", 5*time.Minute),

		// Seeding
		SeedAdminEmail:    appValues.String("seed_admin_email"),
		SeedAdminPassword: appValues.String("seed_admin_password"),
		SeedDemoContent:   appValues.Bool("seed_demo_content"),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// A missing or malformed MongoDB URI aborts startup: there is no useful
// degraded mode without the document store.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.MongoURI == "" {
		logger.Error("MongoDB URI is not configured", zap.String("env", EnvVarPrefix+"_MONGO_URI"))
		return errors.New("mongo_uri is required")
	}
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "", "local", "s3":
	default:
		return fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}

	if coreCfg.Env == "prod" {
		if strings.HasPrefix(appCfg.SessionKey, "dev-only") {
			return errors.New("session_key must be set in production")
		}
		if strings.HasPrefix(appCfg.CSRFKey, "dev-only") {
			return errors.New("csrf_key must be set in production")
		}
	}

	return nil
}
