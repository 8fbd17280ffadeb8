// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// Values come from environment variables (STRATATRIPS_*), configuration
// files, or command-line flags, loaded in LoadConfig. WAFFLE's CoreConfig
// covers ports, TLS, logging level, CORS and body limits; everything the
// travel back end itself needs lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string; required
	MongoDatabase    string // Database name
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin session cookie configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Session lifetime; also the server-side session TTL

	CSRFKey string // Signing key for the admin CSRF token (32+ chars in production)

	// Admin login lockout
	RateLimitEnabled       bool
	RateLimitLoginAttempts int
	RateLimitLoginWindow   time.Duration
	RateLimitLoginLockout  time.Duration

	// Per-IP throttle on public writes (enquiries, chat, package drafts)
	PublicRatePerMinute int // 0 disables throttling
	PublicRateBurst     int

	// File storage configuration
	StorageType      string // "local" or "s3"
	StorageLocalPath string // Local filesystem path for uploads
	StorageLocalURL  string // URL prefix for serving local files
	UploadMaxBytes   int64  // Largest accepted image upload

	// S3/CloudFront configuration (when StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	NotifyEmail  string // Receives enquiry and chat callback notifications
	MailTimeout  time.Duration

	// Agency contact details quoted by the chat assistant
	AgencyPhone string
	AgencyEmail string

	// LLM chat configuration
	LLMAPIKey     string // Empty disables chat (503)
	LLMBaseURL    string
	LLMModel      string
	LLMMaxTokens  int
	LLMMaxHistory int
	LLMTimeout    time.Duration

	// Redis backs the catalog cache when set
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration

	// Seeding
	SeedAdminEmail    string
	SeedAdminPassword string
	SeedDemoContent   bool

	// Public URL of the site front end; its host is a trusted CSRF origin
	BaseURL string
}
