// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	chatfeature "github.com/dalemusser/stratatrips/internal/app/features/chat"
	dashboardfeature "github.com/dalemusser/stratatrips/internal/app/features/dashboard"
	enquiriesfeature "github.com/dalemusser/stratatrips/internal/app/features/enquiries"
	healthfeature "github.com/dalemusser/stratatrips/internal/app/features/health"
	loginfeature "github.com/dalemusser/stratatrips/internal/app/features/login"
	logoutfeature "github.com/dalemusser/stratatrips/internal/app/features/logout"
	packagesfeature "github.com/dalemusser/stratatrips/internal/app/features/packages"
	reviewsfeature "github.com/dalemusser/stratatrips/internal/app/features/reviews"
	showcasefeature "github.com/dalemusser/stratatrips/internal/app/features/showcase"
	uploadsfeature "github.com/dalemusser/stratatrips/internal/app/features/uploads"
	"github.com/dalemusser/stratatrips/internal/app/store/adminsessions"
	"github.com/dalemusser/stratatrips/internal/app/store/ratelimit"
	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/reqlog"
	"github.com/dalemusser/stratatrips/internal/app/system/throttle"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// Layout:
//   - /api/...            public catalog reads, enquiry and chat submissions
//   - /api/admin/login    password login (no CSRF; there is no session yet)
//   - /api/admin/...      admin session + CSRF header on every request
//   - /files/*            local upload storage
//   - /health, /ready...  probes
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// The cookie only carries an opaque token; every request resolves it
	// against admin_sessions so logout and revocation take effect immediately.
	sessionMgr.SetAdminFetcher(adminsessions.NewFetcher(deps.MongoDatabase, logger))

	var loginLimiter *ratelimit.Store
	if appCfg.RateLimitEnabled {
		loginLimiter = ratelimit.New(
			deps.MongoDatabase,
			appCfg.RateLimitLoginAttempts,
			appCfg.RateLimitLoginWindow,
			appCfg.RateLimitLoginLockout,
		)
	}

	agency := chatfeature.Agency{
		Name:  appCfg.MailFromName,
		Phone: appCfg.AgencyPhone,
		Email: appCfg.AgencyEmail,
	}

	packagesHandler := packagesfeature.NewHandler(deps.MongoDatabase, deps.CatalogCache, logger)
	showcaseHandler := showcasefeature.NewHandler(deps.MongoDatabase, deps.CatalogCache, logger)
	enquiriesHandler := enquiriesfeature.NewHandler(deps.MongoDatabase, deps.Mailer, logger)
	reviewsHandler := reviewsfeature.NewHandler(deps.MongoDatabase, logger)
	chatHandler := chatfeature.NewHandler(chatfeature.Deps{
		DB:           deps.MongoDatabase,
		Cache:        deps.CatalogCache,
		LLM:          deps.LLM,
		Notifier:     deps.Mailer,
		Agency:       agency,
		Capabilities: deps.Capabilities,
		Logger:       logger,
	})
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, loginLimiter, logger)
	logoutHandler := logoutfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	uploadsHandler := uploadsfeature.NewHandler(deps.FileStorage, appCfg.UploadMaxBytes, logger)
	dashboardHandler := dashboardfeature.NewHandler(deps.MongoDatabase, deps.Capabilities, logger)

	csrfProtect := newCSRF(appCfg, secure, logger)
	limitWrites := throttleWrites(deps.PublicLimiter)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(reqlog.Logger(logger))
	r.Use(reqlog.Recover(logger))

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	r.Route("/api", func(api chi.Router) {
		api.With(limitWrites).Mount("/packages", packagesfeature.Routes(packagesHandler))
		api.With(limitWrites).Mount("/enquiries", enquiriesfeature.Routes(enquiriesHandler))
		api.With(limitWrites).Mount("/chat", chatfeature.Routes(chatHandler))
		api.Mount("/reviews", reviewsfeature.Routes(reviewsHandler))
		showcasefeature.MountPublic(api, showcaseHandler)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(sessionMgr.LoadSessionAdmin)

			admin.With(limitWrites).Mount("/login", loginfeature.Routes(loginHandler))

			admin.Group(func(protected chi.Router) {
				protected.Use(csrfProtect)

				// Logout works with or without a live session.
				protected.Mount("/logout", logoutfeature.Routes(logoutHandler))

				protected.Group(func(ar chi.Router) {
					ar.Use(sessionMgr.RequireAdmin)

					ar.Get("/session", loginHandler.Session)
					ar.Mount("/packages", packagesfeature.AdminRoutes(packagesHandler))
					ar.Mount("/enquiries", enquiriesfeature.AdminRoutes(enquiriesHandler))
					ar.Mount("/reviews", reviewsfeature.AdminRoutes(reviewsHandler))
					ar.Mount("/chats", chatfeature.AdminRoutes(chatHandler))
					showcasefeature.MountAdmin(ar, showcaseHandler)
					ar.Mount("/upload", uploadsfeature.Routes(uploadsHandler))
					ar.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
				})
			})
		})
	})

	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	if deps.Redis != nil {
		healthHandler.WithService("redis", func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		})
	}
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Serve uploaded images when using local storage.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.NotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r, nil
}

// throttleWrites applies the per-IP limiter to POST requests only, so catalog
// reads on the same router stay unthrottled.
func throttleWrites(l *throttle.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		limited := l.Middleware(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
