// internal/app/bootstrap/hooks.go
package bootstrap

import (
	"github.com/dalemusser/waffle/app"
)

// Hooks wires this app into the WAFFLE lifecycle.
// Each function is called in order by app.Run, from configuration
// loading through DB setup, one-time startup work, HTTP handler
// construction, and finally graceful shutdown.
var Hooks = app.Hooks[AppConfig, DBDeps]{
	Name:           "stratatrips",  // used only for logging/diagnostics
	LoadConfig:     LoadConfig,     // load core + app config
	ValidateConfig: ValidateConfig, // require a valid MongoDB URI
	ConnectDB:      ConnectDB,      // MongoDB, storage, mailer, LLM, Redis
	EnsureSchema:   EnsureSchema,   // collections, validators, indexes
	Startup:        Startup,        // seed admin/demo content, start tasks
	BuildHandler:   BuildHandler,   // build the HTTP router + middleware stack
	Shutdown:       Shutdown,       // stop tasks, close Redis and MongoDB
}
