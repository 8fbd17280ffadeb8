// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"sync"

	"github.com/dalemusser/stratatrips/internal/app/system/jsonutil"
	"github.com/dalemusser/stratatrips/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const mongoService = "mongodb"

// PingFunc checks one dependency and returns an error when it is unreachable.
type PingFunc func(ctx context.Context) error

// Handler provides health check endpoints.
type Handler struct {
	mongoClient *mongo.Client
	extra       map[string]PingFunc
	logger      *zap.Logger
}

// NewHandler creates a new health check Handler.
func NewHandler(mongoClient *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		mongoClient: mongoClient,
		extra:       map[string]PingFunc{},
		logger:      logger,
	}
}

// WithService adds an optional dependency to the full check. A failing
// optional service marks the response degraded but keeps the 200 status,
// since the API still works without it.
func (h *Handler) WithService(name string, ping PingFunc) *Handler {
	h.extra[name] = ping
	return h
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with /, /ready and /live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds the Kubernetes-style probes to the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check probes MongoDB and every optional service in parallel. MongoDB down
// answers 503 "unavailable"; an optional service down answers 200 "degraded".
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	probes := make(map[string]PingFunc, len(h.extra)+1)
	for name, ping := range h.extra {
		probes[name] = ping
	}
	probes[mongoService] = h.pingMongo

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed = map[string]error{}
	)
	for name, ping := range probes {
		wg.Add(1)
		go func(name string, ping PingFunc) {
			defer wg.Done()
			if err := ping(ctx); err != nil {
				mu.Lock()
				failed[name] = err
				mu.Unlock()
			}
		}(name, ping)
	}
	wg.Wait()

	resp := Response{Status: "ok", Services: make(map[string]string, len(probes))}
	for name := range probes {
		err, down := failed[name]
		if !down {
			resp.Services[name] = "ok"
			continue
		}
		resp.Services[name] = "unavailable"
		h.logger.Warn("health probe failed", zap.String("service", name), zap.Error(err))
		switch {
		case name == mongoService:
			resp.Status = "unavailable"
		case resp.Status == "ok":
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status == "unavailable" {
		status = http.StatusServiceUnavailable
	}
	jsonutil.JSON(w, status, resp)
}

// Ready reports whether the service can take traffic (MongoDB reachable).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.pingMongo(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		jsonutil.JSON(w, http.StatusServiceUnavailable, Response{Status: "not ready"})
		return
	}
	jsonutil.OK(w, Response{Status: "ready"})
}

// Live reports that the process is running.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.OK(w, Response{Status: "alive"})
}

func (h *Handler) pingMongo(ctx context.Context) error {
	if h.mongoClient == nil {
		return mongo.ErrClientDisconnected
	}
	return h.mongoClient.Ping(ctx, readpref.Primary())
}
