package api

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

// Pinger is a dependency readiness can probe. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger adapts a redis client to Pinger.
type RedisPinger struct {
	Client *redis.Client
}

func (p RedisPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx).Err()
}

type HealthHandler struct {
	roster  *roster.Roster
	deps    map[string]Pinger
	env     string
	version string
}

// NewHealthHandler builds the probes. deps holds only the backends that were
// configured; a nil map is fine.
func NewHealthHandler(r *roster.Roster, deps map[string]Pinger, env, version string) *HealthHandler {
	return &HealthHandler{
		roster:  r,
		deps:    deps,
		env:     env,
		version: version,
	}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Env          string            `json:"env,omitempty"`
	Doctors      int               `json:"doctors"`
	Dependencies map[string]string `json:"dependencies"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	})
}

// Readiness fails only without a roster. Postgres and redis are read at
// startup, so losing them afterwards degrades but does not stop replies.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.deps))
	status := "ok"

	for name, dep := range h.deps {
		depCtx, depCancel := context.WithTimeout(ctx, time.Second)
		err := dep.Ping(depCtx)
		depCancel()
		if err != nil {
			deps[name] = "down"
			status = "degraded"
		} else {
			deps[name] = "ok"
		}
	}

	if h.roster.Len() == 0 {
		status = "error"
	}

	httpStatus := http.StatusOK
	if status == "error" {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, ReadinessResponse{
		Status:       status,
		Version:      h.version,
		Env:          h.env,
		Doctors:      h.roster.Len(),
		Dependencies: deps,
	})
}
