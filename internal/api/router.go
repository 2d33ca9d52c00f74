package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hackgods/doctor-booking-assistant/internal/assistant"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

type RouterConfig struct {
	Service            *assistant.Service
	Metrics            *metrics.ChatMetrics
	MetricsHandler     http.Handler // nil disables /metrics
	Dependencies       map[string]Pinger
	Logger             *logging.Logger
	CORSAllowedOrigins []string
	RateLimitRPS       float64 // 0 disables rate limiting
	RateLimitBurst     int
	Env                string
	Version            string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))
	r.Use(RecoverMiddleware(logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(CORS(cfg.CORSAllowedOrigins))
	}

	health := NewHealthHandler(cfg.Service.Roster(), cfg.Dependencies, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimitRPS > 0 {
			r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		r.Post("/chat", chatHandler(cfg.Service, cfg.Metrics, logger))
		r.Get("/doctors", doctorsHandler(cfg.Service))
	})

	return r
}
