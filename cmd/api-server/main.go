package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hackgods/doctor-booking-assistant/internal/api"
	"github.com/hackgods/doctor-booking-assistant/internal/assistant"
	"github.com/hackgods/doctor-booking-assistant/internal/config"
	"github.com/hackgods/doctor-booking-assistant/internal/db"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	redisclient "github.com/hackgods/doctor-booking-assistant/internal/redis"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("config load error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	logger.Info("api-server starting up",
		"env", cfg.Env,
		"http_port", cfg.HTTPPort,
		"roster_source", cfg.RosterSource,
		"version", version,
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := map[string]api.Pinger{}
	var src roster.Source = roster.StaticSource{}

	if cfg.RosterSource == config.RosterSourcePostgres {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			logger.Error("postgres connection error", "error", err)
			os.Exit(1)
		}
		defer pgPool.Close()
		logger.Info("connected to Postgres")

		deps["postgres"] = pgPool
		src = roster.NewPgSource(pgPool)
	}

	if cfg.RedisEnabled() {
		rdb, err := redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			logger.Error("redis connection error", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("error closing redis", "error", err)
			}
		}()
		logger.Info("connected to Redis", "addr", cfg.RedisAddr)

		deps["redis"] = api.RedisPinger{Client: rdb}
		src = roster.NewCachedSource(rdb, src, cfg.RosterCacheTTL, logger)
	}

	loadCtx, cancelLoad := context.WithTimeout(rootCtx, 10*time.Second)
	doctors, err := roster.Load(loadCtx, src)
	cancelLoad()
	if err != nil {
		logger.Error("roster load error", "error", err)
		os.Exit(1)
	}
	logger.Info("roster loaded", "doctors", doctors.Len())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	chatMetrics := metrics.NewChatMetrics(reg)

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	router := api.NewRouter(api.RouterConfig{
		Service:            assistant.NewService(doctors, chatMetrics, logger),
		Metrics:            chatMetrics,
		MetricsHandler:     metricsHandler,
		Dependencies:       deps,
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
		Env:                cfg.Env,
		Version:            version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}

	logger.Info("api-server stopped")
}
