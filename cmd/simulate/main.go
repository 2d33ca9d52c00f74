package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/doctor-booking-assistant/internal/client"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

type SimConfig struct {
	APIBaseURL      string
	Duration        time.Duration
	Workers         int
	TurnsPerSession int
	Seed            uint64
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.Latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = latencies[percentileIndex(len(latencies), 50)]
	p95 = latencies[percentileIndex(len(latencies), 95)]

	return avg, min, max, p50, p95
}

func percentileIndex(n, p int) int {
	idx := n * p / 100
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Metrics keeps one OperationMetrics per message kind.
type Metrics struct {
	byKind   map[Kind]*OperationMetrics
	Sessions int64
	Booked   int64
}

func newMetrics() *Metrics {
	m := &Metrics{byKind: make(map[Kind]*OperationMetrics, len(kinds))}
	for _, k := range kinds {
		m.byKind[k] = &OperationMetrics{}
	}
	return m
}

type Simulator struct {
	config  SimConfig
	doctors []roster.Doctor
	client  *http.Client
	metrics *Metrics
	logger  *logging.Logger
}

func main() {
	logger := logging.New(getEnv("LOG_LEVEL", "info"))
	logger.Info("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger.Info("config",
		"api", cfg.APIBaseURL,
		"duration", cfg.Duration,
		"workers", cfg.Workers,
		"turns_per_session", cfg.TurnsPerSession,
	)

	httpClient := &http.Client{Timeout: 10 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	doctors, err := client.NewSession(cfg.APIBaseURL, client.WithHTTPClient(httpClient)).FetchRoster(ctx)
	cancel()
	if err != nil {
		logger.Error("load roster", "error", err)
		os.Exit(1)
	}
	if len(doctors) == 0 {
		logger.Error("load roster", "error", roster.ErrEmptyRoster)
		os.Exit(1)
	}
	logger.Info("roster loaded", "doctors", len(doctors))

	sim := &Simulator{
		config:  cfg,
		doctors: doctors,
		client:  httpClient,
		metrics: newMetrics(),
		logger:  logger,
	}

	sim.Run(context.Background())
	sim.PrintReport()
}

func loadConfig() SimConfig {
	cfg := SimConfig{
		APIBaseURL:      getEnv("SIM_API_BASE_URL", "http://localhost:8080"),
		Duration:        getDuration("SIM_DURATION", 30*time.Second),
		Workers:         getInt("SIM_WORKERS", 10),
		TurnsPerSession: getInt("SIM_TURNS_PER_SESSION", 6),
		Seed:            uint64(getInt("SIM_SEED", 0)),
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return errors.New("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return errors.New("SIM_DURATION must be > 0")
	}
	if cfg.TurnsPerSession <= 0 {
		return errors.New("SIM_TURNS_PER_SESSION must be > 0")
	}
	return nil
}

func (s *Simulator) Run(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, s.config.Duration)
	defer cancel()

	s.logger.Info("starting simulation", "duration", s.config.Duration, "workers", s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	s.logger.Info("simulation complete")
}

// worker runs sessions back to back. Each session is a fresh chat window
// that carries its own appointments between turns.
func (s *Simulator) worker(ctx context.Context, workerID int) {
	sc := newScript(s.config.Seed+uint64(workerID), s.doctors)

	for ctx.Err() == nil {
		sessionID := uuid.NewString()
		session := client.NewSession(s.config.APIBaseURL, client.WithHTTPClient(s.client))
		atomic.AddInt64(&s.metrics.Sessions, 1)

		for turn := 0; turn < s.config.TurnsPerSession && ctx.Err() == nil; turn++ {
			s.turn(ctx, session, sc, sessionID)
		}
	}
}

func (s *Simulator) turn(ctx context.Context, session *client.Session, sc *script, sessionID string) {
	k := sc.kind()
	msg := sc.message(k)
	before := len(session.Appointments())

	start := time.Now()
	reply, err := session.Send(ctx, msg)
	latency := time.Since(start)

	// a turn cut off by the end of the run is not a server failure
	if ctx.Err() != nil {
		return
	}

	success := err == nil && reply.Content != client.Apology
	s.metrics.byKind[k].Record(latency, success)
	if !success {
		s.logger.Debug("turn failed", "session_id", sessionID, "kind", k, "message", msg, "error", err)
	}

	if booked := len(session.Appointments()) - before; booked > 0 {
		atomic.AddInt64(&s.metrics.Booked, int64(booked))
	}
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Printf("Sessions: %d\n", atomic.LoadInt64(&s.metrics.Sessions))
	fmt.Printf("Appointments booked: %d\n", atomic.LoadInt64(&s.metrics.Booked))
	fmt.Println()

	for _, k := range kinds {
		printOperationReport(string(k), s.metrics.byKind[k])
	}
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	failed := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
