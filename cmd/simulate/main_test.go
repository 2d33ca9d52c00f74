package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/hackgods/doctor-booking-assistant/internal/api"
	"github.com/hackgods/doctor-booking-assistant/internal/assistant"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

func TestOperationMetricsStats(t *testing.T) {
	var om OperationMetrics
	for i := 1; i <= 20; i++ {
		om.Record(time.Duration(i)*time.Millisecond, i%5 != 0)
	}

	assert.Equal(t, int64(20), om.Total)
	assert.Equal(t, int64(16), om.Success)
	assert.Equal(t, int64(4), om.Error)

	avg, min, max, p50, p95 := om.Stats()
	assert.Equal(t, 10500*time.Microsecond, avg)
	assert.Equal(t, time.Millisecond, min)
	assert.Equal(t, 20*time.Millisecond, max)
	assert.Equal(t, 11*time.Millisecond, p50)
	assert.Equal(t, 20*time.Millisecond, p95)
}

func TestOperationMetricsEmpty(t *testing.T) {
	var om OperationMetrics
	avg, min, max, p50, p95 := om.Stats()
	assert.Zero(t, avg+min+max+p50+p95)
}

func TestValidateConfig(t *testing.T) {
	ok := SimConfig{Duration: time.Second, Workers: 1, TurnsPerSession: 1}
	assert.NoError(t, validateConfig(ok))

	bad := ok
	bad.Workers = 0
	assert.Error(t, validateConfig(bad))

	bad = ok
	bad.TurnsPerSession = 0
	assert.Error(t, validateConfig(bad))
}

func TestSimulatorRun(t *testing.T) {
	logger := logging.New("error")
	m := metrics.NewChatMetrics(prometheus.NewRegistry())
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Service: assistant.NewService(roster.Default(), m, logger),
		Metrics: m,
		Logger:  logger,
	}))
	defer srv.Close()

	sim := &Simulator{
		config: SimConfig{
			APIBaseURL:      srv.URL,
			Duration:        300 * time.Millisecond,
			Workers:         3,
			TurnsPerSession: 4,
			Seed:            1,
		},
		doctors: roster.DefaultDoctors(),
		client:  &http.Client{Timeout: time.Second},
		metrics: newMetrics(),
		logger:  logger,
	}
	sim.Run(context.Background())

	var total, failed int64
	for _, om := range sim.metrics.byKind {
		total += atomic.LoadInt64(&om.Total)
		failed += atomic.LoadInt64(&om.Error)
	}
	assert.Positive(t, total)
	assert.Zero(t, failed)
	assert.Positive(t, atomic.LoadInt64(&sim.metrics.Sessions))
}
