package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/doctor-booking-assistant/internal/api"
	"github.com/hackgods/doctor-booking-assistant/internal/assistant"
	"github.com/hackgods/doctor-booking-assistant/internal/client"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

func TestRunConversation(t *testing.T) {
	logger := logging.New("error")
	m := metrics.NewChatMetrics(prometheus.NewRegistry())
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Service: assistant.NewService(roster.Default(), m, logger),
		Metrics: m,
		Logger:  logger,
	}))
	defer srv.Close()

	session := client.NewSession(srv.URL)
	in := strings.NewReader("book dr. sarah johnson tomorrow at 9:00 am\n\nappointments\nquit\nhello\n")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), session, in, &out, 5*time.Second))

	text := out.String()
	assert.Contains(t, text, "Available doctors:")
	assert.Contains(t, text, "Dr. Michael Chen (Cardiologist) 4.9  10:00 AM, 1:00 PM, 3:00 PM")
	assert.Contains(t, text, "assistant: Hello! I'm your AI doctor booking assistant.")
	assert.Contains(t, text, "✓ Appointment booked successfully with Dr. Sarah Johnson on Tomorrow at 9:00 am!")
	assert.Contains(t, text, "Tomorrow 9:00 am  Dr. Sarah Johnson (General Physician)  Confirmed")

	// nothing after quit is sent
	assert.Len(t, session.Messages(), 4)
	assert.Len(t, session.Appointments(), 1)
}

func TestRunServerDown(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	session := client.NewSession(url)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), session, strings.NewReader("hi\n"), &out, time.Second))

	text := out.String()
	assert.Contains(t, text, "(could not load doctors:")
	assert.Contains(t, text, "assistant: I apologize, but I encountered an error. Please try again.")
}
