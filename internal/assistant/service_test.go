package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/doctor-booking-assistant/internal/appointment"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

func newTestService() *Service {
	return NewService(roster.Default(), metrics.NewChatMetrics(prometheus.NewRegistry()), logging.New("error"))
}

func TestServiceReplyBooks(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Reply(context.Background(), "book a dermatologist at 9:30 am", nil)
	require.NoError(t, err)
	assert.Equal(t, appointment.ActionBook, resp.Action)
	require.NotNil(t, resp.AppointmentData)
	assert.Equal(t, "Dr. Emily Rodriguez", resp.AppointmentData.DoctorName)
}

func TestServiceReplyUsesCallerAppointments(t *testing.T) {
	svc := newTestService()
	appts := []appointment.Appointment{{ID: "1", DoctorName: "Dr. X", Specialty: "Y", Date: "Today", Time: "1 pm", Status: appointment.StatusConfirmed}}

	svc.classify = func(string, *roster.Roster) Classification {
		return Classification{Intent: IntentViewAppointments}
	}

	resp, err := svc.Reply(context.Background(), "what have I got", appts)
	require.NoError(t, err)
	assert.Contains(t, resp.Reply, "You have 1 appointment(s)")
	assert.Contains(t, resp.Reply, "Today at 1 pm")
	assert.Empty(t, resp.Action)
}

func TestServiceRecoversPanics(t *testing.T) {
	svc := newTestService()
	svc.generate = func(Classification, []appointment.Appointment, *roster.Roster) Response {
		panic("template exploded")
	}

	resp, err := svc.Reply(context.Background(), "hello", nil)
	assert.True(t, errors.Is(err, ErrReplyFailed))
	assert.Empty(t, resp.Reply)
}

func TestServiceRejectsCancelledContext(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reply(ctx, "hello", nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestServiceNilMetricsAndLogger(t *testing.T) {
	svc := NewService(roster.Default(), nil, nil)

	resp, err := svc.Reply(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, helpMenu, resp.Reply)
	assert.Equal(t, 4, svc.Roster().Len())
}
