package assistant

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/hackgods/doctor-booking-assistant/internal/appointment"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

var ErrReplyFailed = errors.New("assistant could not produce a reply")

// Service answers chat messages against the roster loaded at startup. It keeps
// no per-caller state, so one instance serves every request.
type Service struct {
	roster  *roster.Roster
	metrics *metrics.ChatMetrics
	logger  *logging.Logger

	classify func(string, *roster.Roster) Classification
	generate func(Classification, []appointment.Appointment, *roster.Roster) Response
}

func NewService(r *roster.Roster, m *metrics.ChatMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		roster:   r,
		metrics:  m,
		logger:   logger,
		classify: Classify,
		generate: Generate,
	}
}

// Roster returns the roster replies are rendered from.
func (s *Service) Roster() *roster.Roster {
	return s.roster
}

// Reply classifies message and renders the answer. A fault while doing so is
// returned as ErrReplyFailed instead of escaping to the caller.
func (s *Service) Reply(ctx context.Context, message string, appointments []appointment.Appointment) (resp Response, err error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("chat reply panicked", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))
			s.metrics.ObserveFailure("panic")
			resp, err = Response{}, fmt.Errorf("%w: %v", ErrReplyFailed, rec)
		}
	}()

	c := s.classify(message, s.roster)
	resp = s.generate(c, appointments, s.roster)

	s.metrics.ObserveReply(string(c.Intent), resp.Action, time.Since(start))
	s.logger.Debug("chat reply",
		"intent", c.Intent,
		"action", resp.Action,
		"appointments", len(appointments),
	)

	return resp, nil
}
