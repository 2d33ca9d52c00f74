package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hackgods/doctor-booking-assistant/internal/assistant"
	"github.com/hackgods/doctor-booking-assistant/internal/metrics"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

const maxChatBodyBytes = 1 << 20

var (
	errMissingMessage = errors.New("chat request has no message")
	errTrailingData   = errors.New("chat request has data after the JSON body")
)

// chatHandler answers POST /api/chat. Every failure, including a body that
// does not parse, is answered with the apology payload and a 500.
func chatHandler(svc *assistant.Service, m *metrics.ChatMetrics, logger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		req, err := decodeChatRequest(http.MaxBytesReader(w, r.Body, maxChatBodyBytes))
		if err != nil {
			logger.Warn("chat request body rejected", "error", err, "request_id", requestID)
			m.ObserveFailure("bad_request")
			writeApology(w)
			return
		}

		resp, err := svc.Reply(r.Context(), *req.Message, req.Appointments)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				m.ObserveFailure("canceled")
			case errors.Is(err, assistant.ErrReplyFailed):
				// counted by the service
			default:
				m.ObserveFailure("internal")
			}
			logger.Error("chat reply failed", "error", err, "request_id", requestID)
			writeApology(w)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// decodeChatRequest reads exactly one JSON object carrying a non-null message.
func decodeChatRequest(body io.Reader) (ChatRequest, error) {
	dec := json.NewDecoder(body)

	var req ChatRequest
	if err := dec.Decode(&req); err != nil {
		return ChatRequest{}, fmt.Errorf("decode chat request: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ChatRequest{}, errTrailingData
	}
	if req.Message == nil {
		return ChatRequest{}, errMissingMessage
	}
	return req, nil
}

// doctorsHandler serves the roster the assistant answers from, so the UI
// never needs its own copy.
func doctorsHandler(svc *assistant.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors := svc.Roster().Doctors()
		writeJSON(w, http.StatusOK, DoctorsResponse{Doctors: doctors, Count: len(doctors)})
	}
}
