package api

import (
	"github.com/hackgods/doctor-booking-assistant/internal/appointment"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

// ChatRequest is the body of POST /api/chat. Message is required but may be
// empty; Appointments is the caller's current list and may be omitted.
type ChatRequest struct {
	Message      *string                   `json:"message"`
	Appointments []appointment.Appointment `json:"appointments"`
}

// ApologyResponse is the only body returned on a failed chat request.
type ApologyResponse struct {
	Reply string `json:"reply"`
}

type DoctorsResponse struct {
	Doctors []roster.Doctor `json:"doctors"`
	Count   int             `json:"count"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
