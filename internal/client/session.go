package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/doctor-booking-assistant/internal/appointment"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

const (
	greeting = "Hello! I'm your AI doctor booking assistant. I can help you find available doctors, schedule appointments, or check your existing bookings. How can I help you today?"

	// Apology is appended when the backend could not be reached or
	// answered with something unreadable.
	Apology = "I apologize, but I encountered an error. Please try again."
)

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("a message is already being sent")
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message      string                    `json:"message"`
	Appointments []appointment.Appointment `json:"appointments"`
}

type chatResponse struct {
	Reply           string            `json:"reply"`
	Action          string            `json:"action,omitempty"`
	AppointmentData *appointment.Data `json:"appointmentData,omitempty"`
}

// Session is one chat window: the message log and the appointments the user
// has booked so far. All appointment state lives here; the server is stateless.
type Session struct {
	baseURL string
	http    *http.Client
	newID   func() string

	mu           sync.Mutex
	inFlight     bool
	messages     []Message
	appointments []appointment.Appointment
}

type Option func(*Session)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.http = c }
}

// WithIDGenerator replaces the appointment id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

func NewSession(baseURL string, opts ...Option) *Session {
	s := &Session{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		newID:    uuid.NewString,
		messages: []Message{{Role: RoleAssistant, Content: greeting}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send posts text with the current appointments and records the outcome in
// the log. Only one Send may run at a time. Transport failures are not
// returned: they end up as an assistant apology, and nothing is retried.
func (s *Session) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return Message{}, ErrRequestInFlight
	}
	s.inFlight = true
	s.messages = append(s.messages, Message{Role: RoleUser, Content: text})
	snapshot := append([]appointment.Appointment{}, s.appointments...)
	s.mu.Unlock()

	resp, err := s.post(ctx, chatRequest{Message: text, Appointments: snapshot})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		reply := Message{Role: RoleAssistant, Content: Apology}
		s.messages = append(s.messages, reply)
		return reply, nil
	}

	reply := Message{Role: RoleAssistant, Content: resp.Reply}
	s.messages = append(s.messages, reply)

	if resp.Action == appointment.ActionBook && resp.AppointmentData != nil {
		appt := appointment.FromBooking(*resp.AppointmentData, s.newID())
		s.appointments = append(s.appointments, appt)
		s.messages = append(s.messages, Message{
			Role:    RoleSystem,
			Content: fmt.Sprintf("✓ Appointment booked successfully with %s on %s at %s!", appt.DoctorName, appt.Date, appt.Time),
		})
	}

	return reply, nil
}

// post returns an error for anything that is not a readable chat reply. A 500
// carries the server's apology, which is shown as is.
func (s *Session) post(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send chat request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode chat response (status %d): %w", res.StatusCode, err)
	}
	if out.Reply == "" {
		return nil, fmt.Errorf("chat response without reply (status %d)", res.StatusCode)
	}
	if res.StatusCode != http.StatusOK {
		out.Action, out.AppointmentData = "", nil
	}
	return &out, nil
}

// FetchRoster reads the doctors the server answers from.
func (s *Session) FetchRoster(ctx context.Context) ([]roster.Doctor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/doctors", nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}

	res, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster: unexpected status %d", res.StatusCode)
	}

	var out struct {
		Doctors []roster.Doctor `json:"doctors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return out.Doctors, nil
}

// Messages returns a copy of the log, oldest first.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// Appointments returns a copy of the booked appointments.
func (s *Session) Appointments() []appointment.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]appointment.Appointment(nil), s.appointments...)
}
