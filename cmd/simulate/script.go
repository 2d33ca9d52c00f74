package main

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

// Kind is the intent a scripted message is written to trigger.
type Kind string

const (
	KindBook         Kind = "book"
	KindBookNoTime   Kind = "book_no_time"
	KindAvailability Kind = "check_availability"
	KindList         Kind = "list_doctors"
	KindGeneral      Kind = "general"
)

var kinds = []Kind{KindBook, KindBookNoTime, KindAvailability, KindList, KindGeneral}

var days = []string{"today", "tomorrow", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	bookOpeners  = []string{"Book", "Please schedule", "I'd like to book", "Can you schedule"}
	availPhrases = []string{"Who is available", "Any %s free", "Check availability for a %s", "Is a %s available"}
	listPhrases  = []string{"List all doctors", "Show me the doctors", "Who are your doctors?"}
	smallTalk    = []string{"hello", "thanks!", "what can you do?", "hi there"}
)

// script writes chat messages against a roster. A Faker is not safe for
// concurrent use, so every worker owns one script.
type script struct {
	f       *gofakeit.Faker
	doctors []roster.Doctor
}

func newScript(seed uint64, doctors []roster.Doctor) *script {
	return &script{f: gofakeit.New(seed), doctors: doctors}
}

func (s *script) kind() Kind {
	return kinds[s.f.Number(0, len(kinds)-1)]
}

func (s *script) message(k Kind) string {
	switch k {
	case KindBook:
		d := s.doctor()
		return fmt.Sprintf("%s %s %s at %s", s.pick(bookOpeners), s.target(d), s.pick(days), s.slot(d))
	case KindBookNoTime:
		return fmt.Sprintf("%s %s %s", s.pick(bookOpeners), s.doctor().Name, s.pick(days))
	case KindAvailability:
		phrase := s.pick(availPhrases)
		if strings.Contains(phrase, "%s") {
			return fmt.Sprintf(phrase, strings.ToLower(s.doctor().Specialty))
		}
		return phrase + " " + s.pick(days) + "?"
	case KindList:
		return s.pick(listPhrases)
	default:
		return s.pick(smallTalk)
	}
}

func (s *script) doctor() roster.Doctor {
	return s.doctors[s.f.Number(0, len(s.doctors)-1)]
}

// target names the doctor either directly or by specialty.
func (s *script) target(d roster.Doctor) string {
	if s.f.Bool() {
		return d.Name
	}
	return "a " + strings.ToLower(d.Specialty)
}

// slot is one of the doctor's listed slots, or an hour in short form
// half of the time. Neither is checked against availability by the server.
func (s *script) slot(d roster.Doctor) string {
	if len(d.Availability) > 0 && s.f.Bool() {
		return d.Availability[s.f.Number(0, len(d.Availability)-1)]
	}
	return fmt.Sprintf("%d%s", s.f.Number(1, 12), s.pick([]string{"am", "pm", " PM"}))
}

func (s *script) pick(options []string) string {
	return options[s.f.Number(0, len(options)-1)]
}
