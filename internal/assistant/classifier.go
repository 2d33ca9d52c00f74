package assistant

import (
	"regexp"
	"strings"

	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

type Intent string

const (
	IntentBook              Intent = "book"
	IntentCheckAvailability Intent = "check_availability"
	IntentListDoctors       Intent = "list_doctors"
	IntentViewAppointments  Intent = "view_appointments"
	IntentGeneral           Intent = "general"
)

// Details holds the slots extracted for an intent. Empty strings and a nil
// Doctor mean the slot was not found; which fields are filled depends on the
// intent.
type Details struct {
	Doctor    *roster.Doctor
	Time      string
	Date      string
	Specialty string
}

type Classification struct {
	Intent  Intent
	Details Details
}

var (
	clockTimePattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)`)
	hourTimePattern  = regexp.MustCompile(`(?i)\d{1,2}\s*(?:am|pm)`)
	dayPattern       = regexp.MustCompile(`(?i)(?:tomorrow|today|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
)

// rule fires when the lower-cased message contains any of its keywords.
type rule struct {
	intent   Intent
	keywords []string
	extract  func(lower string, doctors []roster.Doctor) Details
}

// rules are evaluated in order and the first match wins, so "book an
// available doctor" is a booking, not an availability check.
var rules = []rule{
	{
		intent:   IntentBook,
		keywords: []string{"book", "schedule", "appointment"},
		extract:  extractBooking,
	},
	{
		intent:   IntentCheckAvailability,
		keywords: []string{"available", "availability", "free"},
		extract:  extractSpecialty,
	},
	{
		intent:   IntentListDoctors,
		keywords: []string{"list", "show me", "who are"},
	},
	{
		intent:   IntentViewAppointments,
		keywords: []string{"my appointment", "my booking"},
	},
}

// Classify maps a free-text message to an intent. It never fails: a message
// that matches nothing is IntentGeneral.
func Classify(message string, r *roster.Roster) Classification {
	lower := strings.ToLower(message)

	for _, rl := range rules {
		if !containsAny(lower, rl.keywords) {
			continue
		}
		c := Classification{Intent: rl.intent}
		if rl.extract != nil {
			c.Details = rl.extract(lower, r.Doctors())
		}
		return c
	}

	return Classification{Intent: IntentGeneral}
}

func extractBooking(lower string, doctors []roster.Doctor) Details {
	d := Details{
		Time: matchTime(lower),
		Date: dayPattern.FindString(lower),
	}
	for i := range doctors {
		if strings.Contains(lower, strings.ToLower(doctors[i].Name)) ||
			strings.Contains(lower, strings.ToLower(doctors[i].Specialty)) {
			d.Doctor = &doctors[i]
			break
		}
	}
	return d
}

func extractSpecialty(lower string, doctors []roster.Doctor) Details {
	for _, doc := range doctors {
		if strings.Contains(lower, strings.ToLower(doc.Specialty)) {
			return Details{Specialty: doc.Specialty}
		}
	}
	return Details{}
}

// matchTime prefers "2:30 pm" over "2 pm" so the minutes are not dropped.
func matchTime(lower string) string {
	if t := clockTimePattern.FindString(lower); t != "" {
		return t
	}
	return hourTimePattern.FindString(lower)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
