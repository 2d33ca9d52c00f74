package assistant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hackgods/doctor-booking-assistant/internal/appointment"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
)

const helpMenu = "I can help you with:\n" +
	"• Booking doctor appointments\n" +
	"• Checking doctor availability\n" +
	"• Viewing your scheduled appointments\n" +
	"• Finding specialists\n\n" +
	"What would you like to do?"

const noAppointmentsReply = "You don't have any appointments scheduled yet. Would you like to book one?"

// Response is the body of a successful chat reply.
type Response struct {
	Reply           string            `json:"reply"`
	Action          string            `json:"action,omitempty"`
	AppointmentData *appointment.Data `json:"appointmentData,omitempty"`
}

// Generate renders the reply for a classification. It has no side effects;
// a booking is only signalled through Action for the caller to carry out.
func Generate(c Classification, appointments []appointment.Appointment, r *roster.Roster) Response {
	switch c.Intent {
	case IntentBook:
		return bookingReply(c.Details, r)
	case IntentCheckAvailability:
		return availabilityReply(c.Details.Specialty, r)
	case IntentListDoctors:
		return listDoctorsReply(r)
	case IntentViewAppointments:
		return appointmentsReply(appointments)
	default:
		return Response{Reply: helpMenu}
	}
}

func bookingReply(d Details, r *roster.Roster) Response {
	switch {
	case d.Doctor != nil && d.Time != "":
		// the reply echoes the date as typed; only the payload is capitalized
		date := d.Date
		if date == "" {
			date = "Tomorrow"
		}
		return Response{
			Reply: fmt.Sprintf("Perfect! I'm booking an appointment with %s (%s) for %s at %s. You'll receive a confirmation shortly.",
				d.Doctor.Name, d.Doctor.Specialty, date, d.Time),
			Action: appointment.ActionBook,
			AppointmentData: &appointment.Data{
				DoctorName: d.Doctor.Name,
				Specialty:  d.Doctor.Specialty,
				Date:       appointment.DisplayDate(date),
				Time:       d.Time,
			},
		}
	case d.Doctor != nil:
		return Response{
			Reply: fmt.Sprintf("I can help you book with %s. They have availability at: %s. Which time works best for you?",
				d.Doctor.Name, strings.Join(d.Doctor.Availability, ", ")),
		}
	default:
		var lines []string
		r.Each(func(doc roster.Doctor) bool {
			lines = append(lines, fmt.Sprintf("• %s - %s (Rating: %s)", doc.Name, doc.Specialty, formatRating(doc.Rating)))
			return true
		})
		return Response{
			Reply: "I can help you book an appointment. Here are our available doctors:\n\n" +
				strings.Join(lines, "\n") +
				"\n\nWhich doctor would you like to see?",
		}
	}
}

func availabilityReply(specialty string, r *roster.Roster) Response {
	label := specialty
	if label == "" {
		label = "all doctors"
	}

	var blocks []string
	r.Each(func(doc roster.Doctor) bool {
		if specialty == "" || doc.Specialty == specialty {
			blocks = append(blocks, fmt.Sprintf("%s: %s", doc.Name, strings.Join(doc.Availability, ", ")))
		}
		return true
	})

	return Response{
		Reply: fmt.Sprintf("Here's the availability for %s:\n\n%s\n\nWould you like to book an appointment?",
			label, strings.Join(blocks, "\n\n")),
	}
}

func listDoctorsReply(r *roster.Roster) Response {
	var blocks []string
	r.Each(func(doc roster.Doctor) bool {
		blocks = append(blocks, fmt.Sprintf("• %s - %s\n  Rating: %s/5 | %d slots available",
			doc.Name, doc.Specialty, formatRating(doc.Rating), len(doc.Availability)))
		return true
	})

	return Response{
		Reply: fmt.Sprintf("We have %d excellent doctors available:\n\n%s\n\nWho would you like to book with?",
			r.Len(), strings.Join(blocks, "\n\n")),
	}
}

func appointmentsReply(appointments []appointment.Appointment) Response {
	if len(appointments) == 0 {
		return Response{Reply: noAppointmentsReply}
	}

	blocks := make([]string, 0, len(appointments))
	for _, a := range appointments {
		blocks = append(blocks, fmt.Sprintf("• %s at %s\n  %s - %s\n  Status: %s",
			a.Date, a.Time, a.DoctorName, a.Specialty, a.Status))
	}

	return Response{
		Reply: fmt.Sprintf("You have %d appointment(s):\n\n%s", len(appointments), strings.Join(blocks, "\n\n")),
	}
}

// formatRating prints 4.8 as "4.8" and 5 as "5".
func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
