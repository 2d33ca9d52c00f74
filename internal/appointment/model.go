package appointment

import (
	"unicode"
	"unicode/utf8"
)

type Status string

// StatusConfirmed is the only status ever produced.
const StatusConfirmed Status = "Confirmed"

// ActionBook tells the caller to append the attached appointment.
const ActionBook = "book_appointment"

// Appointment is owned by the caller. The backend only reads the list it is
// sent with each chat message.
type Appointment struct {
	ID         string `json:"id"`
	DoctorName string `json:"doctorName"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     Status `json:"status"`
}

// Data is the appointmentData payload attached to a book_appointment action.
type Data struct {
	DoctorName string `json:"doctorName"`
	Specialty  string `json:"specialty"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// FromBooking builds the appointment a caller appends after a booking action.
// Nothing checks that the slot is free or that the same booking was not
// already added.
func FromBooking(data Data, id string) Appointment {
	return Appointment{
		ID:         id,
		DoctorName: data.DoctorName,
		Specialty:  data.Specialty,
		Date:       data.Date,
		Time:       data.Time,
		Status:     StatusConfirmed,
	}
}

// DisplayDate upper-cases the first character, "monday" -> "Monday".
// An empty date means the booking defaults to tomorrow.
func DisplayDate(date string) string {
	if date == "" {
		return "Tomorrow"
	}
	first, size := utf8.DecodeRuneInString(date)
	return string(unicode.ToUpper(first)) + date[size:]
}
