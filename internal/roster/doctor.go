package roster

// Doctor is a bookable doctor. Availability keeps the display order of slots.
type Doctor struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Specialty    string   `json:"specialty"`
	Availability []string `json:"availability"`
	Rating       float64  `json:"rating"`
}

func (d Doctor) clone() Doctor {
	d.Availability = append([]string(nil), d.Availability...)
	return d
}

// defaultDoctors is the roster shipped with the UI.
var defaultDoctors = []Doctor{
	{ID: "1", Name: "Dr. Sarah Johnson", Specialty: "General Physician", Availability: []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"}, Rating: 4.8},
	{ID: "2", Name: "Dr. Michael Chen", Specialty: "Cardiologist", Availability: []string{"10:00 AM", "1:00 PM", "3:00 PM"}, Rating: 4.9},
	{ID: "3", Name: "Dr. Emily Rodriguez", Specialty: "Dermatologist", Availability: []string{"9:30 AM", "11:30 AM", "2:30 PM", "4:30 PM"}, Rating: 4.7},
	{ID: "4", Name: "Dr. James Wilson", Specialty: "Pediatrician", Availability: []string{"8:00 AM", "10:00 AM", "1:00 PM", "3:00 PM"}, Rating: 4.9},
}

// DefaultDoctors returns a fresh copy of the built-in roster.
func DefaultDoctors() []Doctor {
	return cloneAll(defaultDoctors)
}

func cloneAll(in []Doctor) []Doctor {
	out := make([]Doctor, len(in))
	for i, d := range in {
		out[i] = d.clone()
	}
	return out
}
