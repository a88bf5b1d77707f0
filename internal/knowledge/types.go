// Package knowledge holds the static read-only knowledge base: college
// facts, programs with per-semester subjects, the faculty table, upcoming
// events, and the intent catalog. Everything is loaded once at startup
// and never mutated afterwards.
package knowledge

// Info holds general college facts keyed by topic. Map-valued sections use
// Field() lookups with documented defaults so a missing key never fails a
// response.
type Info struct {
	Name        string            `json:"name"`
	Address     string            `json:"address"`
	Website     string            `json:"website"`
	Timings     string            `json:"timings"`
	Departments []string          `json:"departments"`
	Facilities  []string          `json:"facilities"`
	Contact     map[string]string `json:"contact"`
	Library     map[string]string `json:"library"`
	Hostel      map[string]string `json:"hostel"`
	Transport   map[string]string `json:"transport"`
	Admission   map[string]string `json:"admission"`
	Scholarship map[string]string `json:"scholarship"`
	Placements  map[string]string `json:"placements"`
	Internship  map[string]string `json:"internship"`
	Exams       map[string]string `json:"exams"`
	Attendance  map[string]string `json:"attendance"`
	Canteen     map[string]string `json:"canteen"`
	Alumni      map[string]string `json:"alumni"`
	Sports      ListSection       `json:"sports"`
	Clubs       ListSection       `json:"clubs"`
	Labs        ListSection       `json:"labs"`
}

// ListSection is a section whose payload is a plain list.
type ListSection struct {
	Available []string `json:"available"`
}

// Program describes one degree program: fees, duration, eligibility,
// specializations and the subject list per semester numeral ("1".."8").
type Program struct {
	Duration        string              `json:"duration"`
	Fees            string              `json:"fees"`
	Eligibility     string              `json:"eligibility"`
	Specializations []string            `json:"specializations"`
	Semesters       map[string][]string `json:"semesters"`
}

// Principal is the college principal record.
type Principal struct {
	Name           string `json:"name"`
	Qualifications string `json:"qualifications"`
	Email          string `json:"email"`
}

// FacultyMember is one row of the faculty table.
type FacultyMember struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Dept        string `json:"dept"`
}

// FacultyTable is the faculty file layout.
type FacultyTable struct {
	Principal *Principal      `json:"principal,omitempty"`
	Faculty   []FacultyMember `json:"faculty"`
}

// Event is one upcoming event.
type Event struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Location string `json:"location"`
}

// EventsTable is the events file layout.
type EventsTable struct {
	Upcoming []Event `json:"upcoming"`
}

// Field reads a key from a map-valued section, substituting the given
// default when the section or key is absent.
func Field(section map[string]string, key, def string) string {
	if section == nil {
		return def
	}
	if v, ok := section[key]; ok && v != "" {
		return v
	}
	return def
}
