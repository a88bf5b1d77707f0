package engine

import (
	"strings"
	"testing"

	"github.com/collegechat/collegechat-go/internal/knowledge"
)

func newTestResponder() *Responder {
	return NewResponder(fixtureBase(), fixtureCatalog(), firstChoice)
}

func generate(r *Responder, intent string) string {
	return r.Generate(Resolution{Intent: intent, Stage: StageExact, Score: 100}, EntitySet{}, "")
}

func TestGenerate_Sections(t *testing.T) {
	r := newTestResponder()

	tests := []struct {
		intent string
		wants  []string
	}{
		{"college_timings", []string{"Evergreen Institute of Technology", "9:00 AM"}},
		{"departments", []string{"- CSE", "- Mechanical"}},
		{"facilities", []string{"- Library", "- Sports complex"}},
		{"library", []string{"Timings: 8 AM to 8 PM", "Collection: 50,000+ volumes"}},
		{"hostel", []string{"Boys hostel: 400 beds", "Fees: Rs 60,000 per year"}},
		{"placements", []string{"Placement rate: 92%", "Infosys"}},
		{"contact", []string{"Phone: +91-1234-567890", "Address: 12 College Road"}},
		{"events", []string{"TechFest 2026", "Main Auditorium"}},
		{"sports", []string{"- Cricket", "- Basketball"}},
	}
	for _, tt := range tests {
		got := generate(r, tt.intent)
		for _, want := range tt.wants {
			if !strings.Contains(got, want) {
				t.Errorf("Generate(%s) = %q, missing %q", tt.intent, got, want)
			}
		}
	}
}

func TestGenerate_AbsentSection(t *testing.T) {
	r := newTestResponder()

	// The fixture carries no transport data.
	got := generate(r, "transport")
	if got != "Transport details are not available right now." {
		t.Errorf("Generate(transport) = %q", got)
	}

	got = generate(r, "clubs")
	if got != "No club information available right now." {
		t.Errorf("Generate(clubs) = %q", got)
	}
}

func TestGenerate_CourseCatalogSplit(t *testing.T) {
	r := newTestResponder()

	got := generate(r, "courses")
	ugIdx := strings.Index(got, "Undergraduate:")
	pgIdx := strings.Index(got, "Postgraduate:")
	if ugIdx < 0 || pgIdx < 0 || ugIdx > pgIdx {
		t.Fatalf("catalog listing misordered: %q", got)
	}
	if !strings.Contains(got, "MBA (Master of Business Administration)") {
		t.Errorf("postgraduate program missing: %q", got)
	}
}

func TestGenerate_ProgramDetail(t *testing.T) {
	r := newTestResponder()

	got := r.Generate(Resolution{Intent: "courses", Stage: StageOverride, Score: 100},
		EntitySet{}, "Computer Science Engineering (CSE)")
	for _, want := range []string{"Duration: 4 years", "Fees: Rs 1,20,000 per year", "Eligibility: 10+2 with PCM"} {
		if !strings.Contains(got, want) {
			t.Errorf("program detail missing %q: %q", want, got)
		}
	}

	got = r.Generate(Resolution{Intent: "courses", Stage: StageOverride, Score: 100},
		EntitySet{Semester: "3"}, "Computer Science Engineering (CSE)")
	if !strings.Contains(got, "Data Structures") || !strings.Contains(got, "Discrete Mathematics") {
		t.Errorf("semester listing incomplete: %q", got)
	}

	got = r.Generate(Resolution{Intent: "courses", Stage: StageOverride, Score: 100},
		EntitySet{Semester: "7"}, "Computer Science Engineering (CSE)")
	if !strings.Contains(got, "don't have the subject list") {
		t.Errorf("missing-semester reply = %q", got)
	}
}

func TestGenerate_Fees(t *testing.T) {
	r := newTestResponder()

	got := r.Generate(Resolution{Intent: "fees", Stage: StageClassifier, Score: 90},
		EntitySet{}, "Mechanical Engineering")
	if got != "The fee for Mechanical Engineering is Rs 1,00,000 per year." {
		t.Errorf("department fee reply = %q", got)
	}

	got = generate(r, "fees")
	if !strings.Contains(got, "Computer Science Engineering (CSE): Rs 1,20,000 per year") {
		t.Errorf("fee table missing CSE row: %q", got)
	}
}

func TestGenerate_Faculty(t *testing.T) {
	r := newTestResponder()

	got := generate(r, "faculty")
	if !strings.Contains(got, "Dr. Anil Kumar, Professor (CSE)") {
		t.Errorf("faculty listing = %q", got)
	}

	got = r.Generate(Resolution{Intent: "faculty", Stage: StageClassifier, Score: 90},
		EntitySet{FacultyName: "Prof. Sunita Rao"}, "")
	if got != "Prof. Sunita Rao is Associate Professor in the ECE department." {
		t.Errorf("single faculty reply = %q", got)
	}

	got = r.Generate(Resolution{Intent: "faculty", Stage: StageClassifier, Score: 90},
		EntitySet{FacultyName: "principal"}, "")
	if !strings.Contains(got, "Dr. Meera Nair") {
		t.Errorf("principal alias reply = %q", got)
	}
}

func TestGenerate_FacultyListCap(t *testing.T) {
	members := make([]knowledge.FacultyMember, 0, 14)
	for _, n := range []string{
		"A One", "B Two", "C Three", "D Four", "E Five", "F Six", "G Seven",
		"H Eight", "I Nine", "J Ten", "K Eleven", "L Twelve", "M Thirteen", "N Fourteen",
	} {
		members = append(members, knowledge.FacultyMember{Name: n, Designation: "Lecturer", Dept: "CSE"})
	}
	kb := knowledge.NewBase(knowledge.Info{}, nil, knowledge.FacultyTable{Faculty: members}, knowledge.EventsTable{})
	r := NewResponder(kb, fixtureCatalog(), firstChoice)

	got := generate(r, "faculty")
	if !strings.Contains(got, "...and 4 more.") {
		t.Errorf("listing should cap and summarize the rest: %q", got)
	}
	if strings.Contains(got, "L Twelve") {
		t.Errorf("listing should not include members past the cap: %q", got)
	}
}

func TestGenerate_UnknownIntentFallsBack(t *testing.T) {
	r := newTestResponder()
	got := generate(r, "weather")
	if got != fallbackReplies[0] {
		t.Errorf("unknown intent reply = %q", got)
	}
}
