package engine

import (
	"github.com/collegechat/collegechat-go/internal/knowledge"
	"github.com/collegechat/collegechat-go/internal/nlp"
)

func fixtureBase() *knowledge.Base {
	info := knowledge.Info{
		Name:        "Evergreen Institute of Technology",
		Address:     "12 College Road, Greenfield",
		Website:     "https://evergreen.example.edu",
		Timings:     "Monday to Saturday, 9:00 AM to 4:30 PM",
		Departments: []string{"CSE", "ECE", "Mechanical", "Civil"},
		Facilities:  []string{"Library", "Hostel", "Sports complex"},
		Contact:     map[string]string{"phone": "+91-1234-567890", "email": "info@evergreen.example.edu"},
		Library:     map[string]string{"timings": "8 AM to 8 PM", "books": "50,000+ volumes"},
		Hostel:      map[string]string{"boys": "400 beds", "girls": "300 beds", "fees": "Rs 60,000 per year"},
		Placements:  map[string]string{"rate": "92%", "companies": "Infosys, TCS, Wipro"},
		Sports:      knowledge.ListSection{Available: []string{"Cricket", "Basketball"}},
	}

	programs := map[string]knowledge.Program{
		"Computer Science Engineering (CSE)": {
			Duration:    "4 years",
			Fees:        "Rs 1,20,000 per year",
			Eligibility: "10+2 with PCM",
			Semesters: map[string][]string{
				"1": {"Engineering Mathematics I", "Programming in C"},
				"3": {"Data Structures", "Digital Logic", "Discrete Mathematics"},
			},
		},
		"Mechanical Engineering": {
			Duration: "4 years",
			Fees:     "Rs 1,00,000 per year",
			Semesters: map[string][]string{
				"1": {"Engineering Mathematics I", "Engineering Drawing"},
			},
		},
		"MBA (Master of Business Administration)": {
			Duration: "2 years",
			Fees:     "Rs 1,50,000 per year",
		},
	}

	faculty := knowledge.FacultyTable{
		Principal: &knowledge.Principal{
			Name:           "Dr. Meera Nair",
			Qualifications: "PhD, Computer Science",
			Email:          "principal@evergreen.example.edu",
		},
		Faculty: []knowledge.FacultyMember{
			{Name: "Dr. Anil Kumar", Designation: "Professor", Dept: "CSE"},
			{Name: "Prof. Sunita Rao", Designation: "Associate Professor", Dept: "ECE"},
		},
	}

	events := knowledge.EventsTable{
		Upcoming: []knowledge.Event{
			{Title: "TechFest 2026", Date: "2026-09-15", Location: "Main Auditorium"},
		},
	}

	return knowledge.NewBase(info, programs, faculty, events)
}

func fixtureCatalog() *knowledge.Catalog {
	return &knowledge.Catalog{Intents: []knowledge.Intent{
		{
			Tag:       "greeting",
			Keywords:  "hello hi hey good morning",
			Responses: []string{"Hello! How can I help you today?", "Hi there!"},
		},
		{
			Tag:       "goodbye",
			Keywords:  "bye goodbye see you later",
			Responses: []string{"Goodbye! Feel free to come back anytime."},
		},
		{Tag: "college_timings", Keywords: "college timings working hours open close time"},
		{Tag: "courses", Keywords: "courses programs degrees offered btech mba"},
		{Tag: "hostel", Keywords: "hostel accommodation rooms mess stay"},
		{Tag: "placements", Keywords: "placements companies package salary recruiters"},
		{Tag: "library", Keywords: "library books reading borrow"},
	}}
}

// stubPredictor always returns the configured tag and probability.
type stubPredictor struct {
	tag  string
	prob float64
}

func (s stubPredictor) Predict(string) (string, float64) {
	return s.tag, s.prob
}

func firstChoice(int) int { return 0 }

func newTestEngine(p Predictor) *Engine {
	return New(fixtureBase(), fixtureCatalog(), p, nlp.Preprocess, firstChoice, 10)
}
