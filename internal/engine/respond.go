package engine

import (
	"fmt"
	"strings"

	"github.com/collegechat/collegechat-go/internal/config"
	"github.com/collegechat/collegechat-go/internal/knowledge"
)

// fallbackReplies answer the low-confidence outcome. One is picked by the
// injected rng so replies do not feel canned across retries.
var fallbackReplies = []string{
	"I'm sorry, I didn't quite understand that. Could you rephrase your question?",
	"I'm not sure I follow. You can ask me about courses, admissions, fees, placements, hostel and more.",
	"Hmm, I don't have an answer for that yet. Try asking about the college, its courses or facilities.",
}

// Responder turns a resolution plus extracted entities into reply text.
// It only reads the knowledge base and catalog; all context bookkeeping
// stays in the engine. rng returns a value in [0,n) and exists so tests
// can pin the choice of canned reply.
type Responder struct {
	kb      KnowledgeBase
	catalog *knowledge.Catalog
	rng     func(n int) int
}

// NewResponder creates a responder. rng must not be nil.
func NewResponder(kb KnowledgeBase, catalog *knowledge.Catalog, rng func(n int) int) *Responder {
	return &Responder{kb: kb, catalog: catalog, rng: rng}
}

// Generate renders the reply for a resolution. effectiveDept is the
// department already resolved by the engine (alias, entity, sticky or
// recent-turn), empty when the query is catalog-wide.
func (r *Responder) Generate(res Resolution, ents EntitySet, effectiveDept string) string {
	if res.Stage == StageNone {
		return r.Fallback()
	}

	switch res.Intent {
	case "greeting", "goodbye", "thanks":
		return r.canned(res.Intent)
	case "college_timings":
		return r.timings()
	case "departments":
		return r.departments()
	case "facilities":
		return r.facilities()
	case "library":
		return r.section("Library", r.kb.Info().Library, []sectionField{
			{"timings", "Timings"},
			{"books", "Collection"},
			{"digital", "Digital access"},
		})
	case "hostel":
		return r.section("Hostel", r.kb.Info().Hostel, []sectionField{
			{"boys", "Boys hostel"},
			{"girls", "Girls hostel"},
			{"fees", "Fees"},
			{"mess", "Mess"},
		})
	case "transport":
		return r.section("Transport", r.kb.Info().Transport, []sectionField{
			{"buses", "Buses"},
			{"routes", "Routes"},
			{"fees", "Fees"},
		})
	case "contact":
		return r.contact()
	case "courses":
		return r.courses(effectiveDept, ents.Semester)
	case "admission":
		return r.section("Admission", r.kb.Info().Admission, []sectionField{
			{"process", "Process"},
			{"eligibility", "Eligibility"},
			{"deadline", "Deadline"},
		})
	case "fees":
		return r.fees(effectiveDept)
	case "scholarship":
		return r.section("Scholarships", r.kb.Info().Scholarship, []sectionField{
			{"merit", "Merit"},
			{"government", "Government"},
			{"sports", "Sports"},
		})
	case "placements":
		return r.section("Placements", r.kb.Info().Placements, []sectionField{
			{"rate", "Placement rate"},
			{"companies", "Recruiters"},
			{"average_package", "Average package"},
			{"highest_package", "Highest package"},
		})
	case "internship":
		return r.section("Internships", r.kb.Info().Internship, []sectionField{
			{"when", "When"},
			{"partners", "Partners"},
			{"stipend", "Stipend"},
		})
	case "faculty":
		return r.faculty(ents.FacultyName)
	case "principal":
		return r.principal()
	case "events":
		return r.events()
	case "sports":
		return r.listSection("Sports", r.kb.Info().Sports, "No sports information available right now.")
	case "clubs":
		return r.listSection("Student clubs", r.kb.Info().Clubs, "No club information available right now.")
	case "labs":
		return r.listSection("Labs", r.kb.Info().Labs, "No lab information available right now.")
	case "exams":
		return r.section("Exams", r.kb.Info().Exams, []sectionField{
			{"schedule", "Schedule"},
			{"pattern", "Pattern"},
			{"revaluation", "Revaluation"},
		})
	case "attendance":
		return r.section("Attendance", r.kb.Info().Attendance, []sectionField{
			{"minimum", "Minimum required"},
			{"condonation", "Condonation"},
		})
	case "canteen":
		return r.section("Canteen", r.kb.Info().Canteen, []sectionField{
			{"timings", "Timings"},
			{"menu", "Menu"},
		})
	case "alumni":
		return r.section("Alumni", r.kb.Info().Alumni, []sectionField{
			{"network", "Network"},
			{"notable", "Notable alumni"},
			{"meet", "Alumni meet"},
		})
	}
	return r.Fallback()
}

// Fallback returns one of the low-confidence replies.
func (r *Responder) Fallback() string {
	return fallbackReplies[r.rng(len(fallbackReplies))]
}

// canned picks one of the catalog's stored responses for conversational
// intents, falling back when the catalog carries none.
func (r *Responder) canned(tag string) string {
	intent, ok := r.catalog.Find(tag)
	if !ok || len(intent.Responses) == 0 {
		return r.Fallback()
	}
	return intent.Responses[r.rng(len(intent.Responses))]
}

func (r *Responder) timings() string {
	info := r.kb.Info()
	if info.Timings == "" {
		return "College timing details are not available right now."
	}
	return fmt.Sprintf("%s is open %s.", r.collegeName(), info.Timings)
}

func (r *Responder) departments() string {
	depts := r.kb.Info().Departments
	if len(depts) == 0 {
		return "Department details are not available right now."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s has the following departments:\n", r.collegeName())
	for _, d := range depts {
		fmt.Fprintf(&b, "- %s\n", d)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) facilities() string {
	fac := r.kb.Info().Facilities
	if len(fac) == 0 {
		return "Facility details are not available right now."
	}
	var b strings.Builder
	b.WriteString("Campus facilities include:\n")
	for _, f := range fac {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) contact() string {
	info := r.kb.Info()
	var b strings.Builder
	fmt.Fprintf(&b, "You can reach %s at:\n", r.collegeName())
	fmt.Fprintf(&b, "Phone: %s\n", knowledge.Field(info.Contact, "phone", "not listed"))
	fmt.Fprintf(&b, "Email: %s\n", knowledge.Field(info.Contact, "email", "not listed"))
	if info.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", info.Address)
	}
	if info.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", info.Website)
	}
	return strings.TrimRight(b.String(), "\n")
}

// courses renders either a department detail (with optional semester
// subject list) or the full catalog split into UG and PG programs.
func (r *Responder) courses(dept, semester string) string {
	if dept != "" {
		return r.programDetail(dept, semester)
	}

	names := r.kb.ProgramNames()
	if len(names) == 0 {
		return "Course details are not available right now."
	}
	var ug, pg []string
	for _, name := range names {
		if isPostgraduate(name) {
			pg = append(pg, name)
		} else {
			ug = append(ug, name)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s offers the following programs:\n", r.collegeName())
	if len(ug) > 0 {
		b.WriteString("Undergraduate:\n")
		for _, name := range ug {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	if len(pg) > 0 {
		b.WriteString("Postgraduate:\n")
		for _, name := range pg {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	b.WriteString("Ask about any department for details, e.g. \"CSE courses\".")
	return b.String()
}

func (r *Responder) programDetail(dept, semester string) string {
	prog, ok := r.kb.Program(dept)
	if !ok {
		return fmt.Sprintf("I don't have details for %s. Ask me to list all courses to see what's offered.", dept)
	}

	if semester != "" {
		subjects, ok := prog.Semesters[semester]
		if !ok || len(subjects) == 0 {
			return fmt.Sprintf("I don't have the subject list for %s semester %s.", dept, semester)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s, semester %s subjects:\n", dept, semester)
		for _, s := range subjects {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		return strings.TrimRight(b.String(), "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", dept)
	if prog.Duration != "" {
		fmt.Fprintf(&b, "Duration: %s\n", prog.Duration)
	}
	if prog.Fees != "" {
		fmt.Fprintf(&b, "Fees: %s\n", prog.Fees)
	}
	if prog.Eligibility != "" {
		fmt.Fprintf(&b, "Eligibility: %s\n", prog.Eligibility)
	}
	if len(prog.Specializations) > 0 {
		fmt.Fprintf(&b, "Specializations: %s\n", strings.Join(prog.Specializations, ", "))
	}
	if len(prog.Semesters) > 0 {
		fmt.Fprintf(&b, "Ask about a specific semester (1-%d) for the subject list.\n", len(prog.Semesters))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) fees(dept string) string {
	if dept != "" {
		prog, ok := r.kb.Program(dept)
		if !ok || prog.Fees == "" {
			return fmt.Sprintf("I don't have fee details for %s.", dept)
		}
		return fmt.Sprintf("The fee for %s is %s.", dept, prog.Fees)
	}

	names := r.kb.ProgramNames()
	if len(names) == 0 {
		return "Fee details are not available right now."
	}
	var b strings.Builder
	b.WriteString("Program fees:\n")
	for _, name := range names {
		prog, ok := r.kb.Program(name)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, valueOr(prog.Fees, "not listed"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) faculty(name string) string {
	if name == "principal" {
		return r.principal()
	}
	if name != "" {
		if f, ok := knownFaculty(r.kb, name); ok {
			return fmt.Sprintf("%s is %s in the %s department.", f.Name, f.Designation, f.Dept)
		}
	}

	members := r.kb.Faculty()
	if len(members) == 0 {
		return "Faculty details are not available right now."
	}
	var b strings.Builder
	b.WriteString("Our faculty members include:\n")
	for i, f := range members {
		if i >= config.MaxFacultyListed {
			fmt.Fprintf(&b, "...and %d more.\n", len(members)-config.MaxFacultyListed)
			break
		}
		fmt.Fprintf(&b, "- %s, %s (%s)\n", f.Name, f.Designation, f.Dept)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) principal() string {
	p, ok := r.kb.Principal()
	if !ok {
		return "Principal details are not available right now."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Our principal is %s", p.Name)
	if p.Qualifications != "" {
		fmt.Fprintf(&b, " (%s)", p.Qualifications)
	}
	b.WriteString(".")
	if p.Email != "" {
		fmt.Fprintf(&b, " You can reach the principal's office at %s.", p.Email)
	}
	return b.String()
}

func (r *Responder) events() string {
	events := r.kb.UpcomingEvents()
	if len(events) == 0 {
		return "There are no upcoming events announced right now."
	}
	var b strings.Builder
	b.WriteString("Upcoming events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "- %s on %s at %s\n", e.Title, e.Date, e.Location)
	}
	return strings.TrimRight(b.String(), "\n")
}

// sectionField pairs a section key with its display label, in render order.
type sectionField struct {
	key   string
	label string
}

// section renders a map-valued info section as labelled lines, skipping
// absent keys. A fully absent section yields a polite placeholder.
func (r *Responder) section(title string, data map[string]string, fields []sectionField) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	wrote := false
	for _, f := range fields {
		if v := knowledge.Field(data, f.key, ""); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, v)
			wrote = true
		}
	}
	if !wrote {
		return fmt.Sprintf("%s details are not available right now.", title)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) listSection(title string, sec knowledge.ListSection, empty string) string {
	if len(sec.Available) == 0 {
		return empty
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	for _, item := range sec.Available {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Responder) collegeName() string {
	if name := r.kb.Info().Name; name != "" {
		return name
	}
	return "The college"
}

func isPostgraduate(name string) bool {
	return strings.Contains(name, "MCA") || strings.Contains(name, "MBA") ||
		strings.HasPrefix(name, "M.")
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
