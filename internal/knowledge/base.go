package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Base is the assembled read-only knowledge base. The dialogue engine
// reads it through a lookup interface and never writes to it.
type Base struct {
	info         Info
	programs     map[string]Program
	programNames []string // sorted for deterministic listings
	faculty      FacultyTable
	events       EventsTable
}

// NewBase assembles a knowledge base from already-decoded tables.
// Used directly in tests; production goes through Load.
func NewBase(info Info, programs map[string]Program, faculty FacultyTable, events EventsTable) *Base {
	names := make([]string, 0, len(programs))
	for name := range programs {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Base{
		info:         info,
		programs:     programs,
		programNames: names,
		faculty:      faculty,
		events:       events,
	}
}

// Load reads the four knowledge tables from JSON files in dir:
// college_info.json, courses.json, faculty.json, events.json.
func Load(dir string) (*Base, error) {
	var info Info
	if err := readJSON(filepath.Join(dir, "college_info.json"), &info); err != nil {
		return nil, err
	}

	var programs map[string]Program
	if err := readJSON(filepath.Join(dir, "courses.json"), &programs); err != nil {
		return nil, err
	}

	var faculty FacultyTable
	if err := readJSON(filepath.Join(dir, "faculty.json"), &faculty); err != nil {
		return nil, err
	}

	var events EventsTable
	if err := readJSON(filepath.Join(dir, "events.json"), &events); err != nil {
		return nil, err
	}

	return NewBase(info, programs, faculty, events), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Info returns the general college facts.
func (b *Base) Info() Info {
	return b.info
}

// Program looks up a program by canonical name.
func (b *Base) Program(name string) (Program, bool) {
	p, ok := b.programs[name]
	return p, ok
}

// ProgramNames returns all program names in sorted order.
func (b *Base) ProgramNames() []string {
	return b.programNames
}

// Principal returns the principal record, if present.
func (b *Base) Principal() (Principal, bool) {
	if b.faculty.Principal == nil {
		return Principal{}, false
	}
	return *b.faculty.Principal, true
}

// Faculty returns the faculty table rows in file order.
func (b *Base) Faculty() []FacultyMember {
	return b.faculty.Faculty
}

// UpcomingEvents returns the upcoming events in file order.
func (b *Base) UpcomingEvents() []Event {
	return b.events.Upcoming
}
