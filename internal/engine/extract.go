package engine

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/collegechat/collegechat-go/internal/config"
	"github.com/collegechat/collegechat-go/internal/knowledge"
)

// EntitySet holds the slots extracted from one utterance. Every field is
// independently optional; an empty string means "not mentioned this turn",
// which is a valid state and never an error.
type EntitySet struct {
	Department  string // canonical program name from the catalog
	Semester    string // numeral "1".."8"
	FacultyName string // canonical faculty name, or the literal "principal"
}

var (
	semExplicitRe = regexp.MustCompile(`\b(?:semester|sem)\s*(\d+)\b`)
	bareNumberRe  = regexp.MustCompile(`^\d+$`)
	semOrdinalRe  = regexp.MustCompile(`\b([1-8])(?:st|nd|rd|th)?\b`)
)

// ExtractEntities pulls semester, department and faculty slots out of raw
// input against the knowledge base catalogs. Pure read; never fails,
// unmatched slots stay absent.
func ExtractEntities(input string, kb KnowledgeBase) EntitySet {
	var ents EntitySet
	lower := strings.ToLower(input)
	trimmed := strings.TrimSpace(lower)

	// Semester: explicit "semester N" first, then a bare 1-8, then a
	// digit with optional ordinal suffix anywhere. First match wins.
	if m := semExplicitRe.FindStringSubmatch(lower); m != nil {
		ents.Semester = m[1]
	} else if bareNumberRe.MatchString(trimmed) {
		if validSemester(trimmed) {
			ents.Semester = trimmed
		}
	} else if m := semOrdinalRe.FindStringSubmatch(lower); m != nil {
		ents.Semester = m[1]
	}

	// Department: token-order-insensitive fuzzy match against the
	// catalog, accepted only above the fixed threshold.
	ents.Department = matchDepartment(lower, kb.ProgramNames())

	// Faculty: the reserved principal alias wins; otherwise the first
	// record whose name parts appear in the input (stable scan order).
	if strings.Contains(lower, "principal") {
		if _, ok := kb.Principal(); ok {
			ents.FacultyName = "principal"
		}
	}
	if ents.FacultyName == "" {
		for _, f := range kb.Faculty() {
			for _, part := range strings.Fields(strings.ToLower(f.Name)) {
				if strings.Contains(lower, part) {
					ents.FacultyName = f.Name
					break
				}
			}
			if ents.FacultyName != "" {
				break
			}
		}
	}

	return ents
}

// matchDepartment returns the canonical catalog name whose lowercased
// form scores best against the input, or "" below the threshold.
func matchDepartment(lowerInput string, names []string) string {
	best := ""
	bestScore := 0
	for _, name := range names {
		score := fuzzy.TokenSortRatio(lowerInput, strings.ToLower(name))
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	if bestScore > config.FuzzyMatchThreshold {
		return best
	}
	return ""
}

func validSemester(s string) bool {
	if len(s) != 1 {
		return false
	}
	n := int(s[0] - '0')
	return n >= config.SemesterMin && n <= config.SemesterMax
}

// departmentAlias maps informal department mentions (cse, mech, it...) to
// canonical program names. Scanned as substrings of the lowercased input,
// first hit wins. Short aliases like "cs" and "it" also match inside
// longer words ("physics" resolves CSE); the engine consults this table
// only for course-scoped intents.
var departmentAliases = []struct {
	alias     string
	canonical string
}{
	{"cse", "Computer Science Engineering (CSE)"},
	{"computer science", "Computer Science Engineering (CSE)"},
	{"cs", "Computer Science Engineering (CSE)"},
	{"ece", "Electronics & Communication (ECE)"},
	{"electronics", "Electronics & Communication (ECE)"},
	{"mechanical", "Mechanical Engineering"},
	{"mech", "Mechanical Engineering"},
	{"civil", "Civil Engineering"},
	{"eee", "Electrical & Electronics (EEE)"},
	{"electrical", "Electrical & Electronics (EEE)"},
	{"it", "Information Technology (IT)"},
	{"information technology", "Information Technology (IT)"},
	{"mca", "MCA (Master of Computer Applications)"},
	{"mba", "MBA (Master of Business Administration)"},
}

// resolveDepartmentAlias returns the canonical name for the first alias
// found in the lowercased input.
func resolveDepartmentAlias(lowerInput string) (string, bool) {
	for _, m := range departmentAliases {
		if strings.Contains(lowerInput, m.alias) {
			return m.canonical, true
		}
	}
	return "", false
}

// knownFaculty reports whether the extracted faculty name exists in the
// knowledge base (principal handled separately).
func knownFaculty(kb KnowledgeBase, name string) (knowledge.FacultyMember, bool) {
	for _, f := range kb.Faculty() {
		if f.Name == name {
			return f, true
		}
	}
	return knowledge.FacultyMember{}, false
}
