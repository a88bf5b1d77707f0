package engine

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/collegechat/collegechat-go/internal/config"
	"github.com/collegechat/collegechat-go/internal/knowledge"
)

// Stage identifies which cascade stage produced a resolution.
type Stage string

const (
	// StageOverride forces short department/semester mentions to the
	// courses intent, bypassing fuzzy scoring entirely.
	StageOverride Stage = "override"
	// StageExact matched a short input against the literal keyword table.
	StageExact Stage = "exact"
	// StageFuzzy won the pattern-similarity scan above the threshold.
	StageFuzzy Stage = "fuzzy"
	// StageClassifier fell through to the statistical model.
	StageClassifier Stage = "classifier"
	// StageNone means every stage rejected: the terminal low-confidence
	// outcome, answered with a fallback reply. Not an error.
	StageNone Stage = "none"
)

// Resolution is the resolver outcome: the winning intent tag, the stage
// that accepted it, and that stage's score (0-100 for the lexical stages,
// probability*100 for the classifier).
type Resolution struct {
	Intent string
	Stage  Stage
	Score  float64
}

// Predictor is the trained statistical classifier consulted when the
// lexical stages reject. Input is normalized text (nlp.Preprocess).
type Predictor interface {
	Predict(normalized string) (tag string, probability float64)
}

// Resolver runs the fixed-priority intent cascade. It holds no mutable
// state; everything contextual comes from the DialogueContext per call.
type Resolver struct {
	catalog   *knowledge.Catalog
	predictor Predictor
	normalize func(string) string
}

// NewResolver creates a resolver over the intent catalog and classifier.
func NewResolver(catalog *knowledge.Catalog, predictor Predictor, normalize func(string) string) *Resolver {
	return &Resolver{catalog: catalog, predictor: predictor, normalize: normalize}
}

// departmentKeywords and semesterKeywords drive the forced courses
// override: short inputs containing any of these are course follow-ups.
var departmentKeywords = []string{
	"cse", "computer science", "cs", "ece", "electronics", "mechanical",
	"mech", "civil", "eee", "electrical", "it", "information technology",
	"mca", "mba", "master", "b.tech", "btech", "engineering",
}

var semesterKeywords = []string{
	"semester", "sem", "1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th",
	"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth",
}

// exactMatches is the ordered short-phrase keyword table for Stage B.
// Order is significant: the first keyword found as a substring wins.
var exactMatches = []struct {
	intent   string
	keywords []string
}{
	{"departments", []string{"departments", "department", "branches", "branch"}},
	{"courses", []string{"courses", "programs", "what courses"}},
	{"events", []string{"events", "event", "fest", "festival", "workshop"}},
	{"placements", []string{"placements", "placement", "companies", "package"}},
	{"hostel", []string{"hostel", "accommodation", "hostel facility"}},
	{"library", []string{"library", "library facility", "books"}},
	{"canteen", []string{"canteen", "cafeteria", "food"}},
	{"labs", []string{"lab", "laboratory", "computer lab"}},
	{"sports", []string{"sports", "sport", "gym", "playground"}},
	{"facilities", []string{"facilities", "infrastructure", "campus"}},
	{"admission", []string{"admission", "admissions", "how to apply"}},
	{"contact", []string{"contact", "phone", "email", "address"}},
}

// resetKeywords clear the sticky department: the user stepped back to a
// catalog-wide question.
var resetKeywords = []string{
	"all courses", "all programs", "what courses", "which courses",
	"available courses", "available programs", "show courses", "list courses",
	"show programs", "list programs", "tell me courses", "tell me programs",
}

var bareResetInputs = map[string]bool{
	"courses": true, "programs": true, "course": true, "program": true,
}

// isResetQuery reports whether the lowercased input asks for the full
// course catalog, which drops the remembered department.
func isResetQuery(lower string) bool {
	trimmed := strings.TrimSpace(lower)
	if bareResetInputs[trimmed] {
		return true
	}
	for _, kw := range resetKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func isBareNumber(lower string) bool {
	return bareNumberRe.MatchString(strings.TrimSpace(lower))
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Resolve runs the cascade highest-priority first and returns a single
// resolution. It never mutates ctx; appending the resulting turn is the
// caller's job.
func (r *Resolver) Resolve(input string, ctx *DialogueContext) Resolution {
	lower := strings.ToLower(input)
	tokens := len(strings.Fields(lower))

	// Stage A: forced courses override. Short department/semester
	// mentions (or a bare number continuing a courses exchange) are
	// almost always course-scoped follow-ups and must not be diluted by
	// general fuzzy scoring.
	if tokens <= config.ShortQueryMaxTokens && r.isCourseScoped(lower, ctx) {
		return Resolution{Intent: "courses", Stage: StageOverride, Score: 100}
	}

	// Stage B: exact short-phrase match. Unambiguous one-word queries
	// ("library", "contact") take their literal intent.
	if tokens <= config.ExactMatchMaxTokens && !isBareNumber(lower) {
		for _, entry := range exactMatches {
			for _, kw := range entry.keywords {
				if strings.Contains(lower, kw) {
					return Resolution{Intent: entry.intent, Stage: StageExact, Score: 100}
				}
			}
		}
	}

	// Stage C: fuzzy pattern scan over the catalog. Best of partial and
	// token-set similarity per intent; ties break on catalog order.
	if best, score := r.fuzzyScan(lower); score > config.FuzzyMatchThreshold {
		return Resolution{Intent: best, Stage: StageFuzzy, Score: float64(score)}
	}

	// Stage D: statistical fallback on normalized text.
	tag, prob := r.predictor.Predict(r.normalize(input))
	if prob < config.ClassifierConfidenceFloor {
		return Resolution{Stage: StageNone, Score: prob * 100}
	}
	return Resolution{Intent: tag, Stage: StageClassifier, Score: prob * 100}
}

// isCourseScoped reports whether the input mentions a department or
// semester, or is a bare number while the latest courses turn is still
// in context.
func (r *Resolver) isCourseScoped(lower string, ctx *DialogueContext) bool {
	if containsAny(lower, departmentKeywords) {
		return true
	}
	if containsAny(lower, semesterKeywords) {
		return true
	}
	if isBareNumber(lower) {
		if _, ok := ctx.MostRecentWithIntent("courses"); ok {
			return true
		}
	}
	return false
}

func (r *Resolver) fuzzyScan(lower string) (string, int) {
	best := ""
	bestScore := 0
	for _, intent := range r.catalog.Intents {
		partial := fuzzy.PartialRatio(lower, intent.Keywords)
		tokenSet := fuzzy.TokenSetRatio(lower, intent.Keywords)
		score := partial
		if tokenSet > score {
			score = tokenSet
		}
		if score > bestScore {
			bestScore = score
			best = intent.Tag
		}
	}
	return best, bestScore
}
