package engine

import (
	"testing"

	"github.com/collegechat/collegechat-go/internal/nlp"
)

func newTestResolver(p Predictor) *Resolver {
	return NewResolver(fixtureCatalog(), p, nlp.Preprocess)
}

func TestResolve_CoursesOverride(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "greeting", prob: 0.9})
	ctx := NewDialogueContext(10)

	tests := []string{
		"cse",
		"mba fees structure",
		"semester 3",
		"3rd sem",
		"civil engineering",
	}
	for _, input := range tests {
		res := r.Resolve(input, ctx)
		if res.Intent != "courses" || res.Stage != StageOverride {
			t.Errorf("Resolve(%q) = %+v, want courses via override", input, res)
		}
		if res.Score != 100 {
			t.Errorf("Resolve(%q) score = %v, want 100", input, res.Score)
		}
	}
}

func TestResolve_OverrideRequiresShortInput(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "courses", prob: 0.9})
	ctx := NewDialogueContext(10)

	// Six tokens: too long for the override even with a department word.
	res := r.Resolve("i was wondering about the cse syllabus", ctx)
	if res.Stage == StageOverride {
		t.Errorf("long input took the override stage: %+v", res)
	}
}

func TestResolve_BareNumberNeedsCoursesContext(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "greeting", prob: 0.1})
	ctx := NewDialogueContext(10)

	res := r.Resolve("3", ctx)
	if res.Stage == StageOverride {
		t.Errorf("bare number without context took the override: %+v", res)
	}

	ctx.Append(Turn{Input: "cse courses", Intent: "courses"})
	res = r.Resolve("3", ctx)
	if res.Intent != "courses" || res.Stage != StageOverride {
		t.Errorf("bare number with courses context = %+v, want override", res)
	}
}

func TestResolve_ExactMatch(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "greeting", prob: 0.9})
	ctx := NewDialogueContext(10)

	tests := []struct {
		input string
		want  string
	}{
		{"library", "library"},
		{"hostel", "hostel"},
		{"placement", "placements"},
		{"upcoming events", "events"},
		{"canteen food", "canteen"},
	}
	for _, tt := range tests {
		res := r.Resolve(tt.input, ctx)
		if res.Intent != tt.want || res.Stage != StageExact {
			t.Errorf("Resolve(%q) = %+v, want %s via exact", tt.input, res, tt.want)
		}
	}
}

func TestResolve_ExactSkipsBareNumbers(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "greeting", prob: 0.1})
	ctx := NewDialogueContext(10)

	res := r.Resolve("42", ctx)
	if res.Stage == StageExact || res.Stage == StageOverride {
		t.Errorf("bare out-of-range number matched a lexical stage: %+v", res)
	}
}

func TestResolve_Fuzzy(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "greeting", prob: 0.9})
	ctx := NewDialogueContext(10)

	// Too long for the exact stage; no department or semester words.
	res := r.Resolve("tell me the college timings and working hours", ctx)
	if res.Intent != "college_timings" || res.Stage != StageFuzzy {
		t.Errorf("Resolve = %+v, want college_timings via fuzzy", res)
	}
	if res.Score <= 60 {
		t.Errorf("fuzzy score %v should exceed the threshold", res.Score)
	}
}

func TestResolve_ClassifierFallthrough(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "placements", prob: 0.8})
	ctx := NewDialogueContext(10)

	res := r.Resolve("zzzz qqqq wwww xxxx", ctx)
	if res.Intent != "placements" || res.Stage != StageClassifier {
		t.Errorf("Resolve = %+v, want placements via classifier", res)
	}
}

func TestResolve_LowConfidence(t *testing.T) {
	r := newTestResolver(stubPredictor{tag: "placements", prob: 0.1})
	ctx := NewDialogueContext(10)

	res := r.Resolve("zzzz qqqq wwww xxxx", ctx)
	if res.Stage != StageNone || res.Intent != "" {
		t.Errorf("Resolve = %+v, want the low-confidence outcome", res)
	}
}

func TestIsResetQuery(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"show all courses", true},
		{"courses", true},
		{"programs", true},
		{"list programs please", true},
		{"cse courses", false},
		{"hostel", false},
	}
	for _, tt := range tests {
		if got := isResetQuery(tt.input); got != tt.want {
			t.Errorf("isResetQuery(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
