package config

// Dialogue-engine tuning values. These were magic numbers in earlier
// revisions of the engine; they are named here so tests and tuning can
// target them directly.
const (
	// FuzzyMatchThreshold is the minimum similarity score (0-100 scale)
	// for the fuzzy stages: department extraction and pattern matching.
	FuzzyMatchThreshold = 60

	// ClassifierConfidenceFloor is the minimum probability the statistical
	// classifier must report for its prediction to be accepted. Below it,
	// resolution terminates with the fallback outcome.
	ClassifierConfidenceFloor = 0.25

	// DefaultContextMaxTurns bounds the dialogue history ring.
	DefaultContextMaxTurns = 10

	// ShortQueryMaxTokens is the token ceiling for the forced courses
	// override: short department/semester mentions are course follow-ups.
	ShortQueryMaxTokens = 5

	// ExactMatchMaxTokens is the token ceiling for the exact keyword stage.
	ExactMatchMaxTokens = 3

	// MaxFacultyListed caps the faculty roster reply.
	MaxFacultyListed = 10

	// SemesterMin and SemesterMax bound valid semester numerals.
	SemesterMin = 1
	SemesterMax = 8
)
