// Package sentiment scores user messages with a lexicon-based VADER
// analyzer and maps strong polarity to an empathetic reply prefix.
package sentiment

import "github.com/jonreiter/govader"

// Tone thresholds on the VADER compound score in [-1, 1]. Only strong
// polarity earns a prefix; neutral messages stay untouched.
const (
	negativeThreshold = -0.5
	positiveThreshold = 0.5
)

const (
	negativePrefix = "I can see you're upset. "
	positivePrefix = "Glad to hear that! "
)

// Analyzer wraps the VADER sentiment analyzer. Safe for concurrent use:
// scoring is read-only over the lexicon.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer builds an analyzer with the bundled English lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound polarity of text in [-1, 1].
func (a *Analyzer) Score(text string) float64 {
	return a.vader.PolarityScores(text).Compound
}

// TonePrefix returns the empathetic prefix for a compound score, or ""
// for neutral messages.
func TonePrefix(score float64) string {
	switch {
	case score < negativeThreshold:
		return negativePrefix
	case score > positiveThreshold:
		return positivePrefix
	default:
		return ""
	}
}
