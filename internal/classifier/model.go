package classifier

import (
	"math"
	"strings"
)

// Model runs inference over a loaded artifact.
type Model struct {
	art *Artifact
}

// Load reads the artifact at path and returns a ready model.
// Fails with ErrModelNotFound when the artifact is missing: there is no
// degraded inference mode, so the caller must treat this as fatal.
func Load(path string) (*Model, error) {
	art, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return &Model{art: art}, nil
}

// NewModel wraps an in-memory artifact. Used by tests and cmd/train.
func NewModel(art *Artifact) *Model {
	return &Model{art: art}
}

// Classes returns the class labels in training order.
func (m *Model) Classes() []string {
	return m.art.Classes
}

// Predict returns the most probable intent tag for normalized text along
// with its softmax probability. Input must already be preprocessed with
// nlp.Preprocess, matching the trainer's representation.
func (m *Model) Predict(normalized string) (string, float64) {
	x := m.vectorize(normalized)

	scores := make([]float64, len(m.art.Classes))
	for c, row := range m.art.Weights {
		s := m.art.Bias[c]
		for i, v := range x {
			if v != 0 {
				s += row[i] * v
			}
		}
		scores[c] = s
	}

	probs := softmax(scores)

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return m.art.Classes[best], probs[best]
}

// vectorize maps text to an L2-normalized TF-IDF vector over the
// artifact's vocabulary. Unknown terms are ignored.
func (m *Model) vectorize(normalized string) []float64 {
	x := make([]float64, len(m.art.Vocabulary))
	for _, term := range ngrams(normalized, m.art.NGramMax) {
		if idx, ok := m.art.Vocabulary[term]; ok {
			x[idx]++
		}
	}

	var norm float64
	for i := range x {
		if x[i] != 0 {
			x[i] *= m.art.IDF[i]
			norm += x[i] * x[i]
		}
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range x {
			x[i] /= norm
		}
	}
	return x
}

// ngrams produces word n-grams of sizes 1..max from space-separated text.
func ngrams(text string, max int) []string {
	tokens := strings.Fields(text)
	if max < 1 {
		max = 1
	}

	out := make([]string, 0, len(tokens)*max)
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
