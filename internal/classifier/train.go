package classifier

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/collegechat/collegechat-go/internal/nlp"
)

// Sample is one training example: raw pattern text plus its intent tag.
// Text is preprocessed internally so training and inference share the
// same representation.
type Sample struct {
	Text  string
	Label string
}

// TrainOptions tunes the offline trainer.
type TrainOptions struct {
	MaxFeatures  int     // vocabulary cap (default 500)
	NGramMax     int     // n-gram ceiling (default 2)
	Epochs       int     // gradient descent passes (default 300)
	LearningRate float64 // step size (default 0.5)
	L2           float64 // ridge penalty (default 1e-4)
	Seed         int64   // shuffle seed
}

func (o *TrainOptions) withDefaults() TrainOptions {
	out := *o
	if out.MaxFeatures <= 0 {
		out.MaxFeatures = 500
	}
	if out.NGramMax <= 0 {
		out.NGramMax = 2
	}
	if out.Epochs <= 0 {
		out.Epochs = 300
	}
	if out.LearningRate <= 0 {
		out.LearningRate = 0.5
	}
	if out.L2 < 0 {
		out.L2 = 0
	}
	return out
}

// Train fits a TF-IDF + multinomial logistic regression model on the
// samples and returns the serializable artifact.
func Train(samples []Sample, opts TrainOptions) (*Artifact, error) {
	opts = opts.withDefaults()

	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}

	docs := make([][]string, len(samples))
	labels := make([]string, len(samples))
	for i, s := range samples {
		docs[i] = ngrams(nlp.Preprocess(s.Text), opts.NGramMax)
		labels[i] = s.Label
	}

	vocab, idf := buildVocabulary(docs, opts.MaxFeatures)
	if len(vocab) == 0 {
		return nil, fmt.Errorf("training produced an empty vocabulary")
	}

	classes := classList(labels)
	if len(classes) < 2 {
		return nil, fmt.Errorf("need at least 2 intent classes, got %d", len(classes))
	}
	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}

	// Vectorize all samples once.
	xs := make([][]float64, len(docs))
	ys := make([]int, len(docs))
	for i, doc := range docs {
		xs[i] = tfidfVector(doc, vocab, idf)
		ys[i] = classIdx[labels[i]]
	}

	weights := make([][]float64, len(classes))
	for c := range weights {
		weights[c] = make([]float64, len(vocab))
	}
	bias := make([]float64, len(classes))

	rng := rand.New(rand.NewSource(opts.Seed))
	order := rng.Perm(len(xs))

	// Stochastic gradient descent over the softmax cross-entropy loss.
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		for _, idx := range order {
			x := xs[idx]
			scores := make([]float64, len(classes))
			for c := range classes {
				s := bias[c]
				for i, v := range x {
					if v != 0 {
						s += weights[c][i] * v
					}
				}
				scores[c] = s
			}
			probs := softmax(scores)

			for c := range classes {
				grad := probs[c]
				if c == ys[idx] {
					grad -= 1
				}
				if grad == 0 {
					continue
				}
				step := opts.LearningRate * grad
				for i, v := range x {
					if v != 0 {
						weights[c][i] -= step*v + opts.LearningRate*opts.L2*weights[c][i]
					}
				}
				bias[c] -= step
			}
		}
	}

	return &Artifact{
		Vocabulary:  vocab,
		IDF:         idf,
		Classes:     classes,
		Weights:     weights,
		Bias:        bias,
		NGramMax:    opts.NGramMax,
		MaxFeatures: opts.MaxFeatures,
	}, nil
}

// Evaluate returns model accuracy over the samples.
func Evaluate(m *Model, samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}
	correct := 0
	for _, s := range samples {
		tag, _ := m.Predict(nlp.Preprocess(s.Text))
		if tag == s.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(samples))
}

// Split shuffles samples with the seed and splits them into train and
// hold-out sets. holdout is a fraction in [0, 1).
func Split(samples []Sample, holdout float64, seed int64) (train, test []Sample) {
	shuffled := make([]Sample, len(samples))
	copy(shuffled, samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	n := int(float64(len(shuffled)) * holdout)
	if n >= len(shuffled) {
		n = 0
	}
	return shuffled[n:], shuffled[:n]
}

// buildVocabulary selects the MaxFeatures most frequent terms by document
// frequency (ties broken alphabetically for determinism) and computes the
// smoothed IDF vector.
func buildVocabulary(docs [][]string, maxFeatures int) (map[string]int, []float64) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vocab, idf
}

func tfidfVector(doc []string, vocab map[string]int, idf []float64) []float64 {
	x := make([]float64, len(vocab))
	for _, term := range doc {
		if idx, ok := vocab[term]; ok {
			x[idx]++
		}
	}

	var norm float64
	for i := range x {
		if x[i] != 0 {
			x[i] *= idf[i]
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

func classList(labels []string) []string {
	seen := make(map[string]bool)
	var classes []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	sort.Strings(classes)
	return classes
}
