// Package classifier implements the statistical fallback of the intent
// cascade: a bag-of-n-grams TF-IDF vectorizer feeding a multinomial
// logistic regression. Training happens offline (cmd/train); the server
// only loads the trained artifact and runs inference.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	apperrors "github.com/collegechat/collegechat-go/internal/errors"
)

// Artifact is the serialized model: vocabulary with feature indices, the
// IDF vector, class labels and the linear layer. Stored as zstd-compressed
// JSON so it stays inspectable with standard tools.
type Artifact struct {
	Vocabulary  map[string]int `json:"vocabulary"`
	IDF         []float64      `json:"idf"`
	Classes     []string       `json:"classes"`
	Weights     [][]float64    `json:"weights"` // [class][feature]
	Bias        []float64      `json:"bias"`
	NGramMax    int            `json:"ngram_max"`
	MaxFeatures int            `json:"max_features"`
}

// Validate checks dimensional consistency of the artifact.
func (a *Artifact) Validate() error {
	if len(a.Vocabulary) == 0 {
		return fmt.Errorf("empty vocabulary")
	}
	if len(a.IDF) != len(a.Vocabulary) {
		return fmt.Errorf("idf length %d does not match vocabulary size %d", len(a.IDF), len(a.Vocabulary))
	}
	if len(a.Classes) == 0 {
		return fmt.Errorf("no classes")
	}
	if len(a.Weights) != len(a.Classes) {
		return fmt.Errorf("weight rows %d do not match class count %d", len(a.Weights), len(a.Classes))
	}
	for i, row := range a.Weights {
		if len(row) != len(a.Vocabulary) {
			return fmt.Errorf("weight row %d has %d features, want %d", i, len(row), len(a.Vocabulary))
		}
	}
	if len(a.Bias) != len(a.Classes) {
		return fmt.Errorf("bias length %d does not match class count %d", len(a.Bias), len(a.Classes))
	}
	return nil
}

// WriteArtifact writes the artifact to path as zstd-compressed JSON,
// creating parent directories as needed.
func WriteArtifact(path string, a *Artifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact file: %w", err)
	}
	defer func() { _ = f.Close() }()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}

	if err := json.NewEncoder(zw).Encode(a); err != nil {
		_ = zw.Close()
		return fmt.Errorf("encoding artifact: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing artifact: %w", err)
	}
	return f.Close()
}

// ReadArtifact reads and validates an artifact from path. A missing file
// maps to ErrModelNotFound so callers can fail startup with a clear cause.
func ReadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run cmd/train first)", apperrors.ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("opening artifact: %w", err)
	}
	defer func() { _ = f.Close() }()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer zr.Close()

	var a Artifact
	if err := json.NewDecoder(zr).Decode(&a); err != nil {
		return nil, fmt.Errorf("decoding artifact: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}
	return &a, nil
}
