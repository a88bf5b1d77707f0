package knowledge

import (
	"fmt"
	"path/filepath"

	apperrors "github.com/collegechat/collegechat-go/internal/errors"
)

// Intent is one entry of the intent catalog: the tag, a keyword bag used
// for fuzzy pattern scoring, training patterns for the offline classifier,
// and optional canned responses. Intents without canned responses are
// answered from the knowledge base.
type Intent struct {
	Tag       string   `json:"tag"`
	Keywords  string   `json:"keywords"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses,omitempty"`
}

// Catalog is the ordered intent catalog. Order matters: fuzzy-stage ties
// break on first-seen, so iteration must follow file order.
type Catalog struct {
	Intents []Intent `json:"intents"`
}

// LoadCatalog reads intents.json from dir and validates it.
func LoadCatalog(dir string) (*Catalog, error) {
	var c Catalog
	if err := readJSON(filepath.Join(dir, "intents.json"), &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("intent catalog: %w", err)
	}
	return &c, nil
}

// Validate checks catalog invariants: non-empty, unique tags, keywords
// present on every entry.
func (c *Catalog) Validate() error {
	if len(c.Intents) == 0 {
		return apperrors.NewValidationError("intents", "no intents defined")
	}

	seen := make(map[string]bool, len(c.Intents))
	for i, intent := range c.Intents {
		if intent.Tag == "" {
			return apperrors.NewValidationError(fmt.Sprintf("intents[%d].tag", i), "must not be empty")
		}
		if seen[intent.Tag] {
			return apperrors.NewValidationError(fmt.Sprintf("intents[%d].tag", i), fmt.Sprintf("duplicate tag %q", intent.Tag))
		}
		seen[intent.Tag] = true
		if intent.Keywords == "" {
			return apperrors.NewValidationError(fmt.Sprintf("intents[%d].keywords", i), "must not be empty")
		}
	}
	return nil
}

// Find returns the catalog entry for a tag.
func (c *Catalog) Find(tag string) (Intent, bool) {
	for _, intent := range c.Intents {
		if intent.Tag == tag {
			return intent, true
		}
	}
	return Intent{}, false
}
