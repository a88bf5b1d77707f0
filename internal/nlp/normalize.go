// Package nlp provides text normalization for the dialogue pipeline.
// Clean output feeds the statistical classifier; the fuzzy-match stages
// operate on raw lowercased text instead, which tolerates partial strings
// better than a token stream.
package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	urlRe   = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailRe = regexp.MustCompile(`\S+@\S+`)

	// NFKD + mark removal folds accented input ("café") to ASCII before
	// the charset filter drops the rest.
	foldMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Clean lowercases the input, strips URLs and email addresses, drops
// characters outside a-z, 0-9, whitespace, '?' and '.', and collapses
// repeated whitespace. Total: never fails on any input.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")

	if folded, _, err := transform.String(foldMarks, text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '?' || r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits cleaned text on word boundaries.
// Question marks and periods are separators, not tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}

// FilterStopWords removes stop words while keeping the protected
// interrogative/auxiliary words that carry intent signal.
func FilterStopWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Lemmatize reduces each token to a dictionary base form using
// conservative suffix rules (courses -> course, timings -> timing,
// studies -> study). Rules only fire on tokens long enough to carry
// the suffix, so short words pass through untouched.
func Lemmatize(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = lemma(tok)
	}
	return out
}

func lemma(tok string) string {
	switch {
	case len(tok) > 4 && strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case len(tok) > 4 && strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "s") &&
		!strings.HasSuffix(tok, "ss") &&
		!strings.HasSuffix(tok, "us") &&
		!strings.HasSuffix(tok, "is"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}

// Preprocess runs the full pipeline: clean, tokenize, stop-word filter,
// lemmatize, rejoin. This is the classifier's input representation and
// must match what the offline trainer used.
func Preprocess(text string) string {
	tokens := Lemmatize(FilterStopWords(Tokenize(Clean(text))))
	return strings.Join(tokens, " ")
}
