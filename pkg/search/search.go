// Package search prepares free-text queries matched against the searchable
// text of model instances.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites text before it is tokenized or matched.
type Normalizer func(string) string

// Tokenizer splits a normalized query into the tokens that must all match.
type Tokenizer func(string) []string

// Matcher reports whether a text satisfies a prepared query.
type Matcher func(text string) bool

// NormalizeLatin trims text, strips diacritics and folds case so that
// "Àlex" and "alex" compare equal.
func NormalizeLatin(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(stripper, text)
	if err != nil {
		stripped = text
	}
	return cases.Fold().String(stripped)
}

// SplitWords splits on runs of white space.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

type config struct {
	normalizer Normalizer
	tokenizer  Tokenizer
}

// Option configures Prepare.
type Option func(*config)

// WithNormalizer replaces NormalizeLatin. A nil normalizer disables
// normalization.
func WithNormalizer(fn Normalizer) Option {
	return func(c *config) {
		c.normalizer = fn
	}
}

// WithTokenizer replaces SplitWords.
func WithTokenizer(fn Tokenizer) Option {
	return func(c *config) {
		if fn != nil {
			c.tokenizer = fn
		}
	}
}

// Prepare builds a matcher that accepts texts containing every token of
// query once both are normalized. An empty query matches everything.
func Prepare(query string, options ...Option) Matcher {
	cfg := config{normalizer: NormalizeLatin, tokenizer: SplitWords}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.normalizer != nil {
		query = cfg.normalizer(query)
	}
	tokens := cfg.tokenizer(query)
	normalize := cfg.normalizer

	return func(text string) bool {
		if normalize != nil {
			text = normalize(text)
		}
		for _, token := range tokens {
			if !strings.Contains(text, token) {
				return false
			}
		}
		return true
	}
}
