// Package labels derives display labels from field identifiers.
package labels

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`[_\-\s.]+`)

// FromName converts a field name into a human-friendly label, splitting on
// underscores, dashes, dots and camelCase or digit boundaries.
func FromName(name string) string {
	if name == "" {
		return ""
	}

	var words []string
	for _, chunk := range separators.Split(name, -1) {
		if chunk == "" {
			continue
		}
		words = append(words, splitCamel(chunk)...)
	}
	if len(words) == 0 {
		return ""
	}
	words[0] = capitalize(words[0])
	for i := 1; i < len(words); i++ {
		words[i] = lowerUnlessAcronym(words[i])
	}
	return strings.Join(words, " ")
}

// Join concatenates non-empty labels with the qualified-label separator.
func Join(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " / ")
}

func splitCamel(input string) []string {
	var (
		words []string
		start int
	)
	for i := 1; i < len(input); i++ {
		if isBoundary(input, i) {
			words = append(words, input[start:i])
			start = i
		}
	}
	return append(words, input[start:])
}

func isBoundary(input string, index int) bool {
	prev, r := rune(input[index-1]), rune(input[index])
	if isLower(prev) && isUpper(r) {
		return true
	}
	if isLetter(prev) && isDigit(r) || isDigit(prev) && isLetter(r) {
		return true
	}
	// "HTTPServer" splits before the last capital of an acronym run.
	if isUpper(prev) && isUpper(r) && index+1 < len(input) && isLower(rune(input[index+1])) {
		return true
	}
	return false
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	if isAcronym(word) {
		return word
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func lowerUnlessAcronym(word string) string {
	if isAcronym(word) {
		return word
	}
	return strings.ToLower(word)
}

func isAcronym(word string) bool {
	if len(word) < 2 {
		return false
	}
	for _, r := range word {
		if !isUpper(r) && !isDigit(r) {
			return false
		}
	}
	return true
}
