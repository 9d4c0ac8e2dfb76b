// Package normalizer turns free-text postal addresses into a sanitized form
// fit for caching and provider lookup. Process is a pure function: every
// outcome, including rejection, is a value and never an error.
package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Length bounds for a plausible address.
const (
	minLength = 5
	maxLength = 200
)

// Result is the outcome of processing one raw input. CanonicalKey is set iff
// Valid; ErrorMessage is set iff not Valid.
type Result struct {
	Valid          bool
	SanitizedInput string
	CanonicalKey   string
	ErrorMessage   string
}

// Process sanitizes, validates, and canonicalizes a raw address string.
// The pipeline short-circuits on the first failing validation rule.
func Process(raw string) Result {
	sanitized := sanitize(raw)
	sanitized = repositionZip(sanitized)

	if msg := validate(sanitized); msg != "" {
		return Result{SanitizedInput: sanitized, ErrorMessage: msg}
	}

	return Result{
		Valid:          true,
		SanitizedInput: sanitized,
		CanonicalKey:   canonicalize(sanitized),
	}
}

// sanitize applies NFKC normalization (folding full-width and compatibility
// glyphs), drops every Unicode control/format character, and trims the ends.
// Internal whitespace is preserved.
func sanitize(raw string) string {
	folded := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.In(r, unicode.C) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

// validate applies the gate rules in order and returns the first failure
// message, or "" when the input passes.
func validate(s string) string {
	n := len([]rune(s))
	if n < minLength {
		return "Minimum length is 5 characters"
	}
	if n > maxLength {
		return "Maximum length is 200 characters"
	}

	hasDigit := false
	for _, r := range s {
		if !allowedChar(r) {
			return "Input contains invalid characters"
		}
		if r >= '0' && r <= '9' {
			hasDigit = true
		}
	}
	if !hasDigit {
		return "Address must contain at least one digit"
	}
	return ""
}

func allowedChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	case r == '.' || r == ',' || r == '#' || r == '-':
		return true
	}
	return false
}

// canonicalize lowercases, strips punctuation, collapses whitespace, and
// expands whole-token street/directional abbreviations. The result is the
// canonical key used for semantic comparison of addresses.
func canonicalize(s string) string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if r == '.' || r == ',' || r == '#' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if expanded, ok := abbreviations[w]; ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}
