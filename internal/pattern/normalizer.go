// Package pattern turns raw message text into pattern keys: the canonical form
// under which learned facts are stored and looked up.
//
// A pattern key is lower-cased, has every number and currency token removed,
// has whitespace collapsed and is truncated to a fixed length, so "Paid Rs 50
// to Dad" and "Paid ₹75 to Dad" share the key "paid to dad".
package pattern

import (
	"regexp"
	"strings"

	"avinya/fin-pulse/internal/textutils"
)

// DefaultMaxLength is the truncation length of a pattern key, in runes.
const DefaultMaxLength = 50

// maxPasses bounds the fixed-point loop in Normalize.
const maxPasses = 8

var (
	numberToken   = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	currencyToken = regexp.MustCompile(`(?:\b(?:rs|inr)\b\.?|₹)\s*`)
)

// Normalizer derives pattern keys. It is safe for concurrent use.
type Normalizer struct {
	maxLength int
}

// New creates a Normalizer truncating keys to maxLength runes. A
// non-positive maxLength selects DefaultMaxLength.
func New(maxLength int) *Normalizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Normalizer{maxLength: maxLength}
}

var defaultNormalizer = New(DefaultMaxLength)

// Normalize derives a pattern key with the default length.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// MaxLength returns the truncation length.
func (n *Normalizer) MaxLength() int {
	return n.maxLength
}

// Normalize derives the pattern key of text. The result is a fixed point:
// Normalize(Normalize(s)) == Normalize(s). Text made only of numbers and
// currency tokens yields "".
func (n *Normalizer) Normalize(text string) string {
	s := text
	for i := 0; i < maxPasses; i++ {
		next := n.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (n *Normalizer) pass(s string) string {
	s = strings.ToLower(textutils.Sanitize(s))
	s = clean(s)
	return clean(truncate(s, n.maxLength))
}

func clean(s string) string {
	s = numberToken.ReplaceAllString(s, " ")
	s = currencyToken.ReplaceAllString(s, " ")
	return textutils.CollapseWhitespace(s)
}

func truncate(s string, max int) string {
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
