// Package textutils provides text extraction and manipulation utilities.
package textutils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	upiHandlePattern = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	whitespace       = regexp.MustCompile(`\s+`)

	// Rupee sign decoded as Windows-1252 instead of UTF-8.
	mojibakeRupee = strings.NewReplacer("â‚¹", "₹")

	titleCaser = cases.Title(language.English)
)

// Sanitize repairs common encoding artifacts in incoming text: a mis-decoded
// rupee sign is restored, then compatibility characters are folded with NFKC.
func Sanitize(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, " ")
	}
	return norm.NFKC.String(mojibakeRupee.Replace(text))
}

// ExtractUPIHandle returns the first name@provider token in text, or "".
func ExtractUPIHandle(text string) string {
	handle := upiHandlePattern.FindString(text)
	return strings.TrimRight(handle, ".-")
}

// CollapseWhitespace replaces runs of whitespace with one space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// CollapseDuplicateName turns "X: X" and "X X" (case-insensitive) into "X".
// Bank messages often echo the counterparty name twice.
func CollapseDuplicateName(name string) string {
	name = CollapseWhitespace(name)
	if left, right, ok := strings.Cut(name, ":"); ok {
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if left != "" && strings.EqualFold(left, right) {
			return left
		}
	}

	tokens := strings.Fields(name)
	if n := len(tokens); n >= 2 && n%2 == 0 {
		first := strings.Join(tokens[:n/2], " ")
		second := strings.Join(tokens[n/2:], " ")
		if strings.EqualFold(first, second) {
			return first
		}
	}
	return name
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TitleCase title-cases every word of s.
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// IsCapitalized reports whether the word starts with an upper-case letter.
func IsCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

// TrimPunct strips leading and trailing punctuation from a token.
func TrimPunct(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// ContainsAny reports whether text contains any of the substrings.
func ContainsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}
