package voice

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"avinya/fin-pulse/internal/currencyutils"
	"avinya/fin-pulse/internal/parsererror"
)

var numericAmount = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*(k)?\b`)

var numberWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
	"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40, "fifty": 50, "sixty": 60,
	"seventy": 70, "eighty": 80, "ninety": 90,
}

// Multipliers. "hundred" scales the group being built; the others close it.
var scaleWords = map[string]int64{
	"hundred":  100,
	"thousand": 1000,
	"lakh":     100000,
	"lakhs":    100000,
}

// amountMatch is an extracted amount and the text spans that expressed it.
type amountMatch struct {
	amount decimal.Decimal
	// span is the byte range of a numeric match, or nil for number words.
	span []int
}

// ExtractAmount returns the amount spoken in utterance. Digits win over
// number words; "2k" means 2000.
func ExtractAmount(utterance string) (decimal.Decimal, error) {
	m, err := extractAmount(strings.ToLower(utterance))
	if err != nil {
		return decimal.Zero, err
	}
	return m.amount, nil
}

func extractAmount(text string) (amountMatch, error) {
	for _, loc := range numericAmount.FindAllStringSubmatchIndex(text, -1) {
		amount, err := currencyutils.ParseAmount(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		if loc[4] >= 0 {
			amount = amount.Mul(decimal.NewFromInt(1000))
		}
		return amountMatch{amount: amount, span: loc[:2]}, nil
	}

	if total := sumNumberWords(tokenize(text)); total > 0 {
		return amountMatch{amount: decimal.NewFromInt(total)}, nil
	}
	return amountMatch{}, parsererror.ErrNoAmount
}

// sumNumberWords combines number words left to right: units and tens add to
// the current group, "hundred" multiplies it, and "thousand" or "lakh"
// multiply it into the running total.
func sumNumberWords(tokens []string) int64 {
	var total, current int64
	for _, tok := range tokens {
		if v, ok := numberWords[tok]; ok {
			current += v
			continue
		}
		scale, ok := scaleWords[tok]
		if !ok {
			continue
		}
		if current == 0 {
			current = 1
		}
		if scale == 100 {
			current *= scale
			continue
		}
		total += current * scale
		current = 0
	}
	return total + current
}

func isNumberWord(tok string) bool {
	_, n := numberWords[tok]
	_, s := scaleWords[tok]
	return n || s
}

// tokenize splits on whitespace and hyphens and drops punctuation.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:'\"")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
