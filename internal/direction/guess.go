package direction

import (
	"strings"

	"avinya/fin-pulse/internal/textutils"
)

var (
	creditKeywords = []string{"received", "credited", "added to", "deposited", "incoming", "refund", "cashback"}
	debitKeywords  = []string{"paid", "spent", "debited", "transfer to", "withdrawn", "payment to"}
)

// guessRule returns decided=false to defer to the next rule.
type guessRule struct {
	name  string
	check func(lower string) (isCredit bool, decided bool)
}

// guessRules is evaluated in order; the first rule that decides wins.
var guessRules = []guessRule{
	{"sent_to_you", func(s string) (bool, bool) {
		return true, strings.Contains(s, "sent") && textutils.ContainsAny(s, "to you", "you received")
	}},
	{"sent_you", func(s string) (bool, bool) {
		return true, strings.Contains(s, "sent you")
	}},
	{"debit_keyword", func(s string) (bool, bool) {
		return false, textutils.ContainsAny(s, debitKeywords...)
	}},
	{"sent", func(s string) (bool, bool) {
		return false, strings.Contains(s, "sent")
	}},
	{"credit_keyword", func(s string) (bool, bool) {
		return true, textutils.ContainsAny(s, creditKeywords...)
	}},
	{"from_without_account", func(s string) (bool, bool) {
		return true, strings.Contains(s, "from") && !strings.Contains(s, "account")
	}},
}

// Guess computes the heuristic default direction of text. It never consults
// learned or pretrained knowledge.
func Guess(text string) bool {
	isCredit, _ := GuessWithRule(text)
	return isCredit
}

// GuessWithRule is Guess that also names the deciding heuristic, or
// "none" when text matched nothing and debit was assumed.
func GuessWithRule(text string) (bool, string) {
	lower := strings.ToLower(textutils.Sanitize(text))
	for _, r := range guessRules {
		if isCredit, decided := r.check(lower); decided {
			return isCredit, r.name
		}
	}
	return false, "none"
}
