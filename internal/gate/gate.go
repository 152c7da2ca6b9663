// Package gate decides whether a message is likely to describe a financial
// transaction at all, before any field extraction is attempted.
package gate

import (
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/textutils"
)

// Input is the message as seen by every rule.
type Input struct {
	// Text is the sanitized, lower-cased message.
	Text string
	// Key is the pattern key of the message.
	Key string
}

// Rule is one step of the gate. Decided is false when the rule has no
// opinion and the next rule should be consulted.
type Rule interface {
	Check(in Input) (likely bool, match string, decided bool)
	Name() string
}

// Verdict explains a gate decision.
type Verdict struct {
	Likely bool   `json:"likely" yaml:"likely"`
	Rule   string `json:"rule" yaml:"rule"`
	Match  string `json:"match,omitempty" yaml:"match,omitempty"`
}

// Gate evaluates its rules in order; the first rule that decides wins.
type Gate struct {
	rules      []Rule
	normalizer *pattern.Normalizer
	logger     logging.Logger
}

// New builds the standard gate: pretrained deny list, pretrained allow list,
// learned rejections, learned confirmations, then the keyword fallback.
func New(ks *store.KnowledgeStore, src *knowledge.Source, normalizer *pattern.Normalizer, logger logging.Logger) *Gate {
	return NewWithRules(normalizer, logger,
		&PhraseRule{name: "PretrainedNonTransaction", phrases: func() []string { return src.Get().NonTransactionPhrases }, likely: false},
		&PhraseRule{name: "PretrainedTransaction", phrases: func() []string { return src.Get().TransactionPhrases }, likely: true},
		NewLearnedRule("LearnedNonTransaction", ks.PatternSet(store.SlotNonTransactionPatterns), false),
		NewLearnedRule("LearnedTransaction", ks.PatternSet(store.SlotConfirmedTransactionPatterns), true),
		&KeywordRule{keywords: func() []string { return src.Get().TransactionKeywords }},
	)
}

// NewWithRules builds a gate from an explicit rule list.
func NewWithRules(normalizer *pattern.Normalizer, logger logging.Logger, rules ...Rule) *Gate {
	if normalizer == nil {
		normalizer = pattern.New(pattern.DefaultMaxLength)
	}
	return &Gate{
		rules:      rules,
		normalizer: normalizer,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "gate"),
	}
}

// IsLikelyTransaction reports whether text looks like a transaction.
func (g *Gate) IsLikelyTransaction(text string) bool {
	return g.Evaluate(text).Likely
}

// Evaluate runs the rules and reports which one decided. A recovered panic
// yields a negative verdict.
func (g *Gate) Evaluate(text string) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithError(parsererror.Recovered("gate", text, r)).Warn("Recovered from panic in transaction gate")
			v = Verdict{Likely: false, Rule: "Recovered"}
		}
	}()

	in := Input{
		Text: strings.ToLower(textutils.Sanitize(text)),
		Key:  g.normalizer.Normalize(text),
	}
	if strings.TrimSpace(in.Text) == "" {
		return Verdict{Likely: false, Rule: "Empty"}
	}

	for _, rule := range g.rules {
		likely, match, decided := rule.Check(in)
		if !decided {
			continue
		}
		g.logger.WithFields(
			logging.Field{Key: logging.FieldStrategy, Value: rule.Name()},
			logging.Field{Key: logging.FieldPattern, Value: match},
		).Debug("Gate rule decided")
		return Verdict{Likely: likely, Rule: rule.Name(), Match: match}
	}
	return Verdict{Likely: false, Rule: "NoMatch"}
}
