// Package direction decides whether a message describes money coming in
// (credit) or going out (debit).
//
// Classification runs in two tiers. Guess derives a cheap default from
// phrase heuristics; Classifier.IsCredit then lets learned and pretrained
// knowledge override that default.
package direction

import (
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/textutils"
)

// Classifier resolves the direction of a message.
type Classifier struct {
	credit     *store.PatternSet
	debit      *store.PatternSet
	knowledge  *knowledge.Source
	normalizer *pattern.Normalizer
	logger     logging.Logger
}

// NewClassifier creates a Classifier over the learned direction slots.
func NewClassifier(ks *store.KnowledgeStore, src *knowledge.Source, normalizer *pattern.Normalizer, logger logging.Logger) *Classifier {
	if normalizer == nil {
		normalizer = pattern.New(pattern.DefaultMaxLength)
	}
	return &Classifier{
		credit:     ks.PatternSet(store.SlotCreditPatterns),
		debit:      ks.PatternSet(store.SlotDebitPatterns),
		knowledge:  src,
		normalizer: normalizer,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "direction"),
	}
}

// IsCredit reports whether text is a credit. Precedence: learned credit
// key, learned debit key, pretrained credit phrase, pretrained debit phrase,
// then defaultGuess.
func (c *Classifier) IsCredit(text string, defaultGuess bool) (isCredit bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithError(parsererror.Recovered("direction", text, r)).Warn("Recovered from panic in direction classifier")
			isCredit = defaultGuess
		}
	}()

	isCredit, source := c.resolve(text, defaultGuess)
	c.logger.WithFields(
		logging.Field{Key: logging.FieldDirection, Value: models.DirectionOf(isCredit)},
		logging.Field{Key: logging.FieldSource, Value: source},
	).Debug("Direction resolved")
	return isCredit
}

func (c *Classifier) resolve(text string, defaultGuess bool) (bool, string) {
	if key := c.normalizer.Normalize(text); key != "" {
		if c.credit.Contains(key) {
			return true, "learned_credit"
		}
		if c.debit.Contains(key) {
			return false, "learned_debit"
		}
	}

	lower := strings.ToLower(textutils.Sanitize(text))
	p := c.knowledge.Get()
	if _, ok := knowledge.FirstMatch(lower, p.CreditPhrases); ok {
		return true, "pretrained_credit"
	}
	if _, ok := knowledge.FirstMatch(lower, p.DebitPhrases); ok {
		return false, "pretrained_debit"
	}
	return defaultGuess, "default"
}
