// Package voice interprets short spoken expense utterances such as
// "spent 100 on coffee" or "fifty rupees for auto".
package voice

import (
	"regexp"
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/textutils"
)

// DefaultDescription is used when nothing is left after stripping.
const DefaultDescription = "Cash expense"

var (
	currencyWords = regexp.MustCompile(`(?:\b(?:rupees?|rs|inr)\b\.?|₹)`)
	spendingVerbs = regexp.MustCompile(`\b(?:spent|paid|bought|purchased|got|ordered)\b`)
	leadingPrep   = regexp.MustCompile(`^(?:on|for|at)\b\s*`)
	trailingPrep  = regexp.MustCompile(`\s*\b(?:on|for|at)$`)
)

// Parser is the VoiceUtteranceParser. It is safe for concurrent use.
type Parser struct {
	store     *store.KnowledgeStore
	knowledge *knowledge.Source
	logger    logging.Logger
}

// New creates a Parser. Learned voice patterns live in their own slot,
// separate from the transaction category corrections.
func New(ks *store.KnowledgeStore, src *knowledge.Source, logger logging.Logger) *Parser {
	return &Parser{
		store:     ks,
		knowledge: src,
		logger:    logging.OrDefault(logger).WithField(logging.FieldComponent, "voice"),
	}
}

// Parse interprets utterance. It returns nil when no positive amount is
// spoken, or when interpretation panics.
func (p *Parser) Parse(utterance string) (expense *models.VoiceExpense) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithError(parsererror.Recovered("voice", utterance, r)).Warn("Recovered from panic in voice parser")
			expense = nil
		}
	}()

	text := strings.ToLower(strings.TrimSpace(textutils.Sanitize(utterance)))
	m, err := extractAmount(text)
	if err != nil {
		p.logger.WithError(err).Debug("Could not extract amount from utterance")
		return nil
	}

	description := extractDescription(text, m)
	category := models.CategoryMiscellaneous
	if description != DefaultDescription {
		category = p.predictCategory(description)
	}
	expense = &models.VoiceExpense{
		Amount:      m.amount,
		Description: description,
		Category:    category,
		Merchant:    p.extractMerchant(text),
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldAmount, Value: expense.Amount.String()},
		logging.Field{Key: logging.FieldCategory, Value: expense.Category},
		logging.Field{Key: logging.FieldParty, Value: expense.Merchant},
	).Debug("Parsed voice expense")
	return expense
}

// Train records that description belongs to category in the voice pattern
// slot, keyed by the lower-cased, trimmed description.
func (p *Parser) Train(description, category string) error {
	key := strings.ToLower(strings.TrimSpace(description))
	category = strings.TrimSpace(category)
	if key == "" || category == "" {
		return nil
	}
	err := p.store.Update(func(tx *store.Tx) error {
		patterns := tx.Map(store.SlotVoicePatterns)
		patterns[key] = category
		return tx.PutMap(store.SlotVoicePatterns, patterns)
	}, store.SlotVoicePatterns)
	if err != nil {
		return err
	}
	p.logger.WithFields(
		logging.Field{Key: logging.FieldPattern, Value: key},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Info("Learned voice pattern")
	return nil
}

// SupportedCategories returns the voice keyword table categories followed by
// Miscellaneous.
func (p *Parser) SupportedCategories() []string {
	table := p.knowledge.Get().VoiceCategories
	out := make([]string, 0, len(table)+1)
	for _, c := range table {
		out = append(out, c.Name)
	}
	return append(out, models.CategoryMiscellaneous)
}

func (p *Parser) extractMerchant(text string) string {
	for _, merchant := range p.knowledge.Get().Merchants {
		if strings.Contains(text, merchant) {
			return textutils.TitleCase(merchant)
		}
	}
	return ""
}

func extractDescription(text string, m amountMatch) string {
	if m.span != nil {
		text = text[:m.span[0]] + " " + text[m.span[1]:]
	} else {
		text = dropNumberWords(text)
	}

	text = currencyWords.ReplaceAllString(text, " ")
	text = spendingVerbs.ReplaceAllString(text, " ")
	text = textutils.CollapseWhitespace(text)
	text = leadingPrep.ReplaceAllString(text, "")
	text = trailingPrep.ReplaceAllString(text, "")
	text = strings.TrimRight(strings.TrimSpace(text), ".!?,")
	text = textutils.CollapseWhitespace(text)

	if text == "" {
		return DefaultDescription
	}
	return textutils.UpperFirst(text)
}

// dropNumberWords removes number words, and an "and" joining two of them.
func dropNumberWords(text string) string {
	tokens := strings.Fields(strings.ReplaceAll(text, "-", " "))
	numeric := make([]bool, len(tokens))
	for i, tok := range tokens {
		numeric[i] = isNumberWord(strings.Trim(tok, ".,!?"))
	}

	kept := tokens[:0:0]
	for i, tok := range tokens {
		if numeric[i] {
			continue
		}
		if tok == "and" && i > 0 && i+1 < len(tokens) && numeric[i-1] && numeric[i+1] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}
