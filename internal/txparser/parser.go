// Package txparser extracts transaction fields (amount, method, UPI handle,
// direction and counterparty) from free-text bank messages.
package txparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"avinya/fin-pulse/internal/currencyutils"
	"avinya/fin-pulse/internal/direction"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/textutils"
)

// amountNumber starts and ends on a digit, so a stray comma before a
// currency token ("Customer, Rs") is never taken for an amount.
const amountNumber = `(\d(?:[\d,]*\d)?(?:\.\d+)?)`

// amountPattern has three alternatives: currency then number, number then
// currency, and a number after "debited by", "credited by" or "of". A number
// glued to letters ("XX12, INR") cannot bind to a following currency token.
var amountPattern = regexp.MustCompile(`(?i)(?:\b(?:rs|inr)\.?|₹)\s*` + amountNumber +
	`|\b` + amountNumber + `\s*(?:(?:rs|inr)\b|₹)` +
	`|(?:debited by|credited by|\bof)\s+` + amountNumber)

// DirectionResolver is the store-backed override of the heuristic direction.
type DirectionResolver interface {
	IsCredit(text string, defaultGuess bool) bool
}

// Parser is the FieldExtractor. It is safe for concurrent use.
type Parser struct {
	direction  DirectionResolver
	upiNames   func() map[string]string
	strategies []PartyStrategy
	logger     logging.Logger
}

// New creates a Parser. UPI handle names are read from ks on every parse so
// that freshly trained mappings apply immediately.
func New(ks *store.KnowledgeStore, dir DirectionResolver, logger logging.Logger) *Parser {
	return &Parser{
		direction:  dir,
		upiNames:   func() map[string]string { return ks.GetMap(store.SlotUPIMappings) },
		strategies: DefaultPartyStrategies(),
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "txparser"),
	}
}

// Parse extracts a transaction from text. It returns nil when no amount can
// be found, or when extraction panics.
func (p *Parser) Parse(text string) (tx *models.ParsedTransaction) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.WithError(parsererror.Recovered("parse", text, r)).Warn("Recovered from panic in transaction parser")
			tx = nil
		}
	}()

	text = textutils.Sanitize(text)
	amount, err := ExtractAmount(text)
	if err != nil {
		p.logger.WithError(err).Debug("No amount found, ignoring message")
		return nil
	}

	handle := strings.ToLower(textutils.ExtractUPIHandle(text))
	guess, rule := direction.GuessWithRule(text)
	isCredit := guess
	if p.direction != nil {
		isCredit = p.direction.IsCredit(text, guess)
	}

	party := p.extractParty(Context{
		Text:     text,
		Lower:    asciiLower(text),
		IsCredit: isCredit,
		Handle:   handle,
		UPINames: p.upiNames,
	})

	tx = &models.ParsedTransaction{
		Amount:      amount,
		Method:      DetectMethod(text),
		Party:       party,
		UPIID:       handle,
		IsCredit:    isCredit,
		Description: models.DescribeParty(party, isCredit),
	}

	p.logger.WithFields(
		logging.Field{Key: logging.FieldAmount, Value: amount.String()},
		logging.Field{Key: logging.FieldMethod, Value: tx.Method},
		logging.Field{Key: logging.FieldParty, Value: tx.Party},
		logging.Field{Key: logging.FieldUPIHandle, Value: handle},
		logging.Field{Key: logging.FieldDirection, Value: tx.Direction()},
		logging.Field{Key: logging.FieldReason, Value: rule},
	).Debug("Parsed transaction")
	return tx
}

func (p *Parser) extractParty(ctx Context) string {
	name := ""
	for _, s := range p.strategies {
		if candidate, ok := s.Extract(ctx); ok {
			name = candidate
			p.logger.WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldParty, Value: candidate},
			).Debug("Party extracted")
			break
		}
	}

	name = textutils.CollapseDuplicateName(name)
	switch {
	case name != "":
		return strings.ToUpper(name)
	case ctx.Handle != "":
		return strings.ToUpper(ctx.Handle)
	default:
		return models.UnknownParty
	}
}

// ExtractAmount returns the first positive amount in text.
func ExtractAmount(text string) (decimal.Decimal, error) {
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		raw := firstNonEmpty(m[1], m[2], m[3])
		if raw == "" {
			continue
		}
		if amount, err := currencyutils.ParseAmount(raw); err == nil {
			return amount, nil
		}
	}
	return decimal.Zero, parsererror.ErrNoAmount
}

// DetectMethod classifies the payment channel from keywords.
func DetectMethod(text string) models.PaymentMethod {
	lower := strings.ToLower(text)
	switch {
	case textutils.ContainsAny(lower, "upi", "vpa"):
		return models.MethodUPI
	case strings.Contains(lower, "credit card"):
		return models.MethodCreditCard
	case textutils.ContainsAny(lower, "card", "debit"):
		return models.MethodDebitCard
	default:
		return models.MethodDigital
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// asciiLower lower-cases ASCII letters only, so byte offsets in the result
// are valid in the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
