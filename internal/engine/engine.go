// Package engine runs the full understanding pipeline on one message: the
// source blacklist, the transaction gate, field extraction and category
// prediction, producing a Candidate for the user to confirm.
package engine

import (
	"strings"

	"avinya/fin-pulse/internal/gate"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/pattern"
)

// DefaultBlockedSources are messaging and mail apps whose text is
// conversation, not bank alerts.
var DefaultBlockedSources = []string{
	"com.whatsapp",
	"com.whatsapp.w4b",
	"com.google.android.gm",
}

// Outcome says how far a message got through the pipeline.
type Outcome string

const (
	OutcomeBlocked        Outcome = "blocked"
	OutcomeNotTransaction Outcome = "not_transaction"
	OutcomeUnparseable    Outcome = "unparseable"
	OutcomeCandidate      Outcome = "candidate"
)

// Gate decides whether text looks like a transaction.
type Gate interface {
	Evaluate(text string) gate.Verdict
}

// Extractor pulls transaction fields out of text.
type Extractor interface {
	Parse(text string) *models.ParsedTransaction
}

// Predictor assigns a category to a description.
type Predictor interface {
	Predict(description string, isCredit bool) string
}

// Result is the outcome of processing one message. Candidate is set only
// for OutcomeCandidate.
type Result struct {
	Outcome   Outcome
	Verdict   gate.Verdict
	Candidate *models.Candidate
}

// Engine wires the classifying components together. It holds no mutable
// state of its own and is safe for concurrent use.
type Engine struct {
	gate       Gate
	extractor  Extractor
	predictor  Predictor
	normalizer *pattern.Normalizer
	blocked    map[string]struct{}
	logger     logging.Logger
}

// New creates an Engine. A nil blocked list selects DefaultBlockedSources;
// an empty non-nil list blocks nothing.
func New(g Gate, extractor Extractor, predictor Predictor, normalizer *pattern.Normalizer, blocked []string, logger logging.Logger) *Engine {
	if normalizer == nil {
		normalizer = pattern.New(pattern.DefaultMaxLength)
	}
	if blocked == nil {
		blocked = DefaultBlockedSources
	}
	set := make(map[string]struct{}, len(blocked))
	for _, s := range blocked {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set[s] = struct{}{}
		}
	}
	return &Engine{
		gate:       g,
		extractor:  extractor,
		predictor:  predictor,
		normalizer: normalizer,
		blocked:    set,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "engine"),
	}
}

// Process returns the Candidate for text from source, or nil when the
// message is blocked, not a transaction, or carries no amount. source may
// be empty.
func (e *Engine) Process(text, source string) *models.Candidate {
	return e.Run(text, source).Candidate
}

// IsBlocked reports whether messages from source are ignored.
func (e *Engine) IsBlocked(source string) bool {
	_, ok := e.blocked[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// Run processes text and reports the outcome.
func (e *Engine) Run(text, source string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithError(parsererror.Recovered("engine.Run", text, r)).Warn("Recovered from panic while processing message")
			res = Result{Outcome: OutcomeUnparseable}
		}
	}()

	if source != "" && e.IsBlocked(source) {
		e.logger.WithField(logging.FieldSource, source).Debug("Ignoring message from blocked source")
		return Result{Outcome: OutcomeBlocked}
	}

	verdict := e.gate.Evaluate(text)
	if !verdict.Likely {
		return Result{Outcome: OutcomeNotTransaction, Verdict: verdict}
	}

	parsed := e.extractor.Parse(text)
	if parsed == nil {
		e.logger.WithField(logging.FieldReason, verdict.Rule).Debug("Likely transaction without an amount")
		return Result{Outcome: OutcomeUnparseable, Verdict: verdict}
	}

	candidate := &models.Candidate{
		ParsedTransaction: *parsed,
		RawText:           text,
		PatternKey:        e.normalizer.Normalize(text),
	}
	candidate.Category = e.predictor.Predict(candidate.PredictorText(), parsed.IsCredit)

	e.logger.WithFields(
		logging.Field{Key: logging.FieldAmount, Value: parsed.Amount.String()},
		logging.Field{Key: logging.FieldParty, Value: parsed.Party},
		logging.Field{Key: logging.FieldDirection, Value: parsed.Direction()},
		logging.Field{Key: logging.FieldCategory, Value: candidate.Category},
	).Debug("Built transaction candidate")
	return Result{Outcome: OutcomeCandidate, Verdict: verdict, Candidate: candidate}
}
