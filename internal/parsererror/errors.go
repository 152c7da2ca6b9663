// Package parsererror defines the typed errors shared by the extraction,
// classification and persistence layers.
package parsererror

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSlot is returned when a knowledge slot name is not registered.
	ErrUnknownSlot = errors.New("unknown knowledge slot")
	// ErrEmptyPattern is returned when text normalizes to an empty pattern key.
	ErrEmptyPattern = errors.New("empty pattern key")
	// ErrNoAmount is returned when no amount could be found in the text.
	ErrNoAmount = errors.New("no amount found")
)

// ParseError represents a failure to interpret one field of the input text.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError wraps a fault recovered at the boundary of a public
// operation. The operation degrades to its "no result" outcome.
type ExtractionError struct {
	Operation string
	Input     string
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Operation, snippet(e.Input), e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Recovered converts a recovered panic value into an ExtractionError.
func Recovered(operation, input string, r interface{}) *ExtractionError {
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	return &ExtractionError{Operation: operation, Input: input, Err: err}
}

// StoreError represents a persistence failure on one knowledge slot.
type StoreError struct {
	Slot string
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("knowledge store %s %s: %v", e.Op, e.Slot, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// CategorizationError represents a categorization strategy failure.
type CategorizationError struct {
	Description string
	Strategy    string
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %s using %s: %v",
		snippet(e.Description), e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// InvalidAmountError reports an amount that is not a positive number.
type InvalidAmountError struct {
	Raw    string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount '%s': %s", e.Raw, e.Reason)
}

func snippet(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
