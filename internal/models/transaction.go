// Package models provides the data structures used throughout the engine.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the channel a transaction went through.
type PaymentMethod string

const (
	MethodDigital    PaymentMethod = "Digital"
	MethodUPI        PaymentMethod = "UPI"
	MethodDebitCard  PaymentMethod = "Debit Card"
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodCash       PaymentMethod = "Cash"
)

// Direction labels used in output and logs.
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// ParsedTransaction holds the facts extracted from one message.
// Amount is always positive and Party is never empty.
type ParsedTransaction struct {
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Method      PaymentMethod   `json:"method" yaml:"method"`
	Party       string          `json:"party" yaml:"party"`
	UPIID       string          `json:"upi_id,omitempty" yaml:"upi_id,omitempty"`
	IsCredit    bool            `json:"is_credit" yaml:"is_credit"`
	Description string          `json:"description" yaml:"description"`
}

// Direction returns "credit" or "debit".
func (p ParsedTransaction) Direction() string {
	return DirectionOf(p.IsCredit)
}

// DirectionOf maps a credit flag to its label.
func DirectionOf(isCredit bool) string {
	if isCredit {
		return DirectionCredit
	}
	return DirectionDebit
}

// DescribeParty builds the display description for a party.
func DescribeParty(party string, isCredit bool) string {
	if isCredit {
		return fmt.Sprintf("Received from %s", party)
	}
	return fmt.Sprintf("Spent at %s", party)
}
