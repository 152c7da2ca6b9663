package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoiceExpense is the result of interpreting a spoken utterance. Voice
// expenses are always debits.
type VoiceExpense struct {
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Merchant    string          `json:"merchant,omitempty" yaml:"merchant,omitempty"`
}

// ToExpense converts the utterance result into a cash Expense.
func (v VoiceExpense) ToExpense(now time.Time) Expense {
	return NewExpense(v.Amount, v.Description, v.Category, ExpenseCash, false, now)
}
