package models

import (
	"strings"
	"time"
)

// Candidate is a transaction proposed to the user for confirmation.
type Candidate struct {
	ParsedTransaction
	Category   string `json:"category" yaml:"category"`
	RawText    string `json:"raw_text" yaml:"raw_text"`
	PatternKey string `json:"pattern_key" yaml:"pattern_key"`
}

// ToExpense converts the candidate into a digital Expense.
func (c Candidate) ToExpense(now time.Time) Expense {
	return NewExpense(c.Amount, c.Description, c.Category, ExpenseDigital, c.IsCredit, now)
}

// Correction carries the user's edits when confirming a Candidate. Empty
// fields and nil pointers mean "unchanged".
type Correction struct {
	Party    string
	Category string
	IsCredit *bool
}

// PredictorText is the text categories are predicted and learned on: the
// description when it was written by a person, else the party name.
func (c Candidate) PredictorText() string {
	desc := strings.TrimSpace(c.Description)
	if desc == "" || desc == DescribeParty(c.Party, c.IsCredit) ||
		strings.HasPrefix(desc, "Paid to ") || strings.HasPrefix(desc, "Received from ") || strings.HasPrefix(desc, "Spent at ") {
		return c.Party
	}
	return desc
}
