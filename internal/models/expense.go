package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseType distinguishes digitally captured expenses from manual cash ones.
type ExpenseType string

const (
	ExpenseDigital ExpenseType = "Digital"
	ExpenseCash    ExpenseType = "Cash"
)

// Expense is a ledger entry built from an engine result. Category stays
// mutable after creation.
type Expense struct {
	ID          string          `json:"id" yaml:"id"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Type        ExpenseType     `json:"type" yaml:"type"`
	IsCredit    bool            `json:"is_credit" yaml:"is_credit"`
	Timestamp   time.Time       `json:"timestamp" yaml:"timestamp"`
}

// NewExpense creates an Expense with a fresh ID stamped at now.
func NewExpense(amount decimal.Decimal, description, category string, typ ExpenseType, isCredit bool, now time.Time) Expense {
	return Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Description: description,
		Category:    category,
		Type:        typ,
		IsCredit:    isCredit,
		Timestamp:   now,
	}
}
