package common

import (
	"fmt"
	"strings"
	"time"

	"avinya/fin-pulse/internal/currencyutils"
	"avinya/fin-pulse/internal/models"
)

// TimestampLayout is the timestamp format of expense CSV files.
const TimestampLayout = time.RFC3339

// MessageRow is one processed message in batch output. The transaction
// columns are empty unless Outcome is "candidate".
type MessageRow struct {
	Line        int    `csv:"line"`
	Outcome     string `csv:"outcome"`
	Amount      string `csv:"amount"`
	Direction   string `csv:"direction"`
	Method      string `csv:"method"`
	Party       string `csv:"party"`
	UPIID       string `csv:"upi_id"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	PatternKey  string `csv:"pattern_key"`
	Text        string `csv:"text"`
}

// NewMessageRow builds the output row of one message.
func NewMessageRow(line int, outcome, text string, c *models.Candidate) MessageRow {
	row := MessageRow{Line: line, Outcome: outcome, Text: text}
	if c == nil {
		return row
	}
	row.Amount = c.Amount.StringFixed(2)
	row.Direction = c.Direction()
	row.Method = string(c.Method)
	row.Party = c.Party
	row.UPIID = c.UPIID
	row.Category = c.Category
	row.Description = c.Description
	row.PatternKey = c.PatternKey
	return row
}

// VoiceRow is one interpreted utterance in batch output.
type VoiceRow struct {
	Line        int    `csv:"line"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Merchant    string `csv:"merchant"`
	Description string `csv:"description"`
	Utterance   string `csv:"utterance"`
}

// NewVoiceRow builds the output row of one utterance. A nil result leaves
// the parsed columns empty.
func NewVoiceRow(line int, utterance string, v *models.VoiceExpense) VoiceRow {
	row := VoiceRow{Line: line, Utterance: utterance}
	if v == nil {
		return row
	}
	row.Amount = v.Amount.StringFixed(2)
	row.Category = v.Category
	row.Merchant = v.Merchant
	row.Description = v.Description
	return row
}

// ExpenseRow is the CSV form of a ledger Expense.
type ExpenseRow struct {
	ID          string `csv:"id"`
	Timestamp   string `csv:"timestamp"`
	Type        string `csv:"type"`
	Direction   string `csv:"direction"`
	Amount      string `csv:"amount"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
}

// NewExpenseRow converts e to its CSV form.
func NewExpenseRow(e models.Expense) ExpenseRow {
	return ExpenseRow{
		ID:          e.ID,
		Timestamp:   e.Timestamp.Format(TimestampLayout),
		Type:        string(e.Type),
		Direction:   models.DirectionOf(e.IsCredit),
		Amount:      e.Amount.StringFixed(2),
		Category:    e.Category,
		Description: e.Description,
	}
}

// ToExpense converts the row back to an Expense.
func (r ExpenseRow) ToExpense() (models.Expense, error) {
	amount, err := currencyutils.ParseAmount(r.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %q: %w", r.ID, err)
	}
	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(r.Timestamp))
	if err != nil {
		return models.Expense{}, fmt.Errorf("expense %q: invalid timestamp: %w", r.ID, err)
	}

	typ := models.ExpenseDigital
	if strings.EqualFold(r.Type, string(models.ExpenseCash)) {
		typ = models.ExpenseCash
	}
	e := models.NewExpense(amount, r.Description, r.Category, typ,
		strings.EqualFold(r.Direction, models.DirectionCredit), ts)
	if id := strings.TrimSpace(r.ID); id != "" {
		e.ID = id
	}
	return e, nil
}

// ExpenseRows converts expenses to CSV rows.
func ExpenseRows(expenses []models.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, NewExpenseRow(e))
	}
	return rows
}

// ParseExpenseRows converts CSV rows to expenses, stopping at the first
// invalid row.
func ParseExpenseRows(rows []ExpenseRow) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0, len(rows))
	for i, r := range rows {
		e, err := r.ToExpense()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}
