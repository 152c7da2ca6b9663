// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"avinya/fin-pulse/internal/currencyutils"
	"avinya/fin-pulse/internal/models"
)

// PrintYAML writes v to w as a YAML document.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

// TransactionView is the printed form of a parsed transaction.
type TransactionView struct {
	Amount      string `yaml:"amount"`
	Display     string `yaml:"display"`
	Direction   string `yaml:"direction"`
	Method      string `yaml:"method"`
	Party       string `yaml:"party"`
	UPIID       string `yaml:"upi_id,omitempty"`
	Description string `yaml:"description"`
	Category    string `yaml:"category,omitempty"`
	PatternKey  string `yaml:"pattern_key,omitempty"`
}

// NewTransactionView converts tx for printing.
func NewTransactionView(tx models.ParsedTransaction) TransactionView {
	return TransactionView{
		Amount:      tx.Amount.StringFixed(2),
		Display:     currencyutils.FormatAmount(tx.Amount),
		Direction:   tx.Direction(),
		Method:      string(tx.Method),
		Party:       tx.Party,
		UPIID:       tx.UPIID,
		Description: tx.Description,
	}
}

// NewCandidateView converts c for printing.
func NewCandidateView(c models.Candidate) TransactionView {
	v := NewTransactionView(c.ParsedTransaction)
	v.Category = c.Category
	v.PatternKey = c.PatternKey
	return v
}

// VoiceView is the printed form of an interpreted utterance.
type VoiceView struct {
	Amount      string `yaml:"amount"`
	Display     string `yaml:"display"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Merchant    string `yaml:"merchant,omitempty"`
}

// NewVoiceView converts v for printing.
func NewVoiceView(v models.VoiceExpense) VoiceView {
	return VoiceView{
		Amount:      v.Amount.StringFixed(2),
		Display:     currencyutils.FormatAmount(v.Amount),
		Description: v.Description,
		Category:    v.Category,
		Merchant:    v.Merchant,
	}
}
