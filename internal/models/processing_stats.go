package models

import (
	"avinya/fin-pulse/internal/logging"
)

// ProcessingStats tracks the outcome of a batch run.
type ProcessingStats struct {
	Total           int // messages read
	NonTransactions int // rejected by the gate
	Unparseable     int // passed the gate but had no amount
	Parsed          int // produced a result
	Credits         int
	Debits          int
	Uncategorized   int // result fell back to Miscellaneous
}

// LogSummary logs a summary of the run.
func (s ProcessingStats) LogSummary(logger logging.Logger, mode string) {
	if logger == nil {
		return
	}

	logger.Info("Processing summary",
		logging.Field{Key: "mode", Value: mode},
		logging.Field{Key: "total", Value: s.Total},
		logging.Field{Key: "non_transactions", Value: s.NonTransactions},
		logging.Field{Key: "unparseable", Value: s.Unparseable},
		logging.Field{Key: "parsed", Value: s.Parsed},
		logging.Field{Key: "credits", Value: s.Credits},
		logging.Field{Key: "debits", Value: s.Debits},
		logging.Field{Key: "uncategorized", Value: s.Uncategorized},
		logging.Field{Key: "parse_rate", Value: s.ParseRate()},
	)
}

// ParseRate is the share of messages that produced a result, in percent.
func (s ProcessingStats) ParseRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Parsed) / float64(s.Total) * 100.0
}

// Add merges other into s.
func (s *ProcessingStats) Add(other ProcessingStats) {
	s.Total += other.Total
	s.NonTransactions += other.NonTransactions
	s.Unparseable += other.Unparseable
	s.Parsed += other.Parsed
	s.Credits += other.Credits
	s.Debits += other.Debits
	s.Uncategorized += other.Uncategorized
}
