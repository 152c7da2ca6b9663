// Package learning applies user corrections to the knowledge store while
// keeping the gate, direction and category knowledge mutually consistent.
package learning

import (
	"fmt"
	"strings"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
)

// Trainer learns that a description belongs to a category.
type Trainer interface {
	Train(description, category string) error
}

// Coordinator is the write side of the engine. Every method is a no-op when
// the text yields an empty pattern key.
type Coordinator struct {
	store      *store.KnowledgeStore
	categories Trainer
	voice      Trainer
	normalizer *pattern.Normalizer
	logger     logging.Logger
}

// NewCoordinator creates a Coordinator. categories trains transaction
// categories and voice trains spoken-expense categories; either may be nil.
func NewCoordinator(ks *store.KnowledgeStore, categories, voice Trainer, normalizer *pattern.Normalizer, logger logging.Logger) *Coordinator {
	if normalizer == nil {
		normalizer = pattern.New(pattern.DefaultMaxLength)
	}
	return &Coordinator{
		store:      ks,
		categories: categories,
		voice:      voice,
		normalizer: normalizer,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "learning"),
	}
}

// TrainNonTransaction records that text is not a transaction. The key is not
// removed from the confirmed set.
func (c *Coordinator) TrainNonTransaction(text string) error {
	key := c.normalizer.Normalize(text)
	if key == "" {
		c.logger.Debug("Ignoring rejection with empty pattern key")
		return nil
	}
	if err := c.store.PatternSet(store.SlotNonTransactionPatterns).Add(key); err != nil {
		return fmt.Errorf("failed to record non-transaction: %w", err)
	}
	c.logger.WithField(logging.FieldPattern, key).Info("Learned non-transaction pattern")
	return nil
}

// Dismiss is the user dismissing a proposed transaction.
func (c *Coordinator) Dismiss(text string) error {
	return c.TrainNonTransaction(text)
}

// TrainConfirmedTransaction records that text is a transaction in the given
// direction. All four pattern slots change under one lock so no reader or
// concurrent correction sees the key in both direction sets.
func (c *Coordinator) TrainConfirmedTransaction(text string, isCredit bool) error {
	key := c.normalizer.Normalize(text)
	if key == "" {
		c.logger.Debug("Ignoring confirmation with empty pattern key")
		return nil
	}

	into, from := store.SlotDebitPatterns, store.SlotCreditPatterns
	if isCredit {
		into, from = store.SlotCreditPatterns, store.SlotDebitPatterns
	}

	err := c.store.Update(func(tx *store.Tx) error {
		nonTx := tx.Set(store.SlotNonTransactionPatterns)
		if nonTx.Contains(key) {
			nonTx.Remove(key)
			if err := tx.PutSet(store.SlotNonTransactionPatterns, nonTx); err != nil {
				return err
			}
		}

		confirmed := tx.Set(store.SlotConfirmedTransactionPatterns)
		if !confirmed.Contains(key) {
			confirmed.Add(key)
			if err := tx.PutSet(store.SlotConfirmedTransactionPatterns, confirmed); err != nil {
				return err
			}
		}

		opposite := tx.Set(from)
		if opposite.Contains(key) {
			opposite.Remove(key)
			if err := tx.PutSet(from, opposite); err != nil {
				return err
			}
		}

		target := tx.Set(into)
		if !target.Contains(key) {
			target.Add(key)
			return tx.PutSet(into, target)
		}
		return nil
	}, store.SlotNonTransactionPatterns, store.SlotConfirmedTransactionPatterns, store.SlotCreditPatterns, store.SlotDebitPatterns)
	if err != nil {
		return fmt.Errorf("failed to record confirmed transaction: %w", err)
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldPattern, Value: key},
		logging.Field{Key: logging.FieldDirection, Value: models.DirectionOf(isCredit)},
	).Info("Learned transaction pattern")
	return nil
}

// TrainUpiMapping remembers the display name for a UPI handle.
func (c *Coordinator) TrainUpiMapping(handle, name string) error {
	handle = strings.ToLower(strings.TrimSpace(handle))
	name = strings.TrimSpace(name)
	if handle == "" || name == "" {
		return nil
	}
	err := c.store.Update(func(tx *store.Tx) error {
		mappings := tx.Map(store.SlotUPIMappings)
		if mappings[handle] == name {
			return nil
		}
		mappings[handle] = name
		return tx.PutMap(store.SlotUPIMappings, mappings)
	}, store.SlotUPIMappings)
	if err != nil {
		return fmt.Errorf("failed to record UPI mapping: %w", err)
	}
	c.logger.WithFields(
		logging.Field{Key: logging.FieldUPIHandle, Value: handle},
		logging.Field{Key: logging.FieldParty, Value: name},
	).Info("Learned UPI mapping")
	return nil
}

// TrainCategory teaches the category of a transaction description.
func (c *Coordinator) TrainCategory(description, category string) error {
	if c.categories == nil {
		return nil
	}
	return c.categories.Train(description, category)
}

// TrainVoicePattern teaches the category of a spoken-expense description.
func (c *Coordinator) TrainVoicePattern(description, category string) error {
	if c.voice == nil {
		return nil
	}
	return c.voice.Train(description, category)
}

// UpdateExpenseCategory sets the category of expense and trains it on the
// expense description.
func (c *Coordinator) UpdateExpenseCategory(expense *models.Expense, category string) error {
	category = strings.TrimSpace(category)
	if expense == nil || category == "" {
		return nil
	}
	expense.Category = category
	return c.TrainCategory(expense.Description, category)
}

// Confirm applies the user's corrections to candidate and learns from them:
// the pattern becomes a confirmed transaction in the final direction, a
// corrected party is remembered for the UPI handle, and a changed category
// is trained. It returns the corrected candidate.
func (c *Coordinator) Confirm(candidate models.Candidate, correction models.Correction) (models.Candidate, error) {
	out := candidate
	if correction.IsCredit != nil {
		out.IsCredit = *correction.IsCredit
	}
	if party := strings.TrimSpace(correction.Party); party != "" {
		out.Party = strings.ToUpper(party)
	}
	out.Description = models.DescribeParty(out.Party, out.IsCredit)

	if err := c.TrainConfirmedTransaction(candidate.RawText, out.IsCredit); err != nil {
		return out, err
	}

	if party := strings.TrimSpace(correction.Party); party != "" && out.UPIID != "" &&
		!strings.EqualFold(party, out.UPIID) {
		if err := c.TrainUpiMapping(out.UPIID, party); err != nil {
			return out, err
		}
	}

	if category := strings.TrimSpace(correction.Category); category != "" {
		changed := category != candidate.Category
		out.Category = category
		if changed {
			if err := c.TrainCategory(out.PredictorText(), category); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

// Reset wipes every learned fact.
func (c *Coordinator) Reset() error {
	return c.store.Reset()
}
