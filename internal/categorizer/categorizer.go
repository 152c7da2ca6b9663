// Package categorizer maps a transaction description to a spending or income
// category. Prediction runs a chain of strategies:
// 1. Learned overrides taught by the user (exact, then substring)
// 2. The pretrained keyword table, in table order
// 3. A credit default (Income, or Salary when Income is not in use)
// Anything else is Miscellaneous.
package categorizer

import (
	"context"
	"fmt"
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/parsererror"
	"avinya/fin-pulse/internal/store"
)

// Categorizer is the CategoryPredictor. It is safe for concurrent use.
type Categorizer struct {
	store         KnowledgeStoreInterface
	strategies    []Strategy
	creditDefault string
	logger        logging.Logger
}

// NewCategorizer creates a Categorizer with the standard strategy chain.
// creditDefault is the preferred credit category; "" selects Income.
func NewCategorizer(ks KnowledgeStoreInterface, src *knowledge.Source, creditDefault string, logger logging.Logger) *Categorizer {
	logger = logging.OrDefault(logger).WithField(logging.FieldComponent, "categorizer")
	c := &Categorizer{
		store:         ks,
		creditDefault: creditDefault,
		logger:        logger,
	}
	c.strategies = []Strategy{
		NewLearnedStrategy(ks, logger),
		NewKeywordStrategy(src, logger),
		NewCreditDefaultStrategy(c.CreditCategory),
	}
	return c
}

// NewCategorizerWithStrategies creates a Categorizer with an explicit chain.
func NewCategorizerWithStrategies(ks KnowledgeStoreInterface, logger logging.Logger, strategies ...Strategy) *Categorizer {
	return &Categorizer{
		store:      ks,
		strategies: strategies,
		logger:     logging.OrDefault(logger).WithField(logging.FieldComponent, "categorizer"),
	}
}

// Predict returns the category of description. It never fails: errors and
// panics fall back to Miscellaneous.
func (c *Categorizer) Predict(description string, isCredit bool) string {
	result := c.PredictWithContext(context.Background(), description, isCredit)
	return result.Category
}

// PredictWithContext returns the winning strategy result. When nothing
// matches, the result has Strategy "Default" and Category Miscellaneous.
func (c *Categorizer) PredictWithContext(ctx context.Context, description string, isCredit bool) (result StrategyResult) {
	fallback := StrategyResult{Strategy: "Default", Category: models.CategoryMiscellaneous}
	defer func() {
		if r := recover(); r != nil {
			c.logger.WithError(parsererror.Recovered("categorize", description, r)).Warn("Recovered from panic in categorizer")
			result = fallback
		}
	}()

	if strings.TrimSpace(description) == "" {
		return fallback
	}

	in := Input{Description: description, IsCredit: isCredit}
	for _, s := range c.strategies {
		category, found, err := s.Categorize(ctx, in)
		if err != nil {
			c.logger.WithError(&parsererror.CategorizationError{Description: description, Strategy: s.Name(), Err: err}).
				Warn("Categorization strategy failed")
			continue
		}
		if found && category != "" {
			return StrategyResult{Strategy: s.Name(), Category: category, Found: true}
		}
	}
	return fallback
}

// Explain runs every strategy, without stopping at the first hit.
func (c *Categorizer) Explain(ctx context.Context, description string, isCredit bool) StrategyResults {
	in := Input{Description: description, IsCredit: isCredit}
	var results StrategyResults
	for _, s := range c.strategies {
		category, found, err := s.Categorize(ctx, in)
		results.Results = append(results.Results, StrategyResult{
			Strategy: s.Name(),
			Category: category,
			Found:    found,
			Error:    err,
		})
	}
	return results
}

// Train teaches that description belongs to category. The key is the whole
// lower-cased description. A category outside the default list is also
// recorded as a custom category.
func (c *Categorizer) Train(description, category string) error {
	key := LearningKey(description)
	category = strings.TrimSpace(category)
	if key == "" || category == "" {
		c.logger.Debug("Ignoring category training with empty description or category")
		return nil
	}

	err := c.store.Update(func(tx *store.Tx) error {
		learned := tx.Map(store.SlotLearnedCategories)
		learned[key] = category
		if err := tx.PutMap(store.SlotLearnedCategories, learned); err != nil {
			return err
		}
		if models.IsDefaultCategory(category) {
			return nil
		}
		return addToList(tx, category)
	}, store.SlotLearnedCategories, store.SlotCustomCategories)
	if err != nil {
		return fmt.Errorf("failed to train category: %w", err)
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldPattern, Value: key},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Info("Learned category")
	return nil
}

// Categories returns the default categories followed by custom ones.
func (c *Categorizer) Categories() []string {
	out := append([]string{}, models.DefaultCategories...)
	seen := make(map[string]bool, len(out))
	for _, name := range out {
		seen[name] = true
	}
	for _, name := range c.store.GetList(store.SlotCustomCategories) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// CustomCategories returns the user-defined categories in insertion order.
func (c *Categorizer) CustomCategories() []string {
	return c.store.GetList(store.SlotCustomCategories)
}

// AddCustomCategory records a user-defined category. Adding a default or an
// existing category is a no-op.
func (c *Categorizer) AddCustomCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if models.IsDefaultCategory(name) {
		return nil
	}
	return c.store.Update(func(tx *store.Tx) error {
		return addToList(tx, name)
	}, store.SlotCustomCategories)
}

// RemoveCustomCategory deletes a user-defined category. Default categories
// cannot be removed.
func (c *Categorizer) RemoveCustomCategory(name string) error {
	name = strings.TrimSpace(name)
	if models.IsDefaultCategory(name) {
		return fmt.Errorf("cannot remove default category %q", name)
	}
	return c.store.Update(func(tx *store.Tx) error {
		current := tx.List(store.SlotCustomCategories)
		kept := current[:0]
		for _, existing := range current {
			if existing != name {
				kept = append(kept, existing)
			}
		}
		if len(kept) == len(current) {
			return nil
		}
		return tx.PutList(store.SlotCustomCategories, kept)
	}, store.SlotCustomCategories)
}

// CreditCategory is the category given to credits nothing else matched: the
// configured preference when it is in the category set, else Income when it
// is, else Salary.
func (c *Categorizer) CreditCategory() string {
	categories := c.Categories()
	has := func(name string) bool {
		for _, existing := range categories {
			if strings.EqualFold(existing, name) {
				return true
			}
		}
		return false
	}
	switch {
	case c.creditDefault != "" && has(c.creditDefault):
		return c.creditDefault
	case has(models.CategoryIncome):
		return models.CategoryIncome
	default:
		return models.CategorySalary
	}
}

func addToList(tx *store.Tx, name string) error {
	current := tx.List(store.SlotCustomCategories)
	for _, existing := range current {
		if existing == name {
			return nil
		}
	}
	return tx.PutList(store.SlotCustomCategories, append(current, name))
}
