package categorizer

import (
	"context"
)

// CreditDefaultStrategy files otherwise uncategorized credits under the
// income category in use.
type CreditDefaultStrategy struct {
	category func() string
}

// NewCreditDefaultStrategy creates the strategy. category is resolved on
// every call so that category-set changes apply immediately.
func NewCreditDefaultStrategy(category func() string) *CreditDefaultStrategy {
	return &CreditDefaultStrategy{category: category}
}

func (s *CreditDefaultStrategy) Name() string {
	return "CreditDefault"
}

func (s *CreditDefaultStrategy) Categorize(_ context.Context, in Input) (string, bool, error) {
	if !in.IsCredit {
		return "", false, nil
	}
	return s.category(), true, nil
}
