package categorizer

import (
	"context"
	"strings"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

// KeywordStrategy implements categorization using the pretrained keyword
// table. The first category, in table order, with a keyword contained in
// the description wins.
type KeywordStrategy struct {
	categories func() []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over the pretrained table.
func NewKeywordStrategy(src *knowledge.Source, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{
		categories: func() []models.CategoryConfig { return src.Get().Categories },
		logger:     logging.OrDefault(logger),
	}
}

// NewKeywordStrategyFromTable creates a KeywordStrategy over a fixed table.
func NewKeywordStrategyFromTable(table []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	return &KeywordStrategy{
		categories: func() []models.CategoryConfig { return table },
		logger:     logging.OrDefault(logger),
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize attempts to categorize a description using keyword matching.
func (s *KeywordStrategy) Categorize(_ context.Context, in Input) (string, bool, error) {
	desc := strings.ToLower(strings.TrimSpace(in.Description))
	if desc == "" {
		return "", false, nil
	}

	for _, categoryConfig := range s.categories() {
		for _, keyword := range categoryConfig.Keywords {
			if keyword == "" || !strings.Contains(desc, strings.ToLower(keyword)) {
				continue
			}
			s.logger.WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
				logging.Field{Key: logging.FieldPattern, Value: keyword},
				logging.Field{Key: logging.FieldCategory, Value: categoryConfig.Name},
			).Debug("Description categorized using keyword matching")
			return categoryConfig.Name, true, nil
		}
	}
	return "", false, nil
}
