package categorizer

import (
	"context"
	"sort"
	"strings"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/store"
)

// LearnedStrategy applies category corrections taught by the user. Keys are
// whole lower-cased descriptions. An exact key wins; otherwise the longest
// key contained in the description wins, ties broken alphabetically.
type LearnedStrategy struct {
	store  KnowledgeStoreInterface
	slot   store.Slot
	logger logging.Logger
}

// NewLearnedStrategy creates a LearnedStrategy over the learned-category slot.
func NewLearnedStrategy(ks KnowledgeStoreInterface, logger logging.Logger) *LearnedStrategy {
	return &LearnedStrategy{store: ks, slot: store.SlotLearnedCategories, logger: logging.OrDefault(logger)}
}

func (s *LearnedStrategy) Name() string {
	return "Learned"
}

func (s *LearnedStrategy) Categorize(_ context.Context, in Input) (string, bool, error) {
	desc := LearningKey(in.Description)
	if desc == "" {
		return "", false, nil
	}

	learned := s.store.GetMap(s.slot)
	if category, ok := learned[desc]; ok {
		s.log(desc, category, "exact")
		return category, true, nil
	}

	keys := make([]string, 0, len(learned))
	for k := range learned {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		if strings.Contains(desc, k) {
			s.log(k, learned[k], "substring")
			return learned[k], true, nil
		}
	}
	return "", false, nil
}

func (s *LearnedStrategy) log(key, category, match string) {
	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldPattern, Value: key},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldReason, Value: match},
	).Debug("Description categorized using learned mapping")
}

// LearningKey is the key under which a description's category is learned:
// the lower-cased, trimmed description. Amounts are not stripped.
func LearningKey(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
