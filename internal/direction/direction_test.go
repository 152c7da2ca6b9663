package direction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
)

func TestGuess(t *testing.T) {
	tests := []struct {
		text     string
		isCredit bool
		rule     string
	}{
		{"Rahul sent Rs 500 to you", true, "sent_to_you"},
		{"Mom sent you Rs 200", true, "sent_you"},
		{"Paid Rs 50 to Dad", false, "debit_keyword"},
		{"Rs 120 debited from a/c XX12", false, "debit_keyword"},
		{"You sent Rs 300 to Priya", false, "sent"},
		{"Refund of Rs 99 processed", true, "credit_keyword"},
		{"Rs 1000 received in your wallet", true, "credit_keyword"},
		{"Rs 400 from Amit", true, "from_without_account"},
		{"Rs 400 from your account", false, "none"},
		{"Hello there", false, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			isCredit, rule := GuessWithRule(tt.text)
			assert.Equal(t, tt.isCredit, isCredit)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.isCredit, Guess(tt.text))
		})
	}
}

func newTestClassifier(t *testing.T) (*Classifier, *store.KnowledgeStore) {
	t.Helper()
	ks := store.NewMemory(logging.NewMockLogger())
	return NewClassifier(ks, knowledge.NewSource("", nil), nil, logging.NewMockLogger()), ks
}

func TestClassifier_PretrainedPhrases(t *testing.T) {
	c, _ := newTestClassifier(t)

	assert.True(t, c.IsCredit("INR 500 credited to your a/c XX99", false))
	assert.False(t, c.IsCredit("INR 500 debited from a/c XX99", true))
	// Credit phrases are checked first.
	assert.True(t, c.IsCredit("Refund of Rs 20 for order paid to Amazon", false))
}

func TestClassifier_DefaultGuess(t *testing.T) {
	c, _ := newTestClassifier(t)

	assert.True(t, c.IsCredit("pocket money 500", true))
	assert.False(t, c.IsCredit("pocket money 500", false))
}

func TestClassifier_LearnedOverridesEverything(t *testing.T) {
	c, ks := newTestClassifier(t)
	text := "Rs 500 debited from a/c XX99 for Dad"
	key := pattern.Normalize(text)

	require.NoError(t, ks.PatternSet(store.SlotCreditPatterns).Add(key))
	assert.True(t, c.IsCredit(text, false))
	assert.True(t, c.IsCredit("Rs 750 debited from a/c XX12 for Dad", false))

	require.NoError(t, ks.PatternSet(store.SlotCreditPatterns).Remove(key))
	require.NoError(t, ks.PatternSet(store.SlotDebitPatterns).Add(pattern.Normalize("Mom sent you Rs 100")))
	assert.False(t, c.IsCredit("Mom sent you Rs 250", true))
}

func TestClassifier_LearnedIsExactMatch(t *testing.T) {
	c, ks := newTestClassifier(t)
	require.NoError(t, ks.PatternSet(store.SlotCreditPatterns).Add("pocket money"))

	assert.False(t, c.IsCredit("pocket money from dad", false))
	assert.True(t, c.IsCredit("Pocket money 500", false))
}

func TestClassifier_EmptyKnowledge(t *testing.T) {
	ks := store.NewMemory(nil)
	c := NewClassifier(ks, knowledge.Static(nil), pattern.New(0), logging.NewMockLogger())

	assert.True(t, c.IsCredit("credited to your account", true))
	assert.False(t, c.IsCredit("credited to your account", false))
}
