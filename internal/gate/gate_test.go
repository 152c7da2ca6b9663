package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
)

func newTestGate(t *testing.T) (*Gate, *store.KnowledgeStore) {
	t.Helper()
	ks := store.NewMemory(logging.NewMockLogger())
	src := knowledge.NewSource("", logging.NewMockLogger())
	return New(ks, src, pattern.New(0), logging.NewMockLogger()), ks
}

func TestGate_Precedence(t *testing.T) {
	g, _ := newTestGate(t)

	tests := []struct {
		name   string
		text   string
		likely bool
		rule   string
	}{
		{"otp beats keywords", "123456 is your OTP for payment of Rs 500", false, "PretrainedNonTransaction"},
		{"future debit is not a transaction", "Rs 499 will be debited from your account on 5th", false, "PretrainedNonTransaction"},
		{"pretrained transaction phrase", "Your a/c XX1234 has been debited with INR 250.00", true, "PretrainedTransaction"},
		{"keyword fallback", "Paid Rs 50 to Dad", true, "Keyword"},
		{"upi keyword", "UPI txn of 20 at chai point", true, "Keyword"},
		{"no keyword", "Your order has shipped", false, "Keyword"},
		{"empty", "   ", false, "Empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := g.Evaluate(tt.text)
			assert.Equal(t, tt.likely, v.Likely)
			assert.Equal(t, tt.rule, v.Rule)
			assert.Equal(t, tt.likely, g.IsLikelyTransaction(tt.text))
		})
	}
}

func TestGate_LearnedPatterns(t *testing.T) {
	g, ks := newTestGate(t)

	// No keyword: the fallback says no.
	text := "Dad 500 pocket money"
	assert.False(t, g.IsLikelyTransaction(text))

	require.NoError(t, ks.PatternSet(store.SlotConfirmedTransactionPatterns).Add(pattern.Normalize(text)))
	assert.True(t, g.IsLikelyTransaction("Dad 750 pocket money"))
	assert.Equal(t, "LearnedTransaction", g.Evaluate(text).Rule)

	// A learned rejection outranks the keyword fallback.
	alert := "Payment reminder: card ending 1234"
	assert.True(t, g.IsLikelyTransaction(alert))
	require.NoError(t, ks.PatternSet(store.SlotNonTransactionPatterns).Add(pattern.Normalize(alert)))
	assert.False(t, g.IsLikelyTransaction("Payment reminder: card ending 9876"))
}

func TestGate_LearnedRejectionBeatsLearnedConfirmation(t *testing.T) {
	g, ks := newTestGate(t)
	require.NoError(t, ks.PatternSet(store.SlotNonTransactionPatterns).Add("weekly summary"))
	require.NoError(t, ks.PatternSet(store.SlotConfirmedTransactionPatterns).Add("weekly summary"))

	v := g.Evaluate("Weekly summary 2024")
	assert.False(t, v.Likely)
	assert.Equal(t, "LearnedNonTransaction", v.Rule)
}

func TestGate_PretrainedBeatsLearned(t *testing.T) {
	g, ks := newTestGate(t)
	require.NoError(t, ks.PatternSet(store.SlotConfirmedTransactionPatterns).Add("is your otp"))

	assert.False(t, g.IsLikelyTransaction("4321 is your OTP"))
}

func TestGate_MojibakeCurrency(t *testing.T) {
	g, _ := newTestGate(t)
	assert.True(t, g.IsLikelyTransaction("â‚¹120 debited by UPI"))
}

type panicRule struct{}

func (panicRule) Name() string { return "Panic" }
func (panicRule) Check(Input) (bool, string, bool) {
	panic("boom")
}

func TestGate_RecoversFromPanics(t *testing.T) {
	logger := logging.NewMockLogger()
	g := NewWithRules(nil, logger, panicRule{})

	assert.NotPanics(t, func() {
		v := g.Evaluate("paid 10")
		assert.False(t, v.Likely)
		assert.Equal(t, "Recovered", v.Rule)
	})
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
}

func TestGate_EmptyKnowledge(t *testing.T) {
	ks := store.NewMemory(nil)
	g := New(ks, knowledge.Static(nil), nil, logging.NewMockLogger())

	v := g.Evaluate("paid 100 to dad")
	assert.False(t, v.Likely)
	assert.Equal(t, "Keyword", v.Rule)
}

func TestPhraseRule(t *testing.T) {
	r := NewPhraseRule("Custom", []string{"statement ready"}, false)
	likely, match, decided := r.Check(Input{Text: "your statement ready for may"})
	assert.True(t, decided)
	assert.False(t, likely)
	assert.Equal(t, "statement ready", match)
}
