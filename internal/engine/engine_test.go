package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/categorizer"
	"avinya/fin-pulse/internal/direction"
	"avinya/fin-pulse/internal/gate"
	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/txparser"
)

func newTestEngine(t *testing.T, blocked []string) (*Engine, *categorizer.Categorizer) {
	t.Helper()
	logger := logging.NewMockLogger()
	ks := store.NewMemory(logger)
	src := knowledge.NewSource("", logger)
	dir := direction.NewClassifier(ks, src, nil, logger)
	cat := categorizer.NewCategorizer(ks, src, "", logger)
	e := New(gate.New(ks, src, nil, logger), txparser.New(ks, dir, logger), cat, nil, blocked, logger)
	return e, cat
}

func TestProcess(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	tests := []struct {
		name     string
		text     string
		party    string
		category string
		isCredit bool
	}{
		{"keyword category from party", "₹99 spent at Cafe Coffee Day.", "CAFE COFFEE DAY", models.CategoryFood, false},
		{"unmatched debit", "Paid Rs 50 to Dad", "DAD", models.CategoryMiscellaneous, false},
		{"unmatched credit", "Mom Mom sent you Rs 200", "MOM", models.CategoryIncome, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.Process(tt.text, "")
			require.NotNil(t, c)
			assert.Equal(t, tt.party, c.Party)
			assert.Equal(t, tt.category, c.Category)
			assert.Equal(t, tt.isCredit, c.IsCredit)
			assert.Equal(t, tt.text, c.RawText)
			assert.Equal(t, pattern.Normalize(tt.text), c.PatternKey)
		})
	}
}

func TestRun_Outcomes(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	res := e.Run("123456 is your OTP for login", "")
	assert.Equal(t, OutcomeNotTransaction, res.Outcome)
	assert.Nil(t, res.Candidate)

	res = e.Run("Payment successful", "")
	assert.Equal(t, OutcomeUnparseable, res.Outcome)
	assert.True(t, res.Verdict.Likely)
	assert.Nil(t, res.Candidate)

	res = e.Run("Paid Rs 50 to Dad", "com.whatsapp")
	assert.Equal(t, OutcomeBlocked, res.Outcome)
	assert.Nil(t, res.Candidate)

	res = e.Run("Paid Rs 50 to Dad", "com.phonepe.app")
	assert.Equal(t, OutcomeCandidate, res.Outcome)
	assert.NotNil(t, res.Candidate)
}

func TestBlockedSources(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	for _, s := range DefaultBlockedSources {
		assert.True(t, e.IsBlocked(s), s)
	}
	assert.True(t, e.IsBlocked(" COM.WHATSAPP "))
	assert.False(t, e.IsBlocked(""))

	custom, _ := newTestEngine(t, []string{"org.telegram.messenger"})
	assert.True(t, custom.IsBlocked("org.telegram.messenger"))
	assert.False(t, custom.IsBlocked("com.whatsapp"))

	none, _ := newTestEngine(t, []string{})
	assert.NotNil(t, none.Process("Paid Rs 50 to Dad", "com.whatsapp"))
}

func TestProcess_UsesLearnedCategory(t *testing.T) {
	e, cat := newTestEngine(t, nil)
	require.NoError(t, cat.Train("DAD", models.CategoryGifts))

	c := e.Process("Paid Rs 500 to Dad", "")
	require.NotNil(t, c)
	assert.Equal(t, models.CategoryGifts, c.Category)
}

type panicGate struct{}

func (panicGate) Evaluate(string) gate.Verdict { panic("boom") }

func TestRun_RecoversPanic(t *testing.T) {
	logger := logging.NewMockLogger()
	e := New(panicGate{}, nil, nil, nil, nil, logger)

	res := e.Run("Paid Rs 50 to Dad", "")
	assert.Equal(t, OutcomeUnparseable, res.Outcome)
	assert.Nil(t, res.Candidate)
	assert.True(t, logger.HasEntry("WARN", "Recovered from panic while processing message"))
}
