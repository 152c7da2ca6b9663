package learning

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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
	"avinya/fin-pulse/internal/voice"
)

type fixture struct {
	ks          *store.KnowledgeStore
	backend     *store.MemoryBackend
	coordinator *Coordinator
	categorizer *categorizer.Categorizer
	voice       *voice.Parser
	gate        *gate.Gate
	direction   *direction.Classifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := logging.NewMockLogger()
	backend := store.NewMemoryBackend()
	ks := store.New(backend, logger)
	src := knowledge.NewSource("", logger)
	cat := categorizer.NewCategorizer(ks, src, "", logger)
	vp := voice.New(ks, src, logger)
	return fixture{
		ks:          ks,
		backend:     backend,
		coordinator: NewCoordinator(ks, cat, vp, nil, logger),
		categorizer: cat,
		voice:       vp,
		gate:        gate.New(ks, src, nil, logger),
		direction:   direction.NewClassifier(ks, src, nil, logger),
	}
}

func TestTrainConfirmedTransaction_GatePrecedence(t *testing.T) {
	f := newFixture(t)
	text := "Dad 500 pocket money"
	key := pattern.Normalize(text)

	require.NoError(t, f.coordinator.TrainNonTransaction(text))
	assert.False(t, f.gate.IsLikelyTransaction(text))

	require.NoError(t, f.coordinator.TrainConfirmedTransaction(text, true))
	assert.True(t, f.gate.IsLikelyTransaction("Dad 900 pocket money"))
	assert.False(t, f.ks.PatternSet(store.SlotNonTransactionPatterns).Contains(key))
	assert.True(t, f.ks.PatternSet(store.SlotConfirmedTransactionPatterns).Contains(key))
}

func TestTrainNonTransaction_DoesNotUnconfirm(t *testing.T) {
	f := newFixture(t)
	text := "Weekly summary 42"
	key := pattern.Normalize(text)

	require.NoError(t, f.coordinator.TrainConfirmedTransaction(text, false))
	require.NoError(t, f.coordinator.Dismiss(text))

	assert.True(t, f.ks.PatternSet(store.SlotConfirmedTransactionPatterns).Contains(key))
	assert.True(t, f.ks.PatternSet(store.SlotNonTransactionPatterns).Contains(key))
	// The rejection is checked first.
	assert.False(t, f.gate.IsLikelyTransaction(text))
}

func TestTrainConfirmedTransaction_DirectionExclusion(t *testing.T) {
	f := newFixture(t)
	text := "Rs 500 debited from a/c XX99 for Dad"
	key := pattern.Normalize(text)

	require.NoError(t, f.coordinator.TrainConfirmedTransaction(text, false))
	assert.True(t, f.ks.PatternSet(store.SlotDebitPatterns).Contains(key))

	require.NoError(t, f.coordinator.TrainConfirmedTransaction(text, true))
	assert.True(t, f.ks.PatternSet(store.SlotCreditPatterns).Contains(key))
	assert.False(t, f.ks.PatternSet(store.SlotDebitPatterns).Contains(key))

	assert.True(t, f.direction.IsCredit("Rs 800 debited from a/c XX12 for Dad", false))
	assert.True(t, f.direction.IsCredit(text, true))
}

func TestTrainConfirmedTransaction_ConcurrentOppositeDirections(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := newFixture(t)
		text := "Paid Rs 50 to Dad"
		key := pattern.Normalize(text)

		var wg sync.WaitGroup
		for _, isCredit := range []bool{true, false} {
			wg.Add(1)
			go func(isCredit bool) {
				defer wg.Done()
				assert.NoError(t, f.coordinator.TrainConfirmedTransaction(text, isCredit))
			}(isCredit)
		}
		wg.Wait()

		inCredit := f.ks.PatternSet(store.SlotCreditPatterns).Contains(key)
		inDebit := f.ks.PatternSet(store.SlotDebitPatterns).Contains(key)
		require.True(t, inCredit != inDebit, "round %d: credit=%v debit=%v", round, inCredit, inDebit)
	}
}

func TestEmptyPatternKeyIsNoOp(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"", "   ", "12345", "Rs 500", "₹ 1,000.00"} {
		require.NoError(t, f.coordinator.TrainNonTransaction(text))
		require.NoError(t, f.coordinator.TrainConfirmedTransaction(text, true))
	}
	require.NoError(t, f.coordinator.TrainUpiMapping("", "Dad"))
	require.NoError(t, f.coordinator.TrainUpiMapping("dad@ybl", " "))

	assert.Zero(t, f.backend.Saves)
}

func TestTrainUpiMapping(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.coordinator.TrainUpiMapping(" Dad@YBL ", "Dad"))
	require.NoError(t, f.coordinator.TrainUpiMapping("dad@ybl", "Papa"))
	assert.Equal(t, map[string]string{"dad@ybl": "Papa"}, f.ks.GetMap(store.SlotUPIMappings))
}

func TestTrainCategoryAndVoice(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.coordinator.TrainCategory("paid to xyz mart", models.CategoryGifts))
	assert.Equal(t, models.CategoryGifts, f.categorizer.Predict("paid to xyz mart", false))

	require.NoError(t, f.coordinator.TrainVoicePattern("chai", models.CategoryFood))
	assert.Equal(t, models.CategoryFood, f.voice.Parse("20 for chai").Category)

	// The two learning paths use separate slots.
	assert.NotContains(t, f.ks.GetMap(store.SlotLearnedCategories), "chai")
	assert.NotContains(t, f.ks.GetMap(store.SlotVoicePatterns), "paid to xyz mart")
}

func TestUpdateExpenseCategory(t *testing.T) {
	f := newFixture(t)
	expense := models.NewExpense(decimal.NewFromInt(120), "Chai Point", models.CategoryMiscellaneous, models.ExpenseDigital, false, time.Now())

	require.NoError(t, f.coordinator.UpdateExpenseCategory(&expense, "Tea Breaks"))
	assert.Equal(t, "Tea Breaks", expense.Category)
	assert.Equal(t, "Tea Breaks", f.categorizer.Predict("chai point", false))
	assert.Contains(t, f.categorizer.CustomCategories(), "Tea Breaks")

	require.NoError(t, f.coordinator.UpdateExpenseCategory(nil, "Gifts"))
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	credit := true
	candidate := models.Candidate{
		ParsedTransaction: models.ParsedTransaction{
			Amount:      decimal.NewFromInt(500),
			Method:      models.MethodUPI,
			Party:       "DAD@OKAXIS",
			UPIID:       "dad@okaxis",
			IsCredit:    false,
			Description: models.DescribeParty("DAD@OKAXIS", false),
		},
		Category:   models.CategoryMiscellaneous,
		RawText:    "Rs 500 via UPI dad@okaxis",
		PatternKey: pattern.Normalize("Rs 500 via UPI dad@okaxis"),
	}

	out, err := f.coordinator.Confirm(candidate, models.Correction{Party: "Dad", Category: "Family", IsCredit: &credit})
	require.NoError(t, err)

	assert.Equal(t, "DAD", out.Party)
	assert.True(t, out.IsCredit)
	assert.Equal(t, "Received from DAD", out.Description)
	assert.Equal(t, "Family", out.Category)

	assert.Equal(t, "Dad", f.ks.GetMap(store.SlotUPIMappings)["dad@okaxis"])
	assert.True(t, f.ks.PatternSet(store.SlotCreditPatterns).Contains(candidate.PatternKey))
	assert.True(t, f.ks.PatternSet(store.SlotConfirmedTransactionPatterns).Contains(candidate.PatternKey))
	assert.Equal(t, "Family", f.categorizer.Predict("DAD", true))
}

func TestConfirm_WithoutCorrections(t *testing.T) {
	f := newFixture(t)
	candidate := models.Candidate{
		ParsedTransaction: models.ParsedTransaction{
			Amount: decimal.NewFromInt(50), Party: "DAD", UPIID: "dad@ybl",
			Description: models.DescribeParty("DAD", false),
		},
		Category: models.CategoryMiscellaneous,
		RawText:  "Paid Rs 50 to Dad dad@ybl",
	}

	out, err := f.coordinator.Confirm(candidate, models.Correction{Party: "DAD@YBL"})
	require.NoError(t, err)
	assert.Equal(t, candidate.Category, out.Category)
	// A "correction" equal to the handle teaches nothing.
	assert.Empty(t, f.ks.GetMap(store.SlotUPIMappings))
	assert.Empty(t, f.ks.GetMap(store.SlotLearnedCategories))
	assert.True(t, f.ks.PatternSet(store.SlotDebitPatterns).Contains(pattern.Normalize(candidate.RawText)))
}

func TestStoreFailuresPropagate(t *testing.T) {
	f := newFixture(t)
	f.backend.SaveError = errors.New("disk full")

	assert.Error(t, f.coordinator.TrainNonTransaction("Your statement is ready"))
	assert.Error(t, f.coordinator.TrainConfirmedTransaction("Paid Rs 50 to Dad", false))
	assert.Error(t, f.coordinator.TrainUpiMapping("dad@ybl", "Dad"))
	assert.Error(t, f.coordinator.TrainCategory("rent", models.CategoryBills))
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.coordinator.TrainConfirmedTransaction("Paid Rs 50 to Dad", false))
	require.NoError(t, f.coordinator.Reset())
	assert.Empty(t, f.ks.PatternSet(store.SlotDebitPatterns).Members())
}
