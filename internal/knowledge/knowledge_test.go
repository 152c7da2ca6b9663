package knowledge

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

func TestDefault_EmbeddedData(t *testing.T) {
	p := Default()

	assert.Contains(t, p.TransactionKeywords, "upi")
	assert.Len(t, p.TransactionKeywords, 13)
	assert.Contains(t, p.NonTransactionPhrases, "one time password")
	assert.Contains(t, p.CreditPhrases, "received from")
	assert.Contains(t, p.DebitPhrases, "paid to")

	require.NotEmpty(t, p.Categories)
	assert.Equal(t, models.CategoryFood, p.Categories[0].Name)
	assert.Equal(t, models.CategoryIncome, p.Categories[len(p.Categories)-1].Name)

	require.Len(t, p.VoiceCategories, 9)
	assert.Equal(t, models.CategoryGroceries, p.VoiceCategories[6].Name)
	assert.Contains(t, p.Merchants, "big bazaar")
}

func TestSource_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretrained.yaml")
	content := `
transaction_keywords: [" PAID ", ""]
categories:
  - name: Pets
    keywords: [Vet, "kibble"]
  - name: ""
    keywords: [ignored]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	p := NewSource(path, logging.NewMockLogger()).Get()
	assert.Equal(t, []string{"paid"}, p.TransactionKeywords)
	require.Len(t, p.Categories, 1)
	assert.Equal(t, []string{"vet", "kibble"}, p.Categories[0].Keywords)
	assert.Empty(t, p.Merchants)
}

func TestSource_MissingOverrideFallsBackToEmbedded(t *testing.T) {
	logger := logging.NewMockLogger()
	p := NewSource(filepath.Join(t.TempDir(), "missing.yaml"), logger).Get()

	assert.NotEmpty(t, p.TransactionKeywords)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 1)
}

func TestSource_CorruptOverrideFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [oops"), 0600))

	logger := logging.NewMockLogger()
	p := NewSource(path, logger).Get()

	require.NotNil(t, p)
	assert.Empty(t, p.TransactionKeywords)
	assert.Empty(t, p.Categories)
	assert.True(t, logger.HasEntry("WARN", "Failed to load pretrained knowledge, continuing without it"))
}

func TestSource_LoadsOnce(t *testing.T) {
	s := NewSource("", logging.NewMockLogger())
	var wg sync.WaitGroup
	results := make([]*Pretrained, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Get()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestStatic(t *testing.T) {
	p := Static(&Pretrained{CreditPhrases: []string{"Refund"}}).Get()
	assert.Equal(t, []string{"refund"}, p.CreditPhrases)
	assert.NotNil(t, Static(nil).Get())
}

func TestFirstMatch(t *testing.T) {
	phrase, ok := FirstMatch("your otp is 1234", []string{"verification code", "otp is"})
	assert.True(t, ok)
	assert.Equal(t, "otp is", phrase)

	_, ok = FirstMatch("hello", []string{"otp"})
	assert.False(t, ok)
}
