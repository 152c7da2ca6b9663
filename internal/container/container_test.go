package container

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/config"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
	"avinya/fin-pulse/internal/store"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Store.Backend = backend
	cfg.Store.Path = filepath.Join(dir, "knowledge.yaml")
	cfg.Store.SQLitePath = filepath.Join(dir, "knowledge.db")
	cfg.Categories.CreditDefault = models.CategoryIncome
	cfg.Pattern.MaxLength = 50
	cfg.CSV.Delimiter = ","
	cfg.Batch.Workers = 2
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{name: "nil config", config: nil, expectError: true, errorMsg: "configuration cannot be nil"},
		{name: "memory backend", config: testConfig(t, config.BackendMemory)},
		{name: "file backend", config: testConfig(t, config.BackendFile)},
		{name: "sqlite backend", config: testConfig(t, config.BackendSQLite)},
		{name: "unknown backend", config: testConfig(t, "redis"), expectError: true, errorMsg: "unknown store backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainerWithLogger(tt.config, logging.NewMockLogger())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, c)
			defer func() { assert.NoError(t, c.Close()) }()

			assert.NotNil(t, c.GetLogger())
			assert.Equal(t, tt.config, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetKnowledge())
			assert.Equal(t, 50, c.GetNormalizer().MaxLength())
			assert.NotNil(t, c.GetGate())
			assert.NotNil(t, c.GetDirection())
			assert.NotNil(t, c.GetParser())
			assert.NotNil(t, c.GetCategorizer())
			assert.NotNil(t, c.GetVoice())
			assert.NotNil(t, c.GetCoordinator())
			assert.NotNil(t, c.GetEngine())
			assert.NotNil(t, c.GetBatchProcessor())
			assert.Equal(t, tt.config.Store.Backend, c.GetStore().BackendName())
		})
	}
}

func TestContainer_EndToEnd(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)

	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)

	text := "Rs 500 received via UPI from dad@okaxis"
	candidate := c.GetEngine().Process(text, "")
	require.NotNil(t, candidate)

	credit := true
	_, err = c.GetCoordinator().Confirm(*candidate, models.Correction{Party: "Dad", Category: models.CategoryGifts, IsCredit: &credit})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	// Learned knowledge survives a restart over the same file.
	c, err = NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "Dad", c.GetStore().GetMap(store.SlotUPIMappings)["dad@okaxis"])
	again := c.GetEngine().Process("Rs 900 received via UPI from dad@okaxis", "")
	require.NotNil(t, again)
	assert.Equal(t, "DAD", again.Party)
	assert.True(t, again.IsCredit)
	assert.Equal(t, models.CategoryGifts, again.Category)
}

func TestContainer_BlockedSourcesFromConfig(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.Engine.BlockedSources = []string{"org.telegram.messenger"}

	c, err := NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, c.GetEngine().IsBlocked("org.telegram.messenger"))
	assert.False(t, c.GetEngine().IsBlocked("com.whatsapp"))
}
