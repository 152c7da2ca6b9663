package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avinya/fin-pulse/internal/logging"
)

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "knowledge.yaml")
	b := NewFileBackend(path, logging.NewMockLogger())
	assert.Equal(t, "file", b.Name())
	assert.Equal(t, path, b.Path())

	_, ok, err := b.Load(ctx, "upi_mappings")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(ctx, "upi_mappings", []byte(`{"dad@okaxis":"Dad"}`)))
	require.NoError(t, b.Save(ctx, "credit_patterns", []byte(`["sent you"]`)))

	reopened := NewFileBackend(path, logging.NewMockLogger())
	v, ok, err := reopened.Load(ctx, "upi_mappings")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"dad@okaxis":"Dad"}`, string(v))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, reopened.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, reopened.Clear(ctx))
	require.NoError(t, reopened.Close())
}

func TestFileBackend_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "knowledge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[unclosed"), 0600))

	logger := logging.NewMockLogger()
	b := NewFileBackend(path, logger)

	_, ok, err := b.Load(ctx, "credit_patterns")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, logger.HasEntry("WARN", "Corrupt knowledge file, starting empty"))

	require.NoError(t, b.Save(ctx, "credit_patterns", []byte(`["sent you"]`)))
	v, ok, err := NewFileBackend(path, nil).Load(ctx, "credit_patterns")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["sent you"]`, string(v))
}

func TestKnowledgeStore_OverFileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge.yaml")

	s := New(NewFileBackend(path, nil), logging.NewMockLogger())
	require.NoError(t, s.PatternSet(SlotNonTransactionPatterns).Add("your otp is"))
	require.NoError(t, s.PutMap(SlotLearnedCategories, map[string]string{"paid to xyz mart": "Shopping"}))
	require.NoError(t, s.Close())

	reopened := New(NewFileBackend(path, nil), logging.NewMockLogger())
	assert.True(t, reopened.PatternSet(SlotNonTransactionPatterns).Contains("your otp is"))
	assert.Equal(t, "Shopping", reopened.GetMap(SlotLearnedCategories)["paid to xyz mart"])
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "knowledge.db")

	b, err := NewSQLiteBackend(dbPath, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", b.Name())

	_, ok, err := b.Load(ctx, "debit_patterns")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save(ctx, "debit_patterns", []byte(`["paid to"]`)))
	require.NoError(t, b.Save(ctx, "debit_patterns", []byte(`["paid to","spent at"]`)))
	require.NoError(t, b.Close())

	// Reopening re-runs migrations without error and keeps data.
	b, err = NewSQLiteBackend(dbPath, logging.NewMockLogger())
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Load(ctx, "debit_patterns")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["paid to","spent at"]`, string(v))

	require.NoError(t, b.Clear(ctx))
	_, ok, err = b.Load(ctx, "debit_patterns")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKnowledgeStore_OverSQLiteBackend(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "knowledge.db")
	b, err := NewSQLiteBackend(dbPath, nil)
	require.NoError(t, err)

	s := New(b, logging.NewMockLogger())
	defer s.Close()

	require.NoError(t, s.PutList(SlotCustomCategories, []string{"Pets"}))
	require.NoError(t, s.PatternSet(SlotCreditPatterns).Add("sent you"))
	assert.Equal(t, []string{"Pets"}, s.GetList(SlotCustomCategories))

	require.NoError(t, s.Reset())
	assert.Empty(t, s.GetList(SlotCustomCategories))
	assert.False(t, s.PatternSet(SlotCreditPatterns).Contains("sent you"))
}
