// Package cmdtest holds helpers for command tests. Import it from _test.go
// files only.
package cmdtest

import (
	"testing"

	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/internal/config"
	"avinya/fin-pulse/internal/container"
	"avinya/fin-pulse/internal/logging"
)

// InstallTestContainer installs a container over an in-memory knowledge
// store for the duration of t.
func InstallTestContainer(t *testing.T) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Store.Backend = config.BackendMemory
	cfg.Categories.CreditDefault = "Income"
	cfg.Pattern.MaxLength = 50
	cfg.Engine.BlockedSources = []string{"com.whatsapp", "com.whatsapp.w4b", "com.google.android.gm"}
	cfg.CSV.Delimiter = ","
	cfg.Batch.Workers = 2

	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	root.SetContainer(c)
	t.Cleanup(func() { root.SetContainer(nil) })
	return c
}
