// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/internal/config"
	"avinya/fin-pulse/internal/container"
	"avinya/fin-pulse/internal/logging"
)

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fin-pulse",
		Short: "Understand bank alerts, UPI notifications and spoken expenses.",
		Long: `fin-pulse reads free-form transaction messages and turns them into
structured expenses: it decides whether a message is a transaction, extracts
amount, party, UPI handle and payment method, tells money in from money out,
predicts a category and learns from every correction.`,
		SilenceUsage:      true,
		PersistentPreRunE: initialize,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if err := closeContainer(); err != nil {
				GetLogger().WithError(err).Warn("Failed to close container")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// ConfigFile is the --config flag.
	ConfigFile string

	mu           sync.RWMutex
	appContainer *container.Container
	appConfig    *config.Config
	initOnce     sync.Once
)

// Init registers the global flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVar(&ConfigFile, "config", "", "Config file (default: ./config.yaml or $HOME/.fin-pulse/config.yaml)")
		flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
		flags.String("log-format", "text", "Log format (text, json)")
		flags.String("store", config.BackendFile, "Knowledge store backend (file, sqlite, memory)")
	})
}

func initialize(cmd *cobra.Command, args []string) error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfigWithFlags(ConfigFile, cmd.Flags(), config.FlagKeys)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg)
	logging.SetDefault(logger)

	c, err := container.NewContainerWithLogger(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	SetContainer(c)
	return nil
}

// SetContainer installs the container used by every command.
func SetContainer(c *container.Container) {
	mu.Lock()
	defer mu.Unlock()
	appContainer = c
	if c != nil {
		appConfig = c.GetConfig()
	}
}

// GetContainer returns the application container, or an error when the
// root command has not initialized it.
func GetContainer() (*container.Container, error) {
	mu.RLock()
	defer mu.RUnlock()
	if appContainer == nil {
		return nil, fmt.Errorf("application container is not initialized")
	}
	return appContainer, nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	mu.RLock()
	defer mu.RUnlock()
	return appConfig
}

// GetLogger returns the container logger, or the process default before
// initialization.
func GetLogger() logging.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if appContainer == nil {
		return logging.GetLogger()
	}
	return appContainer.GetLogger()
}

func closeContainer() error {
	mu.Lock()
	c := appContainer
	appContainer = nil
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}
