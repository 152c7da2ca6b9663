// Package container provides dependency injection for the fin-pulse
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"avinya/fin-pulse/internal/batch"
	"avinya/fin-pulse/internal/categorizer"
	"avinya/fin-pulse/internal/common"
	"avinya/fin-pulse/internal/config"
	"avinya/fin-pulse/internal/direction"
	"avinya/fin-pulse/internal/engine"
	"avinya/fin-pulse/internal/gate"
	"avinya/fin-pulse/internal/knowledge"
	"avinya/fin-pulse/internal/learning"
	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/pattern"
	"avinya/fin-pulse/internal/store"
	"avinya/fin-pulse/internal/txparser"
	"avinya/fin-pulse/internal/voice"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger logging.Logger
	config *config.Config

	store       *store.KnowledgeStore
	knowledge   *knowledge.Source
	normalizer  *pattern.Normalizer
	gate        *gate.Gate
	direction   *direction.Classifier
	parser      *txparser.Parser
	categorizer *categorizer.Categorizer
	voice       *voice.Parser
	coordinator *learning.Coordinator
	engine      *engine.Engine
	batch       *batch.Processor
}

// NewContainer creates and wires all application dependencies with the
// logger described by cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDefault(logger)

	backend, err := NewBackend(cfg, logger)
	if err != nil {
		return nil, err
	}
	ks := store.New(backend, logger)

	if len(cfg.CSV.Delimiter) == 1 {
		common.SetDelimiter(rune(cfg.CSV.Delimiter[0]))
	}

	src := knowledge.NewSource(cfg.Knowledge.File, logger)
	normalizer := pattern.New(cfg.Pattern.MaxLength)

	g := gate.New(ks, src, normalizer, logger)
	dir := direction.NewClassifier(ks, src, normalizer, logger)
	parser := txparser.New(ks, dir, logger)
	cat := categorizer.NewCategorizer(ks, src, cfg.Categories.CreditDefault, logger)
	vp := voice.New(ks, src, logger)
	coordinator := learning.NewCoordinator(ks, cat, vp, normalizer, logger)
	eng := engine.New(g, parser, cat, normalizer, cfg.Engine.BlockedSources, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: backend.Name()})

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       ks,
		knowledge:   src,
		normalizer:  normalizer,
		gate:        g,
		direction:   dir,
		parser:      parser,
		categorizer: cat,
		voice:       vp,
		coordinator: coordinator,
		engine:      eng,
		batch:       batch.NewProcessor(eng, vp, cfg.Batch.Workers, logger),
	}, nil
}

// NewBackend opens the knowledge store backend selected by cfg.
func NewBackend(cfg *config.Config, logger logging.Logger) (store.Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendFile, "":
		path := cfg.Store.Path
		if path == "" {
			return nil, fmt.Errorf("store.path is required for the file backend")
		}
		return store.NewFileBackend(path, logger), nil
	case config.BackendSQLite:
		b, err := store.NewSQLiteBackend(cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite knowledge store: %w", err)
		}
		return b, nil
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the knowledge store.
func (c *Container) GetStore() *store.KnowledgeStore {
	return c.store
}

// GetKnowledge returns the pretrained reference data source.
func (c *Container) GetKnowledge() *knowledge.Source {
	return c.knowledge
}

// GetNormalizer returns the pattern normalizer.
func (c *Container) GetNormalizer() *pattern.Normalizer {
	return c.normalizer
}

// GetGate returns the transaction gate.
func (c *Container) GetGate() *gate.Gate {
	return c.gate
}

// GetDirection returns the direction classifier.
func (c *Container) GetDirection() *direction.Classifier {
	return c.direction
}

// GetParser returns the field extractor.
func (c *Container) GetParser() *txparser.Parser {
	return c.parser
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetVoice returns the voice utterance parser.
func (c *Container) GetVoice() *voice.Parser {
	return c.voice
}

// GetCoordinator returns the learning coordinator.
func (c *Container) GetCoordinator() *learning.Coordinator {
	return c.coordinator
}

// GetEngine returns the end-to-end pipeline.
func (c *Container) GetEngine() *engine.Engine {
	return c.engine
}

// GetBatchProcessor returns the concurrent batch processor.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.batch
}

// Close releases the knowledge store backend.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close knowledge store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
