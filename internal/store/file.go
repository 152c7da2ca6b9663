package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/models"
)

// FileBackend keeps every record in a single YAML document mapping slot name
// to its JSON record. Each Save rewrites the file through a temporary file
// and a rename, so a crash never leaves a half-written document.
type FileBackend struct {
	path   string
	logger logging.Logger

	mu      sync.Mutex
	loaded  bool
	records map[string]string
}

// NewFileBackend creates a FileBackend at path. The file and its directory
// are created on first Save.
func NewFileBackend(path string, logger logging.Logger) *FileBackend {
	return &FileBackend{
		path:   path,
		logger: logging.OrDefault(logger),
	}
}

// Path returns the backing file path.
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Name() string { return "file" }

// ensureLoaded reads the document once. A missing file is empty; a corrupt
// one is logged and treated as empty, and will be replaced on the next Save.
func (f *FileBackend) ensureLoaded() error {
	if f.loaded {
		return nil
	}

	data, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		f.logger.Debug("Knowledge file not found, starting empty",
			logging.Field{Key: logging.FieldInputFile, Value: f.path})
		f.records = map[string]string{}
		f.loaded = true
		return nil
	case err != nil:
		return fmt.Errorf("error reading knowledge file: %w", err)
	}

	records := map[string]string{}
	if err := yaml.Unmarshal(data, &records); err != nil {
		f.logger.WithError(err).Warn("Corrupt knowledge file, starting empty",
			logging.Field{Key: logging.FieldInputFile, Value: f.path})
		records = map[string]string{}
	}
	if records == nil {
		records = map[string]string{}
	}
	f.records = records
	f.loaded = true
	return nil
}

func (f *FileBackend) Load(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(); err != nil {
		return nil, false, err
	}
	v, ok := f.records[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *FileBackend) Save(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(); err != nil {
		return err
	}

	next := make(map[string]string, len(f.records)+1)
	for k, v := range f.records {
		next[k] = v
	}
	next[key] = string(value)

	if err := f.writeFile(next); err != nil {
		return err
	}
	f.records = next
	return nil
}

func (f *FileBackend) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing knowledge file: %w", err)
	}
	f.records = map[string]string{}
	f.loaded = true
	return nil
}

func (f *FileBackend) Close() error { return nil }

func (f *FileBackend) writeFile(records map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("error marshaling knowledge: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing knowledge file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error syncing knowledge file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing knowledge file: %w", err)
	}
	if err := os.Chmod(tmpName, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error setting knowledge file permissions: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("error replacing knowledge file: %w", err)
	}

	f.logger.Debug("Saved knowledge file",
		logging.Field{Key: logging.FieldOutputFile, Value: f.path},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}
