package store

import "context"

// Backend persists opaque records keyed by slot name. Implementations must be
// safe for concurrent use; KnowledgeStore serializes writes per slot but not
// across slots.
type Backend interface {
	// Load returns the record for key. A missing record is (nil, false, nil).
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save durably replaces the record for key before returning.
	Save(ctx context.Context, key string, value []byte) error
	// Clear removes every record.
	Clear(ctx context.Context) error
	Close() error
	// Name identifies the backend in logs.
	Name() string
}
