package categorizer

import "avinya/fin-pulse/internal/store"

// KnowledgeStoreInterface is the part of the knowledge store the categorizer
// needs. It allows for dependency injection and easier testing.
type KnowledgeStoreInterface interface {
	GetMap(slot store.Slot) map[string]string
	GetList(slot store.Slot) []string
	Update(fn func(tx *store.Tx) error, slots ...store.Slot) error
}
