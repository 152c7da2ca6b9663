// Package store provides the KnowledgeStore: durable, typed access to the
// learned facts every classifier consults.
//
// Each slot is one JSON record in a Backend. Reads fail open: a missing or
// corrupt record reads as the empty collection. Writes go through to the
// backend synchronously and are visible to the next read in the process.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"avinya/fin-pulse/internal/logging"
	"avinya/fin-pulse/internal/parsererror"
)

type slotState struct {
	mu     sync.Mutex
	loaded bool
	raw    []byte
}

// KnowledgeStore is safe for concurrent use. Every slot has its own lock;
// Update holds several slot locks at once, always acquired in AllSlots order.
type KnowledgeStore struct {
	backend Backend
	logger  logging.Logger
	slots   map[Slot]*slotState
}

// New creates a KnowledgeStore over backend.
func New(backend Backend, logger logging.Logger) *KnowledgeStore {
	slots := make(map[Slot]*slotState, len(AllSlots))
	for _, s := range AllSlots {
		slots[s] = &slotState{}
	}
	return &KnowledgeStore{
		backend: backend,
		logger:  logging.OrDefault(logger).WithField(logging.FieldComponent, "store"),
		slots:   slots,
	}
}

// NewMemory creates a KnowledgeStore over a fresh MemoryBackend.
func NewMemory(logger logging.Logger) *KnowledgeStore {
	return New(NewMemoryBackend(), logger)
}

// BackendName returns the name of the underlying backend.
func (s *KnowledgeStore) BackendName() string {
	return s.backend.Name()
}

// GetSet returns a copy of a set slot.
func (s *KnowledgeStore) GetSet(slot Slot) StringSet {
	var out StringSet
	_ = s.Update(func(tx *Tx) error {
		out = tx.Set(slot)
		return nil
	}, slot)
	if out == nil {
		out = StringSet{}
	}
	return out
}

// PutSet replaces a set slot.
func (s *KnowledgeStore) PutSet(slot Slot, set StringSet) error {
	return s.Update(func(tx *Tx) error { return tx.PutSet(slot, set) }, slot)
}

// GetMap returns a copy of a map slot.
func (s *KnowledgeStore) GetMap(slot Slot) map[string]string {
	var out map[string]string
	_ = s.Update(func(tx *Tx) error {
		out = tx.Map(slot)
		return nil
	}, slot)
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// PutMap replaces a map slot.
func (s *KnowledgeStore) PutMap(slot Slot, m map[string]string) error {
	return s.Update(func(tx *Tx) error { return tx.PutMap(slot, m) }, slot)
}

// GetList returns a copy of an ordered list slot.
func (s *KnowledgeStore) GetList(slot Slot) []string {
	var out []string
	_ = s.Update(func(tx *Tx) error {
		out = tx.List(slot)
		return nil
	}, slot)
	if out == nil {
		out = []string{}
	}
	return out
}

// PutList replaces an ordered list slot.
func (s *KnowledgeStore) PutList(slot Slot, items []string) error {
	return s.Update(func(tx *Tx) error { return tx.PutList(slot, items) }, slot)
}

// Update runs fn while holding the locks of the given slots, so that a
// read-modify-write spanning several slots is atomic with respect to every
// other store operation. Writes made by fn before it fails stay applied.
func (s *KnowledgeStore) Update(fn func(tx *Tx) error, slots ...Slot) error {
	ordered := sortedSlots(slots)
	for _, slot := range ordered {
		if _, ok := s.slots[slot]; !ok {
			return &parsererror.StoreError{Slot: string(slot), Op: "lock", Err: parsererror.ErrUnknownSlot}
		}
	}

	for _, slot := range ordered {
		s.slots[slot].mu.Lock()
	}
	defer func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			s.slots[ordered[i]].mu.Unlock()
		}
	}()

	tx := &Tx{store: s, ctx: context.Background(), held: make(map[Slot]bool, len(ordered))}
	for _, slot := range ordered {
		tx.held[slot] = true
	}
	return fn(tx)
}

// PatternSet returns the {Contains, Add, Remove} view of a set slot.
func (s *KnowledgeStore) PatternSet(slot Slot) *PatternSet {
	return &PatternSet{store: s, slot: slot}
}

// Reset wipes every slot.
func (s *KnowledgeStore) Reset() error {
	return s.Update(func(tx *Tx) error {
		if err := s.backend.Clear(tx.ctx); err != nil {
			return &parsererror.StoreError{Slot: "*", Op: "clear", Err: err}
		}
		for _, st := range s.slots {
			st.loaded = true
			st.raw = nil
		}
		s.logger.Info("Knowledge store reset")
		return nil
	}, AllSlots...)
}

// Snapshot returns the decoded contents of every slot, for export.
func (s *KnowledgeStore) Snapshot() map[Slot]interface{} {
	out := make(map[Slot]interface{}, len(AllSlots))
	_ = s.Update(func(tx *Tx) error {
		for _, slot := range AllSlots {
			switch slot {
			case SlotLearnedCategories, SlotUPIMappings, SlotVoicePatterns:
				out[slot] = tx.Map(slot)
			case SlotCustomCategories:
				out[slot] = tx.List(slot)
			default:
				out[slot] = tx.Set(slot).Sorted()
			}
		}
		return nil
	}, AllSlots...)
	return out
}

// Close closes the backend.
func (s *KnowledgeStore) Close() error {
	return s.backend.Close()
}

// raw returns the record of a slot whose lock is held by the caller.
func (s *KnowledgeStore) raw(ctx context.Context, slot Slot) []byte {
	st := s.slots[slot]
	if st.loaded {
		return st.raw
	}

	data, ok, err := s.backend.Load(ctx, string(slot))
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load slot, treating it as empty",
			logging.Field{Key: logging.FieldSlot, Value: slot},
			logging.Field{Key: logging.FieldBackend, Value: s.backend.Name()})
		return nil
	}
	if !ok {
		data = nil
	}
	st.loaded = true
	st.raw = data
	return data
}

// write persists a slot whose lock is held by the caller.
func (s *KnowledgeStore) write(ctx context.Context, slot Slot, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &parsererror.StoreError{Slot: string(slot), Op: "encode", Err: err}
	}
	if err := s.backend.Save(ctx, string(slot), data); err != nil {
		s.logger.WithError(err).Error("Failed to save slot",
			logging.Field{Key: logging.FieldSlot, Value: slot},
			logging.Field{Key: logging.FieldBackend, Value: s.backend.Name()})
		return &parsererror.StoreError{Slot: string(slot), Op: "save", Err: err}
	}

	st := s.slots[slot]
	st.loaded = true
	st.raw = data
	return nil
}

func (s *KnowledgeStore) decode(slot Slot, data []byte, v interface{}) bool {
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.WithError(err).Warn("Corrupt slot record, treating it as empty",
			logging.Field{Key: logging.FieldSlot, Value: slot})
		return false
	}
	return true
}

// Tx is the view of the store inside Update. It may only touch the slots
// passed to Update.
type Tx struct {
	store *KnowledgeStore
	ctx   context.Context
	held  map[Slot]bool
}

func (tx *Tx) check(slot Slot, op string) error {
	if !tx.held[slot] {
		return &parsererror.StoreError{Slot: string(slot), Op: op, Err: fmt.Errorf("slot not locked by this update")}
	}
	return nil
}

// Set returns a copy of a set slot.
func (tx *Tx) Set(slot Slot) StringSet {
	if err := tx.check(slot, "read"); err != nil {
		tx.store.logger.WithError(err).Warn("Read outside update scope")
		return StringSet{}
	}
	var set StringSet
	if !tx.store.decode(slot, tx.store.raw(tx.ctx, slot), &set) || set == nil {
		return StringSet{}
	}
	return set
}

// PutSet replaces a set slot.
func (tx *Tx) PutSet(slot Slot, set StringSet) error {
	if err := tx.check(slot, "write"); err != nil {
		return err
	}
	if set == nil {
		set = StringSet{}
	}
	return tx.store.write(tx.ctx, slot, set)
}

// Map returns a copy of a map slot.
func (tx *Tx) Map(slot Slot) map[string]string {
	if err := tx.check(slot, "read"); err != nil {
		tx.store.logger.WithError(err).Warn("Read outside update scope")
		return map[string]string{}
	}
	var m map[string]string
	if !tx.store.decode(slot, tx.store.raw(tx.ctx, slot), &m) || m == nil {
		return map[string]string{}
	}
	return m
}

// PutMap replaces a map slot.
func (tx *Tx) PutMap(slot Slot, m map[string]string) error {
	if err := tx.check(slot, "write"); err != nil {
		return err
	}
	if m == nil {
		m = map[string]string{}
	}
	return tx.store.write(tx.ctx, slot, m)
}

// List returns a copy of a list slot.
func (tx *Tx) List(slot Slot) []string {
	if err := tx.check(slot, "read"); err != nil {
		tx.store.logger.WithError(err).Warn("Read outside update scope")
		return []string{}
	}
	var items []string
	if !tx.store.decode(slot, tx.store.raw(tx.ctx, slot), &items) || items == nil {
		return []string{}
	}
	return items
}

// PutList replaces a list slot.
func (tx *Tx) PutList(slot Slot, items []string) error {
	if err := tx.check(slot, "write"); err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	return tx.store.write(tx.ctx, slot, items)
}
