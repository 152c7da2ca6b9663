package store

import (
	"avinya/fin-pulse/internal/parsererror"
)

// PatternSet is a named set of pattern keys backed by one slot. The four
// pattern slots (non-transaction, confirmed, credit, debit) share it.
type PatternSet struct {
	store *KnowledgeStore
	slot  Slot
}

// Slot returns the backing slot.
func (p *PatternSet) Slot() Slot {
	return p.slot
}

// Contains reports exact membership of key.
func (p *PatternSet) Contains(key string) bool {
	if key == "" {
		return false
	}
	return p.store.GetSet(p.slot).Contains(key)
}

// Any reports whether some member satisfies match.
func (p *PatternSet) Any(match func(member string) bool) (string, bool) {
	for _, member := range p.store.GetSet(p.slot).Sorted() {
		if match(member) {
			return member, true
		}
	}
	return "", false
}

// Members returns the sorted members.
func (p *PatternSet) Members() []string {
	return p.store.GetSet(p.slot).Sorted()
}

// Add inserts key. An empty key is rejected.
func (p *PatternSet) Add(key string) error {
	if key == "" {
		return parsererror.ErrEmptyPattern
	}
	return p.store.Update(func(tx *Tx) error {
		set := tx.Set(p.slot)
		if set.Contains(key) {
			return nil
		}
		set.Add(key)
		return tx.PutSet(p.slot, set)
	}, p.slot)
}

// Remove deletes key if present.
func (p *PatternSet) Remove(key string) error {
	if key == "" {
		return parsererror.ErrEmptyPattern
	}
	return p.store.Update(func(tx *Tx) error {
		set := tx.Set(p.slot)
		if !set.Contains(key) {
			return nil
		}
		set.Remove(key)
		return tx.PutSet(p.slot, set)
	}, p.slot)
}
