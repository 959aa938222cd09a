// Package slot provides named durable key/value slots that survive across
// sessions on the same device.
package slot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// Store is a set of named slots.
type Store interface {
	// Get returns the slot value. ok is false if the slot was never set.
	Get(ctx context.Context, name string) (value []byte, ok bool, err error)

	// Set replaces the slot value.
	Set(ctx context.Context, name string, value []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrInvalidName is returned for slot names outside [A-Za-z0-9_-]+.
var ErrInvalidName = errors.New("invalid slot name")

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func checkName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// MemoryStore keeps slots in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := checkName(name); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[name]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, name string, value []byte) error {
	if err := checkName(name); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[name] = append([]byte(nil), value...)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }
