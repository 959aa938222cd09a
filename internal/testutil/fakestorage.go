// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskpad/internal/task"
)

// ErrStorageDown is a canned storage failure for error-injection tests.
var ErrStorageDown = errors.New("storage unavailable")

// MemoryStorage is an in-memory implementation of task.Storage for testing.
// Saved lists are deep-copied so tests can inspect exactly what was persisted.
type MemoryStorage struct {
	mu    sync.Mutex
	saved []task.Task
	has   bool

	// Error injection for testing
	LoadErr error
	SaveErr error

	// SaveCalls counts Save invocations, including failed ones.
	SaveCalls int
}

// NewMemoryStorage returns a MemoryStorage preloaded with tasks.
// With no arguments nothing is considered saved yet.
func NewMemoryStorage(tasks ...task.Task) *MemoryStorage {
	m := &MemoryStorage{}
	if len(tasks) > 0 {
		m.saved = cloneTasks(tasks)
		m.has = true
	}
	return m
}

// Load implements task.Storage.
func (m *MemoryStorage) Load(ctx context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if !m.has {
		return nil, nil
	}
	return cloneTasks(m.saved), nil
}

// Save implements task.Storage.
func (m *MemoryStorage) Save(ctx context.Context, tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = cloneTasks(tasks)
	m.has = true
	return nil
}

// Saved returns a copy of the last successfully saved list.
func (m *MemoryStorage) Saved() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneTasks(m.saved)
}

func cloneTasks(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		if t.DueDate != nil {
			d := *t.DueDate
			t.DueDate = &d
		}
		out[i] = t
	}
	return out
}

// Clock is a deterministic time source that advances by Step on every call.
type Clock struct {
	mu   sync.Mutex
	Next time.Time
	Step time.Duration
}

// NewClock returns a Clock starting at 2024-01-01T09:00:00Z, stepping one second.
func NewClock() *Clock {
	return &Clock{
		Next: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Step: time.Second,
	}
}

// Now returns the current fake time and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.Next
	c.Next = c.Next.Add(c.Step)
	return t
}
