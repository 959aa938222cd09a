package testutil

import (
	"context"
	"sync"
	"testing"

	"taskpad/internal/backend/local"
	"taskpad/internal/slot"
	"taskpad/internal/task"
)

// FakeSlots is an in-memory slot.Store with error injection.
type FakeSlots struct {
	*slot.MemoryStore

	mu     sync.Mutex
	GetErr error
	SetErr error
}

// NewFakeSlots returns empty FakeSlots.
func NewFakeSlots() *FakeSlots {
	return &FakeSlots{MemoryStore: slot.NewMemoryStore()}
}

// FailWrites makes every later Set fail with err (nil restores writes).
func (f *FakeSlots) FailWrites(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetErr = err
}

// Get implements slot.Store.
func (f *FakeSlots) Get(ctx context.Context, name string) ([]byte, bool, error) {
	f.mu.Lock()
	err := f.GetErr
	f.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	return f.MemoryStore.Get(ctx, name)
}

// Set implements slot.Store.
func (f *FakeSlots) Set(ctx context.Context, name string, value []byte) error {
	f.mu.Lock()
	err := f.SetErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.MemoryStore.Set(ctx, name, value)
}

// NewService returns an initialized local backend over slots with a
// deterministic clock.
func NewService(t *testing.T, slots slot.Store) *local.Backend {
	t.Helper()
	b := local.NewWithSlots(slots, task.WithClock(NewClock().Now))
	if err := b.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize service: %v", err)
	}
	return b
}

// AddTasks adds one pending personal task per text.
func AddTasks(t *testing.T, svc *local.Backend, texts ...string) []task.Task {
	t.Helper()
	out := make([]task.Task, 0, len(texts))
	for _, text := range texts {
		tk, err := svc.Add(context.Background(), task.Draft{Text: text, Category: task.Personal})
		if err != nil {
			t.Fatalf("failed to add %q: %v", text, err)
		}
		out = append(out, tk)
	}
	return out
}
