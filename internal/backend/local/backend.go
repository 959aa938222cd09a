// Package local implements service.Service over on-device durable slots.
package local

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskpad/internal/config"
	"taskpad/internal/slot"
	"taskpad/internal/task"
	"taskpad/internal/theme"
)

// Backend joins the task store and the preferences over one slot store.
type Backend struct {
	*task.Store
	*theme.Prefs

	slots slot.Store
}

// New opens the slot store selected by cfg and restores the task list.
// A load failure other than malformed data is returned as a
// *task.PersistenceError.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	slots, err := OpenSlots(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []task.Option{task.WithLogger(log)}
	b := NewWithSlots(slots, opts...)
	if err := b.Initialize(ctx); err != nil {
		slots.Close()
		return nil, err
	}

	log.Debug("backend ready",
		zap.String("backend", cfg.Backend),
		zap.String("path", cfg.ResolvedDataPath()),
	)
	return b, nil
}

// NewWithSlots builds a Backend over an existing slot store without loading
// (for testing). Call Initialize before use.
func NewWithSlots(slots slot.Store, opts ...task.Option) *Backend {
	return &Backend{
		Store: task.NewStore(task.NewSlotStorage(slots, task.SlotName), opts...),
		Prefs: theme.New(slots),
		slots: slots,
	}
}

// OpenSlots opens the slot store for cfg.Backend at cfg.ResolvedDataPath().
func OpenSlots(ctx context.Context, cfg *config.Config) (slot.Store, error) {
	path := cfg.ResolvedDataPath()
	switch cfg.Backend {
	case config.BackendFile, "":
		return slot.NewFileStore(path)
	case config.BackendSQLite:
		return slot.NewSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// Close releases the slot store.
func (b *Backend) Close() error {
	return b.slots.Close()
}
