package task

import (
	"context"
	"encoding/json"
	"fmt"

	"taskpad/internal/slot"
)

// SlotName is the durable slot holding the serialized task list.
const SlotName = "tasks"

// Storage is the persistence port of a Store.
// Load returns (nil, nil) when nothing has been saved yet and an error
// wrapping ErrMalformed when the saved data does not parse.
type Storage interface {
	Load(ctx context.Context) ([]Task, error)
	Save(ctx context.Context, tasks []Task) error
}

// SlotStorage persists the list as a JSON array in a single named slot.
type SlotStorage struct {
	slots slot.Store
	name  string
}

// NewSlotStorage returns a Storage writing to the given slot name.
// An empty name selects SlotName.
func NewSlotStorage(slots slot.Store, name string) *SlotStorage {
	if name == "" {
		name = SlotName
	}
	return &SlotStorage{slots: slots, name: name}
}

// Load implements Storage.
func (s *SlotStorage) Load(ctx context.Context) ([]Task, error) {
	data, ok, err := s.slots.Get(ctx, s.name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return Decode(data)
}

// Save implements Storage.
func (s *SlotStorage) Save(ctx context.Context, tasks []Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	return s.slots.Set(ctx, s.name, data)
}

// Encode serializes tasks in the durable layout.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses the durable layout. A JSON null decodes to an empty list.
func Decode(data []byte) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return tasks, nil
}
