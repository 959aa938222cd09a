package commands

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu    sync.RWMutex
	cmds  []Command
	index map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]Command)}
}

// Register adds c under its name and aliases. Every key must be unused.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := append([]string{c.Name()}, c.Aliases()...)
	for i, key := range keys {
		key = strings.ToLower(key)
		if prev, taken := r.index[key]; taken {
			return fmt.Errorf("command %s: name %q already used by %s", c.Name(), key, prev.Name())
		}
		if slices.Contains(keys[:i], key) {
			return fmt.Errorf("command %s: name %q listed twice", c.Name(), key)
		}
		keys[i] = key
	}

	for _, key := range keys {
		r.index[key] = c
	}
	r.cmds = append(r.cmds, c)
	return nil
}

// Find looks up a command by name or alias, ignoring case.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.index[strings.ToLower(name)]
	return c, ok
}

// All returns each command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	out := slices.Clone(r.cmds)
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Command) int { return cmp.Compare(a.Name(), b.Name()) })
	return out
}

// DefaultRegistry holds the commands registered from init().
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
