// Package theme persists the dark-mode preference in its own slot.
package theme

import (
	"context"
	"strconv"

	"taskpad/internal/slot"
)

// SlotName is the durable slot holding the dark-mode flag.
const SlotName = "darkMode"

// Prefs reads and writes the dark-mode flag.
type Prefs struct {
	slots slot.Store
}

// New returns Prefs backed by slots.
func New(slots slot.Store) *Prefs {
	return &Prefs{slots: slots}
}

// DarkMode reports the stored preference. Anything other than a stored
// "true" means light mode.
func (p *Prefs) DarkMode(ctx context.Context) (bool, error) {
	v, ok, err := p.slots.Get(ctx, SlotName)
	if err != nil || !ok {
		return false, err
	}
	return string(v) == "true", nil
}

// SetDarkMode stores the preference.
func (p *Prefs) SetDarkMode(ctx context.Context, dark bool) error {
	return p.slots.Set(ctx, SlotName, []byte(strconv.FormatBool(dark)))
}

// ToggleDarkMode flips the preference and returns the new value.
func (p *Prefs) ToggleDarkMode(ctx context.Context) (bool, error) {
	dark, err := p.DarkMode(ctx)
	if err != nil {
		return false, err
	}
	dark = !dark
	return dark, p.SetDarkMode(ctx, dark)
}
