// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// HeadingStep is how far one rotate key turns the simulated compass, in degrees.
const HeadingStep = 5.0

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Login performs the gated action.
	Login key.Binding

	// RotateLeft turns the simulated heading counter-clockwise.
	RotateLeft key.Binding

	// RotateRight turns the simulated heading clockwise.
	RotateRight key.Binding

	// Shake emits a simulated shake.
	Shake key.Binding

	// Allow grants the permission prompt.
	Allow key.Binding

	// Deny refuses the permission prompt.
	Deny key.Binding
}

// DefaultKeyMap returns the default keybindings.
// Printable keys are left to the password field.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Login: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "log in"),
		),
		RotateLeft: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "turn -5°"),
		),
		RotateRight: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "turn +5°"),
		),
		Shake: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "shake"),
		),
		Allow: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "allow"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "deny"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Help, k.Quit}
}

// SensorHelp returns the simulated sensor bindings.
func (k *KeyMap) SensorHelp() []key.Binding {
	return []key.Binding{k.RotateRight, k.RotateLeft, k.Shake}
}

// DialogHelp returns the permission dialog bindings.
func (k *KeyMap) DialogHelp() []key.Binding {
	return []key.Binding{k.Allow, k.Deny}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Login, k.Back},
		k.SensorHelp(),
		k.DialogHelp(),
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
