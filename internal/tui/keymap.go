package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the previewer.
type KeyMap struct {
	// Quit exits the previewer.
	Quit key.Binding

	// Help toggles the full key legend.
	Help key.Binding

	// NextTemplate and PrevTemplate cycle through the template variants.
	NextTemplate key.Binding
	PrevTemplate key.Binding

	// ToggleIcons flips the contact icon preference.
	ToggleIcons key.Binding

	// Up and Down move the section cursor.
	Up   key.Binding
	Down key.Binding

	// MoveUp and MoveDown reorder the section under the cursor.
	MoveUp   key.Binding
	MoveDown key.Binding

	// ScrollUp and ScrollDown page the preview.
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		NextTemplate: key.NewBinding(
			key.WithKeys("tab", "t"),
			key.WithHelp("tab/t", "next template"),
		),
		PrevTemplate: key.NewBinding(
			key.WithKeys("shift+tab", "T"),
			key.WithHelp("shift+tab/T", "previous template"),
		),
		ToggleIcons: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle icons"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous section"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next section"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "K"),
			key.WithHelp("K", "move section up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "J"),
			key.WithHelp("J", "move section down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTemplate, k.ToggleIcons, k.MoveUp, k.MoveDown, k.Help, k.Quit}
}

// FullHelp returns every binding grouped by column.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.NextTemplate, k.PrevTemplate, k.ToggleIcons},
		{k.ScrollUp, k.ScrollDown, k.Help, k.Quit},
	}
}
