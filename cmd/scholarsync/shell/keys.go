package shell

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"scholarsync/internal/types"
)

type keyMap struct {
	Jump       []key.Binding // one per view, in navigation order
	Menu       key.Binding
	MenuUp     key.Binding
	MenuDown   key.Binding
	MenuSelect key.Binding
	MenuClose  key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	views := types.Views()
	jump := make([]key.Binding, len(views))
	for i, v := range views {
		n := i + 1
		jump[i] = key.NewBinding(
			key.WithKeys(fmt.Sprintf("f%d", n), fmt.Sprintf("alt+%d", n)),
			key.WithHelp(fmt.Sprintf("F%d", n), v.Label()),
		)
	}
	return keyMap{
		Jump:       jump,
		Menu:       key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "menu")),
		MenuUp:     key.NewBinding(key.WithKeys("up", "k")),
		MenuDown:   key.NewBinding(key.WithKeys("down", "j")),
		MenuSelect: key.NewBinding(key.WithKeys("enter")),
		MenuClose:  key.NewBinding(key.WithKeys("esc")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
