package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Escape key.Binding
	Menu   key.Binding
	Detail key.Binding
	Freeze key.Binding
	Rate   key.Binding
	Layout key.Binding
	Quit   key.Binding

	MenuToggle key.Binding
	MenuNote   key.Binding

	Save       key.Binding
	Difficulty key.Binding
}

var keys = keyMap{
	Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev day")),
	Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
	Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev week")),
	Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next week")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle today")),
	Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear focus")),
	Menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
	Detail: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "detail")),
	Freeze: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "freeze")),
	Rate:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "rate")),
	Layout: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	MenuToggle: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle")),
	MenuNote:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),

	Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Difficulty: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "difficulty")),
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
