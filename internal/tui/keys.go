package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Plant   key.Binding
	Left    key.Binding
	Right   key.Binding
	Click   key.Binding
	Water   key.Binding
	Debug   key.Binding
	Harvest key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(plants int) keyMap {
	digits := make([]string, 0, plants)
	for i := 1; i <= plants && i <= 9; i++ {
		digits = append(digits, string(rune('0'+i)))
	}
	return keyMap{
		Plant:   key.NewBinding(key.WithKeys(digits...), key.WithHelp("1-"+digits[len(digits)-1], "use tool on plant")),
		Left:    key.NewBinding(key.WithKeys("left", "shift+tab"), key.WithHelp("←/→", "select plant")),
		Right:   key.NewBinding(key.WithKeys("right", "tab")),
		Click:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "use tool")),
		Water:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "water")),
		Debug:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "debug")),
		Harvest: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "harvest")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "give up")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Water, k.Debug, k.Harvest, k.Plant, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Water, k.Debug, k.Harvest},
		{k.Plant, k.Left, k.Click},
		{k.Help, k.Quit},
	}
}
