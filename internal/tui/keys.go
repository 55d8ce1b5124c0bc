package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the TUI keybindings for the help footer.
type keyMap struct {
	Submit   key.Binding
	Category key.Binding
	Upload   key.Binding
	Logout   key.Binding
	Close    key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buscar"),
		),
		Category: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "categoria"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upload"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "sair"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "fechar"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "encerrar"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Category, k.Upload, k.Logout, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Category, k.Upload},
		{k.Logout, k.Close, k.Quit},
	}
}
