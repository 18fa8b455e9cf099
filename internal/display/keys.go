package display

import "github.com/charmbracelet/bubbles/key"

// listKeys are active on the recipe list.
type listKeys struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Favorite  key.Binding
	Sort      key.Binding
	Favorites key.Binding
	Player    key.Binding
	Quit      key.Binding
}

func newListKeys() listKeys {
	return listKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Sort:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		Favorites: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "favorites only")),
		Player:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "current session")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Favorite, k.Sort, k.Favorites, k.Player, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// cookKeys are active on the cook screen.
type cookKeys struct {
	Start  key.Binding
	Toggle key.Binding
	Stop   key.Binding
	End    key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func newCookKeys() cookKeys {
	return cookKeys{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "finish step")),
		End:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k cookKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Toggle, k.Stop, k.End, k.Back, k.Quit}
}

func (k cookKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
