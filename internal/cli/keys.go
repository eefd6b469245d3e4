package cli

import "github.com/charmbracelet/bubbles/key"

type galleryKeyMap struct {
	Search    key.Binding
	Done      key.Binding
	Sort      key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Clear     key.Binding
	Download  key.Binding
	Refresh   key.Binding
	UpDown    key.Binding
	Quit      key.Binding
}

func newGalleryKeyMap() galleryKeyMap {
	return galleryKeyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Done:      key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "done")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Download:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download"), key.WithDisabled()),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refetch")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k galleryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Toggle, k.SelectAll, k.Clear, k.Download, k.Quit}
}

func (k galleryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Done, k.Sort, k.UpDown},
		{k.Toggle, k.SelectAll, k.Clear, k.Download},
		{k.Refresh, k.Quit},
	}
}
