package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	// Navigation
	Invoices key.Binding
	Settings key.Binding

	// Filters
	Search     key.Binding
	Status     key.Binding
	Dates      key.Binding
	ClearDates key.Binding

	// Grid
	NextTab   key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	PageSize  key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Refresh   key.Binding

	// Row actions
	Select    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Download  key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Invoices:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoices")),
	Settings:   key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	Dates:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "dates")),
	ClearDates: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear dates")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
	NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
	PageSize:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectAll:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Duplicate:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
	Download:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "download")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
