package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings for the TUI.
type keyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	NextSubpage key.Binding
	PrevSubpage key.Binding
	Filter      key.Binding
	Escape      key.Binding
	ClearStats  key.Binding
	Help        key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding

	Page1 key.Binding
	Page2 key.Binding
	Page3 key.Binding
	Page4 key.Binding
	Page5 key.Binding
}

// keys is the global key map.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh now"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next page"),
	),
	NextSubpage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	PrevSubpage: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	ClearStats: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear stats"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),

	ScrollUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "first row"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "last row"),
	),

	Page1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "frontend")),
	Page2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "backend")),
	Page3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "runtime")),
	Page4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "performance")),
	Page5: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "logs")),
}

// helpText is the full help string displayed in the footer when toggled on.
const helpText = "q: quit  r: refresh  1-5/←→: page  tab: view  ↑↓/pgup/pgdn/home/end: scroll  /: filter  esc: cancel  c: clear stats"
