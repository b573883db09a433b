package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the global key bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Search   key.Binding
	Gender   key.Binding
	Category key.Binding
	Sort     key.Binding
	Price    key.Binding
	Reset    key.Binding
	Back     key.Binding
	Forward  key.Binding
	Select   key.Binding
	AddCart  key.Binding
	Cart     key.Binding
	Login    key.Binding
	Signup   key.Binding
	Logout   key.Binding
	Shop     key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPage: key.NewBinding(key.WithKeys("right", "]"), key.WithHelp("→/]", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("left", "["), key.WithHelp("←/[", "prev page")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Gender:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "cycle gender")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "categories")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Price:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "price range")),
		Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filters")),
		Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Forward:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forward")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		AddCart:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
		Cart:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cart")),
		Login:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log in")),
		Signup:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sign up")),
		Logout:   key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "log out")),
		Shop:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "shop")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:     key.NewBinding(key.WithKeys("?", "h"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Gender, k.Category, k.Sort, k.Cart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Select},
		{k.Search, k.Gender, k.Category, k.Sort, k.Price, k.Reset},
		{k.Back, k.Forward, k.AddCart, k.Cart},
		{k.Login, k.Signup, k.Logout, k.Theme, k.Quit},
	}
}
