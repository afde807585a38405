package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Focus     key.Binding
	Enter     key.Binding
	Back      key.Binding
	Style     key.Binding
	AddSlide  key.Binding
	AddBlock  key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Grab      key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Title     key.Binding
	Image     key.Binding
	Unset     key.Binding
	Save      key.Binding
	Export    key.Binding
	Yank      key.Binding
	Paste     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous option")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / edit")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Style:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "style panel")),
		AddSlide:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add slide")),
		AddBlock:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "add block")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Duplicate: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "duplicate")),
		Grab:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move (drag)")),
		Undo:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		Title:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "rename")),
		Image:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import image")),
		Unset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear background image")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export PDF")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy text")),
		Paste:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste into field")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enter, k.AddSlide, k.AddBlock, k.Grab, k.Save, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Focus, k.Enter, k.Back},
		{k.AddSlide, k.AddBlock, k.Delete, k.Duplicate, k.Grab, k.Style, k.Title, k.Image, k.Unset},
		{k.Undo, k.Redo, k.Yank, k.Paste, k.Save, k.Export, k.Help, k.Quit},
	}
}
