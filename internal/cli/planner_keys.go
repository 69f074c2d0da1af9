package cli

import "github.com/charmbracelet/bubbles/key"

type plannerKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Add         key.Binding
	Insert      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	ToggleFixed key.Binding
	ToggleRigid key.Binding
	Start       key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Longer      key.Binding
	Shorter     key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultPlannerKeys() plannerKeyMap {
	return plannerKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Insert:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert below")),
		Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		ToggleFixed: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fix/unfix")),
		ToggleRigid: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rigid")),
		Start:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "start now")),
		Undo:        key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:        key.NewBinding(key.WithKeys("ctrl+r", "ctrl+y"), key.WithHelp("ctrl+r", "redo")),
		Longer:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "day length")),
		Shorter:     key.NewBinding(key.WithKeys("-")),
		Save:        key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k plannerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Start, k.Undo, k.Help, k.Quit}
}

func (k plannerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Insert, k.Edit, k.Delete},
		{k.ToggleFixed, k.ToggleRigid, k.Start, k.Longer},
		{k.Undo, k.Redo, k.Save, k.Quit},
	}
}
