package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/polarity/internal/core"
)

// BoardKeyMap holds the key bindings of the board screen.
type BoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Place    key.Binding
	Charge   key.Binding
	Start    key.Binding
	Pause    key.Binding
	Restart  key.Binding
	Hint     key.Binding
	PowerUps key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Charge, k.Start, k.Pause, k.Restart, k.Hint, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Charge, k.Start, k.Pause},
		{k.Restart, k.Hint, k.PowerUps},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns the default board bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←/h", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→/l", "right")),
		Place:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "place/remove")),
		Charge:   key.NewBinding(key.WithKeys("tab", "c"), key.WithHelp("tab", "flip charge")),
		Start:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go")),
		Pause:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Hint:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
		PowerUps: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "power-ups")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "levels")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var powerUpKeys = map[string]core.Action{
	"1": core.ActionPowerUpExtraPole,
	"2": core.ActionPowerUpSuperMagnet,
	"3": core.ActionPowerUpTimeSlow,
	"4": core.ActionPowerUpGhost,
	"5": core.ActionPowerUpBoost,
	"6": core.ActionPowerUpRemover,
}

// Action translates a key message to a board action.
func (k BoardKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Place):
		return core.ActionPlace
	case key.Matches(msg, k.Charge):
		return core.ActionToggleCharge
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Hint):
		return core.ActionHint
	case key.Matches(msg, k.PowerUps):
		return powerUpKeys[msg.String()]
	}
	return core.ActionNone
}

// MenuKeyMap holds the key bindings of the level menu.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Stats  key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Stats, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Stats:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "stats")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
