package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/game"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/storage"
)

type screenID int

const (
	screenMenu screenID = iota
	screenBoard
	screenStats
)

// SessionModel manages one player's flow: menu -> board -> menu, with the
// stats screen reachable from the menu. It is the top-level model for both
// local play and SSH sessions.
type SessionModel struct {
	deps     *Deps
	session  *game.Session
	config   core.RuntimeConfig
	current  screenID
	menu     MenuModel
	board    *BoardModel
	stats    StatsModel
	quitting bool
}

// NewSessionModel creates a session that opens on the level menu. stats
// seeds the profile when d carries none yet.
func NewSessionModel(d *Deps, stats *progress.Stats, cfg core.RuntimeConfig) SessionModel {
	if d.Profile == nil {
		if stats == nil {
			stats = progress.New(d.StartingCoins)
		}
		d.Profile = storage.NewProfile(d.Store, stats)
	}
	stats = d.Profile.Snapshot()
	if d.TickRate <= 0 {
		d.TickRate = cfg.TickRate
	}
	return SessionModel{
		deps:    d,
		session: game.NewSession(d.Catalog, stats, d.Params),
		config:  cfg,
		current: screenMenu,
		menu:    NewMenuModel(d, stats, cfg.ScreenW, cfg.ScreenH, 0),
	}
}

// WithLevel opens the board on a level directly, skipping the menu.
func (m SessionModel) WithLevel(id int) (SessionModel, error) {
	if err := m.openBoard(id); err != nil {
		return m, err
	}
	return m, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenBoard:
		return m.updateBoard(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menu, ok := newMenu.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsStats():
		m.stats = NewStatsModel(m.deps, m.deps.profile().Snapshot(), m.config.ScreenW, m.config.ScreenH)
		m.current = screenStats
		return m, nil

	case m.menu.Selected() != 0:
		if err := m.openBoard(m.menu.Selected()); err != nil {
			m.deps.logger().Error("could not open level", "level", m.menu.Selected(), "error", err)
			m.toMenu(m.menu.Selected())
			m.menu.status = fmt.Sprintf("Could not open level %d", m.menu.Selected())
			return m, nil
		}
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(BoardModel); ok {
		m.board = &board
	}

	switch {
	case m.board.IsQuitting():
		return m.quit()

	case m.board.BackToMenu():
		m.persist()
		m.toMenu(m.session.Level().ID)
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStats, cmd := m.stats.Update(msg)
	if stats, ok := newStats.(StatsModel); ok {
		m.stats = stats
	}

	switch {
	case m.stats.IsQuitting():
		return m.quit()
	case m.stats.IsGoingBack():
		m.toMenu(0)
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) openBoard(id int) error {
	g := game.New(m.session)
	if err := g.Load(id); err != nil {
		return err
	}
	board := NewBoardModel(m.deps, g, m.config.ScreenW, m.config.ScreenH)
	m.board = &board
	m.current = screenBoard
	return nil
}

func (m *SessionModel) toMenu(levelID int) {
	m.board = nil
	m.session.UseStats(m.deps.profile().Snapshot())
	m.menu = NewMenuModel(m.deps, m.session.Stats(), m.config.ScreenW, m.config.ScreenH, levelID)
	m.current = screenMenu
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.persist()
	m.quitting = true
	return m, tea.Quit
}

// persist writes the shared profile to the store, if there is one.
func (m SessionModel) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.deps.profile().Save(ctx); err != nil {
		m.deps.logger().Warn("could not save stats", "error", err)
	}
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenBoard:
		return m.board.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Stats returns the profile the session folds wins into.
func (m SessionModel) Stats() *progress.Stats {
	return m.session.Stats()
}

// Run starts an interactive session in the local terminal. A positive
// levelID opens that level directly.
func Run(d *Deps, stats *progress.Stats, cfg core.RuntimeConfig, levelID int) error {
	model := NewSessionModel(d, stats, cfg)
	if levelID > 0 {
		var err error
		if model, err = model.WithLevel(levelID); err != nil {
			return err
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
