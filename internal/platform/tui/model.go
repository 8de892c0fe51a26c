package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/game"
	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/registry"
	"github.com/vovakirdan/polarity/internal/storage"
)

const saveTimeout = 5 * time.Second

// Publisher receives run snapshots for spectators.
type Publisher interface {
	Publish(v any) error
}

// Deps are the collaborators shared by every screen of one player.
type Deps struct {
	Catalog       *registry.Catalog
	Store         storage.StatsStore // nil disables persistence
	Profile       *storage.Profile   // shared by every session of the process
	Params        magnet.Params
	StartingCoins int
	TickRate      int
	Logger        *log.Logger // nil discards
	Feed          Publisher   // nil disables the spectator feed
	Theme         Theme
	User          string
}

func (d *Deps) logger() *log.Logger {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d.Logger
}

func (d *Deps) profile() *storage.Profile {
	if d.Profile == nil {
		d.Profile = storage.NewProfile(d.Store, progress.New(d.StartingCoins))
	}
	return d.Profile
}

// BoardModel is the Bubble Tea model for playing one level.
type BoardModel struct {
	deps    *Deps
	game    *game.Game
	screen  *core.Screen
	keys    BoardKeyMap
	help    help.Model
	gen     uint64 // current tick loop
	ticking bool
	back    bool
	quit    bool
}

// NewBoardModel creates a board for a game with a level already loaded.
func NewBoardModel(d *Deps, g *game.Game, width, height int) BoardModel {
	h := help.New()
	h.Width = width
	return BoardModel{
		deps:   d,
		game:   g,
		screen: core.NewScreen(width, max(height-1, 1)),
		keys:   DefaultBoardKeyMap(),
		help:   h,
	}
}

// Init does nothing; ticks start when the run does.
func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.stopTicker()
		m.quit = true
		return m, nil
	case core.ActionBack:
		m.stopTicker()
		m.back = true
		return m, nil
	default:
		m.game.Handle(core.NewInputFrame(action))
		m.publish()
		return m, m.syncTicker()
	}
}

// handleTick advances the run if the message belongs to the live loop.
func (m BoardModel) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.ticking || msg.Gen != m.gen {
		return m, nil
	}

	res := m.game.Tick()
	m.publish()
	if res.Ended && res.Mode == magnet.ModeWon {
		m.saveWin()
	}

	if m.game.State().Running {
		return m, tickCmd(m.deps.TickRate, m.gen)
	}
	m.stopTicker()
	return m, nil
}

// syncTicker starts a tick loop when the run is running and abandons the
// current one when it is not.
func (m *BoardModel) syncTicker() tea.Cmd {
	running := m.game.State().Running
	switch {
	case running && !m.ticking:
		m.ticking = true
		return tickCmd(m.deps.TickRate, m.gen)
	case !running && m.ticking:
		m.stopTicker()
	}
	return nil
}

func (m *BoardModel) stopTicker() {
	if m.ticking {
		m.ticking = false
		m.gen++
	}
}

func (m BoardModel) publish() {
	if m.deps.Feed == nil {
		return
	}
	if err := m.deps.Feed.Publish(m.game.Snapshot()); err != nil {
		m.deps.logger().Debug("feed publish failed", "error", err)
	}
}

// saveWin persists the profile and the run record after a win.
func (m BoardModel) saveWin() {
	r, ok := m.game.Session().LastResult()
	if !ok {
		return
	}
	logger := m.deps.logger()
	logger.Info("level complete",
		"user", m.deps.User,
		"level", r.LevelID,
		"stars", r.Stars,
		"elapsed", r.Elapsed,
	)
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if m.deps.Store != nil {
		if err := m.deps.Store.SaveRun(ctx, storage.NewRunRecord(r)); err != nil {
			logger.Warn("could not save run", "error", err)
		}
	}
	stats, err := m.deps.profile().Record(ctx, r)
	if err != nil {
		logger.Warn("could not save stats", "error", err)
	}
	m.game.Session().UseStats(stats)
}

// View renders the board with a help line.
func (m BoardModel) View() string {
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.deps.Theme.Help.Render(m.help.View(m.keys))
}

// BackToMenu reports whether the player asked for the level menu.
func (m BoardModel) BackToMenu() bool { return m.back }

// IsQuitting reports whether the player asked to exit.
func (m BoardModel) IsQuitting() bool { return m.quit }

// Ticking reports whether a tick loop is live.
func (m BoardModel) Ticking() bool { return m.ticking }
