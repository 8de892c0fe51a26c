package tui

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/game"
	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
	"github.com/vovakirdan/polarity/internal/registry"
	"github.com/vovakirdan/polarity/internal/storage"
	_ "github.com/vovakirdan/polarity/internal/worlds/basics"
)

// memStore is an in-memory StatsStore that counts writes.
type memStore struct {
	mu        sync.Mutex
	stats     *progress.Stats
	runs      []storage.RunRecord
	statSaves int
}

func (s *memStore) LoadStats(context.Context) (*progress.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil, storage.ErrNoStats
	}
	return s.stats.Clone(), nil
}

func (s *memStore) SaveStats(_ context.Context, st *progress.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = st.Clone()
	s.statSaves++
	return nil
}

func (s *memStore) SaveRun(_ context.Context, r storage.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, r)
	return nil
}

func (s *memStore) RecentRuns(_ context.Context, levelID, limit int) ([]storage.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.RunRecord
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if levelID == 0 || s.runs[i].LevelID == levelID {
			out = append(out, s.runs[i])
		}
	}
	return out, nil
}

func (s *memStore) Close() error { return nil }

func newTestDeps(t *testing.T) (*Deps, *memStore) {
	t.Helper()
	cat, err := registry.Load()
	require.NoError(t, err)
	store := &memStore{}
	return &Deps{
		Catalog:       cat,
		Store:         store,
		Params:        magnet.DefaultParams(),
		StartingCoins: progress.DefaultStartingCoins,
		TickRate:      60,
		Theme:         DefaultTheme(),
		User:          "tester",
	}, store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func send(t *testing.T, m BoardModel, msg tea.Msg) (BoardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	b, ok := next.(BoardModel)
	require.True(t, ok, "Update() returned %T", next)
	return b, cmd
}

// newLevelOneBoard loads level 1 and places a positive pole right of the
// goal, which pulls the player straight in.
func newLevelOneBoard(t *testing.T) (BoardModel, *memStore) {
	t.Helper()
	d, store := newTestDeps(t)
	s := game.NewSession(d.Catalog, progress.New(d.StartingCoins), d.Params)
	g := game.New(s)
	require.NoError(t, g.Load(1))

	m := NewBoardModel(d, g, 80, 24)
	for range 7 {
		m, _ = send(t, m, keyRight)
	}
	m, _ = send(t, m, keySpace)
	require.Len(t, g.Snapshot().Poles, 1)
	return m, store
}

func TestBoardStartsTicking(t *testing.T) {
	m, _ := newLevelOneBoard(t)
	assert.False(t, m.Ticking())

	m, cmd := send(t, m, keyRunes("g"))
	assert.True(t, m.Ticking())
	assert.NotNil(t, cmd, "starting a run should schedule a tick")
}

func TestBoardDropsStaleTicks(t *testing.T) {
	m, _ := newLevelOneBoard(t)
	m, _ = send(t, m, keyRunes("g"))
	first := m.gen

	m, _ = send(t, m, TickMsg{Gen: first})
	assert.Equal(t, uint64(1), m.game.Snapshot().Tick)

	// Pausing abandons the loop.
	m, _ = send(t, m, keyRunes("p"))
	assert.False(t, m.Ticking())
	m, _ = send(t, m, TickMsg{Gen: first})
	assert.Equal(t, uint64(1), m.game.Snapshot().Tick, "tick while paused")

	// Resuming starts a new loop; the old one stays dead.
	m, cmd := send(t, m, keyRunes("p"))
	require.NotNil(t, cmd)
	assert.True(t, m.Ticking())
	assert.NotEqual(t, first, m.gen)

	m, _ = send(t, m, TickMsg{Gen: first})
	assert.Equal(t, uint64(1), m.game.Snapshot().Tick, "stale tick after resume")

	m, _ = send(t, m, TickMsg{Gen: m.gen})
	assert.Equal(t, uint64(2), m.game.Snapshot().Tick)
}

func TestBoardWinIsSavedOnce(t *testing.T) {
	m, store := newLevelOneBoard(t)
	m, _ = send(t, m, keyRunes("g"))

	for i := 0; i < 10000 && m.Ticking(); i++ {
		m, _ = send(t, m, TickMsg{Gen: m.gen})
	}
	require.True(t, m.game.State().Won, "run did not win")
	assert.False(t, m.Ticking())

	// Late ticks after the win change nothing.
	m, _ = send(t, m, TickMsg{Gen: m.gen})

	assert.Len(t, store.runs, 1)
	assert.Equal(t, 1, store.statSaves)
	assert.Equal(t, 1, store.stats.Wins)
	assert.Equal(t, 1, store.runs[0].LevelID)
	assert.NotEmpty(t, store.runs[0].ID)
}

func TestBoardBackAndQuit(t *testing.T) {
	m, _ := newLevelOneBoard(t)
	m, _ = send(t, m, keyRunes("g"))

	m, _ = send(t, m, keyEsc)
	assert.True(t, m.BackToMenu())
	assert.False(t, m.Ticking())

	m, _ = send(t, m, keyRunes("q"))
	assert.True(t, m.IsQuitting())
}

func TestBoardKeyMapAction(t *testing.T) {
	k := DefaultBoardKeyMap()
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
	}{
		{keyRight, core.ActionRight},
		{keyDown, core.ActionDown},
		{keyRunes("h"), core.ActionLeft},
		{keySpace, core.ActionPlace},
		{keyTab, core.ActionToggleCharge},
		{keyRunes("g"), core.ActionStart},
		{keyRunes("p"), core.ActionPause},
		{keyRunes("r"), core.ActionRestart},
		{keyRunes("?"), core.ActionHint},
		{keyRunes("1"), core.ActionPowerUpExtraPole},
		{keyRunes("4"), core.ActionPowerUpGhost},
		{keyRunes("6"), core.ActionPowerUpRemover},
		{keyEsc, core.ActionBack},
		{keyRunes("q"), core.ActionQuit},
		{keyRunes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		if got := k.Action(tt.msg); got != tt.expected {
			t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestMenuLockedLevel(t *testing.T) {
	d, _ := newTestDeps(t)
	m := NewMenuModel(d, progress.New(0), 80, 40, 0)

	next, _ := m.Update(keyDown)
	m = next.(MenuModel)
	next, _ = m.Update(keyEnter)
	m = next.(MenuModel)

	assert.Zero(t, m.Selected())
	assert.Contains(t, m.status, "Locked")
}

func TestMenuSelectsFirstLevel(t *testing.T) {
	d, _ := newTestDeps(t)
	m := NewMenuModel(d, progress.New(0), 80, 40, 0)

	next, _ := m.Update(keyEnter)
	m = next.(MenuModel)
	assert.Equal(t, 1, m.Selected())
	assert.Contains(t, m.View(), "Magnetic Discovery")
}

func TestSessionModelFlow(t *testing.T) {
	d, store := newTestDeps(t)
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60}
	m := NewSessionModel(d, nil, cfg)

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	update(keyEnter)
	require.Equal(t, screenBoard, m.current)
	assert.Equal(t, 1, m.session.Level().ID)

	update(keyEsc)
	require.Equal(t, screenMenu, m.current)
	assert.Equal(t, 1, store.statSaves, "leaving the board saves the profile")

	update(keyTab)
	require.Equal(t, screenStats, m.current)
	assert.Contains(t, m.View(), "S T A T S")

	update(keyEsc)
	require.Equal(t, screenMenu, m.current)

	cmd := update(keyRunes("q"))
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, store.statSaves)
	assert.Empty(t, m.View())
}

func TestSessionModelWithLevel(t *testing.T) {
	d, _ := newTestDeps(t)
	m := NewSessionModel(d, nil, core.DefaultConfig())

	_, err := m.WithLevel(999)
	assert.Error(t, err)

	m, err = m.WithLevel(3)
	require.NoError(t, err)
	assert.Equal(t, screenBoard, m.current)
	assert.Equal(t, 3, m.session.Level().ID)
}
