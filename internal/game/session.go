// Package game binds a magnet run to level data and the player profile, and
// turns semantic input into run commands. It has no Bubble Tea dependency.
package game

import (
	"fmt"

	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
)

// Session owns the run on the current level and the profile it folds wins
// into. A Session is driven from one goroutine.
type Session struct {
	provider levels.Provider
	stats    *progress.Stats
	params   magnet.Params

	level levels.Level
	run   *magnet.Run
	last  *magnet.Result
}

// NewSession creates a session with no level loaded. A nil stats starts a
// fresh profile with the default coin balance.
func NewSession(p levels.Provider, stats *progress.Stats, params magnet.Params) *Session {
	if stats == nil {
		stats = progress.New(progress.DefaultStartingCoins)
	}
	return &Session{
		provider: p,
		stats:    stats,
		params:   params,
	}
}

// Load switches to a level and prepares a fresh run on it.
func (s *Session) Load(id int) error {
	l, err := s.provider.Level(id)
	if err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	run, err := magnet.NewRun(l.Geometry(), s.params)
	if err != nil {
		return fmt.Errorf("load level %d: %w", id, err)
	}
	s.level = l
	s.run = run
	s.last = nil
	return nil
}

// Next loads the level after the current one in provider order.
func (s *Session) Next() bool {
	all := s.provider.Levels()
	for i, l := range all {
		if l.ID == s.level.ID && i+1 < len(all) {
			return s.Load(all[i+1].ID) == nil
		}
	}
	return false
}

// Loaded reports whether a level has been loaded.
func (s *Session) Loaded() bool { return s.run != nil }

// Level returns the loaded level.
func (s *Session) Level() levels.Level { return s.level }

// Run returns the active run, nil before Load.
func (s *Session) Run() *magnet.Run { return s.run }

// Stats returns the profile this session folds into.
func (s *Session) Stats() *progress.Stats { return s.stats }

// UseStats swaps in a fresher copy of the profile, such as one that also
// holds wins from other sessions.
func (s *Session) UseStats(stats *progress.Stats) {
	if stats != nil {
		s.stats = stats
	}
}

// Provider returns the level source.
func (s *Session) Provider() levels.Provider { return s.provider }

// Tick advances the run one step. The profile is folded on the tick that
// reaches won, and only then.
func (s *Session) Tick() magnet.TickResult {
	if s.run == nil {
		return magnet.TickResult{}
	}
	res := s.run.Tick()
	if res.Ended && res.Mode == magnet.ModeWon {
		if r, ok := s.run.Result(); ok {
			s.stats.Fold(r)
			s.last = &r
		}
	}
	return res
}

// Reset returns the run to the design board.
func (s *Session) Reset() {
	if s.run != nil {
		s.run.Reset()
	}
}

// LastResult returns the result of the most recent win on this level.
func (s *Session) LastResult() (magnet.Result, bool) {
	if s.last == nil {
		return magnet.Result{}, false
	}
	return *s.last, true
}

// State returns a snapshot of the run for renderers and the feed.
func (s *Session) State() magnet.RunState {
	if s.run == nil {
		return magnet.RunState{}
	}
	return s.run.State()
}
