// Package progress folds completed runs into cumulative player statistics.
package progress

import (
	"math"

	"github.com/vovakirdan/polarity/internal/magnet"
)

// DefaultStartingCoins is the coin balance of a fresh profile.
const DefaultStartingCoins = 500

// Stats is the cumulative player profile. Every field only grows (or, for
// best times, only shrinks) until the whole profile is reset.
type Stats struct {
	LevelsCompleted  int             `json:"levels_completed"` // highest level id won
	TotalStars       int             `json:"total_stars"`      // sum of ratings, replays included
	TotalCoins       int             `json:"total_coins"`
	PolesPlaced      int             `json:"poles_placed"`
	TotalPlayTime    float64         `json:"total_play_time"`
	Wins             int             `json:"wins"`
	HintsUsed        int             `json:"hints_used"`
	ParTimeBeats     int             `json:"par_time_beats"`
	PerfectRuns      int             `json:"perfect_runs"`
	NegativeOnlyWins int             `json:"negative_only_wins"`
	MinimalWins      int             `json:"minimal_wins"`
	FastestTimes     map[int]float64 `json:"fastest_times"`
	LevelStars       map[int]int     `json:"level_stars"`
}

// New returns a fresh profile holding the given starting coins.
func New(startingCoins int) *Stats {
	return &Stats{
		TotalCoins:   startingCoins,
		FastestTimes: make(map[int]float64),
		LevelStars:   make(map[int]int),
	}
}

// Fold records a won run. It is the only mutation path besides Reset.
func (s *Stats) Fold(r magnet.Result) {
	if s.FastestTimes == nil {
		s.FastestTimes = make(map[int]float64)
	}
	if s.LevelStars == nil {
		s.LevelStars = make(map[int]int)
	}

	if r.LevelID > s.LevelsCompleted {
		s.LevelsCompleted = r.LevelID
	}
	s.TotalCoins += r.Coins
	s.TotalStars += r.Stars
	s.PolesPlaced += r.PolesUsed
	s.TotalPlayTime += r.Elapsed
	s.HintsUsed += r.HintsUsed
	s.Wins++

	best, ok := s.FastestTimes[r.LevelID]
	if !ok {
		best = math.Inf(1)
	}
	s.FastestTimes[r.LevelID] = math.Min(best, r.Elapsed)

	if r.Stars > s.LevelStars[r.LevelID] {
		s.LevelStars[r.LevelID] = r.Stars
	}

	if r.BeatPar {
		s.ParTimeBeats++
	}
	if r.Stars == 3 && r.AllStars {
		s.PerfectRuns++
	}
	if r.NegativeOnly {
		s.NegativeOnlyWins++
	}
	if r.PolesUsed == 1 {
		s.MinimalWins++
	}
}

// BestTime returns the fastest completion of a level.
func (s *Stats) BestTime(levelID int) (float64, bool) {
	t, ok := s.FastestTimes[levelID]
	return t, ok
}

// BestStars returns the best rating earned on a level, 0 if never won.
func (s *Stats) BestStars(levelID int) int {
	return s.LevelStars[levelID]
}

// Reset replaces the profile with a fresh one.
func (s *Stats) Reset(startingCoins int) {
	*s = *New(startingCoins)
}

// Clone returns a deep copy.
func (s *Stats) Clone() *Stats {
	c := *s
	c.FastestTimes = make(map[int]float64, len(s.FastestTimes))
	for k, v := range s.FastestTimes {
		c.FastestTimes[k] = v
	}
	c.LevelStars = make(map[int]int, len(s.LevelStars))
	for k, v := range s.LevelStars {
		c.LevelStars[k] = v
	}
	return &c
}
