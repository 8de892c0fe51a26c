package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/polarity/internal/magnet"
)

func win(level, stars int, elapsed float64) magnet.Result {
	return magnet.Result{LevelID: level, Stars: stars, Elapsed: elapsed, PolesUsed: 2}
}

func TestFoldFastestTimeIsMin(t *testing.T) {
	s := New(DefaultStartingCoins)

	s.Fold(win(4, 2, 9.0))
	s.Fold(win(4, 2, 7.5))
	s.Fold(win(4, 2, 8.0))

	best, ok := s.BestTime(4)
	assert.True(t, ok)
	assert.Equal(t, 7.5, best)

	_, ok = s.BestTime(5)
	assert.False(t, ok, "best time is absent until the first completion")
}

func TestFoldAccumulates(t *testing.T) {
	s := New(500)

	r := win(3, 3, 4.2)
	r.Coins = 25
	r.PolesUsed = 1
	r.HintsUsed = 2
	r.BeatPar = true
	r.AllStars = true
	s.Fold(r)

	assert.Equal(t, 3, s.LevelsCompleted)
	assert.Equal(t, 3, s.TotalStars)
	assert.Equal(t, 525, s.TotalCoins)
	assert.Equal(t, 1, s.PolesPlaced)
	assert.Equal(t, 2, s.HintsUsed)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.ParTimeBeats)
	assert.Equal(t, 1, s.PerfectRuns)
	assert.Equal(t, 1, s.MinimalWins)
	assert.InDelta(t, 4.2, s.TotalPlayTime, 1e-12)
}

func TestFoldLevelsCompletedIsMax(t *testing.T) {
	s := New(0)

	s.Fold(win(5, 1, 10))
	s.Fold(win(2, 1, 10))

	assert.Equal(t, 5, s.LevelsCompleted, "replaying an earlier level must not lower progress")
}

func TestFoldReplayDoubleCountsStars(t *testing.T) {
	s := New(0)

	s.Fold(win(1, 2, 6))
	s.Fold(win(1, 3, 4))
	s.Fold(win(1, 1, 9))

	assert.Equal(t, 6, s.TotalStars, "total stars add every rating, replays included")
	assert.Equal(t, 3, s.BestStars(1), "per-level stars keep the best rating")
}

func TestFoldNeverDecreases(t *testing.T) {
	s := New(100)
	runs := []magnet.Result{
		win(2, 3, 3), win(1, 1, 50), win(2, 1, 90), win(7, 2, 20), win(3, 1, 1),
	}

	prev := s.Clone()
	for _, r := range runs {
		s.Fold(r)
		assert.GreaterOrEqual(t, s.LevelsCompleted, prev.LevelsCompleted)
		assert.GreaterOrEqual(t, s.TotalStars, prev.TotalStars)
		assert.GreaterOrEqual(t, s.TotalCoins, prev.TotalCoins)
		assert.GreaterOrEqual(t, s.PolesPlaced, prev.PolesPlaced)
		for id, old := range prev.FastestTimes {
			assert.LessOrEqual(t, s.FastestTimes[id], old)
		}
		prev = s.Clone()
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := New(0)
	s.Fold(win(1, 2, 5))

	c := s.Clone()
	c.FastestTimes[1] = 1
	c.LevelStars[1] = 3

	assert.Equal(t, 5.0, s.FastestTimes[1])
	assert.Equal(t, 2, s.LevelStars[1])
}

func TestReset(t *testing.T) {
	s := New(0)
	s.Fold(win(1, 2, 5))

	s.Reset(500)

	assert.Equal(t, 500, s.TotalCoins)
	assert.Zero(t, s.TotalStars)
	assert.Empty(t, s.FastestTimes)
	assert.NotNil(t, s.LevelStars)
}

func TestFoldZeroValueStats(t *testing.T) {
	var s Stats
	s.Fold(win(1, 1, 3))

	assert.Equal(t, 3.0, s.FastestTimes[1])
	assert.Equal(t, 1, s.LevelStars[1])
}
