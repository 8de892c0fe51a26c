// Package storage persists the player profile and the history of won runs.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
)

// ErrNoStats is returned by LoadStats when no profile has been saved yet.
var ErrNoStats = errors.New("storage: no saved stats")

// StatsStore defines the interface for persistent profile storage.
type StatsStore interface {
	// LoadStats returns the saved profile or ErrNoStats.
	LoadStats(ctx context.Context) (*progress.Stats, error)
	// SaveStats replaces the saved profile.
	SaveStats(ctx context.Context, s *progress.Stats) error
	// SaveRun appends a won run to the history.
	SaveRun(ctx context.Context, rec RunRecord) error
	// RecentRuns lists the newest runs of a level, or of all levels when levelID is 0.
	RecentRuns(ctx context.Context, levelID, limit int) ([]RunRecord, error)
	// Close releases database resources.
	Close() error
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID             string
	LevelID        int
	Stars          int
	Elapsed        float64
	StarsCollected int
	Coins          int
	PolesUsed      int
	HintsUsed      int
	Attempts       int
	CreatedAt      time.Time
}

// NewRunRecord converts a run result into a history row with a fresh id.
func NewRunRecord(r magnet.Result) RunRecord {
	return RunRecord{
		ID:             uuid.NewString(),
		LevelID:        r.LevelID,
		Stars:          r.Stars,
		Elapsed:        r.Elapsed,
		StarsCollected: r.StarsCollected,
		Coins:          r.Coins,
		PolesUsed:      r.PolesUsed,
		HintsUsed:      r.HintsUsed,
		Attempts:       r.Attempts,
	}
}

// LoadOrNew returns the saved profile, or a fresh one holding startingCoins
// when nothing has been saved.
func LoadOrNew(ctx context.Context, st StatsStore, startingCoins int) (*progress.Stats, error) {
	s, err := st.LoadStats(ctx)
	if errors.Is(err, ErrNoStats) {
		return progress.New(startingCoins), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

const defaultRunLimit = 20

func runLimit(limit int) int {
	if limit <= 0 {
		return defaultRunLimit
	}
	return limit
}
