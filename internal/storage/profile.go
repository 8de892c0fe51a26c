package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
)

// Profile is the one player profile of a process. Every session records its
// wins here, and saves always write these totals, so a session holding an
// older copy can never roll the saved profile back.
type Profile struct {
	mu    sync.Mutex
	store StatsStore // nil keeps the profile in memory
	stats *progress.Stats
}

// NewProfile wraps stats, which the profile owns from now on. A nil stats
// starts fresh with the default coin balance.
func NewProfile(store StatsStore, stats *progress.Stats) *Profile {
	if stats == nil {
		stats = progress.New(progress.DefaultStartingCoins)
	}
	return &Profile{store: store, stats: stats}
}

// OpenProfile loads the saved profile, or starts one holding startingCoins.
func OpenProfile(ctx context.Context, store StatsStore, startingCoins int) (*Profile, error) {
	if store == nil {
		return NewProfile(nil, progress.New(startingCoins)), nil
	}
	stats, err := LoadOrNew(ctx, store, startingCoins)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return NewProfile(store, stats), nil
}

// Snapshot returns a copy of the current totals.
func (p *Profile) Snapshot() *progress.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats.Clone()
}

// Record folds a won run into the profile and saves it. The returned
// snapshot includes the win even when the save fails.
func (p *Profile) Record(ctx context.Context, r magnet.Result) (*progress.Stats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Fold(r)
	return p.stats.Clone(), p.saveLocked(ctx)
}

// Save writes the current totals.
func (p *Profile) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saveLocked(ctx)
}

func (p *Profile) saveLocked(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.SaveStats(ctx, p.stats); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
