package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/vovakirdan/polarity/internal/magnet"
)

func TestProfileOpenEmpty(t *testing.T) {
	store := openTestStore(t)

	p, err := OpenProfile(context.Background(), store, 500)
	if err != nil {
		t.Fatalf("OpenProfile() failed: %v", err)
	}
	if got := p.Snapshot().TotalCoins; got != 500 {
		t.Errorf("coins = %d, expected 500", got)
	}
}

func TestProfileStaleSaveKeepsWins(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, err := OpenProfile(ctx, store, 500)
	if err != nil {
		t.Fatalf("OpenProfile() failed: %v", err)
	}

	// A second session holds a copy taken before the win.
	stale := p.Snapshot()

	got, err := p.Record(ctx, magnet.Result{LevelID: 3, Stars: 3, Elapsed: 4, Coins: 20})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if got.Wins != 1 {
		t.Errorf("Record() wins = %d, expected 1", got.Wins)
	}
	if stale.Wins != 0 {
		t.Errorf("snapshot changed after Record(): wins = %d", stale.Wins)
	}

	// The other session quits and saves.
	if err := p.Save(ctx); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	saved, err := store.LoadStats(ctx)
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if saved.Wins != 1 || saved.LevelsCompleted != 3 || saved.TotalStars != 3 || saved.TotalCoins != 520 {
		t.Errorf("saved = %+v, expected wins 1, completed 3, stars 3, coins 520", saved)
	}
	if _, ok := saved.BestTime(3); !ok {
		t.Error("saved profile lost the fastest time")
	}
}

func TestProfileConcurrentRecords(t *testing.T) {
	p := NewProfile(nil, nil)
	ctx := context.Background()

	const sessions = 8
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Record(ctx, magnet.Result{LevelID: i + 1, Stars: 1, Elapsed: 1}); err != nil {
				t.Errorf("Record() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	got := p.Snapshot()
	if got.Wins != sessions || got.TotalStars != sessions {
		t.Errorf("wins = %d, stars = %d, expected %d each", got.Wins, got.TotalStars, sessions)
	}
	if got.LevelsCompleted != sessions {
		t.Errorf("LevelsCompleted = %d, expected %d", got.LevelsCompleted, sessions)
	}
}
