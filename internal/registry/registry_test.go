package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/magnet"
	"github.com/vovakirdan/polarity/internal/progress"
)

func lvl(id, world int) levels.Level {
	return levels.Level{
		Level: magnet.Level{ID: id, Width: 4, Height: 4, Start: core.Pt(0, 0), Goal: core.Pt(3, 3), MaxPoles: 1},
		World: world,
		Name:  "test",
	}
}

// withFactories swaps the global registry for the duration of a test.
func withFactories(t *testing.T, fs map[int]Factory) {
	t.Helper()
	mu.Lock()
	saved := factories
	factories = fs
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		factories = saved
		mu.Unlock()
	})
}

func TestCatalogLookup(t *testing.T) {
	withFactories(t, map[int]Factory{
		2: func() (World, []levels.Level, error) {
			return World{ID: 2, Name: "Two"}, []levels.Level{lvl(12, 2), lvl(11, 2)}, nil
		},
		1: func() (World, []levels.Level, error) {
			return World{ID: 1, Name: "One"}, []levels.Level{lvl(1, 1), lvl(2, 1)}, nil
		},
	})

	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ws := c.Worlds(); len(ws) != 2 || ws[0].ID != 1 || ws[1].ID != 2 {
		t.Errorf("Worlds() = %+v, expected worlds 1 and 2 in order", ws)
	}

	all := c.Levels()
	want := []int{1, 2, 11, 12}
	if len(all) != len(want) {
		t.Fatalf("Levels() returned %d levels, expected %d", len(all), len(want))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("Levels()[%d].ID = %d, expected %d", i, all[i].ID, id)
		}
	}

	l, err := c.Level(11)
	if err != nil || l.World != 2 {
		t.Errorf("Level(11) = %+v, %v", l, err)
	}

	if _, err := c.Level(99); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("Level(99) error = %v, expected ErrLevelNotFound", err)
	}

	if got := c.WorldLevels(2); len(got) != 2 || got[0].ID != 11 {
		t.Errorf("WorldLevels(2) = %+v", got)
	}

	if next, ok := c.Next(2); !ok || next.ID != 11 {
		t.Errorf("Next(2) = %d, %v, expected 11", next.ID, ok)
	}
	if _, ok := c.Next(12); ok {
		t.Error("Next(12) should report no further level")
	}
}

func TestCatalogRejectsDuplicateLevels(t *testing.T) {
	withFactories(t, map[int]Factory{
		1: func() (World, []levels.Level, error) { return World{ID: 1}, []levels.Level{lvl(1, 1)}, nil },
		2: func() (World, []levels.Level, error) { return World{ID: 2}, []levels.Level{lvl(1, 2)}, nil },
	})

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a level id used by two worlds")
	}
}

func TestCatalogFactoryError(t *testing.T) {
	boom := errors.New("boom")
	withFactories(t, map[int]Factory{
		1: func() (World, []levels.Level, error) { return World{}, nil, boom },
	})

	if _, err := Load(); !errors.Is(err, boom) {
		t.Errorf("Load() error = %v, expected to wrap the factory error", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	withFactories(t, map[int]Factory{})

	f := func() (World, []levels.Level, error) { return World{}, nil, nil }
	Register(7, f)
	if !Exists(7) {
		t.Fatal("Exists(7) = false after Register")
	}

	defer func() {
		if recover() == nil {
			t.Error("Register should panic on a duplicate id")
		}
	}()
	Register(7, f)
}

func TestCatalogUnlocked(t *testing.T) {
	withFactories(t, map[int]Factory{
		1: func() (World, []levels.Level, error) {
			return World{ID: 1}, []levels.Level{lvl(1, 1), lvl(2, 1)}, nil
		},
		2: func() (World, []levels.Level, error) {
			return World{ID: 2, UnlockStars: 5}, []levels.Level{lvl(11, 2)}, nil
		},
	})
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := progress.New(0)
	tests := []struct {
		name string
		id   int
		want bool
	}{
		{"first level", 1, true},
		{"second level before a win", 2, false},
		{"unknown level", 99, false},
	}
	for _, tt := range tests {
		if got := c.Unlocked(tt.id, s); got != tt.want {
			t.Errorf("%s: Unlocked(%d) = %v, expected %v", tt.name, tt.id, got, tt.want)
		}
	}

	s.Fold(magnet.Result{LevelID: 1, Stars: 1})
	s.Fold(magnet.Result{LevelID: 2, Stars: 2})
	if !c.Unlocked(2, s) {
		t.Error("Unlocked(2) = false after winning level 1")
	}
	if c.Unlocked(11, s) {
		t.Error("Unlocked(11) = true with 3 of 5 stars")
	}
	s.Fold(magnet.Result{LevelID: 2, Stars: 2})
	if !c.Unlocked(11, s) {
		t.Error("Unlocked(11) = false after reaching the world threshold")
	}
}
