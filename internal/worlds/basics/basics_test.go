package basics

import (
	"testing"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/magnet"
)

func TestLoadWorld(t *testing.T) {
	w, lvls, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if w.ID != WorldID || w.Name != "Magnetic Basics" {
		t.Errorf("world = %+v", w)
	}
	if len(lvls) != 10 {
		t.Fatalf("expected 10 levels, got %d", len(lvls))
	}
	for i, l := range lvls {
		if l.ID != i+1 {
			t.Errorf("level %d has id %d", i, l.ID)
		}
		if l.World != WorldID {
			t.Errorf("level %d is in world %d", l.ID, l.World)
		}
		if err := levels.Validate(l); err != nil {
			t.Errorf("level %d invalid: %v", l.ID, err)
		}
		if len(l.Hints) == 0 {
			t.Errorf("level %d has no hints", l.ID)
		}
	}
}

func TestFirstLevel(t *testing.T) {
	_, lvls, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	l := lvls[0]

	if l.Name != "Magnetic Discovery" {
		t.Errorf("Name = %q", l.Name)
	}
	if l.Start != core.Pt(1, 4) || l.Goal != core.Pt(7, 4) {
		t.Errorf("start/goal = %v/%v, expected (1,4)/(7,4)", l.Start, l.Goal)
	}
	if l.MaxPoles != 1 || l.ParTime != 5 {
		t.Errorf("max poles/par = %d/%v, expected 1/5", l.MaxPoles, l.ParTime)
	}
	if l.StarCount() != 1 {
		t.Errorf("StarCount() = %d, expected 1", l.StarCount())
	}
	if l.Difficulty != levels.DifficultyEasy {
		t.Errorf("Difficulty = %q", l.Difficulty)
	}
}

func TestFirstLevelSolvable(t *testing.T) {
	_, lvls, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r, err := magnet.NewRun(lvls[0].Geometry(), magnet.DefaultParams())
	if err != nil {
		t.Fatalf("NewRun() error = %v", err)
	}
	if _, ok := r.PlacePole(core.Pt(8, 4), magnet.Positive); !ok {
		t.Fatal("PlacePole(8, 4) refused")
	}
	r.Start()

	if mode := r.Simulate(10000); mode != magnet.ModeWon {
		t.Fatalf("Simulate() = %v, expected won", mode)
	}
	res, _ := r.Result()
	if res.StarsCollected != 1 {
		t.Errorf("StarsCollected = %d, expected 1", res.StarsCollected)
	}
}
