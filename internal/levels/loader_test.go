package levels

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/magnet"
)

const intro = `
id: 1
world: 1
name: First Steps
difficulty: easy
size: {w: 10, h: 8}
start: {x: 1, y: 1}
goal: {x: 8, y: 6}
max_poles: 3
par_time: 10
collectibles:
  - {id: star-1, x: 4, y: 3, type: star}
  - {x: 6, y: 4, type: coin, value: 10}
hints:
  - Place a positive pole near the goal
`

const walls = `
id: 2
world: 1
name: Around the Wall
difficulty: medium
size: {w: 10, h: 8}
start: {x: 1, y: 4}
goal: {x: 8, y: 4}
max_poles: 4
obstacles:
  - {x: 4, y: 2, w: 1, h: 4, type: wall}
  - {x: 6, y: 0, w: 1, h: 2}
`

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(testFS(map[string]string{
		"data/02-walls.yaml": walls,
		"data/01-intro.yml":  intro,
		"data/README.md":     "ignored",
	}), "data")

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != 1 || lvls[1].ID != 2 {
		t.Errorf("levels not sorted by id: %d, %d", lvls[0].ID, lvls[1].ID)
	}
}

func TestLoaderLoadIntro(t *testing.T) {
	loader := NewLoader(testFS(map[string]string{"data/01-intro.yaml": intro}), "data")

	lvl, err := loader.LoadByID(1)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "First Steps" {
		t.Errorf("expected Name 'First Steps', got %q", lvl.Name)
	}
	if lvl.Width != 10 || lvl.Height != 8 {
		t.Errorf("expected 10x8, got %dx%d", lvl.Width, lvl.Height)
	}
	if lvl.Start != core.Pt(1, 1) || lvl.Goal != core.Pt(8, 6) {
		t.Errorf("start/goal = %v/%v, expected (1,1)/(8,6)", lvl.Start, lvl.Goal)
	}
	if lvl.Difficulty != DifficultyEasy {
		t.Errorf("expected difficulty easy, got %q", lvl.Difficulty)
	}
	if lvl.ParTime != 10 || lvl.TimeLimit != 0 {
		t.Errorf("par/limit = %v/%v, expected 10/0", lvl.ParTime, lvl.TimeLimit)
	}
	if len(lvl.Collectibles) != 2 {
		t.Fatalf("expected 2 collectibles, got %d", len(lvl.Collectibles))
	}
	star, coin := lvl.Collectibles[0], lvl.Collectibles[1]
	if star.ID != "star-1" || star.Kind != magnet.CollectStar || star.Value != 1 {
		t.Errorf("star = %+v", star)
	}
	if coin.ID != "coin-2" || coin.Value != 10 {
		t.Errorf("coin = %+v, expected generated id coin-2 with value 10", coin)
	}
	if lvl.FilePath != "data/01-intro.yaml" {
		t.Errorf("FilePath = %q", lvl.FilePath)
	}
}

func TestLoaderObstacleDefaults(t *testing.T) {
	loader := NewLoader(testFS(map[string]string{"data/w.yaml": walls}), "data")

	lvl, err := loader.LoadByID(2)
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if len(lvl.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(lvl.Obstacles))
	}
	if lvl.Obstacles[1].Kind != magnet.ObstacleWall {
		t.Errorf("untyped obstacle kind = %q, expected wall", lvl.Obstacles[1].Kind)
	}
	if lvl.Obstacles[0].Rect != core.NewRect(4, 2, 1, 4) {
		t.Errorf("obstacle rect = %+v", lvl.Obstacles[0].Rect)
	}
}

func TestLoaderNotFound(t *testing.T) {
	loader := NewLoader(testFS(map[string]string{"data/01.yaml": intro}), "data")

	_, err := loader.LoadByID(42)
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("LoadByID(42) error = %v, expected ErrLevelNotFound", err)
	}
}

func TestLoaderRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "id: [1"},
		{"unknown collectible", "id: 3\nsize: {w: 4, h: 4}\nstart: {x: 0, y: 0}\ngoal: {x: 3, y: 3}\ncollectibles:\n  - {x: 1, y: 1, type: ruby}\n"},
		{"zero grid", "id: 3\nstart: {x: 0, y: 0}\ngoal: {x: 0, y: 0}\n"},
		{"blocked goal", "id: 3\nsize: {w: 4, h: 4}\nstart: {x: 0, y: 0}\ngoal: {x: 3, y: 3}\nobstacles:\n  - {x: 2, y: 2, w: 2, h: 2}\n"},
		{"start on goal", "id: 3\nsize: {w: 4, h: 4}\nstart: {x: 1, y: 1}\ngoal: {x: 1, y: 1}\n"},
		{"collectible in wall", "id: 3\nsize: {w: 4, h: 4}\nstart: {x: 0, y: 0}\ngoal: {x: 3, y: 3}\nobstacles:\n  - {x: 1, y: 1, w: 1, h: 1}\ncollectibles:\n  - {x: 1, y: 1, type: coin}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loader := NewLoader(testFS(map[string]string{"data/bad.yaml": tc.body}), "data")
			if _, err := loader.LoadAll(); err == nil {
				t.Error("LoadAll() should fail")
			}
		})
	}
}

func TestValidationErrorMatchesInvalidLevel(t *testing.T) {
	lvl := Level{Level: magnet.Level{ID: 9, Width: 4, Height: 4, Start: core.Pt(1, 1), Goal: core.Pt(1, 1)}}

	err := Validate(lvl)
	if !errors.Is(err, magnet.ErrInvalidLevel) {
		t.Errorf("Validate() = %v, expected to match magnet.ErrInvalidLevel", err)
	}
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "START_IS_GOAL" {
		t.Errorf("Validate() = %v, expected START_IS_GOAL", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	loader := NewLoader(testFS(map[string]string{
		"data/a.yaml": intro,
		"data/b.yaml": intro,
	}), "data")

	if _, err := loader.LoadAll(); err == nil {
		t.Error("LoadAll() should reject duplicate ids")
	}
}
