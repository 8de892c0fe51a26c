package magnet

import (
	"fmt"

	"github.com/vovakirdan/polarity/internal/core"
)

// ObstacleKind tags how an obstacle is drawn. Every kind is solid.
type ObstacleKind string

const (
	ObstacleWall     ObstacleKind = "wall"
	ObstacleBouncy   ObstacleKind = "bouncy"
	ObstacleMagnetic ObstacleKind = "magnetic"
	ObstacleMoving   ObstacleKind = "moving"
)

// Obstacle is a solid rectangle of cells.
type Obstacle struct {
	Rect core.Rect    `json:"rect"`
	Kind ObstacleKind `json:"kind"`
}

// CollectibleKind identifies what a pickup adds to the run totals.
type CollectibleKind string

const (
	CollectStar CollectibleKind = "star"
	CollectCoin CollectibleKind = "coin"
	CollectGem  CollectibleKind = "gem"
	CollectKey  CollectibleKind = "key"
)

// Collectible is an item sitting on a cell. Collected is the only field a
// run mutates.
type Collectible struct {
	ID        string          `json:"id"`
	Cell      core.Point      `json:"cell"`
	Kind      CollectibleKind `json:"kind"`
	Value     int             `json:"value"`
	Collected bool            `json:"collected"`
}

// Level is the geometry a run is played on.
type Level struct {
	ID           int
	Width        int
	Height       int
	Start        core.Point
	Goal         core.Point
	Obstacles    []Obstacle
	Collectibles []Collectible
	MaxPoles     int
	TimeLimit    float64 // seconds, 0 means none
	ParTime      float64 // seconds, 0 means none
	Hints        []string
}

// Validate checks that the level can host a run.
func (l Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: level %d has grid %dx%d", ErrInvalidLevel, l.ID, l.Width, l.Height)
	}
	in := func(p core.Point) bool {
		return p.X >= 0 && p.X < l.Width && p.Y >= 0 && p.Y < l.Height
	}
	if !in(l.Start) {
		return fmt.Errorf("%w: level %d start %v outside grid", ErrInvalidLevel, l.ID, l.Start)
	}
	if !in(l.Goal) {
		return fmt.Errorf("%w: level %d goal %v outside grid", ErrInvalidLevel, l.ID, l.Goal)
	}
	if l.MaxPoles < 0 {
		return fmt.Errorf("%w: level %d max poles %d", ErrInvalidLevel, l.ID, l.MaxPoles)
	}
	return nil
}

// StarCount returns the number of star collectibles on the level.
func (l Level) StarCount() int {
	n := 0
	for _, c := range l.Collectibles {
		if c.Kind == CollectStar {
			n++
		}
	}
	return n
}
