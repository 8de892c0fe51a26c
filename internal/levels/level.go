// Package levels provides the level data model and level loading.
// It depends on magnet for geometry; magnet does not depend on levels.
package levels

import (
	"errors"

	"github.com/vovakirdan/polarity/internal/magnet"
)

// ErrLevelNotFound is returned when no level has the requested id.
var ErrLevelNotFound = errors.New("level not found")

// Difficulty is the label shown next to a level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// Level is a playable level: geometry plus presentation metadata.
type Level struct {
	magnet.Level

	World       int
	Name        string
	Description string
	Difficulty  Difficulty
	Mechanics   []string
	FilePath    string
}

// Geometry returns the part of the level the simulation needs.
func (l Level) Geometry() magnet.Level {
	return l.Level
}

// Provider looks levels up by id.
type Provider interface {
	// Level returns the level with the given id, or an error matching
	// ErrLevelNotFound.
	Level(id int) (Level, error)
	// Levels returns every level ordered by id.
	Levels() []Level
}
