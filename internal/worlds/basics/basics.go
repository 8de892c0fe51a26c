// Package basics registers world 1, "Magnetic Basics".
package basics

import (
	"embed"

	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/registry"
)

// WorldID is the id of this world.
const WorldID = 1

//go:embed levels/*.yaml
var levelFS embed.FS

func init() {
	registry.Register(WorldID, Load)
}

// Load returns the world and its ten levels.
func Load() (registry.World, []levels.Level, error) {
	lvls, err := levels.NewLoader(levelFS, "levels").LoadAll()
	if err != nil {
		return registry.World{}, nil, err
	}
	return registry.World{
		ID:          WorldID,
		Name:        "Magnetic Basics",
		Description: "Learn the fundamentals of magnetic manipulation",
		Theme:       "nature",
		UnlockStars: 0,
	}, lvls, nil
}
