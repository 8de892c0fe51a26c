// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/magnet"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           int               `yaml:"id"`
	World        int               `yaml:"world"`
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description,omitempty"`
	Difficulty   string            `yaml:"difficulty"`
	Size         YAMLSize          `yaml:"size"`
	Start        YAMLPoint         `yaml:"start"`
	Goal         YAMLPoint         `yaml:"goal"`
	MaxPoles     int               `yaml:"max_poles"`
	TimeLimit    float64           `yaml:"time_limit,omitempty"`
	ParTime      float64           `yaml:"par_time,omitempty"`
	Obstacles    []YAMLObstacle    `yaml:"obstacles,omitempty"`
	Collectibles []YAMLCollectible `yaml:"collectibles,omitempty"`
	Hints        []string          `yaml:"hints,omitempty"`
	Mechanics    []string          `yaml:"mechanics,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPoint represents a grid cell.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLObstacle represents a solid rectangle.
type YAMLObstacle struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w"`
	H    int    `yaml:"h"`
	Type string `yaml:"type,omitempty"`
}

// YAMLCollectible represents an item on a cell.
type YAMLCollectible struct {
	ID    string `yaml:"id"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Type  string `yaml:"type"`
	Value int    `yaml:"value,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Geometry    magnet.Level
	World       int
	Name        string
	Description string
	Difficulty  string
	Mechanics   []string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	geo := magnet.Level{
		ID:        yl.ID,
		Width:     yl.Size.W,
		Height:    yl.Size.H,
		Start:     core.Pt(yl.Start.X, yl.Start.Y),
		Goal:      core.Pt(yl.Goal.X, yl.Goal.Y),
		MaxPoles:  yl.MaxPoles,
		TimeLimit: yl.TimeLimit,
		ParTime:   yl.ParTime,
		Hints:     yl.Hints,
	}

	for _, o := range yl.Obstacles {
		kind := magnet.ObstacleKind(o.Type)
		if kind == "" {
			kind = magnet.ObstacleWall
		}
		geo.Obstacles = append(geo.Obstacles, magnet.Obstacle{
			Rect: core.NewRect(o.X, o.Y, o.W, o.H),
			Kind: kind,
		})
	}

	for i, c := range yl.Collectibles {
		kind, ok := parseCollectible(c.Type)
		if !ok {
			return Level{}, fmt.Errorf("collectible %d: unknown type %q", i, c.Type)
		}
		value := c.Value
		if value == 0 {
			value = 1
		}
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", kind, i+1)
		}
		geo.Collectibles = append(geo.Collectibles, magnet.Collectible{
			ID:    id,
			Cell:  core.Pt(c.X, c.Y),
			Kind:  kind,
			Value: value,
		})
	}

	return Level{
		Geometry:    geo,
		World:       yl.World,
		Name:        yl.Name,
		Description: yl.Description,
		Difficulty:  yl.Difficulty,
		Mechanics:   yl.Mechanics,
	}, nil
}

func parseCollectible(s string) (magnet.CollectibleKind, bool) {
	switch k := magnet.CollectibleKind(s); k {
	case magnet.CollectStar, magnet.CollectCoin, magnet.CollectGem, magnet.CollectKey:
		return k, true
	}
	return "", false
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
