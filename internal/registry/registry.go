// Package registry provides a global registry of level worlds.
// Worlds register themselves in init() functions, allowing the platform
// to discover levels without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/polarity/internal/levels"
	"github.com/vovakirdan/polarity/internal/progress"
)

// World describes a group of levels.
type World struct {
	ID          int
	Name        string
	Description string
	Theme       string
	UnlockStars int // total stars needed before the world opens
}

// Factory loads a world and its levels.
type Factory func() (World, []levels.Level, error)

var (
	factories = make(map[int]Factory)
	mu        sync.RWMutex
)

// Register adds a world factory to the registry.
// Typically called from a world package's init() function.
// Panics if a world with the same ID is already registered.
func Register(id int, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: world %d already registered", id))
	}
	factories[id] = f
}

// Exists checks if a world with the given ID is registered.
func Exists(id int) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Catalog is the loaded set of worlds. It implements levels.Provider.
type Catalog struct {
	worlds []World
	byID   map[int]levels.Level
	order  []levels.Level
	member map[int][]levels.Level // world id -> levels
}

// Load runs every registered factory and indexes the result.
// Level ids must be unique across worlds.
func Load() (*Catalog, error) {
	mu.RLock()
	ids := make([]int, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	fs := make(map[int]Factory, len(factories))
	for id, f := range factories {
		fs[id] = f
	}
	mu.RUnlock()

	sort.Ints(ids)

	c := &Catalog{
		byID:   make(map[int]levels.Level),
		member: make(map[int][]levels.Level),
	}
	for _, id := range ids {
		w, lvls, err := fs[id]()
		if err != nil {
			return nil, fmt.Errorf("registry: loading world %d: %w", id, err)
		}
		c.worlds = append(c.worlds, w)
		for _, l := range lvls {
			if _, dup := c.byID[l.ID]; dup {
				return nil, fmt.Errorf("registry: level %d registered twice", l.ID)
			}
			c.byID[l.ID] = l
			c.order = append(c.order, l)
			c.member[w.ID] = append(c.member[w.ID], l)
		}
	}

	sort.Slice(c.order, func(i, j int) bool {
		return c.order[i].ID < c.order[j].ID
	})
	return c, nil
}

// Level returns the level with the given id.
func (c *Catalog) Level(id int) (levels.Level, error) {
	l, ok := c.byID[id]
	if !ok {
		return levels.Level{}, fmt.Errorf("%w: %d", levels.ErrLevelNotFound, id)
	}
	return l, nil
}

// Levels returns every level ordered by id.
func (c *Catalog) Levels() []levels.Level {
	return append([]levels.Level(nil), c.order...)
}

// Worlds returns the loaded worlds ordered by id.
func (c *Catalog) Worlds() []World {
	return append([]World(nil), c.worlds...)
}

// WorldLevels returns the levels of one world ordered by id.
func (c *Catalog) WorldLevels(worldID int) []levels.Level {
	out := append([]levels.Level(nil), c.member[worldID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Next returns the level after id in catalog order.
func (c *Catalog) Next(id int) (levels.Level, bool) {
	for i, l := range c.order {
		if l.ID == id && i+1 < len(c.order) {
			return c.order[i+1], true
		}
	}
	return levels.Level{}, false
}

// Unlocked reports whether a level can be played. The first level is always
// open; any other needs its world's star threshold and a win on the level
// before it.
func (c *Catalog) Unlocked(id int, s *progress.Stats) bool {
	l, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, w := range c.worlds {
		if w.ID == l.World && s.TotalStars < w.UnlockStars {
			return false
		}
	}
	for i, o := range c.order {
		if o.ID != id {
			continue
		}
		if i == 0 {
			return true
		}
		return s.BestStars(c.order[i-1].ID) > 0
	}
	return false
}
