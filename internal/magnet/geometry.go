package magnet

import "github.com/vovakirdan/polarity/internal/core"

// Index answers static geometry queries for one level.
type Index struct {
	width, height int
	start, goal   core.Point
	obstacles     []Obstacle
	solid         []bool // row-major occupancy of in-grid cells
	goalTol       float64
}

// NewIndex precomputes obstacle occupancy for the level grid.
func NewIndex(l Level, goalTolerance float64) *Index {
	ix := &Index{
		width:     l.Width,
		height:    l.Height,
		start:     l.Start,
		goal:      l.Goal,
		obstacles: append([]Obstacle(nil), l.Obstacles...),
		solid:     make([]bool, l.Width*l.Height),
		goalTol:   goalTolerance,
	}
	for _, o := range ix.obstacles {
		for y := o.Rect.Y; y < o.Rect.Bottom(); y++ {
			for x := o.Rect.X; x < o.Rect.Right(); x++ {
				if ix.InGrid(core.Pt(x, y)) {
					ix.solid[y*ix.width+x] = true
				}
			}
		}
	}
	return ix
}

// Width returns the grid width.
func (ix *Index) Width() int { return ix.width }

// Height returns the grid height.
func (ix *Index) Height() int { return ix.height }

// InGrid reports whether the cell lies on the grid.
func (ix *Index) InGrid(c core.Point) bool {
	return c.X >= 0 && c.X < ix.width && c.Y >= 0 && c.Y < ix.height
}

// InBounds reports whether a point lies within [0,w) x [0,h).
func (ix *Index) InBounds(p core.Vec) bool {
	return p.X >= 0 && p.X < float64(ix.width) && p.Y >= 0 && p.Y < float64(ix.height)
}

// IsObstacle reports whether the cell lies inside any obstacle rectangle.
func (ix *Index) IsObstacle(c core.Point) bool {
	if ix.InGrid(c) {
		return ix.solid[c.Y*ix.width+c.X]
	}
	_, ok := ix.ObstacleAt(c)
	return ok
}

// ObstacleAt returns the first obstacle covering the cell.
func (ix *Index) ObstacleAt(c core.Point) (Obstacle, bool) {
	for _, o := range ix.obstacles {
		if o.Rect.Contains(c.X, c.Y) {
			return o, true
		}
	}
	return Obstacle{}, false
}

// IsGoal reports whether the point is within tolerance of the goal on both axes.
func (ix *Index) IsGoal(p core.Vec) bool {
	return p.Within(ix.goal.Vec(), ix.goalTol)
}

// IsStart reports whether the cell is the start cell.
func (ix *Index) IsStart(c core.Point) bool { return c == ix.start }

// IsGoalCell reports whether the cell is the goal cell.
func (ix *Index) IsGoalCell(c core.Point) bool { return c == ix.goal }
