package levels

import (
	"fmt"

	"github.com/vovakirdan/polarity/internal/magnet"
)

// ValidationError contains details about a validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets callers match validation failures with magnet.ErrInvalidLevel.
func (e ValidationError) Unwrap() error {
	return magnet.ErrInvalidLevel
}

// Validate checks a level beyond what the simulation requires:
//   - grid, start and goal are usable
//   - start and goal are open cells
//   - collectibles sit on open in-grid cells with unique ids
//   - obstacles have positive size
func Validate(l Level) error {
	if err := l.Geometry().Validate(); err != nil {
		return ValidationError{Code: "GEOMETRY", Message: err.Error()}
	}

	ix := magnet.NewIndex(l.Geometry(), 0)
	for _, o := range l.Obstacles {
		if o.Rect.W <= 0 || o.Rect.H <= 0 {
			return ValidationError{
				Code:    "EMPTY_OBSTACLE",
				Message: fmt.Sprintf("level %d has obstacle %+v with no area", l.ID, o.Rect),
			}
		}
	}
	if ix.IsObstacle(l.Start) {
		return ValidationError{
			Code:    "BLOCKED_START",
			Message: fmt.Sprintf("level %d start %v is inside an obstacle", l.ID, l.Start),
		}
	}
	if ix.IsObstacle(l.Goal) {
		return ValidationError{
			Code:    "BLOCKED_GOAL",
			Message: fmt.Sprintf("level %d goal %v is inside an obstacle", l.ID, l.Goal),
		}
	}
	if l.Start == l.Goal {
		return ValidationError{
			Code:    "START_IS_GOAL",
			Message: fmt.Sprintf("level %d starts on its goal", l.ID),
		}
	}

	seen := make(map[string]bool, len(l.Collectibles))
	for _, c := range l.Collectibles {
		if seen[c.ID] {
			return ValidationError{
				Code:    "DUPLICATE_COLLECTIBLE",
				Message: fmt.Sprintf("level %d has collectible id %q twice", l.ID, c.ID),
			}
		}
		seen[c.ID] = true
		if !ix.InGrid(c.Cell) || ix.IsObstacle(c.Cell) {
			return ValidationError{
				Code:    "UNREACHABLE_COLLECTIBLE",
				Message: fmt.Sprintf("level %d collectible %q at %v is off the grid or blocked", l.ID, c.ID, c.Cell),
			}
		}
	}
	return nil
}
