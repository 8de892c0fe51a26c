package magnet

import (
	"fmt"

	"github.com/vovakirdan/polarity/internal/core"
)

// Charge is the polarity of a pole.
type Charge int8

const (
	Negative Charge = -1 // repels
	Positive Charge = 1  // attracts
)

// Sign returns +1 for positive and -1 for negative charges.
func (c Charge) Sign() float64 {
	if c == Negative {
		return -1
	}
	return 1
}

// Flip returns the opposite charge.
func (c Charge) Flip() Charge {
	if c == Negative {
		return Positive
	}
	return Negative
}

// Glyph returns the board character for the charge.
func (c Charge) Glyph() rune {
	if c == Negative {
		return '-'
	}
	return '+'
}

func (c Charge) String() string {
	if c == Negative {
		return "negative"
	}
	return "positive"
}

// MarshalText encodes the charge by name.
func (c Charge) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCharge accepts "+", "-", "positive" or "negative".
func ParseCharge(s string) (Charge, error) {
	switch s {
	case "+", "positive", "pos":
		return Positive, nil
	case "-", "negative", "neg":
		return Negative, nil
	default:
		return 0, fmt.Errorf("unknown charge %q", s)
	}
}

// PoleKind selects the strength profile of a pole.
type PoleKind uint8

const (
	PoleStandard PoleKind = iota
	PoleSuper
	PoleWeak
	PoleTimed
)

func (k PoleKind) String() string {
	switch k {
	case PoleSuper:
		return "super"
	case PoleWeak:
		return "weak"
	case PoleTimed:
		return "timed"
	default:
		return "standard"
	}
}

// MarshalText encodes the kind by name.
func (k PoleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParsePoleKind resolves a pole kind by name. The empty string is standard.
func ParsePoleKind(s string) (PoleKind, error) {
	switch s {
	case "", "standard":
		return PoleStandard, nil
	case "super":
		return PoleSuper, nil
	case "weak":
		return PoleWeak, nil
	case "timed":
		return PoleTimed, nil
	default:
		return 0, fmt.Errorf("unknown pole kind %q", s)
	}
}

// Pole is a point charge placed on a grid cell.
type Pole struct {
	ID       string     `json:"id"`
	Cell     core.Point `json:"cell"`
	Charge   Charge     `json:"charge"`
	Strength float64    `json:"strength"`
	Kind     PoleKind   `json:"kind"`
	Duration float64    `json:"duration,omitempty"` // timed poles only
}

// ActiveAt reports whether the pole exerts force at the given run time.
func (p Pole) ActiveAt(elapsed float64) bool {
	return p.Kind != PoleTimed || elapsed < p.Duration
}

// ActivePoles returns the poles that exert force at the given run time.
// The input slice is not modified.
func ActivePoles(poles []Pole, elapsed float64) []Pole {
	active := make([]Pole, 0, len(poles))
	for _, p := range poles {
		if p.ActiveAt(elapsed) {
			active = append(active, p)
		}
	}
	return active
}
