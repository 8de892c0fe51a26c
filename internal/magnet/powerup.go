package magnet

import "fmt"

// PowerUpKind identifies a power-up.
type PowerUpKind uint8

const (
	PowerUpExtraPole PowerUpKind = iota
	PowerUpSuperMagnet
	PowerUpTimeSlow
	PowerUpGhostMode
	PowerUpMagneticBoost
	PowerUpPoleRemover
	powerUpCount
)

var powerUpNames = [powerUpCount]string{
	"extra_pole",
	"super_magnet",
	"time_slow",
	"ghost_mode",
	"magnetic_boost",
	"pole_remover",
}

func (k PowerUpKind) String() string {
	if k < powerUpCount {
		return powerUpNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k PowerUpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParsePowerUpKind resolves a power-up by its name.
func ParsePowerUpKind(s string) (PowerUpKind, error) {
	for i, name := range powerUpNames {
		if name == s {
			return PowerUpKind(i), nil //#nosec G115 -- bounded by powerUpCount
		}
	}
	return 0, fmt.Errorf("unknown power-up %q", s)
}

// PowerUpInfo describes a power-up for menus and the HUD.
type PowerUpInfo struct {
	Kind        PowerUpKind
	Name        string
	Description string
	Cost        int
	Glyph       rune
}

var catalog = []PowerUpInfo{
	{PowerUpExtraPole, "Extra Pole", "Place one more pole than the level allows", 100, '⊕'},
	{PowerUpSuperMagnet, "Super Magnet", "Next pole has double strength", 150, '⚡'},
	{PowerUpTimeSlow, "Time Slow", "The clock runs at half speed for 10 seconds", 200, '⌛'},
	{PowerUpGhostMode, "Ghost Mode", "Pass through obstacles for 5 seconds", 300, '◌'},
	{PowerUpMagneticBoost, "Magnetic Boost", "All forces are 1.5x stronger for 15 seconds", 250, '✦'},
	{PowerUpPoleRemover, "Pole Remover", "Remove one pole while paused", 180, '✂'},
}

// Catalog returns the power-up list in activation-key order.
func Catalog() []PowerUpInfo {
	out := make([]PowerUpInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ActivePowerUp is a power-up in effect. Untimed power-ups last until
// consumed or until the run is reset.
type ActivePowerUp struct {
	Kind      PowerUpKind `json:"kind"`
	Timed     bool        `json:"timed"`
	Remaining float64     `json:"remaining,omitempty"`
}

// Effects is the set of active power-ups, at most one per kind.
type Effects []ActivePowerUp

// Has reports whether a power-up of the kind is active.
func (e Effects) Has(k PowerUpKind) bool {
	for _, a := range e {
		if a.Kind == k {
			return true
		}
	}
	return false
}

func (e Effects) without(k PowerUpKind) Effects {
	out := e[:0:0]
	for _, a := range e {
		if a.Kind != k {
			out = append(out, a)
		}
	}
	return out
}

// age subtracts dt from timed power-ups and drops the expired ones.
func (e Effects) age(dt float64) Effects {
	out := e[:0:0]
	for _, a := range e {
		if a.Timed {
			a.Remaining -= dt
			if a.Remaining <= 0 {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}
