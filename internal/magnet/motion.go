package magnet

import "github.com/vovakirdan/polarity/internal/core"

// Motion integrates velocity and position with damping and a speed clamp.
type Motion struct {
	Damping  float64
	MaxSpeed float64
}

// NewMotion builds a Motion from the tuning constants.
func NewMotion(p Params) Motion {
	return Motion{Damping: p.Damping, MaxSpeed: p.MaxSpeed}
}

// Step advances one fixed timestep using semi-implicit Euler:
// v' = (v + F) * damping, clamped to MaxSpeed, then pos' = pos + v'*dt.
func (m Motion) Step(pos, vel, force core.Vec, dt float64) (core.Vec, core.Vec) {
	v := vel.Add(force).Scale(m.Damping)
	if speed := v.Len(); speed > m.MaxSpeed {
		v = v.Scale(m.MaxSpeed / speed)
	}
	return pos.Add(v.Scale(dt)), v
}
