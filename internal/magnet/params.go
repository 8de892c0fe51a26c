package magnet

// Params holds the tuning constants of the simulation. Every value is read
// once per tick; none of them depend on wall-clock time.
type Params struct {
	ForceConstant float64 // k in k*strength/d²
	Epsilon       float64 // poles at distance <= Epsilon exert no force
	Damping       float64 // velocity multiplier per tick, < 1
	MaxSpeed      float64 // speed clamp in grid units per second
	Timestep      float64 // fixed simulation step in seconds

	GoalTolerance    float64 // per-axis, strict
	PickupTolerance  float64 // per-axis, strict
	TrajectoryLength int     // samples kept for visualization

	BoostFactor       float64 // magnetic boost multiplier on total force
	TimeSlowFactor    float64 // elapsed clock rate while time slow is active
	SuperStrength     float64 // strength of a pole placed under super magnet
	WeakStrength      float64
	TimedPoleDuration float64 // seconds a timed pole stays active

	TimeSlowDuration float64
	GhostDuration    float64
	BoostDuration    float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		ForceConstant: 0.5,
		Epsilon:       0.1,
		Damping:       0.95,
		MaxSpeed:      8,
		Timestep:      0.016,

		GoalTolerance:    0.3,
		PickupTolerance:  0.5,
		TrajectoryLength: 50,

		BoostFactor:       1.5,
		TimeSlowFactor:    0.5,
		SuperStrength:     2,
		WeakStrength:      0.5,
		TimedPoleDuration: 3,

		TimeSlowDuration: 10,
		GhostDuration:    5,
		BoostDuration:    15,
	}
}

// duration returns the lifetime of a timed power-up.
func (p Params) duration(k PowerUpKind) (float64, bool) {
	switch k {
	case PowerUpTimeSlow:
		return p.TimeSlowDuration, true
	case PowerUpGhostMode:
		return p.GhostDuration, true
	case PowerUpMagneticBoost:
		return p.BoostDuration, true
	default:
		return 0, false
	}
}

// strength returns the base strength of a pole kind.
func (p Params) strength(k PoleKind) float64 {
	switch k {
	case PoleSuper:
		return p.SuperStrength
	case PoleWeak:
		return p.WeakStrength
	default:
		return 1
	}
}
