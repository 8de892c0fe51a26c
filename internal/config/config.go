// Package config loads the tuning constants of the simulation from YAML.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/polarity/internal/magnet"
)

// Config is the complete tuning file.
type Config struct {
	Physics          PhysicsConfig   `yaml:"physics"`
	Tolerances       ToleranceConfig `yaml:"tolerances"`
	TrajectoryLength int             `yaml:"trajectory_length"`
	PowerUps         PowerUpConfig   `yaml:"power_ups"`
	Poles            PoleConfig      `yaml:"poles"`
	Stats            StatsConfig     `yaml:"stats"`
	TickRate         int             `yaml:"tick_rate"` // tick requests per second in the terminal UI
}

// PhysicsConfig holds force and integration constants.
type PhysicsConfig struct {
	ForceConstant float64 `yaml:"force_constant"`
	Damping       float64 `yaml:"damping"`
	MaxSpeed      float64 `yaml:"max_speed"`
	Timestep      float64 `yaml:"timestep"`
	Epsilon       float64 `yaml:"epsilon"`
}

// ToleranceConfig holds the per-axis proximity thresholds.
type ToleranceConfig struct {
	Goal   float64 `yaml:"goal"`
	Pickup float64 `yaml:"pickup"`
}

// PowerUpConfig holds power-up factors and durations in seconds.
type PowerUpConfig struct {
	BoostFactor      float64 `yaml:"boost_factor"`
	TimeSlowFactor   float64 `yaml:"time_slow_factor"`
	TimeSlowDuration float64 `yaml:"time_slow_duration"`
	GhostDuration    float64 `yaml:"ghost_duration"`
	BoostDuration    float64 `yaml:"boost_duration"`
}

// PoleConfig holds per-kind pole strengths.
type PoleConfig struct {
	SuperStrength float64 `yaml:"super_strength"`
	WeakStrength  float64 `yaml:"weak_strength"`
	TimedDuration float64 `yaml:"timed_duration"`
}

// StatsConfig holds the values a fresh player profile starts with.
type StatsConfig struct {
	StartingCoins int `yaml:"starting_coins"`
}

// Params converts the file into simulation parameters.
func (c Config) Params() magnet.Params {
	return magnet.Params{
		ForceConstant: c.Physics.ForceConstant,
		Epsilon:       c.Physics.Epsilon,
		Damping:       c.Physics.Damping,
		MaxSpeed:      c.Physics.MaxSpeed,
		Timestep:      c.Physics.Timestep,

		GoalTolerance:    c.Tolerances.Goal,
		PickupTolerance:  c.Tolerances.Pickup,
		TrajectoryLength: c.TrajectoryLength,

		BoostFactor:       c.PowerUps.BoostFactor,
		TimeSlowFactor:    c.PowerUps.TimeSlowFactor,
		SuperStrength:     c.Poles.SuperStrength,
		WeakStrength:      c.Poles.WeakStrength,
		TimedPoleDuration: c.Poles.TimedDuration,

		TimeSlowDuration: c.PowerUps.TimeSlowDuration,
		GhostDuration:    c.PowerUps.GhostDuration,
		BoostDuration:    c.PowerUps.BoostDuration,
	}
}

// Validate rejects tuning the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	p := c.Physics
	check(p.Damping > 0 && p.Damping < 1, "physics.damping must be in (0, 1), got %v", p.Damping)
	check(p.MaxSpeed > 0, "physics.max_speed must be positive, got %v", p.MaxSpeed)
	check(p.Timestep > 0, "physics.timestep must be positive, got %v", p.Timestep)
	check(p.Epsilon > 0, "physics.epsilon must be positive, got %v", p.Epsilon)
	check(c.Tolerances.Goal > 0, "tolerances.goal must be positive, got %v", c.Tolerances.Goal)
	check(c.Tolerances.Pickup > 0, "tolerances.pickup must be positive, got %v", c.Tolerances.Pickup)
	check(c.TrajectoryLength > 0, "trajectory_length must be positive, got %d", c.TrajectoryLength)
	check(c.PowerUps.TimeSlowFactor > 0, "power_ups.time_slow_factor must be positive, got %v", c.PowerUps.TimeSlowFactor)
	check(c.Stats.StartingCoins >= 0, "stats.starting_coins must not be negative, got %d", c.Stats.StartingCoins)
	check(c.TickRate > 0, "tick_rate must be positive, got %d", c.TickRate)

	return errors.Join(errs...)
}
