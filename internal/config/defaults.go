package config

import (
	_ "embed"
)

//go:embed defaults/polarity.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in tuning.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			ForceConstant: 0.5,
			Damping:       0.95,
			MaxSpeed:      8,
			Timestep:      0.016,
			Epsilon:       0.1,
		},
		Tolerances: ToleranceConfig{
			Goal:   0.3,
			Pickup: 0.5,
		},
		TrajectoryLength: 50,
		PowerUps: PowerUpConfig{
			BoostFactor:      1.5,
			TimeSlowFactor:   0.5,
			TimeSlowDuration: 10,
			GhostDuration:    5,
			BoostDuration:    15,
		},
		Poles: PoleConfig{
			SuperStrength: 2,
			WeakStrength:  0.5,
			TimedDuration: 3,
		},
		Stats: StatsConfig{
			StartingCoins: 500,
		},
		TickRate: 60,
	}
}

// withDefaults fills zero fields from DefaultConfig so a partial file only
// overrides what it names.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	setF := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}

	setF(&c.Physics.ForceConstant, d.Physics.ForceConstant)
	setF(&c.Physics.Damping, d.Physics.Damping)
	setF(&c.Physics.MaxSpeed, d.Physics.MaxSpeed)
	setF(&c.Physics.Timestep, d.Physics.Timestep)
	setF(&c.Physics.Epsilon, d.Physics.Epsilon)
	setF(&c.Tolerances.Goal, d.Tolerances.Goal)
	setF(&c.Tolerances.Pickup, d.Tolerances.Pickup)
	setI(&c.TrajectoryLength, d.TrajectoryLength)
	setF(&c.PowerUps.BoostFactor, d.PowerUps.BoostFactor)
	setF(&c.PowerUps.TimeSlowFactor, d.PowerUps.TimeSlowFactor)
	setF(&c.PowerUps.TimeSlowDuration, d.PowerUps.TimeSlowDuration)
	setF(&c.PowerUps.GhostDuration, d.PowerUps.GhostDuration)
	setF(&c.PowerUps.BoostDuration, d.PowerUps.BoostDuration)
	setF(&c.Poles.SuperStrength, d.Poles.SuperStrength)
	setF(&c.Poles.WeakStrength, d.Poles.WeakStrength)
	setF(&c.Poles.TimedDuration, d.Poles.TimedDuration)
	setI(&c.Stats.StartingCoins, d.Stats.StartingCoins)
	setI(&c.TickRate, d.TickRate)
	return c
}
