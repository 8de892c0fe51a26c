package magnet

import (
	"math"

	"github.com/vovakirdan/polarity/internal/core"
)

// RunState is a read-only copy of a run for renderers and the spectator
// feed. Mutating it never affects the run.
type RunState struct {
	LevelID    int             `json:"level"`
	Mode       Mode            `json:"mode"`
	Loss       LossReason      `json:"loss,omitempty"`
	Tick       uint64          `json:"tick"`
	Position   core.Vec        `json:"position"`
	Velocity   core.Vec        `json:"velocity"`
	Elapsed    float64         `json:"elapsed"`
	Trajectory []core.Vec      `json:"trajectory,omitempty"`
	Tally      Tally           `json:"tally"`
	Poles      []Pole          `json:"poles"`
	MaxPoles   int             `json:"max_poles"`
	PowerUps   []ActivePowerUp `json:"power_ups,omitempty"`
	Collected  []string        `json:"collected,omitempty"`
	Attempts   int             `json:"attempts"`
	HintsUsed  int             `json:"hints_used"`
}

// State returns a snapshot of the run.
func (r *Run) State() RunState {
	var collected []string
	for _, c := range r.items {
		if c.Collected {
			collected = append(collected, c.ID)
		}
	}
	return RunState{
		LevelID:    r.level.ID,
		Mode:       r.mode,
		Loss:       r.loss,
		Tick:       r.tick,
		Position:   r.pos,
		Velocity:   r.vel,
		Elapsed:    r.elapsed,
		Trajectory: append([]core.Vec(nil), r.trajectory...),
		Tally:      r.tally,
		Poles:      r.Poles(),
		MaxPoles:   r.MaxPoles(),
		PowerUps:   r.Effects(),
		Collected:  collected,
		Attempts:   r.attempts,
		HintsUsed:  r.hintsUsed,
	}
}

// Hash returns a simple hash of the simulation state for determinism
// testing. Pole ids are random and left out.
func (s RunState) Hash() uint64 {
	h := s.Tick
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}
	mix(uint64(s.Mode))
	mix(uint64(s.Loss))
	mixF(s.Position.X)
	mixF(s.Position.Y)
	mixF(s.Velocity.X)
	mixF(s.Velocity.Y)
	mixF(s.Elapsed)
	mix(uint64(s.Tally.Stars))  //#nosec G115 -- hash computation
	mix(uint64(s.Tally.Coins))  //#nosec G115 -- hash computation
	mix(uint64(len(s.Trajectory)))
	for _, p := range s.Poles {
		mix(uint64(p.Cell.X)) //#nosec G115 -- hash computation
		mix(uint64(p.Cell.Y)) //#nosec G115 -- hash computation
		mix(uint64(p.Kind))
		mixF(p.Charge.Sign() * p.Strength)
	}
	for _, id := range s.Collected {
		for i := 0; i < len(id); i++ {
			mix(uint64(id[i]))
		}
	}
	return h
}
