package magnet

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/polarity/internal/core"
)

// Mode is the state of a run.
type Mode uint8

const (
	ModeDesigning Mode = iota
	ModeRunning
	ModePaused
	ModeWon
	ModeLost
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeWon:
		return "won"
	case ModeLost:
		return "lost"
	default:
		return "designing"
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Terminal reports whether the mode ends the run.
func (m Mode) Terminal() bool {
	return m == ModeWon || m == ModeLost
}

// LossReason records why a run was lost.
type LossReason uint8

const (
	LossNone LossReason = iota
	LossOutOfBounds
	LossObstacle
	LossTimeUp
)

func (r LossReason) String() string {
	switch r {
	case LossOutOfBounds:
		return "out_of_bounds"
	case LossObstacle:
		return "obstacle"
	case LossTimeUp:
		return "time_up"
	default:
		return "none"
	}
}

// MarshalText encodes the reason by name.
func (r LossReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// TickResult describes what one tick did.
type TickResult struct {
	Mode    Mode
	Pickups []Pickup
	Ended   bool // the run entered won or lost on this tick
}

// Run is one attempt at a level, from the design board to an outcome.
// A Run is not safe for concurrent use; ticks and commands must be
// delivered sequentially.
type Run struct {
	level  Level
	index  *Index
	params Params
	field  Field
	motion Motion

	mode       Mode
	loss       LossReason
	tick       uint64
	pos        core.Vec
	vel        core.Vec
	elapsed    float64
	trajectory []core.Vec
	poles      []Pole
	effects    Effects
	items      []Collectible
	tally      Tally
	attempts   int
	hintsUsed  int
	result     *Result

	newID func() string
}

// NewRun prepares a run on the design board. The run keeps its own copy of
// the level's collectibles.
func NewRun(l Level, p Params) (*Run, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	r := &Run{
		level:  l,
		index:  NewIndex(l, p.GoalTolerance),
		params: p,
		field:  NewField(p),
		motion: NewMotion(p),
		newID:  uuid.NewString,
	}
	r.Reset()
	return r, nil
}

// Reset returns to the design board, clearing poles, power-ups, the
// trajectory, timers, hint usage and every collected flag. Attempts are kept.
func (r *Run) Reset() {
	r.mode = ModeDesigning
	r.loss = LossNone
	r.tick = 0
	r.pos = r.level.Start.Vec()
	r.vel = core.Vec{}
	r.elapsed = 0
	r.trajectory = nil
	r.poles = nil
	r.effects = nil
	r.tally = Tally{}
	r.hintsUsed = 0
	r.result = nil
	r.items = make([]Collectible, len(r.level.Collectibles))
	copy(r.items, r.level.Collectibles)
	for i := range r.items {
		r.items[i].Collected = false
	}
}

// MaxPoles returns the pole allowance including the extra-pole power-up.
func (r *Run) MaxPoles() int {
	if r.effects.Has(PowerUpExtraPole) {
		return r.level.MaxPoles + 1
	}
	return r.level.MaxPoles
}

// CanPlace reports whether a pole could be placed on the cell right now.
func (r *Run) CanPlace(c core.Point) bool {
	if r.mode != ModeDesigning || len(r.poles) >= r.MaxPoles() {
		return false
	}
	if !r.index.InGrid(c) || r.index.IsObstacle(c) {
		return false
	}
	if r.index.IsStart(c) || r.index.IsGoalCell(c) {
		return false
	}
	_, occupied := r.PoleAt(c)
	return !occupied
}

// PlacePole places a standard pole. See PlacePoleKind.
func (r *Run) PlacePole(c core.Point, q Charge) (Pole, bool) {
	return r.PlacePoleKind(c, q, PoleStandard)
}

// PlacePoleKind places a pole while designing. The request is refused when
// the cell is off the grid, solid, the start or goal, already occupied, or
// when the pole allowance is used up. An active super magnet upgrades the
// pole and is consumed.
func (r *Run) PlacePoleKind(c core.Point, q Charge, kind PoleKind) (Pole, bool) {
	if !r.CanPlace(c) {
		return Pole{}, false
	}
	if r.effects.Has(PowerUpSuperMagnet) {
		kind = PoleSuper
		r.effects = r.effects.without(PowerUpSuperMagnet)
	}
	p := Pole{
		ID:       r.newID(),
		Cell:     c,
		Charge:   q,
		Strength: r.params.strength(kind),
		Kind:     kind,
	}
	if kind == PoleTimed {
		p.Duration = r.params.TimedPoleDuration
	}
	r.poles = append(r.poles, p)
	return p, true
}

// RemovePole removes a pole by id. Removal is accepted while designing, or
// while paused with a pole remover active, which it consumes.
func (r *Run) RemovePole(id string) bool {
	viaRemover := r.mode == ModePaused && r.effects.Has(PowerUpPoleRemover)
	if r.mode != ModeDesigning && !viaRemover {
		return false
	}
	for i, p := range r.poles {
		if p.ID != id {
			continue
		}
		r.poles = append(r.poles[:i:i], r.poles[i+1:]...)
		if viaRemover {
			r.effects = r.effects.without(PowerUpPoleRemover)
		}
		return true
	}
	return false
}

// PoleAt returns the pole on a cell.
func (r *Run) PoleAt(c core.Point) (Pole, bool) {
	for _, p := range r.poles {
		if p.Cell == c {
			return p, true
		}
	}
	return Pole{}, false
}

// Start launches the run. It needs at least one pole.
func (r *Run) Start() bool {
	if r.mode != ModeDesigning || len(r.poles) == 0 {
		return false
	}
	r.mode = ModeRunning
	r.attempts++
	r.trajectory = nil
	return true
}

// Pause freezes a running run.
func (r *Run) Pause() bool {
	if r.mode != ModeRunning {
		return false
	}
	r.mode = ModePaused
	return true
}

// Resume continues a paused run from where it stopped.
func (r *Run) Resume() bool {
	if r.mode != ModePaused {
		return false
	}
	r.mode = ModeRunning
	return true
}

// RequestHint returns the next unused hint.
func (r *Run) RequestHint() (string, bool) {
	if r.mode.Terminal() || r.hintsUsed >= len(r.level.Hints) {
		return "", false
	}
	h := r.level.Hints[r.hintsUsed]
	r.hintsUsed++
	return h, true
}

// ActivatePowerUp puts a power-up into effect. A kind that is already
// active is refused, as is activation after the run ended.
func (r *Run) ActivatePowerUp(k PowerUpKind) bool {
	if k >= powerUpCount || r.mode.Terminal() || r.effects.Has(k) {
		return false
	}
	a := ActivePowerUp{Kind: k}
	if d, ok := r.params.duration(k); ok {
		a.Timed = true
		a.Remaining = d
	}
	r.effects = append(r.effects, a)
	return true
}

// Tick advances the run by one fixed timestep. It does nothing unless the
// run is running.
func (r *Run) Tick() TickResult {
	if r.mode != ModeRunning {
		return TickResult{Mode: r.mode}
	}
	r.tick++

	poles := ActivePoles(r.poles, r.elapsed)
	force := r.field.At(r.pos, poles, r.effects)
	pos, vel := r.motion.Step(r.pos, r.vel, force, r.params.Timestep)

	if !r.index.InBounds(pos) {
		return r.lose(LossOutOfBounds, nil)
	}
	if !r.effects.Has(PowerUpGhostMode) && r.index.IsObstacle(pos.Cell()) {
		return r.lose(LossObstacle, nil)
	}

	picked := Collect(pos, r.items, r.params.PickupTolerance, &r.tally)

	if r.index.IsGoal(pos) {
		r.pos = pos
		r.mode = ModeWon
		r.result = r.buildResult()
		return TickResult{Mode: r.mode, Pickups: picked, Ended: true}
	}
	if r.level.TimeLimit > 0 && r.elapsed >= r.level.TimeLimit {
		return r.lose(LossTimeUp, picked)
	}

	r.pos = pos
	r.vel = vel
	r.trajectory = append(r.trajectory, pos)
	if n := r.params.TrajectoryLength; n > 0 && len(r.trajectory) > n {
		r.trajectory = append(r.trajectory[:0:0], r.trajectory[len(r.trajectory)-n:]...)
	}
	clock := r.params.Timestep
	if r.effects.Has(PowerUpTimeSlow) {
		clock *= r.params.TimeSlowFactor
	}
	r.elapsed += clock
	// Power-up timers run on wall time, so time_slow does not stretch them.
	r.effects = r.effects.age(r.params.Timestep)

	return TickResult{Mode: r.mode, Pickups: picked}
}

func (r *Run) lose(reason LossReason, picked []Pickup) TickResult {
	r.mode = ModeLost
	r.loss = reason
	return TickResult{Mode: r.mode, Pickups: picked, Ended: true}
}

// Simulate ticks until the run leaves running or maxTicks ticks have run.
func (r *Run) Simulate(maxTicks int) Mode {
	for i := 0; i < maxTicks && r.mode == ModeRunning; i++ {
		r.Tick()
	}
	return r.mode
}

// Mode returns the current state.
func (r *Run) Mode() Mode { return r.mode }

// Level returns the level geometry the run was built from.
func (r *Run) Level() Level { return r.level }

// Index returns the geometry index of the level.
func (r *Run) Index() *Index { return r.index }

// Effects returns a copy of the active power-ups.
func (r *Run) Effects() Effects {
	return append(Effects(nil), r.effects...)
}

// Poles returns a copy of the placed poles.
func (r *Run) Poles() []Pole {
	return append([]Pole(nil), r.poles...)
}

// Collectibles returns a copy of the run's collectibles with their flags.
func (r *Run) Collectibles() []Collectible {
	return append([]Collectible(nil), r.items...)
}

// Result returns the outcome of a won run.
func (r *Run) Result() (Result, bool) {
	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}
