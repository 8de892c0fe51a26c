package game

import (
	"fmt"

	"github.com/vovakirdan/polarity/internal/core"
	"github.com/vovakirdan/polarity/internal/magnet"
)

// powerUpActions is ordered so a frame with several power-up keys activates
// them the same way every time.
var powerUpActions = []struct {
	action core.Action
	kind   magnet.PowerUpKind
}{
	{core.ActionPowerUpExtraPole, magnet.PowerUpExtraPole},
	{core.ActionPowerUpSuperMagnet, magnet.PowerUpSuperMagnet},
	{core.ActionPowerUpTimeSlow, magnet.PowerUpTimeSlow},
	{core.ActionPowerUpGhost, magnet.PowerUpGhostMode},
	{core.ActionPowerUpBoost, magnet.PowerUpMagneticBoost},
	{core.ActionPowerUpRemover, magnet.PowerUpPoleRemover},
}

// Game is the playable board: a session plus the design cursor, the charge
// used for the next pole and a one-line status message.
type Game struct {
	session *Session
	cursor  core.Point
	charge  magnet.Charge
	message string
}

// New wraps a session. Load a level before handling input.
func New(s *Session) *Game {
	return &Game{
		session: s,
		charge:  magnet.Positive,
	}
}

// Load switches the board to a level.
func (g *Game) Load(id int) error {
	if err := g.session.Load(id); err != nil {
		return err
	}
	g.onLevelLoaded()
	return nil
}

func (g *Game) onLevelLoaded() {
	g.cursor = g.session.Level().Start
	g.message = g.session.Level().Description
}

// Session returns the underlying session.
func (g *Game) Session() *Session { return g.session }

// Cursor returns the design cursor cell.
func (g *Game) Cursor() core.Point { return g.cursor }

// Charge returns the charge the next pole gets.
func (g *Game) Charge() magnet.Charge { return g.charge }

// Message returns the current status line.
func (g *Game) Message() string { return g.message }

// Handle applies one frame of input. Commands the run refuses leave the
// board unchanged apart from the status line.
func (g *Game) Handle(in core.InputFrame) {
	run := g.session.Run()
	if run == nil || in.Empty() {
		return
	}

	g.moveCursor(in)

	if in.Has(core.ActionToggleCharge) {
		g.charge = g.charge.Flip()
		g.message = fmt.Sprintf("Next pole: %s", g.charge)
	}
	if in.Has(core.ActionPlace) {
		g.place()
	}
	if in.Has(core.ActionStart) && g.start() {
		return
	}
	if in.Has(core.ActionPause) {
		switch {
		case run.Pause():
			g.message = "Paused"
		case run.Resume():
			g.message = ""
		}
	}
	if in.Has(core.ActionRestart) {
		g.session.Reset()
		g.message = "Back to the design board"
	}
	if in.Has(core.ActionHint) {
		if h, ok := run.RequestHint(); ok {
			g.message = "Hint: " + h
		} else {
			g.message = "No more hints"
		}
	}

	for _, pa := range powerUpActions {
		if !in.Has(pa.action) {
			continue
		}
		if run.ActivatePowerUp(pa.kind) {
			g.message = pa.kind.String() + " active"
		} else {
			g.message = pa.kind.String() + " unavailable"
		}
	}
}

func (g *Game) moveCursor(in core.InputFrame) {
	ix := g.session.Run().Index()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, ix.Width()-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, ix.Height()-1)
}

// place toggles a pole on the cursor cell.
func (g *Game) place() {
	run := g.session.Run()
	if p, ok := run.PoleAt(g.cursor); ok {
		if run.RemovePole(p.ID) {
			g.message = "Pole removed"
		} else {
			g.message = "Poles can only be removed on the design board"
		}
		return
	}
	p, ok := run.PlacePole(g.cursor, g.charge)
	if !ok {
		g.message = "Cannot place a pole here"
		return
	}
	g.message = fmt.Sprintf("Placed %s %s pole (%d/%d)", p.Kind, p.Charge, len(run.Poles()), run.MaxPoles())
}

// start launches the run, or moves on to the next level after a win. It
// reports whether a different level was loaded.
func (g *Game) start() bool {
	run := g.session.Run()
	switch run.Mode() {
	case magnet.ModeWon:
		if g.session.Next() {
			g.onLevelLoaded()
			return true
		}
		g.message = "That was the last level"
	case magnet.ModeDesigning:
		if run.Start() {
			g.message = ""
		} else {
			g.message = "Place at least one pole first"
		}
	}
	return false
}

// Tick advances the run one step and reports how it went.
func (g *Game) Tick() magnet.TickResult {
	res := g.session.Tick()
	for _, p := range res.Pickups {
		g.message = fmt.Sprintf("Picked up %s +%d", p.Kind, p.Value)
	}
	if res.Ended {
		st := g.session.State()
		switch res.Mode {
		case magnet.ModeWon:
			r, _ := g.session.LastResult()
			g.message = fmt.Sprintf("Level complete in %.2fs", r.Elapsed)
		case magnet.ModeLost:
			g.message = lossMessage(st.Loss)
		}
	}
	return res
}

func lossMessage(r magnet.LossReason) string {
	switch r {
	case magnet.LossOutOfBounds:
		return "Flew off the board"
	case magnet.LossObstacle:
		return "Crashed into an obstacle"
	case magnet.LossTimeUp:
		return "Out of time"
	default:
		return "Run lost"
	}
}

// State returns the coarse status the platform loop needs.
func (g *Game) State() core.GameState {
	run := g.session.Run()
	if run == nil {
		return core.GameState{}
	}
	mode := run.Mode()
	st := core.GameState{
		Running:  mode == magnet.ModeRunning,
		Paused:   mode == magnet.ModePaused,
		GameOver: mode.Terminal(),
		Won:      mode == magnet.ModeWon,
		Stars:    run.State().Tally.Stars,
	}
	if r, ok := run.Result(); ok {
		st.Stars = r.Stars
	}
	return st
}

// Snapshot returns the run state for the spectator feed.
func (g *Game) Snapshot() magnet.RunState {
	return g.session.State()
}
