package core

// Action represents a semantic input, abstracted from physical key presses.
// The session maps actions to run commands; the platform maps keys to actions.
type Action int

const (
	ActionNone          Action = iota
	ActionUp                   // Up arrow, K, W - move cursor up
	ActionDown                 // Down arrow, J, S - move cursor down
	ActionLeft                 // Left arrow, H, A - move cursor left
	ActionRight                // Right arrow, L, D - move cursor right
	ActionPlace                // Space, Enter - place or remove a pole at the cursor
	ActionToggleCharge         // Tab, C - flip the charge used for the next pole
	ActionStart                // G - launch the run from the design board
	ActionPause                // P - pause or resume a running run
	ActionRestart              // R - reset the level back to the design board
	ActionHint                 // ? - reveal the next hint
	ActionPowerUpExtraPole     // 1
	ActionPowerUpSuperMagnet   // 2
	ActionPowerUpTimeSlow      // 3
	ActionPowerUpGhost         // 4
	ActionPowerUpBoost         // 5
	ActionPowerUpRemover       // 6
	ActionBack                 // Esc, B - back to the level menu
	ActionQuit                 // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:               "None",
	ActionUp:                 "Up",
	ActionDown:               "Down",
	ActionLeft:               "Left",
	ActionRight:              "Right",
	ActionPlace:              "Place",
	ActionToggleCharge:       "ToggleCharge",
	ActionStart:              "Start",
	ActionPause:              "Pause",
	ActionRestart:            "Restart",
	ActionHint:               "Hint",
	ActionPowerUpExtraPole:   "PowerUpExtraPole",
	ActionPowerUpSuperMagnet: "PowerUpSuperMagnet",
	ActionPowerUpTimeSlow:    "PowerUpTimeSlow",
	ActionPowerUpGhost:       "PowerUpGhost",
	ActionPowerUpBoost:       "PowerUpBoost",
	ActionPowerUpRemover:     "PowerUpRemover",
	ActionBack:               "Back",
	ActionQuit:               "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame holds the actions triggered by one key event or one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{
		Actions: make(map[Action]bool, len(actions)),
	}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
