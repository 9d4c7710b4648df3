package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, K, Up arrow
	ActionDown              // S, J, Down arrow
	ActionLeft              // A, H, Left arrow
	ActionRight             // D, L, Right arrow
	ActionPause             // P - pause/unpause game
	ActionRestart           // Space, R - restart game after game over
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // B, Escape - go back to menu
	ActionScoreboard        // Tab - open high scores
	ActionQuit              // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the heading requested by a movement action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}

// InputFrame represents the input collected between two simulation ticks.
// Actions are kept in press order so quick successive turns are not lost.
type InputFrame struct {
	Actions map[Action]bool
	order   []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.order = append(f.order, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Sequence returns the actions in the order they were pressed.
func (f InputFrame) Sequence() []Action {
	return f.order
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.order) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for _, a := range f.order {
		clone.Set(a)
	}
	return clone
}
