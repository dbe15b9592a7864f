// Package game provides the turn scheduler and run lifecycle: it applies
// the player's action, lets every enemy act, refreshes visibility, ticks
// ability cooldowns, and settles the terminal states.
package game

// State represents the current engine state.
type State int

const (
	// StateAwaitingInput is the default state: the engine is idle until
	// the player submits an action.
	StateAwaitingInput State = iota
	// StateLevelUp blocks normal play until the player picks an
	// attribute to raise.
	StateLevelUp
	// StateDefeat is terminal: the player has died.
	StateDefeat
	// StateQuit is terminal: the player ended the session.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting-input"
	case StateLevelUp:
		return "level-up"
	case StateDefeat:
		return "defeat"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run is over.
func (s State) Terminal() bool {
	return s == StateDefeat || s == StateQuit
}
