package entity

import "github.com/samdwyer/vaultcrawl/internal/world"

// AIMode selects the decision logic driving an actor. The behavior lives
// in the ai package; this is the serializable state it operates on.
type AIMode int

const (
	// AIModePlayer marks the player actor, driven by input rather than
	// the AI module.
	AIModePlayer AIMode = iota
	// AIModeHostile chases and attacks the player when aware.
	AIModeHostile
	// AIModeConfused wanders randomly for a while, then reverts to the
	// wrapped previous state.
	AIModeConfused
)

// AIState is the per-actor AI variant. A nil AIState on an actor means
// dead. Confused state wraps the previous state it will revert to.
type AIState struct {
	Mode AIMode

	// Path is the hostile chase path cache, excluding the actor's own
	// tile. It may persist after the actor loses sight of the player.
	Path []world.Point

	// TurnsRemaining counts down confusion turns.
	TurnsRemaining int

	// Previous is the wrapped state restored when confusion expires.
	Previous *AIState
}

// Confuse wraps the current state in a confused one for the given number
// of turns. Re-confusing an already confused actor restacks on top of the
// original underlying state rather than nesting forever.
func (e *Entity) Confuse(turns int) {
	if e.AI == nil {
		return
	}
	prev := e.AI
	if prev.Mode == AIModeConfused && prev.Previous != nil {
		prev = prev.Previous
	}
	e.AI = &AIState{Mode: AIModeConfused, TurnsRemaining: turns, Previous: prev}
}

// clone deep-copies the state including the wrapped chain.
func (s *AIState) clone() *AIState {
	if s == nil {
		return nil
	}
	c := &AIState{Mode: s.Mode, TurnsRemaining: s.TurnsRemaining}
	if len(s.Path) > 0 {
		c.Path = append([]world.Point(nil), s.Path...)
	}
	c.Previous = s.Previous.clone()
	return c
}
