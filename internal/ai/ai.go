// Package ai decides one action per enemy turn, driven by the AI state
// variant stored on each actor.
package ai

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/vaultcrawl/internal/action"
	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// debugLog, when enabled, records every AI decision for replay analysis.
var debugLog *logrus.Logger

// EnableDebugLog routes per-decision diagnostics to the given writer.
func EnableDebugLog(w io.Writer) {
	debugLog = logrus.New()
	debugLog.SetOutput(w)
	debugLog.SetFormatter(&logrus.JSONFormatter{})
	debugLog.SetLevel(logrus.DebugLevel)
}

// compass is the eight directions a confused actor may stumble in.
var compass = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Decide returns the actor's action for this turn, or nil when the actor
// consumes the turn without acting (for example, the turn confusion
// wears off).
func Decide(actor *entity.Entity, ctx *action.Context) action.Action {
	if actor.AI == nil {
		return nil
	}
	switch actor.AI.Mode {
	case entity.AIModeHostile:
		return decideHostile(actor, ctx)
	case entity.AIModeConfused:
		return decideConfused(actor, ctx)
	default:
		return nil
	}
}

// decideHostile chases the player while aware. Awareness is proxied by
// the actor's own tile being inside the player's field of view.
func decideHostile(actor *entity.Entity, ctx *action.Context) action.Action {
	target := ctx.Player
	dx := target.X - actor.X
	dy := target.Y - actor.Y
	distance := world.Point{X: actor.X, Y: actor.Y}.Chebyshev(world.Point{X: target.X, Y: target.Y})

	if ctx.Level.Grid.IsVisible(actor.X, actor.Y) {
		if distance <= 1 {
			logDecision(actor, "melee")
			return &action.Melee{Actor: actor, DX: dx, DY: dy}
		}
		actor.AI.Path = PathTo(ctx.Level,
			world.Point{X: actor.X, Y: actor.Y},
			world.Point{X: target.X, Y: target.Y},
		)
	}

	// A cached path keeps an enemy closing in even after the player
	// steps out of sight.
	if len(actor.AI.Path) > 0 {
		next := actor.AI.Path[0]
		actor.AI.Path = actor.AI.Path[1:]
		logDecision(actor, "chase")
		return &action.Move{Actor: actor, DX: next.X - actor.X, DY: next.Y - actor.Y}
	}

	logDecision(actor, "wait")
	return &action.Wait{Actor: actor}
}

// decideConfused stumbles in a random direction, attacking whatever
// occupies the chosen tile, until the confusion wears off and the
// wrapped previous state is restored.
func decideConfused(actor *entity.Entity, ctx *action.Context) action.Action {
	state := actor.AI
	if state.TurnsRemaining <= 0 {
		ctx.Log.Add(actor.Name+" is no longer confused.", message.CategoryStatusEffect)
		actor.AI = state.Previous
		logDecision(actor, "confusion-expired")
		return nil
	}

	state.TurnsRemaining--
	dir := compass[ctx.Rand.Intn(len(compass))]
	logDecision(actor, "stumble")
	return &action.Bump{Actor: actor, DX: dir[0], DY: dir[1]}
}

func logDecision(actor *entity.Entity, decision string) {
	if debugLog == nil {
		return
	}
	debugLog.WithFields(logrus.Fields{
		"actor":    actor.Name,
		"x":        actor.X,
		"y":        actor.Y,
		"decision": decision,
	}).Debug("ai decision")
}
