// Package action implements the validated command pipeline. Every
// gameplay effect is one Action whose Perform either applies all effects
// or fails with an Impossible reason and no partial state change.
package action

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
)

// Impossible is the recoverable failure signal: the action cannot be
// performed, the reason is narratable, and nothing was mutated. Any other
// error out of Perform is structural and fatal.
type Impossible struct {
	Reason string
}

func (i *Impossible) Error() string {
	return i.Reason
}

// Impossiblef builds an Impossible failure from a format string.
func Impossiblef(format string, args ...any) error {
	return &Impossible{Reason: fmt.Sprintf(format, args...)}
}

// IsImpossible reports whether err is a recoverable validation failure
// and returns its reason.
func IsImpossible(err error) (string, bool) {
	var imp *Impossible
	if errors.As(err, &imp) {
		return imp.Reason, true
	}
	return "", false
}

// ErrQuit signals a controlled termination of the session. It is not a
// gameplay failure.
var ErrQuit = errors.New("quit")

// Context carries the world an action mutates. The scheduler hands one
// context per turn; actions never hold state across turns.
type Context struct {
	Level  *entity.Level
	Player *entity.Entity
	Log    *message.Log
	Rand   *rand.Rand

	// Descend regenerates the dungeon one floor down. Installed by the
	// engine; only the stairs action calls it.
	Descend func() error
}

// Action is one atomic gameplay command bound to an acting entity. All
// precondition checks precede all mutations.
type Action interface {
	Perform(ctx *Context) error
}

// applyDamage routes damage through the target's clamped hp setter,
// narrates death, and awards the kill reward to the attacker.
func applyDamage(ctx *Context, attacker, target *entity.Entity, amount int) {
	died := target.Fighter.TakeDamage(amount)
	if !died {
		return
	}
	if target == ctx.Player {
		ctx.Log.Add("You died!", message.CategoryPlayerDeath)
	} else {
		ctx.Log.Add(fmt.Sprintf("%s is dead!", target.Name), message.CategoryEnemyDeath)
	}
	if attacker != nil && attacker.Stats != nil && target.Stats != nil && target.Stats.XPGiven > 0 {
		attacker.Stats.AddXP(target.Stats.XPGiven)
		if attacker == ctx.Player {
			ctx.Log.Add(fmt.Sprintf("You gain %d experience points.", target.Stats.XPGiven), message.CategoryInfo)
		}
	}
}
