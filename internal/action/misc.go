package action

import (
	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
)

// Wait consumes the turn without doing anything.
type Wait struct {
	Actor *entity.Entity
}

func (a *Wait) Perform(ctx *Context) error {
	return nil
}

// Escape requests a controlled end of the session.
type Escape struct {
	Actor *entity.Entity
}

func (a *Escape) Perform(ctx *Context) error {
	return ErrQuit
}

// Descend takes the stairs down, regenerating the dungeon one floor
// deeper. It requires standing exactly on the descend tile.
type Descend struct {
	Actor *entity.Entity
}

func (a *Descend) Perform(ctx *Context) error {
	stairs := ctx.Level.Grid.Stairs
	if a.Actor.X != stairs.X || a.Actor.Y != stairs.Y {
		return Impossiblef("There are no stairs here.")
	}
	if err := ctx.Descend(); err != nil {
		return err
	}
	ctx.Log.Add("You descend the staircase.", message.CategoryDescend)
	return nil
}
