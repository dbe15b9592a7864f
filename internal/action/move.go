package action

import (
	"fmt"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
)

// Move translates the actor one step if the destination is in bounds,
// walkable, and free of blocking entities.
type Move struct {
	Actor  *entity.Entity
	DX, DY int
}

func (a *Move) Perform(ctx *Context) error {
	destX := a.Actor.X + a.DX
	destY := a.Actor.Y + a.DY

	if !ctx.Level.Grid.InBounds(destX, destY) {
		return Impossiblef("That way is blocked.")
	}
	if !ctx.Level.Grid.Walkable(destX, destY) {
		return Impossiblef("That way is blocked.")
	}
	if ctx.Level.BlockerAt(destX, destY) != nil {
		return Impossiblef("That way is blocked.")
	}

	a.Actor.Translate(a.DX, a.DY)
	return nil
}

// Melee attacks the living actor one step away in the given direction.
// Damage is attacker power minus defender defense, never negative.
type Melee struct {
	Actor  *entity.Entity
	DX, DY int
}

func (a *Melee) Perform(ctx *Context) error {
	destX := a.Actor.X + a.DX
	destY := a.Actor.Y + a.DY

	target := ctx.Level.ActorAt(destX, destY)
	if target == nil {
		return Impossiblef("Nothing to attack.")
	}

	damage := a.Actor.Fighter.Power() - target.Fighter.Defense()
	if damage < 0 {
		damage = 0
	}

	category := message.CategoryEnemyAttack
	if a.Actor == ctx.Player {
		category = message.CategoryPlayerAttack
	}

	if damage > 0 {
		ctx.Log.Add(fmt.Sprintf("%s attacks %s for %d hit points.", a.Actor.Name, target.Name, damage), category)
		applyDamage(ctx, a.Actor, target, damage)
	} else {
		ctx.Log.Add(fmt.Sprintf("%s attacks %s but does no damage.", a.Actor.Name, target.Name), category)
	}

	// A reactive armor special may strike back at the attacker. Its
	// failure never aborts the attack that triggered it.
	if target.IsAlive() && target.Equipment != nil && target.Equipment.Armor != nil {
		thorns := &Thorns{Wearer: target, Aggressor: a.Actor}
		if err := thorns.Perform(ctx); err != nil {
			if _, ok := IsImpossible(err); !ok {
				return err
			}
		}
	}
	return nil
}

// Thorns is the nested reaction fired at whoever just struck the wearer.
// It has its own cooldown gate and fizzles silently while recharging.
type Thorns struct {
	Wearer    *entity.Entity
	Aggressor *entity.Entity
}

func (a *Thorns) Perform(ctx *Context) error {
	armor := a.Wearer.Equipment.Armor
	if armor == nil || armor.Equippable == nil || armor.Equippable.Special != entity.SpecialThorns {
		return nil
	}
	eq := armor.Equippable
	if !eq.Ready() {
		return nil
	}
	if !a.Aggressor.IsAlive() {
		return nil
	}
	eq.SetRemaining(eq.Cooldown)

	category := message.CategoryPlayerAttack
	if a.Aggressor == ctx.Player {
		category = message.CategoryEnemyAttack
	}

	damage := eq.SpecialDamage - a.Aggressor.Fighter.Defense()
	if damage > 0 {
		ctx.Log.Add(fmt.Sprintf("The %s's thorns deal %d hit points to %s.", armor.Name, damage, a.Aggressor.Name), category)
		applyDamage(ctx, a.Wearer, a.Aggressor, damage)
	} else {
		ctx.Log.Add(fmt.Sprintf("The %s's thorns scratch %s but do no damage.", armor.Name, a.Aggressor.Name), category)
	}
	return nil
}

// Bump is the default directional action: it resolves to Melee when a
// living actor occupies the destination, otherwise to Move.
type Bump struct {
	Actor  *entity.Entity
	DX, DY int
}

func (a *Bump) Perform(ctx *Context) error {
	destX := a.Actor.X + a.DX
	destY := a.Actor.Y + a.DY

	if ctx.Level.ActorAt(destX, destY) != nil {
		return (&Melee{Actor: a.Actor, DX: a.DX, DY: a.DY}).Perform(ctx)
	}
	return (&Move{Actor: a.Actor, DX: a.DX, DY: a.DY}).Perform(ctx)
}
