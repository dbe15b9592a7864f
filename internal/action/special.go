package action

import (
	"fmt"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// WeaponSpecial invokes an equipped weapon's triggered ability. The
// per-item cooldown counter gates invocation; the scheduler, not this
// action, decrements it each turn.
type WeaponSpecial struct {
	Actor  *entity.Entity
	Item   *entity.Entity
	Target *world.Point
}

func (a *WeaponSpecial) Perform(ctx *Context) error {
	if a.Item == nil {
		return Impossiblef("You have nothing equipped to invoke.")
	}
	eq := a.Item.Equippable
	if eq == nil || (eq.Special != entity.SpecialAreaDamage && eq.Special != entity.SpecialSelfHeal) {
		return Impossiblef("The %s has no special ability.", a.Item.Name)
	}
	if !a.Actor.Equipment.IsEquipped(a.Item) {
		return Impossiblef("You must equip the %s first.", a.Item.Name)
	}
	if !eq.Ready() {
		return Impossiblef("%d turns left until the ability recharges.", eq.Remaining())
	}

	switch eq.Special {
	case entity.SpecialSelfHeal:
		return a.performSelfHeal(ctx, eq)
	default:
		return a.performAreaDamage(ctx, eq)
	}
}

func (a *WeaponSpecial) performSelfHeal(ctx *Context, eq *entity.Equippable) error {
	if a.Actor.Fighter.HP() >= a.Actor.Fighter.MaxHP {
		return Impossiblef("You are already at full health.")
	}
	recovered := a.Actor.Fighter.Heal(eq.SpecialHeal)
	eq.SetRemaining(eq.Cooldown)
	ctx.Log.Add(
		fmt.Sprintf("You channel the %s and recover %d HP!", a.Item.Name, recovered),
		message.CategoryHealthRecovered,
	)
	return nil
}

func (a *WeaponSpecial) performAreaDamage(ctx *Context, eq *entity.Equippable) error {
	if a.Target == nil {
		return Impossiblef("You must select a target.")
	}
	if !ctx.Level.Grid.IsVisible(a.Target.X, a.Target.Y) {
		return Impossiblef("You must select a visible target.")
	}

	var victims []*entity.Entity
	for _, actor := range ctx.Level.Actors() {
		if actor.Distance(a.Target.X, a.Target.Y) <= float64(eq.SpecialRadius) {
			victims = append(victims, actor)
		}
	}
	if len(victims) == 0 {
		return Impossiblef("There are no targets in the radius.")
	}

	eq.SetRemaining(eq.Cooldown)
	for _, victim := range victims {
		ctx.Log.Add(
			fmt.Sprintf("The %s blasts %s for %d damage!", a.Item.Name, victim.Name, eq.SpecialDamage),
			message.CategoryPlayerAttack,
		)
		applyDamage(ctx, a.Actor, victim, eq.SpecialDamage)
	}
	return nil
}
