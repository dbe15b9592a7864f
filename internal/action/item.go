package action

import (
	"fmt"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Pickup transfers the item at the actor's tile into its inventory.
type Pickup struct {
	Actor *entity.Entity
}

func (a *Pickup) Perform(ctx *Context) error {
	item := ctx.Level.ItemAt(a.Actor.X, a.Actor.Y)
	if item == nil {
		return Impossiblef("There is nothing here to pick up.")
	}
	if a.Actor.Inventory.Full() {
		return Impossiblef("Your inventory is full.")
	}

	if err := a.Actor.Inventory.Add(item); err != nil {
		return err
	}
	ctx.Log.Add(fmt.Sprintf("You picked up the %s.", item.Name), message.CategoryInfo)
	return nil
}

// Drop places an inventory item back on the level at the actor's tile,
// unequipping it first if worn.
type Drop struct {
	Actor *entity.Entity
	Item  *entity.Entity
}

func (a *Drop) Perform(ctx *Context) error {
	if !a.Actor.Inventory.Contains(a.Item) {
		return fmt.Errorf("drop: %s does not hold %s", a.Actor.Name, a.Item.Name)
	}

	if a.Actor.Equipment.IsEquipped(a.Item) {
		a.Actor.Equipment.Unequip(a.Item)
		ctx.Log.Add(fmt.Sprintf("You remove the %s.", a.Item.Name), message.CategoryInfo)
	}

	a.Item.PlaceOn(ctx.Level, a.Actor.X, a.Actor.Y)
	ctx.Log.Add(fmt.Sprintf("You dropped the %s.", a.Item.Name), message.CategoryInfo)
	return nil
}

// EquipToggle equips or unequips an equippable item. Equipping routes to
// the slot matching the item's category; an occupied slot is vacated
// first, and toggling an already-equipped item removes it.
type EquipToggle struct {
	Actor *entity.Entity
	Item  *entity.Entity
}

func (a *EquipToggle) Perform(ctx *Context) error {
	if a.Item.Equippable == nil {
		return Impossiblef("You cannot equip the %s.", a.Item.Name)
	}
	if !a.Actor.Inventory.Contains(a.Item) {
		return fmt.Errorf("equip: %s does not hold %s", a.Actor.Name, a.Item.Name)
	}

	eq := a.Actor.Equipment
	if eq.IsEquipped(a.Item) {
		eq.Unequip(a.Item)
		ctx.Log.Add(fmt.Sprintf("You remove the %s.", a.Item.Name), message.CategoryInfo)
		return nil
	}

	if previous := eq.Equip(a.Item); previous != nil {
		ctx.Log.Add(fmt.Sprintf("You remove the %s.", previous.Name), message.CategoryInfo)
	}
	ctx.Log.Add(fmt.Sprintf("You equip the %s.", a.Item.Name), message.CategoryInfo)
	return nil
}

// UseItem activates a consumable's behavior for the acting actor. Target
// defaults to the actor's own tile for untargeted consumables.
type UseItem struct {
	Actor  *entity.Entity
	Item   *entity.Entity
	Target *world.Point
}

func (a *UseItem) Perform(ctx *Context) error {
	if a.Item.Consumable == nil {
		return Impossiblef("You cannot use the %s.", a.Item.Name)
	}

	target := world.Point{X: a.Actor.X, Y: a.Actor.Y}
	if a.Target != nil {
		target = *a.Target
	}

	c := a.Item.Consumable
	switch c.Kind {
	case entity.ConsumableHealing:
		return a.activateHealing(ctx, c)
	case entity.ConsumableLightning:
		return a.activateLightning(ctx, c)
	case entity.ConsumableConfusion:
		return a.activateConfusion(ctx, c, target)
	case entity.ConsumableFireball:
		return a.activateFireball(ctx, c, target)
	default:
		return fmt.Errorf("use: unknown consumable kind %d", c.Kind)
	}
}

func (a *UseItem) activateHealing(ctx *Context, c *entity.Consumable) error {
	if a.Actor.Fighter.HP() >= a.Actor.Fighter.MaxHP {
		return Impossiblef("Your health is already full.")
	}
	recovered := a.Actor.Fighter.Heal(c.Amount)
	ctx.Log.Add(
		fmt.Sprintf("You consume the %s, and recover %d HP!", a.Item.Name, recovered),
		message.CategoryHealthRecovered,
	)
	a.Item.Destroy()
	return nil
}

func (a *UseItem) activateLightning(ctx *Context, c *entity.Consumable) error {
	var target *entity.Entity
	closest := float64(c.MaxRange) + 1.0

	for _, actor := range ctx.Level.Actors() {
		if actor == a.Actor || !ctx.Level.Grid.IsVisible(actor.X, actor.Y) {
			continue
		}
		distance := a.Actor.Distance(actor.X, actor.Y)
		if distance < closest {
			closest = distance
			target = actor
		}
	}

	if target == nil {
		return Impossiblef("No enemy is close enough to strike.")
	}
	ctx.Log.Add(
		fmt.Sprintf("A lightning bolt strikes %s with a loud thunder, for %d damage!", target.Name, c.Damage),
		message.CategoryPlayerAttack,
	)
	applyDamage(ctx, a.Actor, target, c.Damage)
	a.Item.Destroy()
	return nil
}

func (a *UseItem) activateConfusion(ctx *Context, c *entity.Consumable, target world.Point) error {
	if !ctx.Level.Grid.IsVisible(target.X, target.Y) {
		return Impossiblef("You must select a visible target.")
	}
	victim := ctx.Level.ActorAt(target.X, target.Y)
	if victim == nil {
		return Impossiblef("You must select an enemy to target.")
	}
	if victim == a.Actor {
		return Impossiblef("You cannot confuse yourself!")
	}

	ctx.Log.Add(
		fmt.Sprintf("The eyes of %s look vacant, as it starts to stumble around!", victim.Name),
		message.CategoryStatusEffect,
	)
	victim.Confuse(c.Turns)
	a.Item.Destroy()
	return nil
}

func (a *UseItem) activateFireball(ctx *Context, c *entity.Consumable, target world.Point) error {
	if !ctx.Level.Grid.IsVisible(target.X, target.Y) {
		return Impossiblef("You must select a visible target.")
	}

	// Collect victims before dealing any damage so an empty blast fails
	// without side effects.
	var victims []*entity.Entity
	for _, actor := range ctx.Level.Actors() {
		if actor.Distance(target.X, target.Y) <= float64(c.Radius) {
			victims = append(victims, actor)
		}
	}
	if len(victims) == 0 {
		return Impossiblef("There are no targets in the radius.")
	}

	for _, victim := range victims {
		ctx.Log.Add(
			fmt.Sprintf("%s is engulfed in a fiery explosion, taking %d damage!", victim.Name, c.Damage),
			message.CategoryPlayerAttack,
		)
		applyDamage(ctx, a.Actor, victim, c.Damage)
	}
	a.Item.Destroy()
	return nil
}
