// Package entity provides world objects and their behavior components:
// actors, consumable items, and equippable items, plus the level that
// contains them.
package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Kind is the closed set of entity variants. Dispatch happens on this tag,
// never on runtime type inspection.
type Kind int

const (
	// KindActor blocks movement and carries the behavior components.
	KindActor Kind = iota
	// KindConsumable is a single-use item.
	KindConsumable
	// KindEquipment is a wearable or wieldable item.
	KindEquipment
)

// RenderTier orders entities for drawing; higher tiers draw on top.
type RenderTier int

const (
	TierCorpse RenderTier = iota
	TierItem
	TierActor
)

// Container is the tagged reference to whatever holds an entity. At most
// one field is non-nil; a placed entity has exactly one.
type Container struct {
	Level     *Level
	Inventory *Inventory
}

// IsPlaced returns true once the entity belongs to a level or inventory.
func (c Container) IsPlaced() bool {
	return c.Level != nil || c.Inventory != nil
}

// Entity is a generic world object. Which component pointers are set
// depends on Kind: actors own Fighter/Inventory/Equipment/Stats/AI,
// consumable items own Consumable, equipment items own Equippable.
type Entity struct {
	ID             uuid.UUID
	X, Y           int
	Glyph          rune
	Color          tcell.Color
	Name           string
	BlocksMovement bool
	Tier           RenderTier
	Kind           Kind

	Container Container

	Fighter    *Fighter
	Inventory  *Inventory
	Equipment  *Equipment
	Stats      *Stats
	AI         *AIState
	Consumable *Consumable
	Equippable *Equippable
}

// NewActor creates an unplaced actor from its combat stats.
func NewActor(glyph rune, color tcell.Color, name string, fighter Fighter, stats Stats, aiMode AIMode, capacity int) *Entity {
	e := &Entity{
		ID:             uuid.New(),
		Glyph:          glyph,
		Color:          color,
		Name:           name,
		BlocksMovement: true,
		Tier:           TierActor,
		Kind:           KindActor,
		AI:             &AIState{Mode: aiMode},
	}
	f := fighter
	f.owner = e
	f.hp = f.MaxHP
	e.Fighter = &f

	s := stats
	e.Stats = &s

	e.Inventory = &Inventory{owner: e, Capacity: capacity}
	e.Equipment = &Equipment{owner: e}
	return e
}

// NewConsumableItem creates an unplaced consumable item.
func NewConsumableItem(glyph rune, color tcell.Color, name string, c Consumable) *Entity {
	e := &Entity{
		ID:    uuid.New(),
		Glyph: glyph,
		Color: color,
		Name:  name,
		Tier:  TierItem,
		Kind:  KindConsumable,
	}
	cc := c
	e.Consumable = &cc
	return e
}

// NewEquipmentItem creates an unplaced equippable item.
func NewEquipmentItem(glyph rune, color tcell.Color, name string, eq Equippable) *Entity {
	e := &Entity{
		ID:    uuid.New(),
		Glyph: glyph,
		Color: color,
		Name:  name,
		Tier:  TierItem,
		Kind:  KindEquipment,
	}
	eqc := eq
	e.Equippable = &eqc
	return e
}

// IsAlive returns true while the actor can still act. Dead actors keep
// existing as corpses with no AI.
func (e *Entity) IsAlive() bool {
	return e.Kind == KindActor && e.AI != nil
}

// Position returns the entity's coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}

// Distance returns the Euclidean distance to the given coordinates.
func (e *Entity) Distance(x, y int) float64 {
	dx := float64(x - e.X)
	dy := float64(y - e.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Translate moves the entity by the given delta without validation; the
// move action is responsible for checking the destination.
func (e *Entity) Translate(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// PlaceOn moves the entity onto a level at the given coordinates,
// detaching it from its previous container first.
func (e *Entity) PlaceOn(level *Level, x, y int) {
	e.detach()
	e.X = x
	e.Y = y
	level.add(e)
	e.Container = Container{Level: level}
}

// detach removes the entity from whichever container currently holds it.
func (e *Entity) detach() {
	switch {
	case e.Container.Level != nil:
		e.Container.Level.remove(e)
	case e.Container.Inventory != nil:
		e.Container.Inventory.remove(e)
	}
	e.Container = Container{}
}

// Destroy removes the entity from its container; nothing owns it
// afterwards. Used when a consumable is spent.
func (e *Entity) Destroy() {
	e.detach()
}

// Clone returns a deep, alias-free copy of the entity and all of its
// components, with ownership back-references re-pointed at the copy. The
// clone starts unplaced. Spawning from shared templates relies on this so
// stacked instances never share mutable state.
func (e *Entity) Clone() *Entity {
	c := &Entity{}
	*c = *e
	c.ID = uuid.New()
	c.Container = Container{}

	if e.Fighter != nil {
		f := *e.Fighter
		f.owner = c
		c.Fighter = &f
	}
	if e.Stats != nil {
		s := *e.Stats
		c.Stats = &s
	}
	if e.AI != nil {
		c.AI = e.AI.clone()
	}
	if e.Consumable != nil {
		cc := *e.Consumable
		c.Consumable = &cc
	}
	if e.Equippable != nil {
		eq := *e.Equippable
		c.Equippable = &eq
	}
	if e.Inventory != nil {
		inv := &Inventory{owner: c, Capacity: e.Inventory.Capacity}
		clones := make(map[*Entity]*Entity, len(e.Inventory.Items))
		for _, item := range e.Inventory.Items {
			dup := item.Clone()
			dup.Container = Container{Inventory: inv}
			inv.Items = append(inv.Items, dup)
			clones[item] = dup
		}
		c.Inventory = inv

		if e.Equipment != nil {
			c.Equipment = &Equipment{
				owner:  c,
				Weapon: clones[e.Equipment.Weapon],
				Armor:  clones[e.Equipment.Armor],
			}
		}
	} else if e.Equipment != nil {
		c.Equipment = &Equipment{owner: c}
	}
	return c
}

// SpawnOn duplicates the entity template and places the copy on the level.
func (e *Entity) SpawnOn(level *Level, x, y int) *Entity {
	clone := e.Clone()
	clone.PlaceOn(level, x, y)
	return clone
}
