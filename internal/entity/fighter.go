package entity

import "github.com/gdamore/tcell/v2"

// corpseColor is the remains glyph color.
var corpseColor = tcell.NewRGBColor(191, 0, 0)

// Fighter is the combat-stat component of an actor. HP is clamped to
// [0, MaxHP]; reaching zero triggers the death transition exactly once.
type Fighter struct {
	owner *Entity

	MaxHP       int
	hp          int
	BaseDefense int
	BasePower   int
}

// NewFighter builds fighter stats for an actor template.
func NewFighter(hp, defense, power int) Fighter {
	return Fighter{MaxHP: hp, hp: hp, BaseDefense: defense, BasePower: power}
}

// Owner returns the actor this component belongs to.
func (f *Fighter) Owner() *Entity {
	return f.owner
}

// HP returns the current hit points.
func (f *Fighter) HP() int {
	return f.hp
}

// Power returns attack power including equipment bonuses.
func (f *Fighter) Power() int {
	bonus := 0
	if f.owner != nil && f.owner.Equipment != nil {
		bonus = f.owner.Equipment.PowerBonus()
	}
	return f.BasePower + bonus
}

// Defense returns defense including equipment bonuses.
func (f *Fighter) Defense() int {
	bonus := 0
	if f.owner != nil && f.owner.Equipment != nil {
		bonus = f.owner.Equipment.DefenseBonus()
	}
	return f.BaseDefense + bonus
}

// SetHP sets hit points, clamped to [0, MaxHP]. It reports whether the
// actor died as a result; the death transition fires only on the call
// that brings a living actor to zero.
func (f *Fighter) SetHP(value int) bool {
	f.hp = value
	if f.hp < 0 {
		f.hp = 0
	}
	if f.hp > f.MaxHP {
		f.hp = f.MaxHP
	}
	if f.hp == 0 && f.owner != nil && f.owner.AI != nil {
		f.die()
		return true
	}
	return false
}

// TakeDamage reduces hit points and reports whether the actor died.
func (f *Fighter) TakeDamage(amount int) bool {
	return f.SetHP(f.hp - amount)
}

// Heal restores hit points up to MaxHP and returns the amount actually
// recovered.
func (f *Fighter) Heal(amount int) int {
	if f.hp >= f.MaxHP {
		return 0
	}
	newHP := f.hp + amount
	if newHP > f.MaxHP {
		newHP = f.MaxHP
	}
	recovered := newHP - f.hp
	f.hp = newHP
	return recovered
}

// die converts the owning actor into an inert corpse: non-blocking,
// AI-less decoration that keeps existing on the level.
func (f *Fighter) die() {
	e := f.owner
	e.Glyph = '%'
	e.Color = corpseColor
	e.BlocksMovement = false
	e.AI = nil
	e.Name = "remains of " + e.Name
	e.Tier = TierCorpse
}
