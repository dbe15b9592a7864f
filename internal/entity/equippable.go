package entity

// Special identifies the optional ability carried by an equippable item.
type Special int

const (
	// SpecialNone has no triggered ability.
	SpecialNone Special = iota
	// SpecialAreaDamage damages every actor within a radius of a chosen
	// visible tile when invoked.
	SpecialAreaDamage
	// SpecialSelfHeal restores the wielder's hit points when invoked.
	SpecialSelfHeal
	// SpecialThorns strikes back at attackers who hit the wearer.
	SpecialThorns
)

// Equippable is the behavior component of an equipment item: passive stat
// bonuses plus an optional cooldown-gated special ability.
type Equippable struct {
	Slot         Slot
	PowerBonus   int
	DefenseBonus int

	Special       Special
	SpecialDamage int // area damage or thorns damage
	SpecialRadius int // area damage only
	SpecialHeal   int // self heal only

	// Cooldown is the number of turns between uses. The remaining
	// counter is decremented once per turn by the scheduler only, never
	// by the action that triggers the ability.
	Cooldown  int
	remaining int
}

// Remaining returns the turns left until the special is ready.
func (e *Equippable) Remaining() int {
	return e.remaining
}

// SetRemaining sets the cooldown counter, clamped to [0, Cooldown].
func (e *Equippable) SetRemaining(value int) {
	if value < 0 {
		value = 0
	}
	if value > e.Cooldown {
		value = e.Cooldown
	}
	e.remaining = value
}

// Ready reports whether the special ability can fire.
func (e *Equippable) Ready() bool {
	return e.remaining == 0
}
