package entity

// ConsumableKind is the closed set of consumable behaviors.
type ConsumableKind int

const (
	// ConsumableHealing restores the drinker's hit points.
	ConsumableHealing ConsumableKind = iota
	// ConsumableLightning strikes the nearest visible enemy in range.
	ConsumableLightning
	// ConsumableConfusion scrambles a chosen visible actor's AI.
	ConsumableConfusion
	// ConsumableFireball damages every actor around a chosen visible tile.
	ConsumableFireball
)

// Consumable is the behavior component of a single-use item. Only the
// fields relevant to its Kind are meaningful.
type Consumable struct {
	Kind ConsumableKind

	Amount   int // healing
	Damage   int // lightning, fireball
	MaxRange int // lightning
	Radius   int // fireball
	Turns    int // confusion
}

// NeedsTarget reports whether activating the item requires the player to
// choose a target tile first.
func (c *Consumable) NeedsTarget() bool {
	return c.Kind == ConsumableConfusion || c.Kind == ConsumableFireball
}

// TargetRadius returns the area highlight radius for targeted
// consumables, or zero for single-tile targeting.
func (c *Consumable) TargetRadius() int {
	if c.Kind == ConsumableFireball {
		return c.Radius
	}
	return 0
}
