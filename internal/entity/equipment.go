package entity

// Slot identifies where an equippable item is worn.
type Slot int

const (
	SlotWeapon Slot = iota
	SlotArmor
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotWeapon:
		return "weapon"
	case SlotArmor:
		return "armor"
	default:
		return "unknown"
	}
}

// Equipment holds an actor's weapon and armor slots. Equipped items stay
// in the actor's inventory; the slots are references, not containers.
type Equipment struct {
	owner *Entity

	Weapon *Entity
	Armor  *Entity
}

// Owner returns the actor wearing this equipment.
func (eq *Equipment) Owner() *Entity {
	return eq.owner
}

// PowerBonus sums the power bonuses of all equipped items.
func (eq *Equipment) PowerBonus() int {
	bonus := 0
	if eq.Weapon != nil && eq.Weapon.Equippable != nil {
		bonus += eq.Weapon.Equippable.PowerBonus
	}
	if eq.Armor != nil && eq.Armor.Equippable != nil {
		bonus += eq.Armor.Equippable.PowerBonus
	}
	return bonus
}

// DefenseBonus sums the defense bonuses of all equipped items.
func (eq *Equipment) DefenseBonus() int {
	bonus := 0
	if eq.Weapon != nil && eq.Weapon.Equippable != nil {
		bonus += eq.Weapon.Equippable.DefenseBonus
	}
	if eq.Armor != nil && eq.Armor.Equippable != nil {
		bonus += eq.Armor.Equippable.DefenseBonus
	}
	return bonus
}

// IsEquipped reports whether the item occupies either slot.
func (eq *Equipment) IsEquipped(item *Entity) bool {
	return item != nil && (eq.Weapon == item || eq.Armor == item)
}

// slot returns a pointer to the slot matching the item's equipment
// category, or nil for non-equippable items.
func (eq *Equipment) slot(item *Entity) **Entity {
	if item == nil || item.Equippable == nil {
		return nil
	}
	switch item.Equippable.Slot {
	case SlotWeapon:
		return &eq.Weapon
	case SlotArmor:
		return &eq.Armor
	default:
		return nil
	}
}

// Equip places the item in its slot and returns the previous occupant,
// if any. The caller narrates both transitions.
func (eq *Equipment) Equip(item *Entity) (unequipped *Entity) {
	slot := eq.slot(item)
	if slot == nil {
		return nil
	}
	unequipped = *slot
	*slot = item
	return unequipped
}

// Unequip clears the slot holding the item and reports whether it was
// equipped at all.
func (eq *Equipment) Unequip(item *Entity) bool {
	if eq.Weapon == item {
		eq.Weapon = nil
		return true
	}
	if eq.Armor == item {
		eq.Armor = nil
		return true
	}
	return false
}

// Equipped returns the occupied slots, weapon first.
func (eq *Equipment) Equipped() []*Entity {
	var items []*Entity
	if eq.Weapon != nil {
		items = append(items, eq.Weapon)
	}
	if eq.Armor != nil {
		items = append(items, eq.Armor)
	}
	return items
}
