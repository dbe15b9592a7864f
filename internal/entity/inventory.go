package entity

import "errors"

// ErrInventoryFull is returned when adding past capacity; the add is
// rejected outright, never truncated.
var ErrInventoryFull = errors.New("inventory full")

// Inventory is a bounded, ordered list of items carried by an actor.
type Inventory struct {
	owner *Entity

	Capacity int
	Items    []*Entity
}

// Owner returns the actor carrying this inventory.
func (inv *Inventory) Owner() *Entity {
	return inv.owner
}

// Full reports whether the inventory is at capacity.
func (inv *Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// Add transfers an item into the inventory, detaching it from its
// previous container. len(Items) <= Capacity holds at all times.
func (inv *Inventory) Add(item *Entity) error {
	if inv.Full() {
		return ErrInventoryFull
	}
	item.detach()
	inv.Items = append(inv.Items, item)
	item.Container = Container{Inventory: inv}
	return nil
}

// Contains reports whether the item is in this inventory.
func (inv *Inventory) Contains(item *Entity) bool {
	for _, it := range inv.Items {
		if it == item {
			return true
		}
	}
	return false
}

// remove drops the item from the list. Callers go through Entity
// transfer operations so both containers stay consistent.
func (inv *Inventory) remove(item *Entity) {
	for i, it := range inv.Items {
		if it == item {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return
		}
	}
}
