package entity

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Level is one dungeon floor: the tile grid plus the set of entities
// currently placed on it. Every entity whose container is this level has
// in-bounds coordinates.
type Level struct {
	Grid     *world.Grid
	entities mapset.Set[*Entity]
}

// NewLevel creates an empty level over the given grid.
func NewLevel(grid *world.Grid) *Level {
	return &Level{Grid: grid, entities: mapset.New[*Entity]()}
}

func (l *Level) add(e *Entity) {
	l.entities.Put(e)
}

func (l *Level) remove(e *Entity) {
	l.entities.Remove(e)
}

// Contains reports whether the entity is placed on this level.
func (l *Level) Contains(e *Entity) bool {
	return l.entities.Has(e)
}

// Size returns the number of entities on the level.
func (l *Level) Size() int {
	return l.entities.Size()
}

// Entities returns all entities sorted into draw order: lower tiers
// first so actors paint over items over corpses.
func (l *Level) Entities() []*Entity {
	var all []*Entity
	l.entities.Each(func(e *Entity) {
		all = append(all, e)
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Tier != all[j].Tier {
			return all[i].Tier < all[j].Tier
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return all
}

// Actors returns the level's living actors in scan-line order (top to
// bottom, left to right). Living actors block movement and so never
// share a tile, making the order total — and independent of entity ids,
// so same-seed runs schedule enemies identically.
func (l *Level) Actors() []*Entity {
	var actors []*Entity
	l.entities.Each(func(e *Entity) {
		if e.IsAlive() {
			actors = append(actors, e)
		}
	})
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].Y != actors[j].Y {
			return actors[i].Y < actors[j].Y
		}
		return actors[i].X < actors[j].X
	})
	return actors
}

// BlockerAt returns the movement-blocking entity at x, y, if any.
func (l *Level) BlockerAt(x, y int) *Entity {
	var found *Entity
	l.entities.Each(func(e *Entity) {
		if e.BlocksMovement && e.X == x && e.Y == y {
			found = e
		}
	})
	return found
}

// ActorAt returns the living actor at x, y, if any.
func (l *Level) ActorAt(x, y int) *Entity {
	var found *Entity
	l.entities.Each(func(e *Entity) {
		if e.IsAlive() && e.X == x && e.Y == y {
			found = e
		}
	})
	return found
}

// ItemAt returns an item lying at x, y, if any.
func (l *Level) ItemAt(x, y int) *Entity {
	var found *Entity
	l.entities.Each(func(e *Entity) {
		if e.Kind != KindActor && e.X == x && e.Y == y {
			found = e
		}
	})
	return found
}

// OccupiedExactly reports whether any entity sits exactly at x, y. The
// generator uses this to skip occupied spawn coordinates.
func (l *Level) OccupiedExactly(x, y int) bool {
	occupied := false
	l.entities.Each(func(e *Entity) {
		if e.X == x && e.Y == y {
			occupied = true
		}
	})
	return occupied
}
