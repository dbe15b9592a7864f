package gamedata

import (
	"errors"
	"fmt"
	"math/rand"
)

// Registry holds the loaded monster and item definitions plus the
// floor-scaled spawn tables, and answers the generator's queries.
type Registry struct {
	monsters map[string]*MonsterDef
	items    map[string]*ItemDef
	tables   *Tables
}

// NewRegistry assembles a registry from loaded definitions.
func NewRegistry(monsters []MonsterDef, items []ItemDef, tables *Tables) (*Registry, error) {
	r := &Registry{
		monsters: make(map[string]*MonsterDef, len(monsters)),
		items:    make(map[string]*ItemDef, len(items)),
		tables:   tables,
	}
	for i := range monsters {
		r.monsters[monsters[i].ID] = &monsters[i]
	}
	for i := range items {
		r.items[items[i].ID] = &items[i]
	}

	// Every id referenced by a spawn table must resolve to a template.
	for _, fw := range tables.MonsterWeights {
		for _, entry := range fw.Entries {
			if r.monsters[entry.ID] == nil {
				return nil, fmt.Errorf("monster table references unknown id %q", entry.ID)
			}
		}
	}
	for _, fw := range tables.ItemWeights {
		for _, entry := range fw.Entries {
			if r.items[entry.ID] == nil {
				return nil, fmt.Errorf("item table references unknown id %q", entry.ID)
			}
		}
	}
	return r, nil
}

// LoadRegistry loads and assembles a registry from the embedded data.
func LoadRegistry() (*Registry, error) {
	monsters, err := LoadMonsters()
	if err != nil {
		return nil, err
	}
	if len(monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	tables, err := LoadTables()
	if err != nil {
		return nil, err
	}
	return NewRegistry(monsters, items, tables)
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Monster returns the monster definition with the given id, or nil.
func (r *Registry) Monster(id string) *MonsterDef {
	return r.monsters[id]
}

// Item returns the item definition with the given id, or nil.
func (r *Registry) Item(id string) *ItemDef {
	return r.items[id]
}

// MonsterIDs returns the ids of all loaded monster templates.
func (r *Registry) MonsterIDs() []string {
	ids := make([]string, 0, len(r.monsters))
	for id := range r.monsters {
		ids = append(ids, id)
	}
	return ids
}

// ItemIDs returns the ids of all loaded item templates.
func (r *Registry) ItemIDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	return ids
}

// MaxMonsters returns the per-room monster cap for the floor.
func (r *Registry) MaxMonsters(floor int) int {
	return maxForFloor(r.tables.MaxMonstersByFloor, floor)
}

// MaxItems returns the per-room item cap for the floor.
func (r *Registry) MaxItems(floor int) int {
	return maxForFloor(r.tables.MaxItemsByFloor, floor)
}

// RandomMonster draws a monster id from the floor's effective weight
// set, or empty when nothing is eligible yet.
func (r *Registry) RandomMonster(rng *rand.Rand, floor int) string {
	return pickWeighted(rng, effectiveWeights(r.tables.MonsterWeights, floor))
}

// RandomItem draws an item id from the floor's effective weight set.
func (r *Registry) RandomItem(rng *rand.Rand, floor int) string {
	return pickWeighted(rng, effectiveWeights(r.tables.ItemWeights, floor))
}
