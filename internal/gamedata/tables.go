package gamedata

import (
	"math/rand"
	"sort"
)

// FloorMax is one step of a floor-indexed maximum table: from Floor
// onward, up to Max entities of the kind may spawn per room.
type FloorMax struct {
	Floor int `json:"floor"`
	Max   int `json:"max"`
}

// WeightEntry gives one template a relative spawn weight.
type WeightEntry struct {
	ID     string `json:"id"`
	Weight int    `json:"weight"`
}

// FloorWeights introduces or overrides weight entries from Floor onward.
type FloorWeights struct {
	Floor   int           `json:"floor"`
	Entries []WeightEntry `json:"entries"`
}

// Tables holds the floor-scaled spawn tables loaded from tables.json.
type Tables struct {
	MaxMonstersByFloor []FloorMax     `json:"maxMonstersByFloor"`
	MaxItemsByFloor    []FloorMax     `json:"maxItemsByFloor"`
	MonsterWeights     []FloorWeights `json:"monsterWeights"`
	ItemWeights        []FloorWeights `json:"itemWeights"`
}

// LoadTables loads the spawn tables from the embedded tables.json.
func LoadTables() (*Tables, error) {
	tables, err := Load[Tables]("tables.json")
	if err != nil {
		return nil, err
	}
	return &tables, nil
}

// maxForFloor evaluates a step function: the Max of the highest entry
// whose Floor does not exceed the given floor, zero below the first step.
func maxForFloor(steps []FloorMax, floor int) int {
	current := 0
	for _, step := range steps {
		if step.Floor > floor {
			break
		}
		current = step.Max
	}
	return current
}

// effectiveWeights folds every FloorWeights entry with Floor <= floor
// into one weight set. Later floors add new templates or override the
// weight of ones already present.
func effectiveWeights(table []FloorWeights, floor int) map[string]int {
	weights := make(map[string]int)
	for _, fw := range table {
		if fw.Floor > floor {
			continue
		}
		for _, entry := range fw.Entries {
			weights[entry.ID] = entry.Weight
		}
	}
	return weights
}

// pickWeighted selects a template id from the weight set, or empty when
// the set is empty. Iteration is over sorted ids so a seeded rng always
// draws the same sequence.
func pickWeighted(rng *rand.Rand, weights map[string]int) string {
	if len(weights) == 0 {
		return ""
	}
	ids := make([]string, 0, len(weights))
	total := 0
	for id, w := range weights {
		ids = append(ids, id)
		total += w
	}
	if total <= 0 {
		return ""
	}
	sort.Strings(ids)

	roll := rng.Intn(total)
	cumulative := 0
	for _, id := range ids {
		cumulative += weights[id]
		if roll < cumulative {
			return id
		}
	}
	return ids[len(ids)-1]
}
