// Package savefile serializes a run to JSON and rebuilds it. The format
// is a flat entity list with string ids for cross-references, so held
// items, equipped slots, and nested AI states survive the round trip
// without pointer aliasing tricks.
package savefile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/gamedata"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Version is the current save format version. Loading rejects any other.
const Version = 1

// Snapshot is the full serializable state of a run.
type Snapshot struct {
	Version  int               `json:"version"`
	Seed     int64             `json:"seed"`
	Floor    int               `json:"floor"`
	Turn     int               `json:"turn"`
	Grid     GridState         `json:"grid"`
	Entities []EntityState     `json:"entities"`
	PlayerID string            `json:"player_id"`
	Messages []message.Message `json:"messages"`
}

// GridState stores tiles as one rune per cell and the explored overlay
// as '1'/'0' rows. Visibility is not stored; it is recomputed on load.
type GridState struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	Rows     []string    `json:"rows"`
	Explored []string    `json:"explored"`
	Stairs   world.Point `json:"stairs"`
}

// FighterState stores combat numbers, including current hit points.
type FighterState struct {
	MaxHP   int `json:"max_hp"`
	HP      int `json:"hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// EquippableState stores the equippable component plus its cooldown
// counter, which is not exported by the component itself.
type EquippableState struct {
	entity.Equippable
	Remaining int `json:"remaining"`
}

// EntityState is one entity in the flat list. HeldBy is empty for
// entities placed on the level and the holder's id for carried items.
type EntityState struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Glyph  string `json:"glyph"`
	Color  string `json:"color"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Blocks bool   `json:"blocks,omitempty"`
	Tier   int    `json:"tier"`
	Kind   int    `json:"kind"`
	HeldBy string `json:"held_by,omitempty"`

	Fighter    *FighterState      `json:"fighter,omitempty"`
	Stats      *entity.Stats      `json:"stats,omitempty"`
	AI         *entity.AIState    `json:"ai,omitempty"`
	Consumable *entity.Consumable `json:"consumable,omitempty"`
	Equippable *EquippableState   `json:"equippable,omitempty"`

	Capacity int    `json:"capacity,omitempty"`
	WeaponID string `json:"weapon_id,omitempty"`
	ArmorID  string `json:"armor_id,omitempty"`
}

// Capture freezes the current run state into a snapshot.
func Capture(level *entity.Level, player *entity.Entity, log *message.Log, seed int64, floor, turn int) *Snapshot {
	snap := &Snapshot{
		Version:  Version,
		Seed:     seed,
		Floor:    floor,
		Turn:     turn,
		Grid:     captureGrid(level.Grid),
		PlayerID: player.ID.String(),
		Messages: log.Messages(),
	}
	for _, e := range level.Entities() {
		snap.Entities = append(snap.Entities, captureEntity(e, "")...)
	}
	return snap
}

func captureGrid(grid *world.Grid) GridState {
	gs := GridState{
		Width:  grid.Width,
		Height: grid.Height,
		Stairs: grid.Stairs,
	}
	for y := 0; y < grid.Height; y++ {
		row := make([]rune, grid.Width)
		explored := make([]rune, grid.Width)
		for x := 0; x < grid.Width; x++ {
			row[x] = grid.At(x, y).Kind()
			if grid.Explored[y][x] {
				explored[x] = '1'
			} else {
				explored[x] = '0'
			}
		}
		gs.Rows = append(gs.Rows, string(row))
		gs.Explored = append(gs.Explored, string(explored))
	}
	return gs
}

// captureEntity returns the entity's state followed by the states of
// everything it carries.
func captureEntity(e *entity.Entity, heldBy string) []EntityState {
	es := EntityState{
		ID:     e.ID.String(),
		Name:   e.Name,
		Glyph:  string(e.Glyph),
		Color:  fmt.Sprintf("#%06X", e.Color.Hex()),
		X:      e.X,
		Y:      e.Y,
		Blocks: e.BlocksMovement,
		Tier:   int(e.Tier),
		Kind:   int(e.Kind),
		HeldBy: heldBy,
	}
	if f := e.Fighter; f != nil {
		es.Fighter = &FighterState{
			MaxHP:   f.MaxHP,
			HP:      f.HP(),
			Defense: f.BaseDefense,
			Power:   f.BasePower,
		}
	}
	if e.Stats != nil {
		s := *e.Stats
		es.Stats = &s
	}
	es.AI = e.AI
	if e.Consumable != nil {
		c := *e.Consumable
		es.Consumable = &c
	}
	if eq := e.Equippable; eq != nil {
		es.Equippable = &EquippableState{Equippable: *eq, Remaining: eq.Remaining()}
	}
	if e.Inventory != nil {
		es.Capacity = e.Inventory.Capacity
	}
	if e.Equipment != nil {
		if e.Equipment.Weapon != nil {
			es.WeaponID = e.Equipment.Weapon.ID.String()
		}
		if e.Equipment.Armor != nil {
			es.ArmorID = e.Equipment.Armor.ID.String()
		}
	}

	out := []EntityState{es}
	if e.Inventory != nil {
		for _, item := range e.Inventory.Items {
			out = append(out, captureEntity(item, es.ID)...)
		}
	}
	return out
}

// Restore rebuilds the level, player, and message log from the snapshot.
// Any dangling cross-reference or malformed field is a structural error.
func (s *Snapshot) Restore() (*entity.Level, *entity.Entity, *message.Log, error) {
	if s.Version != Version {
		return nil, nil, nil, fmt.Errorf("unsupported save version %d", s.Version)
	}

	grid, err := restoreGrid(&s.Grid)
	if err != nil {
		return nil, nil, nil, err
	}
	level := entity.NewLevel(grid)

	byID := make(map[string]*entity.Entity, len(s.Entities))
	for i := range s.Entities {
		es := &s.Entities[i]
		e, err := restoreEntity(es)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("entity %s: %w", es.ID, err)
		}
		byID[es.ID] = e
	}

	// Placement pass: level entities first so holders exist before their
	// items transfer in.
	for i := range s.Entities {
		es := &s.Entities[i]
		e := byID[es.ID]
		if es.HeldBy == "" {
			e.PlaceOn(level, es.X, es.Y)
			continue
		}
		holder := byID[es.HeldBy]
		if holder == nil || holder.Inventory == nil {
			return nil, nil, nil, fmt.Errorf("entity %s held by unknown holder %s", es.ID, es.HeldBy)
		}
		if err := holder.Inventory.Add(e); err != nil {
			return nil, nil, nil, fmt.Errorf("entity %s: %w", es.ID, err)
		}
		e.X, e.Y = es.X, es.Y
	}

	// Slot pass: re-point equipment at carried items.
	for i := range s.Entities {
		es := &s.Entities[i]
		holder := byID[es.ID]
		if holder.Equipment == nil {
			continue
		}
		for _, ref := range []string{es.WeaponID, es.ArmorID} {
			if ref == "" {
				continue
			}
			item := byID[ref]
			if item == nil || !holder.Inventory.Contains(item) {
				return nil, nil, nil, fmt.Errorf("entity %s equips item %s it does not hold", es.ID, ref)
			}
			holder.Equipment.Equip(item)
		}
	}

	player := byID[s.PlayerID]
	if player == nil {
		return nil, nil, nil, fmt.Errorf("player %s not found in save", s.PlayerID)
	}

	log := message.NewLog()
	log.Restore(s.Messages)
	return level, player, log, nil
}

func restoreGrid(gs *GridState) (*world.Grid, error) {
	if gs.Width <= 0 || gs.Height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d out of range", gs.Width, gs.Height)
	}
	if len(gs.Rows) != gs.Height || len(gs.Explored) != gs.Height {
		return nil, fmt.Errorf("grid rows mismatch height %d", gs.Height)
	}
	grid := world.NewGrid(gs.Width, gs.Height)
	for y, row := range gs.Rows {
		cells := []rune(row)
		if len(cells) != gs.Width {
			return nil, fmt.Errorf("grid row %d has %d cells, want %d", y, len(cells), gs.Width)
		}
		for x, r := range cells {
			grid.SetTile(x, y, world.TileByKind(r))
		}
	}
	for y, row := range gs.Explored {
		cells := []rune(row)
		if len(cells) != gs.Width {
			return nil, fmt.Errorf("explored row %d has %d cells, want %d", y, len(cells), gs.Width)
		}
		for x, r := range cells {
			grid.Explored[y][x] = r == '1'
		}
	}
	grid.Stairs = gs.Stairs
	return grid, nil
}

func restoreEntity(es *EntityState) (*entity.Entity, error) {
	id, err := uuid.Parse(es.ID)
	if err != nil {
		return nil, fmt.Errorf("bad id: %w", err)
	}
	glyphs := []rune(es.Glyph)
	if len(glyphs) != 1 {
		return nil, fmt.Errorf("bad glyph %q", es.Glyph)
	}
	color, err := gamedata.ParseHexColor(es.Color)
	if err != nil {
		return nil, fmt.Errorf("bad color: %w", err)
	}

	var e *entity.Entity
	switch entity.Kind(es.Kind) {
	case entity.KindActor:
		if es.Fighter == nil {
			return nil, fmt.Errorf("actor without fighter state")
		}
		e = entity.NewActor(glyphs[0], color, es.Name,
			entity.NewFighter(es.Fighter.MaxHP, es.Fighter.Defense, es.Fighter.Power),
			entity.Stats{},
			entity.AIModeHostile,
			es.Capacity,
		)
		// Clear the placeholder AI before setting hit points so a stored
		// corpse does not die a second time.
		e.AI = nil
		e.Fighter.SetHP(es.Fighter.HP)
		e.AI = es.AI
		if es.Stats != nil {
			*e.Stats = *es.Stats
		}
	case entity.KindConsumable:
		if es.Consumable == nil {
			return nil, fmt.Errorf("consumable without component state")
		}
		e = entity.NewConsumableItem(glyphs[0], color, es.Name, *es.Consumable)
	case entity.KindEquipment:
		if es.Equippable == nil {
			return nil, fmt.Errorf("equipment without component state")
		}
		e = entity.NewEquipmentItem(glyphs[0], color, es.Name, es.Equippable.Equippable)
		e.Equippable.SetRemaining(es.Equippable.Remaining)
	default:
		return nil, fmt.Errorf("unknown entity kind %d", es.Kind)
	}

	e.ID = id
	e.BlocksMovement = es.Blocks
	e.Tier = entity.RenderTier(es.Tier)
	e.X, e.Y = es.X, es.Y
	return e, nil
}

// Save writes the snapshot to path as indented JSON.
func Save(path string, s *Snapshot) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// LoadFile reads a snapshot back from path.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("unsupported save version %d", snap.Version)
	}
	return &snap, nil
}
