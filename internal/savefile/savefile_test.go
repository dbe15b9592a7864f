package savefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// buildRun assembles a small in-progress run: a carved grid with partial
// exploration, a player carrying an equipped dagger and a potion, a
// half-dead orc, a confused orc, and a corpse.
func buildRun(t *testing.T) (*entity.Level, *entity.Entity, *message.Log) {
	t.Helper()

	grid := world.NewGrid(10, 8)
	for y := 1; y < 7; y++ {
		for x := 1; x < 9; x++ {
			grid.SetTile(x, y, world.Floor)
		}
	}
	grid.SetTile(8, 6, world.DownStairs)
	grid.Stairs = world.Point{X: 8, Y: 6}
	for x := 1; x < 5; x++ {
		grid.Explored[1][x] = true
	}
	level := entity.NewLevel(grid)

	player := entity.NewActor('@', tcell.ColorWhite, "Player",
		entity.NewFighter(30, 1, 2), entity.NewStats(0), entity.AIModePlayer, 26)
	player.Fighter.TakeDamage(12)
	player.Stats.CurrentXP = 140
	player.PlaceOn(level, 2, 2)

	dagger := entity.NewEquipmentItem('/', tcell.ColorBlue, "Dagger", entity.Equippable{
		Slot:          entity.SlotWeapon,
		PowerBonus:    2,
		Special:       entity.SpecialAreaDamage,
		SpecialDamage: 1,
		SpecialRadius: 3,
		Cooldown:      5,
	})
	dagger.Equippable.SetRemaining(3)
	if err := player.Inventory.Add(dagger); err != nil {
		t.Fatalf("Add(dagger) error = %v", err)
	}
	player.Equipment.Equip(dagger)

	potion := entity.NewConsumableItem('!', tcell.ColorPurple, "Health Potion",
		entity.Consumable{Kind: entity.ConsumableHealing, Amount: 4})
	if err := player.Inventory.Add(potion); err != nil {
		t.Fatalf("Add(potion) error = %v", err)
	}

	orc := entity.NewActor('o', tcell.ColorGreen, "Orc",
		entity.NewFighter(10, 0, 3), entity.NewStats(35), entity.AIModeHostile, 0)
	orc.Fighter.TakeDamage(4)
	orc.AI.Path = []world.Point{{X: 4, Y: 3}, {X: 3, Y: 3}}
	orc.PlaceOn(level, 5, 3)

	confused := entity.NewActor('T', tcell.ColorGreen, "Troll",
		entity.NewFighter(16, 1, 8), entity.NewStats(100), entity.AIModeHostile, 0)
	confused.Confuse(6)
	confused.PlaceOn(level, 6, 5)

	corpse := entity.NewActor('o', tcell.ColorGreen, "Orc",
		entity.NewFighter(10, 0, 3), entity.NewStats(35), entity.AIModeHostile, 0)
	corpse.PlaceOn(level, 3, 5)
	corpse.Fighter.TakeDamage(10)

	scroll := entity.NewConsumableItem('~', tcell.ColorYellow, "Lightning Scroll",
		entity.Consumable{Kind: entity.ConsumableLightning, Damage: 20, MaxRange: 5})
	scroll.PlaceOn(level, 4, 4)

	log := message.NewLog()
	log.Add("Hello and welcome, adventurer, to yet another dungeon!", message.CategoryWelcome)
	log.Add("The Orc attacks Player for 3 hit points.", message.CategoryEnemyAttack)
	return level, player, log
}

func findByName(t *testing.T, level *entity.Level, name string) *entity.Entity {
	t.Helper()
	var found *entity.Entity
	for _, e := range level.Entities() {
		if e.Name == name {
			if found != nil {
				t.Fatalf("more than one entity named %q", name)
			}
			found = e
		}
	}
	if found == nil {
		t.Fatalf("no entity named %q on the level", name)
	}
	return found
}

func TestRoundTrip(t *testing.T) {
	level, player, log := buildRun(t)
	snap := Capture(level, player, log, 42, 3, 117)

	path := filepath.Join(t.TempDir(), "run.sav")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Seed != 42 || loaded.Floor != 3 || loaded.Turn != 117 {
		t.Errorf("loaded header = (%d, %d, %d), want (42, 3, 117)", loaded.Seed, loaded.Floor, loaded.Turn)
	}

	level2, player2, log2, err := loaded.Restore()
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	// Grid round trip.
	grid := level2.Grid
	if grid.Width != 10 || grid.Height != 8 {
		t.Fatalf("grid = %dx%d, want 10x8", grid.Width, grid.Height)
	}
	if grid.At(0, 0) != world.Wall || grid.At(2, 2) != world.Floor || grid.At(8, 6) != world.DownStairs {
		t.Error("tile kinds did not survive the round trip")
	}
	if grid.Stairs != (world.Point{X: 8, Y: 6}) {
		t.Errorf("stairs = %v, want {8 6}", grid.Stairs)
	}
	if !grid.Explored[1][3] || grid.Explored[2][3] {
		t.Error("explored overlay did not survive the round trip")
	}
	if grid.IsVisible(2, 2) {
		t.Error("visibility should not be restored from the save")
	}

	// Player component round trip.
	if player2.ID != player.ID {
		t.Errorf("player id = %s, want %s", player2.ID, player.ID)
	}
	if player2.Fighter.HP() != 18 || player2.Fighter.MaxHP != 30 {
		t.Errorf("player hp = %d/%d, want 18/30", player2.Fighter.HP(), player2.Fighter.MaxHP)
	}
	if player2.Stats.CurrentXP != 140 || player2.Stats.CurrentLevel != 1 {
		t.Errorf("player stats = level %d xp %d, want level 1 xp 140", player2.Stats.CurrentLevel, player2.Stats.CurrentXP)
	}
	if player2.AI == nil || player2.AI.Mode != entity.AIModePlayer {
		t.Error("player should keep the player AI mode")
	}

	// Carried items and equipment slots.
	if len(player2.Inventory.Items) != 2 {
		t.Fatalf("player carries %d items, want 2", len(player2.Inventory.Items))
	}
	var dagger2 *entity.Entity
	for _, item := range player2.Inventory.Items {
		if item.Name == "Dagger" {
			dagger2 = item
		}
	}
	if dagger2 == nil {
		t.Fatal("restored player holds no dagger")
	}
	if !player2.Equipment.IsEquipped(dagger2) {
		t.Error("the dagger should still be equipped")
	}
	if player2.Equipment.Weapon != dagger2 {
		t.Error("the weapon slot should point at the carried dagger")
	}
	if got := dagger2.Equippable.Remaining(); got != 3 {
		t.Errorf("dagger cooldown remaining = %d, want 3", got)
	}
	if player2.Fighter.Power() != 4 {
		t.Errorf("player power with dagger = %d, want 4", player2.Fighter.Power())
	}

	// Actors and their AI chain.
	orc2 := findByName(t, level2, "Orc")
	if orc2.X != 5 || orc2.Y != 3 {
		t.Errorf("orc at (%d, %d), want (5, 3)", orc2.X, orc2.Y)
	}
	if orc2.Fighter.HP() != 6 {
		t.Errorf("orc hp = %d, want 6", orc2.Fighter.HP())
	}
	if orc2.AI == nil || len(orc2.AI.Path) != 2 || orc2.AI.Path[0] != (world.Point{X: 4, Y: 3}) {
		t.Error("the orc's chase path cache did not survive the round trip")
	}

	confused2 := findConfused(t, level2)
	if confused2.AI.TurnsRemaining != 6 {
		t.Errorf("confusion turns = %d, want 6", confused2.AI.TurnsRemaining)
	}
	if confused2.AI.Previous == nil || confused2.AI.Previous.Mode != entity.AIModeHostile {
		t.Error("the confused AI should keep its wrapped hostile state")
	}

	// The corpse must come back dead, not die again.
	corpse2 := findByName(t, level2, "remains of Orc")
	if corpse2.AI != nil || corpse2.Fighter.HP() != 0 {
		t.Error("the corpse should restore inert")
	}
	if corpse2.BlocksMovement || corpse2.Tier != entity.TierCorpse || corpse2.Glyph != '%' {
		t.Error("corpse presentation did not survive the round trip")
	}

	findByName(t, level2, "Lightning Scroll")

	// Message history.
	if log2.Len() != 2 {
		t.Fatalf("restored log holds %d messages, want 2", log2.Len())
	}
	if msgs := log2.Messages(); msgs[1].Category != message.CategoryEnemyAttack {
		t.Errorf("message category = %d, want enemy attack", msgs[1].Category)
	}
}

func findConfused(t *testing.T, level *entity.Level) *entity.Entity {
	t.Helper()
	for _, e := range level.Actors() {
		if e.AI != nil && e.AI.Mode == entity.AIModeConfused {
			return e
		}
	}
	t.Fatal("no confused actor on the restored level")
	return nil
}

func TestRestoreRejectsWrongVersion(t *testing.T) {
	level, player, log := buildRun(t)
	snap := Capture(level, player, log, 1, 1, 0)
	snap.Version = 99

	if _, _, _, err := snap.Restore(); err == nil {
		t.Error("Restore() with a wrong version should fail")
	}
}

func TestRestoreRejectsDanglingHolder(t *testing.T) {
	level, player, log := buildRun(t)
	snap := Capture(level, player, log, 1, 1, 0)

	for i := range snap.Entities {
		if snap.Entities[i].HeldBy != "" {
			snap.Entities[i].HeldBy = "00000000-0000-0000-0000-000000000000"
		}
	}
	if _, _, _, err := snap.Restore(); err == nil {
		t.Error("Restore() with a dangling holder reference should fail")
	}
}

func TestRestoreRejectsEquipRefNotHeld(t *testing.T) {
	level, player, log := buildRun(t)
	snap := Capture(level, player, log, 1, 1, 0)

	var scrollID string
	for i := range snap.Entities {
		if snap.Entities[i].Name == "Lightning Scroll" {
			scrollID = snap.Entities[i].ID
		}
	}
	for i := range snap.Entities {
		if snap.Entities[i].ID == snap.PlayerID {
			snap.Entities[i].WeaponID = scrollID
		}
	}
	if _, _, _, err := snap.Restore(); err == nil {
		t.Error("Restore() equipping an item outside the inventory should fail")
	}
}

func TestRestoreRejectsMissingPlayer(t *testing.T) {
	level, player, log := buildRun(t)
	snap := Capture(level, player, log, 1, 1, 0)
	snap.PlayerID = "00000000-0000-0000-0000-000000000000"

	if _, _, _, err := snap.Restore(); err == nil {
		t.Error("Restore() without the player entity should fail")
	}
}

func TestRestoreRejectsBadGridDimensions(t *testing.T) {
	cases := []struct {
		name string
		grid GridState
	}{
		{"negative width", GridState{Width: -1, Height: 2, Rows: []string{"", ""}, Explored: []string{"", ""}}},
		{"zero height", GridState{Width: 5, Height: 0}},
		{"negative height", GridState{Width: 5, Height: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := &Snapshot{Version: Version, Grid: tc.grid}
			if _, _, _, err := snap.Restore(); err == nil {
				t.Error("Restore() with malformed grid dimensions should fail")
			}
		})
	}
}

func TestLoadFileRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.sav")); err == nil {
		t.Error("LoadFile() on a missing file should fail")
	}

	path := filepath.Join(dir, "bad.sav")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() on malformed JSON should fail")
	}
}
