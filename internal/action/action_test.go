package action

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// testContext builds an all-floor level with a player at (5, 5).
func testContext(t *testing.T) *Context {
	t.Helper()
	grid := world.NewGrid(12, 12)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			grid.SetTile(x, y, world.Floor)
		}
	}
	level := entity.NewLevel(grid)
	player := entity.NewActor('@', tcell.ColorWhite, "Player",
		entity.NewFighter(10, 0, 3), entity.NewStats(0), entity.AIModePlayer, 5)
	player.PlaceOn(level, 5, 5)

	return &Context{
		Level:  level,
		Player: player,
		Log:    message.NewLog(),
		Rand:   rand.New(rand.NewSource(1)),
	}
}

func newOrc(ctx *Context, x, y int) *entity.Entity {
	orc := entity.NewActor('o', tcell.ColorGreen, "Orc",
		entity.NewFighter(10, 0, 3), entity.NewStats(35), entity.AIModeHostile, 0)
	orc.PlaceOn(ctx.Level, x, y)
	return orc
}

func newPotion() *entity.Entity {
	return entity.NewConsumableItem('!', tcell.ColorPurple, "Health Potion",
		entity.Consumable{Kind: entity.ConsumableHealing, Amount: 4})
}

func wantImpossible(t *testing.T, err error, reason string) {
	t.Helper()
	got, ok := IsImpossible(err)
	if !ok {
		t.Fatalf("error = %v, want Impossible", err)
	}
	if got != reason {
		t.Errorf("Impossible reason = %q, want %q", got, reason)
	}
}

func TestMoveValidation(t *testing.T) {
	ctx := testContext(t)
	ctx.Level.Grid.SetTile(5, 4, world.Wall)
	newOrc(ctx, 6, 5)

	tests := []struct {
		name   string
		dx, dy int
	}{
		{"into a wall", 0, -1},
		{"into a blocker", 1, 0},
		{"out of bounds", -6, 0},
	}
	for _, tt := range tests {
		err := (&Move{Actor: ctx.Player, DX: tt.dx, DY: tt.dy}).Perform(ctx)
		wantImpossible(t, err, "That way is blocked.")
		if ctx.Player.X != 5 || ctx.Player.Y != 5 {
			t.Errorf("%s: player moved to (%d, %d)", tt.name, ctx.Player.X, ctx.Player.Y)
		}
	}

	if err := (&Move{Actor: ctx.Player, DX: 0, DY: 1}).Perform(ctx); err != nil {
		t.Fatalf("open move failed: %v", err)
	}
	if ctx.Player.X != 5 || ctx.Player.Y != 6 {
		t.Errorf("player at (%d, %d), want (5, 6)", ctx.Player.X, ctx.Player.Y)
	}
}

func TestMeleeDamage(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 6, 5)

	attack := &Melee{Actor: ctx.Player, DX: 1, DY: 0}
	if err := attack.Perform(ctx); err != nil {
		t.Fatalf("first attack failed: %v", err)
	}
	if orc.Fighter.HP() != 7 {
		t.Errorf("orc HP after one hit = %d, want 7", orc.Fighter.HP())
	}
	if err := attack.Perform(ctx); err != nil {
		t.Fatalf("second attack failed: %v", err)
	}
	if orc.Fighter.HP() != 4 {
		t.Errorf("orc HP after two hits = %d, want 4", orc.Fighter.HP())
	}
}

func TestMeleeZeroDamageStillNarrates(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 6, 5)
	orc.Fighter.BaseDefense = 10

	before := ctx.Log.Len()
	if err := (&Melee{Actor: ctx.Player, DX: 1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if orc.Fighter.HP() != 10 {
		t.Errorf("orc HP = %d, want 10", orc.Fighter.HP())
	}
	msgs := ctx.Log.Messages()
	if ctx.Log.Len() != before+1 {
		t.Fatalf("log grew by %d messages, want 1", ctx.Log.Len()-before)
	}
	if got := msgs[len(msgs)-1].Text; got != "Player attacks Orc but does no damage." {
		t.Errorf("message = %q", got)
	}
}

func TestMeleeNothingThere(t *testing.T) {
	ctx := testContext(t)
	err := (&Melee{Actor: ctx.Player, DX: 1, DY: 0}).Perform(ctx)
	wantImpossible(t, err, "Nothing to attack.")
}

func TestMeleeKillAwardsExperience(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 6, 5)
	orc.Fighter.SetHP(1)

	if err := (&Melee{Actor: ctx.Player, DX: 1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("attack failed: %v", err)
	}
	if orc.IsAlive() {
		t.Fatal("orc should be dead")
	}
	if ctx.Player.Stats.CurrentXP != 35 {
		t.Errorf("player XP = %d, want 35", ctx.Player.Stats.CurrentXP)
	}
}

func TestBumpDispatch(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 6, 5)

	// Living actor in the way: bump attacks.
	if err := (&Bump{Actor: ctx.Player, DX: 1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("bump attack failed: %v", err)
	}
	if orc.Fighter.HP() != 7 {
		t.Errorf("orc HP = %d, want 7", orc.Fighter.HP())
	}
	if ctx.Player.X != 5 {
		t.Error("bump into an actor should not move the player")
	}

	// Kill the orc: bumping into the corpse tile moves instead.
	orc.Fighter.TakeDamage(1000)
	if err := (&Bump{Actor: ctx.Player, DX: 1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("bump move failed: %v", err)
	}
	if ctx.Player.X != 6 {
		t.Errorf("player X = %d, want 6", ctx.Player.X)
	}
}

func TestThornsStrikeBack(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 6, 5)

	mail := entity.NewEquipmentItem('[', tcell.ColorSilver, "Chain Mail", entity.Equippable{
		Slot:          entity.SlotArmor,
		DefenseBonus:  3,
		Special:       entity.SpecialThorns,
		SpecialDamage: 1,
		Cooldown:      1,
	})
	ctx.Player.Inventory.Add(mail)
	ctx.Player.Equipment.Equip(mail)

	if err := (&Melee{Actor: orc, DX: -1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("orc attack failed: %v", err)
	}
	// 1 thorns damage minus 0 orc defense.
	if orc.Fighter.HP() != 9 {
		t.Errorf("orc HP after thorns = %d, want 9", orc.Fighter.HP())
	}
	if mail.Equippable.Remaining() != 1 {
		t.Errorf("thorns cooldown = %d, want 1", mail.Equippable.Remaining())
	}

	// Recharging thorns fizzle silently.
	before := ctx.Log.Len()
	if err := (&Melee{Actor: orc, DX: -1, DY: 0}).Perform(ctx); err != nil {
		t.Fatalf("second orc attack failed: %v", err)
	}
	if orc.Fighter.HP() != 9 {
		t.Errorf("orc HP = %d, want 9 (no second thorns hit)", orc.Fighter.HP())
	}
	if ctx.Log.Len() != before+1 {
		t.Errorf("log grew by %d, want 1 (attack only)", ctx.Log.Len()-before)
	}
}

func TestPickup(t *testing.T) {
	ctx := testContext(t)

	err := (&Pickup{Actor: ctx.Player}).Perform(ctx)
	wantImpossible(t, err, "There is nothing here to pick up.")

	potion := newPotion()
	potion.PlaceOn(ctx.Level, 5, 5)
	if err := (&Pickup{Actor: ctx.Player}).Perform(ctx); err != nil {
		t.Fatalf("pickup failed: %v", err)
	}
	if !ctx.Player.Inventory.Contains(potion) {
		t.Error("picked-up potion should be in the inventory")
	}
	if ctx.Level.Contains(potion) {
		t.Error("picked-up potion should leave the level")
	}
}

func TestPickupFullInventory(t *testing.T) {
	ctx := testContext(t)
	ctx.Player.Inventory.Capacity = 0
	potion := newPotion()
	potion.PlaceOn(ctx.Level, 5, 5)

	err := (&Pickup{Actor: ctx.Player}).Perform(ctx)
	wantImpossible(t, err, "Your inventory is full.")
	if !ctx.Level.Contains(potion) {
		t.Error("rejected potion should stay on the ground")
	}
}

func TestDropUnequipsFirst(t *testing.T) {
	ctx := testContext(t)
	dagger := entity.NewEquipmentItem('/', tcell.ColorSilver, "Dagger",
		entity.Equippable{Slot: entity.SlotWeapon, PowerBonus: 2})
	ctx.Player.Inventory.Add(dagger)
	ctx.Player.Equipment.Equip(dagger)

	if err := (&Drop{Actor: ctx.Player, Item: dagger}).Perform(ctx); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if ctx.Player.Equipment.IsEquipped(dagger) {
		t.Error("dropped dagger should be unequipped")
	}
	if got := ctx.Level.ItemAt(5, 5); got != dagger {
		t.Error("dropped dagger should land on the player's tile")
	}
}

func TestDropNotHeldIsStructural(t *testing.T) {
	ctx := testContext(t)
	potion := newPotion()

	err := (&Drop{Actor: ctx.Player, Item: potion}).Perform(ctx)
	if err == nil {
		t.Fatal("dropping an unheld item should fail")
	}
	if _, ok := IsImpossible(err); ok {
		t.Error("dropping an unheld item is a bug, not a narratable failure")
	}
}

func TestEquipToggle(t *testing.T) {
	ctx := testContext(t)
	dagger := entity.NewEquipmentItem('/', tcell.ColorSilver, "Dagger",
		entity.Equippable{Slot: entity.SlotWeapon, PowerBonus: 2})
	sword := entity.NewEquipmentItem('/', tcell.ColorSilver, "Sword",
		entity.Equippable{Slot: entity.SlotWeapon, PowerBonus: 4})
	ctx.Player.Inventory.Add(dagger)
	ctx.Player.Inventory.Add(sword)

	if err := (&EquipToggle{Actor: ctx.Player, Item: dagger}).Perform(ctx); err != nil {
		t.Fatalf("equip dagger failed: %v", err)
	}
	if err := (&EquipToggle{Actor: ctx.Player, Item: sword}).Perform(ctx); err != nil {
		t.Fatalf("equip sword failed: %v", err)
	}
	if ctx.Player.Equipment.Weapon != sword {
		t.Error("sword should occupy the weapon slot")
	}

	if err := (&EquipToggle{Actor: ctx.Player, Item: sword}).Perform(ctx); err != nil {
		t.Fatalf("unequip sword failed: %v", err)
	}
	if ctx.Player.Equipment.Weapon != nil {
		t.Error("toggling an equipped item should remove it")
	}
	if !ctx.Player.Inventory.Contains(sword) {
		t.Error("unequipped sword should stay in the inventory")
	}
}

func TestEquipToggleNotEquippable(t *testing.T) {
	ctx := testContext(t)
	potion := newPotion()
	ctx.Player.Inventory.Add(potion)

	err := (&EquipToggle{Actor: ctx.Player, Item: potion}).Perform(ctx)
	wantImpossible(t, err, "You cannot equip the Health Potion.")
}

func TestHealingPotion(t *testing.T) {
	ctx := testContext(t)
	potion := newPotion()
	ctx.Player.Inventory.Add(potion)

	// Full health: the potion is not consumed.
	err := (&UseItem{Actor: ctx.Player, Item: potion}).Perform(ctx)
	wantImpossible(t, err, "Your health is already full.")
	if !ctx.Player.Inventory.Contains(potion) {
		t.Fatal("rejected potion must not be consumed")
	}

	ctx.Player.Fighter.TakeDamage(6)
	if err := (&UseItem{Actor: ctx.Player, Item: potion}).Perform(ctx); err != nil {
		t.Fatalf("drink failed: %v", err)
	}
	if ctx.Player.Fighter.HP() != 8 {
		t.Errorf("HP after potion = %d, want 8", ctx.Player.Fighter.HP())
	}
	if ctx.Player.Inventory.Contains(potion) {
		t.Error("spent potion should be destroyed")
	}
}

func TestLightningStrikesNearestVisible(t *testing.T) {
	ctx := testContext(t)
	near := newOrc(ctx, 7, 5)
	far := newOrc(ctx, 9, 5)
	markAllVisible(ctx.Level.Grid)

	scroll := entity.NewConsumableItem('~', tcell.ColorYellow, "Lightning Scroll",
		entity.Consumable{Kind: entity.ConsumableLightning, Damage: 20, MaxRange: 5})
	ctx.Player.Inventory.Add(scroll)

	if err := (&UseItem{Actor: ctx.Player, Item: scroll}).Perform(ctx); err != nil {
		t.Fatalf("lightning failed: %v", err)
	}
	if near.IsAlive() {
		t.Error("nearest orc should be struck down")
	}
	if !far.IsAlive() {
		t.Error("far orc should be untouched")
	}
}

func TestLightningNoTargetInRange(t *testing.T) {
	ctx := testContext(t)
	markAllVisible(ctx.Level.Grid)

	scroll := entity.NewConsumableItem('~', tcell.ColorYellow, "Lightning Scroll",
		entity.Consumable{Kind: entity.ConsumableLightning, Damage: 20, MaxRange: 5})
	ctx.Player.Inventory.Add(scroll)

	err := (&UseItem{Actor: ctx.Player, Item: scroll}).Perform(ctx)
	wantImpossible(t, err, "No enemy is close enough to strike.")
	if !ctx.Player.Inventory.Contains(scroll) {
		t.Error("unused scroll must not be consumed")
	}
}

func TestConfusionScroll(t *testing.T) {
	ctx := testContext(t)
	orc := newOrc(ctx, 7, 5)
	markAllVisible(ctx.Level.Grid)

	scroll := entity.NewConsumableItem('~', tcell.ColorPurple, "Confusion Scroll",
		entity.Consumable{Kind: entity.ConsumableConfusion, Turns: 10})
	ctx.Player.Inventory.Add(scroll)

	self := world.Point{X: 5, Y: 5}
	err := (&UseItem{Actor: ctx.Player, Item: scroll, Target: &self}).Perform(ctx)
	wantImpossible(t, err, "You cannot confuse yourself!")

	target := world.Point{X: 7, Y: 5}
	if err := (&UseItem{Actor: ctx.Player, Item: scroll, Target: &target}).Perform(ctx); err != nil {
		t.Fatalf("confusion failed: %v", err)
	}
	if orc.AI.Mode != entity.AIModeConfused {
		t.Errorf("orc AI mode = %d, want AIModeConfused", orc.AI.Mode)
	}
	if orc.AI.TurnsRemaining != 10 {
		t.Errorf("orc confusion turns = %d, want 10", orc.AI.TurnsRemaining)
	}
}

func TestFireballValidatesBeforeDamaging(t *testing.T) {
	ctx := testContext(t)
	markAllVisible(ctx.Level.Grid)

	scroll := entity.NewConsumableItem('~', tcell.ColorRed, "Fireball Scroll",
		entity.Consumable{Kind: entity.ConsumableFireball, Damage: 12, Radius: 3})
	ctx.Player.Inventory.Add(scroll)

	// No one in range, including the caster: side-effect-free failure.
	target := world.Point{X: 11, Y: 11}
	err := (&UseItem{Actor: ctx.Player, Item: scroll, Target: &target}).Perform(ctx)
	wantImpossible(t, err, "There are no targets in the radius.")
	if !ctx.Player.Inventory.Contains(scroll) {
		t.Fatal("failed fireball must not consume the scroll")
	}

	// The blast does not spare the caster.
	orc := newOrc(ctx, 7, 5)
	at := world.Point{X: 6, Y: 5}
	if err := (&UseItem{Actor: ctx.Player, Item: scroll, Target: &at}).Perform(ctx); err != nil {
		t.Fatalf("fireball failed: %v", err)
	}
	if orc.Fighter.HP() != 0 {
		t.Errorf("orc HP = %d, want 0", orc.Fighter.HP())
	}
	if ctx.Player.Fighter.HP() != 0 {
		t.Errorf("player HP = %d, want 0 (caught in own blast)", ctx.Player.Fighter.HP())
	}
}

func TestWeaponSpecialCooldownGate(t *testing.T) {
	ctx := testContext(t)
	sword := entity.NewEquipmentItem('/', tcell.ColorSilver, "Sword", entity.Equippable{
		Slot:        entity.SlotWeapon,
		PowerBonus:  4,
		Special:     entity.SpecialSelfHeal,
		SpecialHeal: 5,
		Cooldown:    2,
	})
	ctx.Player.Inventory.Add(sword)

	// Must be equipped first.
	err := (&WeaponSpecial{Actor: ctx.Player, Item: sword}).Perform(ctx)
	wantImpossible(t, err, "You must equip the Sword first.")

	ctx.Player.Equipment.Equip(sword)
	ctx.Player.Fighter.TakeDamage(6)

	if err := (&WeaponSpecial{Actor: ctx.Player, Item: sword}).Perform(ctx); err != nil {
		t.Fatalf("self heal failed: %v", err)
	}
	if ctx.Player.Fighter.HP() != 9 {
		t.Errorf("HP after heal = %d, want 9", ctx.Player.Fighter.HP())
	}
	if sword.Equippable.Remaining() != 2 {
		t.Errorf("cooldown = %d, want 2", sword.Equippable.Remaining())
	}

	err = (&WeaponSpecial{Actor: ctx.Player, Item: sword}).Perform(ctx)
	wantImpossible(t, err, "2 turns left until the ability recharges.")
}

func TestDescendRequiresStairs(t *testing.T) {
	ctx := testContext(t)
	ctx.Level.Grid.SetTile(6, 5, world.DownStairs)
	ctx.Level.Grid.Stairs = world.Point{X: 6, Y: 5}
	descended := false
	ctx.Descend = func() error {
		descended = true
		return nil
	}

	err := (&Descend{Actor: ctx.Player}).Perform(ctx)
	wantImpossible(t, err, "There are no stairs here.")
	if descended {
		t.Fatal("descend callback must not fire off the stairs")
	}

	ctx.Player.X, ctx.Player.Y = 6, 5
	if err := (&Descend{Actor: ctx.Player}).Perform(ctx); err != nil {
		t.Fatalf("descend failed: %v", err)
	}
	if !descended {
		t.Error("descend callback should fire on the stairs")
	}
}

func markAllVisible(grid *world.Grid) {
	for y := range grid.Visible {
		for x := range grid.Visible[y] {
			grid.Visible[y][x] = true
		}
	}
}
