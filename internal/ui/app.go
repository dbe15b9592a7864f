package ui

import (
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/action"
	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/game"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

type mode int

const (
	modePlay mode = iota
	modeUseInventory
	modeDropInventory
	modeTarget
	modeLevelUp
	modeGameOver
)

// Movement deltas by key rune, vi-style with diagonals.
var moveRunes = map[rune][2]int{
	'h': {-1, 0}, 'l': {1, 0}, 'k': {0, -1}, 'j': {0, 1},
	'y': {-1, -1}, 'u': {1, -1}, 'b': {-1, 1}, 'n': {1, 1},
}

var moveKeys = map[tcell.Key][2]int{
	tcell.KeyLeft: {-1, 0}, tcell.KeyRight: {1, 0},
	tcell.KeyUp: {0, -1}, tcell.KeyDown: {0, 1},
}

// App owns the terminal loop: it renders the engine, translates key
// events into actions, and tracks the input mode (menus and targeting).
type App struct {
	screen   *Screen
	renderer *Renderer
	engine   *game.Engine
	savePath string

	mode          mode
	cursor        world.Point
	pendingItem   *entity.Entity
	pendingWeapon *entity.Entity
}

// NewApp initializes the terminal and wires it to the engine. An empty
// savePath disables saving on exit.
func NewApp(engine *game.Engine, savePath string) (*App, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		engine:   engine,
		savePath: savePath,
		mode:     modePlay,
	}, nil
}

// Run executes the main loop until the player quits or the run ends.
func (a *App) Run() error {
	defer a.screen.Close()
	a.syncMode()

	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			done, err := a.handleKey(ev)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

func (a *App) draw() {
	a.renderer.Render(a.engine)
	switch a.mode {
	case modeUseInventory:
		a.renderer.RenderInventoryMenu("Select an item to use", a.engine.Player())
	case modeDropInventory:
		a.renderer.RenderInventoryMenu("Select an item to drop", a.engine.Player())
	case modeTarget:
		a.renderer.RenderTarget(a.engine.Level(), a.cursor, a.targetRadius())
	case modeLevelUp:
		a.renderer.RenderLevelUpMenu(a.engine.Player())
	}
	a.renderer.Show()
}

func (a *App) targetRadius() int {
	if a.pendingItem != nil && a.pendingItem.Consumable != nil {
		return a.pendingItem.Consumable.TargetRadius()
	}
	if a.pendingWeapon != nil && a.pendingWeapon.Equippable != nil {
		return a.pendingWeapon.Equippable.SpecialRadius
	}
	return 0
}

func (a *App) handleKey(ev *tcell.EventKey) (bool, error) {
	switch a.mode {
	case modePlay:
		return a.handlePlayKey(ev)
	case modeUseInventory, modeDropInventory:
		return a.handleInventoryKey(ev)
	case modeTarget:
		return a.handleTargetKey(ev)
	case modeLevelUp:
		a.handleLevelUpKey(ev)
	case modeGameOver:
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			return true, nil
		}
	}
	return false, nil
}

func (a *App) handlePlayKey(ev *tcell.EventKey) (bool, error) {
	player := a.engine.Player()

	if d, ok := moveKeys[ev.Key()]; ok {
		return a.submit(&action.Bump{Actor: player, DX: d[0], DY: d[1]})
	}
	if ev.Key() == tcell.KeyEscape {
		return a.submit(&action.Escape{})
	}

	switch ev.Rune() {
	case 'g':
		return a.submit(&action.Pickup{Actor: player})
	case 'i':
		a.mode = modeUseInventory
	case 'd':
		a.mode = modeDropInventory
	case '>':
		return a.submit(&action.Descend{Actor: player})
	case '.', 's':
		return a.submit(&action.Wait{Actor: player})
	case 'x', 'z':
		return a.invokeWeaponSpecial(player)
	default:
		if d, ok := moveRunes[ev.Rune()]; ok {
			return a.submit(&action.Bump{Actor: player, DX: d[0], DY: d[1]})
		}
	}
	return false, nil
}

// invokeWeaponSpecial triggers the equipped weapon's ability, entering
// targeting mode first when the ability needs a tile.
func (a *App) invokeWeaponSpecial(player *entity.Entity) (bool, error) {
	weapon := player.Equipment.Weapon
	if weapon != nil && weapon.Equippable != nil &&
		weapon.Equippable.Special == entity.SpecialAreaDamage {
		a.pendingWeapon = weapon
		a.cursor = world.Point{X: player.X, Y: player.Y}
		a.mode = modeTarget
		return false, nil
	}
	return a.submit(&action.WeaponSpecial{Actor: player, Item: weapon})
}

func (a *App) handleInventoryKey(ev *tcell.EventKey) (bool, error) {
	if ev.Key() == tcell.KeyEscape {
		a.mode = modePlay
		return false, nil
	}
	player := a.engine.Player()
	idx := int(ev.Rune() - 'a')
	if idx < 0 || idx >= len(player.Inventory.Items) {
		return false, nil
	}
	item := player.Inventory.Items[idx]
	dropping := a.mode == modeDropInventory
	a.mode = modePlay

	if dropping {
		return a.submit(&action.Drop{Actor: player, Item: item})
	}
	switch {
	case item.Kind == entity.KindEquipment:
		return a.submit(&action.EquipToggle{Actor: player, Item: item})
	case item.Consumable != nil && item.Consumable.NeedsTarget():
		a.pendingItem = item
		a.cursor = world.Point{X: player.X, Y: player.Y}
		a.mode = modeTarget
	default:
		return a.submit(&action.UseItem{Actor: player, Item: item})
	}
	return false, nil
}

func (a *App) handleTargetKey(ev *tcell.EventKey) (bool, error) {
	grid := a.engine.Level().Grid

	if d, ok := moveKeys[ev.Key()]; ok {
		a.moveCursor(grid, d[0], d[1])
		return false, nil
	}
	if d, ok := moveRunes[ev.Rune()]; ok {
		a.moveCursor(grid, d[0], d[1])
		return false, nil
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.clearTarget()
		a.mode = modePlay
	case tcell.KeyEnter:
		return a.confirmTarget()
	}
	return false, nil
}

func (a *App) moveCursor(grid *world.Grid, dx, dy int) {
	next := world.Point{X: a.cursor.X + dx, Y: a.cursor.Y + dy}
	if grid.InBounds(next.X, next.Y) {
		a.cursor = next
	}
}

func (a *App) confirmTarget() (bool, error) {
	player := a.engine.Player()
	target := a.cursor
	item, weapon := a.pendingItem, a.pendingWeapon
	a.clearTarget()
	a.mode = modePlay

	if weapon != nil {
		return a.submit(&action.WeaponSpecial{Actor: player, Item: weapon, Target: &target})
	}
	return a.submit(&action.UseItem{Actor: player, Item: item, Target: &target})
}

func (a *App) clearTarget() {
	a.pendingItem = nil
	a.pendingWeapon = nil
}

func (a *App) handleLevelUpKey(ev *tcell.EventKey) {
	switch ev.Rune() {
	case 'a':
		a.engine.ChooseLevelUp(game.LevelUpVitality)
	case 'b':
		a.engine.ChooseLevelUp(game.LevelUpStrength)
	case 'c':
		a.engine.ChooseLevelUp(game.LevelUpAgility)
	default:
		return
	}
	a.syncMode()
}

// submit runs one engine turn and follows the resulting state. The
// returned bool reports that the app should exit.
func (a *App) submit(act action.Action) (bool, error) {
	if err := a.engine.HandleAction(act); err != nil {
		return false, err
	}
	a.syncMode()

	switch a.engine.State() {
	case game.StateQuit:
		if a.savePath != "" && a.engine.Player().IsAlive() {
			if err := a.engine.SaveTo(a.savePath); err != nil {
				return true, err
			}
		}
		return true, nil
	case game.StateDefeat:
		// A finished run is not resumable.
		if a.savePath != "" {
			os.Remove(a.savePath)
		}
	}
	return false, nil
}

// syncMode follows engine state transitions that change the input mode.
func (a *App) syncMode() {
	switch a.engine.State() {
	case game.StateLevelUp:
		a.mode = modeLevelUp
	case game.StateDefeat:
		a.mode = modeGameOver
	default:
		if a.mode == modeLevelUp || a.mode == modeGameOver {
			a.mode = modePlay
		}
	}
}
