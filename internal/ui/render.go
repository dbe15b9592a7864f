package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/game"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

const (
	barWidth      = 20
	logX          = 21
	logWidth      = 40
	logHeight     = 5
	inventoryKeys = "abcdefghijklmnopqrstuvwxyz"
)

// Renderer draws the run state to the screen. The layout is a fixed
// map viewport with a status strip and message window below it.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the full frame for the current engine state.
func (r *Renderer) Render(e *game.Engine) {
	r.screen.Clear()

	level := e.Level()
	r.renderMap(level)
	r.renderEntities(level)
	r.renderStatus(e)
	r.renderMessages(e.Log())
}

// Show flushes the composed frame. Overlays are drawn between Render
// and Show.
func (r *Renderer) Show() {
	r.screen.Show()
}

// renderMap draws every tile in its visibility-dependent appearance:
// lit when visible, dim when only explored, shrouded when never seen.
func (r *Renderer) renderMap(level *entity.Level) {
	grid := level.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			graphic := world.Shroud
			switch {
			case grid.Visible[y][x]:
				graphic = grid.At(x, y).Light
			case grid.Explored[y][x]:
				graphic = grid.At(x, y).Dark
			}
			style := tcell.StyleDefault.Foreground(graphic.Fg).Background(graphic.Bg)
			r.screen.SetContent(x, y, graphic.Ch, style)
		}
	}
}

// renderEntities draws visible entities in tier order so actors paint
// over items over corpses.
func (r *Renderer) renderEntities(level *entity.Level) {
	grid := level.Grid
	for _, e := range level.Entities() {
		if !grid.IsVisible(e.X, e.Y) {
			continue
		}
		bg := grid.At(e.X, e.Y).Light.Bg
		style := tcell.StyleDefault.Foreground(e.Color).Background(bg)
		r.screen.SetContent(e.X, e.Y, e.Glyph, style)
	}
}

func (r *Renderer) renderStatus(e *game.Engine) {
	base := e.Level().Grid.Height
	player := e.Player()

	r.renderBar(0, base+1, player.Fighter.HP(), player.Fighter.MaxHP)
	r.screen.DrawText(0, base+3, fmt.Sprintf("Dungeon floor: %d", e.Floor()),
		tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.DrawText(0, base+4,
		fmt.Sprintf("Level: %d  XP: %d/%d", player.Stats.CurrentLevel,
			player.Stats.CurrentXP, player.Stats.ExperienceToNextLevel()),
		tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) renderBar(x, y, current, maximum int) {
	filled := 0
	if maximum > 0 {
		filled = barWidth * current / maximum
	}
	label := fmt.Sprintf(" HP: %d/%d", current, maximum)
	for i := 0; i < barWidth; i++ {
		bg := barEmptyColor
		if i < filled {
			bg = barFilledColor
		}
		ch := ' '
		if i < len(label) {
			ch = rune(label[i])
		}
		r.screen.SetContent(x+i, y, ch, tcell.StyleDefault.Foreground(barTextColor).Background(bg))
	}
}

// renderMessages draws the most recent narration, newest at the bottom,
// coalescing consecutive repeats into "text (xN)".
func (r *Renderer) renderMessages(log *message.Log) {
	base := log.Messages()
	type stacked struct {
		text     string
		category message.Category
		count    int
	}
	var stacks []stacked
	for _, m := range base {
		if n := len(stacks); n > 0 && stacks[n-1].text == m.Text && stacks[n-1].category == m.Category {
			stacks[n-1].count++
			continue
		}
		stacks = append(stacks, stacked{text: m.Text, category: m.Category, count: 1})
	}

	y := r.logTop() + logHeight - 1
	for i := len(stacks) - 1; i >= 0 && y >= r.logTop(); i-- {
		s := stacks[i]
		text := s.text
		if s.count > 1 {
			text = fmt.Sprintf("%s (x%d)", s.text, s.count)
		}
		lines := wrap(text, logWidth)
		style := tcell.StyleDefault.Foreground(categoryColor(s.category))
		for j := len(lines) - 1; j >= 0 && y >= r.logTop(); j-- {
			r.screen.DrawText(logX, y, lines[j], style)
			y--
		}
	}
}

func (r *Renderer) logTop() int {
	_, h := r.screen.Size()
	if h > logHeight {
		return h - logHeight
	}
	return 0
}

// wrap splits text into lines no wider than width, breaking on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}

// drawFrame draws a bordered window with a title, clearing its interior.
func (r *Renderer) drawFrame(x, y, w, h int, title string) {
	style := tcell.StyleDefault.Foreground(menuFgColor).Background(menuBgColor)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			ch := ' '
			switch {
			case dy == 0 && dx == 0:
				ch = tcell.RuneULCorner
			case dy == 0 && dx == w-1:
				ch = tcell.RuneURCorner
			case dy == h-1 && dx == 0:
				ch = tcell.RuneLLCorner
			case dy == h-1 && dx == w-1:
				ch = tcell.RuneLRCorner
			case dy == 0 || dy == h-1:
				ch = tcell.RuneHLine
			case dx == 0 || dx == w-1:
				ch = tcell.RuneVLine
			}
			r.screen.SetContent(x+dx, y+dy, ch, style)
		}
	}
	if title != "" {
		r.screen.DrawText(x+2, y, " "+title+" ", style.Reverse(true))
	}
}

// RenderInventoryMenu draws the item selection window. Equipped items
// are marked after their name.
func (r *Renderer) RenderInventoryMenu(title string, player *entity.Entity) {
	items := player.Inventory.Items
	height := len(items) + 2
	if height < 3 {
		height = 3
	}
	x := player.X + 2
	if player.X > 40 {
		x = 1
	}
	r.drawFrame(x, 1, 42, height, title)

	style := tcell.StyleDefault.Foreground(menuFgColor).Background(menuBgColor)
	if len(items) == 0 {
		r.screen.DrawText(x+1, 2, "(Empty)", style)
		return
	}
	for i, item := range items {
		if i >= len(inventoryKeys) {
			break
		}
		name := item.Name
		if player.Equipment != nil && player.Equipment.IsEquipped(item) {
			name += " (E)"
		}
		r.screen.DrawText(x+1, 2+i, fmt.Sprintf("(%c) %s", inventoryKeys[i], name), style)
	}
}

// RenderLevelUpMenu draws the attribute choice window.
func (r *Renderer) RenderLevelUpMenu(player *entity.Entity) {
	x := 40
	if player.X > 40 {
		x = 1
	}
	r.drawFrame(x, 1, 37, 8, "Level Up")

	style := tcell.StyleDefault.Foreground(menuFgColor).Background(menuBgColor)
	r.screen.DrawText(x+1, 2, "Congratulations! You level up!", style)
	r.screen.DrawText(x+1, 3, "Select an attribute to increase.", style)
	r.screen.DrawText(x+1, 5, fmt.Sprintf("(a) Constitution (+20 HP, from %d)", player.Fighter.MaxHP), style)
	r.screen.DrawText(x+1, 6, fmt.Sprintf("(b) Strength (+1 attack, from %d)", player.Fighter.BasePower), style)
	r.screen.DrawText(x+1, 7, fmt.Sprintf("(c) Agility (+1 defense, from %d)", player.Fighter.BaseDefense), style)
}

// RenderTarget highlights the targeting cursor, plus the blast area for
// radius targeting.
func (r *Renderer) RenderTarget(level *entity.Level, cursor world.Point, radius int) {
	if radius > 0 {
		r.drawFrame(cursor.X-radius-1, cursor.Y-radius-1, radius*2+3, radius*2+3, "")
	}
	grid := level.Grid
	if !grid.InBounds(cursor.X, cursor.Y) {
		return
	}
	ch, graphic := grid.At(cursor.X, cursor.Y).Light.Ch, grid.At(cursor.X, cursor.Y).Light
	style := tcell.StyleDefault.Foreground(graphic.Fg).Background(graphic.Bg).Reverse(true)
	r.screen.SetContent(cursor.X, cursor.Y, ch, style)
}
