package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/message"
)

// Narration colors keyed by message category.
var categoryColors = map[message.Category]tcell.Color{
	message.CategoryInfo:            tcell.ColorWhite,
	message.CategoryWelcome:         tcell.NewRGBColor(0x20, 0xA0, 0xFF),
	message.CategoryPlayerAttack:    tcell.NewRGBColor(0xE0, 0xE0, 0xE0),
	message.CategoryEnemyAttack:     tcell.NewRGBColor(0xFF, 0xC0, 0xC0),
	message.CategoryHealthRecovered: tcell.NewRGBColor(0x00, 0xFF, 0x00),
	message.CategoryNeedsTarget:     tcell.NewRGBColor(0x3F, 0xFF, 0xFF),
	message.CategoryStatusEffect:    tcell.NewRGBColor(0x3F, 0xFF, 0x3F),
	message.CategoryImpossible:      tcell.NewRGBColor(0x80, 0x80, 0x80),
	message.CategoryPlayerDeath:     tcell.NewRGBColor(0xFF, 0x30, 0x30),
	message.CategoryEnemyDeath:      tcell.NewRGBColor(0xFF, 0xA0, 0x30),
	message.CategoryDescend:         tcell.NewRGBColor(0x9F, 0x3F, 0xFF),
	message.CategoryLevelUp:         tcell.NewRGBColor(0x3F, 0xFF, 0x3F),
}

var (
	barTextColor   = tcell.ColorWhite
	barFilledColor = tcell.NewRGBColor(0x00, 0x60, 0x00)
	barEmptyColor  = tcell.NewRGBColor(0x40, 0x10, 0x10)
	menuFgColor    = tcell.ColorWhite
	menuBgColor    = tcell.ColorBlack
	targetColor    = tcell.ColorWhite
)

func categoryColor(c message.Category) tcell.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return tcell.ColorWhite
}
