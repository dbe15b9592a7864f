package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/procgen"
)

// Starting equipment ids. Both items exist in the embedded item data;
// the registry validates them at load time.
var startingGear = []string{"dagger", "leather_armor"}

// NewPlayer creates the player actor with baseline stats and starting
// equipment already worn.
func NewPlayer(templates *procgen.Templates) *entity.Entity {
	player := entity.NewActor(
		'@', tcell.ColorWhite, "Player",
		entity.NewFighter(30, 1, 2),
		entity.NewStats(0),
		entity.AIModePlayer,
		26,
	)

	for _, id := range startingGear {
		template := templates.Item(id)
		if template == nil {
			continue
		}
		item := template.Clone()
		if err := player.Inventory.Add(item); err != nil {
			continue
		}
		player.Equipment.Equip(item)
	}
	return player
}
