package game

import (
	"fmt"

	"github.com/samdwyer/vaultcrawl/internal/message"
)

// LevelUpChoice is the attribute the player raises on level up.
type LevelUpChoice int

const (
	// LevelUpVitality raises maximum and current hit points by 20.
	LevelUpVitality LevelUpChoice = iota
	// LevelUpStrength raises base power by 1.
	LevelUpStrength
	// LevelUpAgility raises base defense by 1.
	LevelUpAgility
)

// ChooseLevelUp applies the pending level up. It is a no-op outside the
// level-up state. When enough experience is banked for several levels,
// the engine stays in the level-up state until all are spent.
func (e *Engine) ChooseLevelUp(choice LevelUpChoice) {
	if e.state != StateLevelUp {
		return
	}

	stats := e.player.Stats
	switch choice {
	case LevelUpVitality:
		stats.IncreaseMaxHP(e.player.Fighter)
		e.log.Add("Your health improves!", message.CategoryLevelUp)
	case LevelUpStrength:
		stats.IncreasePower(e.player.Fighter)
		e.log.Add("You feel stronger!", message.CategoryLevelUp)
	case LevelUpAgility:
		stats.IncreaseDefense(e.player.Fighter)
		e.log.Add("Your movements are getting swifter!", message.CategoryLevelUp)
	default:
		return
	}
	e.log.Add(fmt.Sprintf("You advance to level %d!", stats.CurrentLevel), message.CategoryLevelUp)

	if !stats.RequiresLevelUp() {
		e.state = StateAwaitingInput
	}
}
