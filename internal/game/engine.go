package game

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultcrawl/internal/action"
	"github.com/samdwyer/vaultcrawl/internal/ai"
	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/fov"
	"github.com/samdwyer/vaultcrawl/internal/gamedata"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/procgen"
	"github.com/samdwyer/vaultcrawl/internal/session"
	"github.com/samdwyer/vaultcrawl/internal/telemetry"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Engine is the simulation core. It owns the current level, the player,
// the message log, and the seeded RNG, and advances the world one full
// turn per accepted player action. The engine knows nothing about
// rendering or input devices.
type Engine struct {
	cfg       Config
	seed      int64
	rng       *rand.Rand
	log       *message.Log
	level     *entity.Level
	player    *entity.Entity
	templates *procgen.Templates
	floor     int
	turn      int
	state     State

	ctx   context.Context
	store *session.Store
	runID string
}

// New builds a fresh run: player, first floor, welcome message. A nil
// store disables run recording.
func New(ctx context.Context, cfg Config, registry *gamedata.Registry, store *session.Store) (*Engine, error) {
	templates, err := procgen.BuildTemplates(registry)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.FOVRadius <= 0 {
		cfg.FOVRadius = DefaultConfig().FOVRadius
	}
	if cfg.Map.Width == 0 {
		cfg.Map = procgen.DefaultConfig()
	}

	e := &Engine{
		cfg:       cfg,
		seed:      seed,
		rng:       rand.New(rand.NewSource(seed)),
		log:       message.NewLog(),
		templates: templates,
		floor:     1,
		state:     StateAwaitingInput,
		ctx:       ctx,
		store:     store,
	}

	e.player = NewPlayer(templates)
	e.level = procgen.Generate(ctx, cfg.Map, e.floor, e.rng, e.player, templates)
	e.refreshVisibility()
	e.log.Add("Hello and welcome, adventurer, to yet another dungeon!", message.CategoryWelcome)

	if store != nil {
		e.runID = uuid.NewString()
		if err := store.StartRun(e.runID, seed); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Level returns the current floor's level.
func (e *Engine) Level() *entity.Level { return e.level }

// Player returns the player actor.
func (e *Engine) Player() *entity.Entity { return e.player }

// Log returns the message log.
func (e *Engine) Log() *message.Log { return e.log }

// State returns the current engine state.
func (e *Engine) State() State { return e.state }

// Floor returns the current dungeon depth, starting at 1.
func (e *Engine) Floor() int { return e.floor }

// Turn returns the number of completed turns.
func (e *Engine) Turn() int { return e.turn }

// Seed returns the effective RNG seed for this run.
func (e *Engine) Seed() int64 { return e.seed }

// Rand returns the run's RNG stream.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// ActionContext builds the mutation context handed to actions this turn.
func (e *Engine) ActionContext() *action.Context {
	return &action.Context{
		Level:   e.level,
		Player:  e.player,
		Log:     e.log,
		Rand:    e.rng,
		Descend: e.descend,
	}
}

// HandleAction runs one full game turn for the given player action. An
// Impossible failure is narrated and consumes no turn; any other error
// out of an action is structural and propagated. On success the enemies
// act, visibility is recomputed, cooldowns tick, and terminal states are
// settled, in that order.
func (e *Engine) HandleAction(act action.Action) error {
	if act == nil || e.state != StateAwaitingInput {
		return nil
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(e.ctx, "game.turn")
	defer span.End()

	ctx := e.ActionContext()
	if err := act.Perform(ctx); err != nil {
		if errors.Is(err, action.ErrQuit) {
			e.state = StateQuit
			e.finishRun(false)
			return nil
		}
		if reason, ok := action.IsImpossible(err); ok {
			e.log.Add(reason, message.CategoryImpossible)
			span.SetAttributes(attribute.String("turn.impossible", reason))
			return nil
		}
		return err
	}

	e.turn++
	// Rebuild the context: the action may have swapped the level out
	// from under it (descending the stairs does).
	e.runEnemyTurns(e.ActionContext())
	e.refreshVisibility()
	e.tickCooldowns()
	e.settleState()
	e.recordTurn()

	span.SetAttributes(
		attribute.Int("turn.number", e.turn),
		attribute.Int("turn.floor", e.floor),
		attribute.Int("turn.player_hp", e.player.Fighter.HP()),
		attribute.String("turn.state", e.state.String()),
	)
	return nil
}

// runEnemyTurns gives every living enemy one action. Enemy Impossible
// failures are swallowed silently; enemies bumping into walls is not
// worth narrating.
func (e *Engine) runEnemyTurns(ctx *action.Context) {
	for _, actor := range e.level.Actors() {
		if actor == e.player {
			continue
		}
		act := ai.Decide(actor, ctx)
		if act == nil {
			continue
		}
		if err := act.Perform(ctx); err != nil {
			if _, ok := action.IsImpossible(err); !ok {
				// Structural failures in enemy turns are unexpected
				// but must not kill the run.
				e.log.Add(err.Error(), message.CategoryInfo)
			}
		}
	}
}

// refreshVisibility recomputes the player's field of view and folds it
// into the explored overlay.
func (e *Engine) refreshVisibility() {
	visible := fov.Compute(e.level.Grid,
		world.Point{X: e.player.X, Y: e.player.Y},
		e.cfg.FOVRadius,
	)
	e.level.Grid.ApplyVisibility(visible)
}

// tickCooldowns advances every equipped item's ability recharge by one
// turn, for all living actors on the level.
func (e *Engine) tickCooldowns() {
	for _, actor := range e.level.Actors() {
		if actor.Equipment == nil {
			continue
		}
		for _, item := range actor.Equipment.Equipped() {
			eq := item.Equippable
			eq.SetRemaining(eq.Remaining() - 1)
		}
	}
}

// settleState applies the end-of-turn terminal checks: defeat wins over
// a pending level up.
func (e *Engine) settleState() {
	if !e.player.IsAlive() {
		e.state = StateDefeat
		e.finishRun(true)
		return
	}
	if e.player.Stats.RequiresLevelUp() {
		e.state = StateLevelUp
	}
}

// descend regenerates the dungeon one floor down, carrying the player
// (and everything they hold) into the new level.
func (e *Engine) descend() error {
	e.floor++
	e.level = procgen.Generate(e.ctx, e.cfg.Map, e.floor, e.rng, e.player, e.templates)
	return nil
}

func (e *Engine) recordTurn() {
	if e.store == nil {
		return
	}
	enemies := 0
	for _, actor := range e.level.Actors() {
		if actor != e.player {
			enemies++
		}
	}
	// Recording is diagnostics; a write failure must not stop play.
	_ = e.store.RecordTurn(&session.Turn{
		RunID:   e.runID,
		Turn:    e.turn,
		Floor:   e.floor,
		PlayerX: e.player.X,
		PlayerY: e.player.Y,
		HP:      e.player.Fighter.HP(),
		MaxHP:   e.player.Fighter.MaxHP,
		Level:   e.player.Stats.CurrentLevel,
		Enemies: enemies,
	})
}

func (e *Engine) finishRun(defeated bool) {
	if e.store == nil {
		return
	}
	_ = e.store.EndRun(e.runID, e.floor, e.turn, defeated)
}
