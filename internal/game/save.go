package game

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/samdwyer/vaultcrawl/internal/gamedata"
	"github.com/samdwyer/vaultcrawl/internal/message"
	"github.com/samdwyer/vaultcrawl/internal/procgen"
	"github.com/samdwyer/vaultcrawl/internal/savefile"
	"github.com/samdwyer/vaultcrawl/internal/session"
)

// Snapshot freezes the run for saving. The RNG is persisted as its
// seed, not its stream position, so a reloaded run replays with fresh
// rolls from the same seed.
func (e *Engine) Snapshot() *savefile.Snapshot {
	return savefile.Capture(e.level, e.player, e.log, e.seed, e.floor, e.turn)
}

// SaveTo writes the run to a save file.
func (e *Engine) SaveTo(path string) error {
	return savefile.Save(path, e.Snapshot())
}

// Resume rebuilds an engine from a snapshot. Recording starts a new run
// row under the original seed.
func Resume(ctx context.Context, snap *savefile.Snapshot, cfg Config, registry *gamedata.Registry, store *session.Store) (*Engine, error) {
	templates, err := procgen.BuildTemplates(registry)
	if err != nil {
		return nil, err
	}
	level, player, log, err := snap.Restore()
	if err != nil {
		return nil, err
	}
	if cfg.FOVRadius <= 0 {
		cfg.FOVRadius = DefaultConfig().FOVRadius
	}
	if cfg.Map.Width == 0 {
		cfg.Map = procgen.DefaultConfig()
	}

	e := &Engine{
		cfg:       cfg,
		seed:      snap.Seed,
		rng:       rand.New(rand.NewSource(snap.Seed)),
		log:       log,
		level:     level,
		player:    player,
		templates: templates,
		floor:     snap.Floor,
		turn:      snap.Turn,
		state:     StateAwaitingInput,
		ctx:       ctx,
		store:     store,
	}
	if store != nil {
		e.runID = uuid.NewString()
		if err := store.StartRun(e.runID, snap.Seed); err != nil {
			return nil, err
		}
	}

	e.refreshVisibility()
	e.settleState()
	if e.state == StateAwaitingInput {
		e.log.Add("Welcome back.", message.CategoryWelcome)
	}
	return e, nil
}

// LoadFrom reads a save file and resumes it.
func LoadFrom(ctx context.Context, path string, cfg Config, registry *gamedata.Registry, store *session.Store) (*Engine, error) {
	snap, err := savefile.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Resume(ctx, snap, cfg, registry, store)
}
