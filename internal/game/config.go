package game

import "github.com/samdwyer/vaultcrawl/internal/procgen"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. The same seed reproduces the
	// same dungeon, and the same enemy behavior when fed the same
	// player actions. A seed of 0 means a random seed will be
	// generated.
	Seed int64

	// Map bounds the dungeon generator.
	Map procgen.Config

	// FOVRadius is the player's sight radius in tiles.
	FOVRadius int
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		Map:       procgen.DefaultConfig(),
		FOVRadius: 8,
	}
}
