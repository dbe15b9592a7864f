// Package procgen builds a new dungeon floor and its initial entity
// population from floor-scaled random tables.
package procgen

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/telemetry"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Default map dimensions.
const (
	DefaultWidth  = 80
	DefaultHeight = 43
)

// Config bounds the room sampling.
type Config struct {
	Width       int
	Height      int
	MaxRooms    int // attempt budget, not a guaranteed count
	RoomMinSize int
	RoomMaxSize int
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		MaxRooms:    30,
		RoomMinSize: 6,
		RoomMaxSize: 10,
	}
}

// Generate builds a level for the given floor and places the player in
// the first room's center. Rooms are sampled at random and rejected on
// overlap; accepted rooms are chained with L-shaped corridors, and the
// center of the last accepted room becomes the descend tile.
func Generate(ctx context.Context, cfg Config, floor int, rng *rand.Rand, player *entity.Entity, templates *Templates) *entity.Level {
	level, _ := buildLevel(ctx, cfg, floor, rng, player, templates)
	return level
}

// buildLevel also returns the accepted rooms so tests can check layout
// properties against them.
func buildLevel(ctx context.Context, cfg Config, floor int, rng *rand.Rand, player *entity.Entity, templates *Templates) (*entity.Level, []world.Rect) {
	tracer := telemetry.Tracer("procgen")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	grid := world.NewGrid(cfg.Width, cfg.Height)
	level := entity.NewLevel(grid)

	var rooms []world.Rect
	stairs := world.Point{}

	for attempt := 0; attempt < cfg.MaxRooms; attempt++ {
		roomWidth := cfg.RoomMinSize + rng.Intn(cfg.RoomMaxSize-cfg.RoomMinSize+1)
		roomHeight := cfg.RoomMinSize + rng.Intn(cfg.RoomMaxSize-cfg.RoomMinSize+1)
		x := rng.Intn(cfg.Width - roomWidth - 1)
		y := rng.Intn(cfg.Height - roomHeight - 1)

		newRoom := world.NewRect(x, y, roomWidth, roomHeight)

		overlaps := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		carveRoom(grid, newRoom)

		if len(rooms) == 0 {
			center := newRoom.Center()
			player.PlaceOn(level, center.X, center.Y)
		} else {
			carveCorridor(grid, rng, rooms[len(rooms)-1].Center(), newRoom.Center())
			stairs = newRoom.Center()
		}

		placeEntities(newRoom, level, floor, rng, templates)
		rooms = append(rooms, newRoom)
	}

	// A degenerate single-room floor still needs a way down.
	if len(rooms) == 1 {
		stairs = rooms[0].Center()
	}
	grid.SetTile(stairs.X, stairs.Y, world.DownStairs)
	grid.Stairs = stairs

	span.SetAttributes(
		attribute.Int("dungeon.floor", floor),
		attribute.Int("dungeon.room_count", len(rooms)),
		attribute.Int("dungeon.entity_count", level.Size()),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return level, rooms
}

// carveRoom sets the room's interior to floor, leaving its walls.
func carveRoom(grid *world.Grid, room world.Rect) {
	for y := room.Y1 + 1; y < room.Y2; y++ {
		for x := room.X1 + 1; x < room.X2; x++ {
			grid.SetTile(x, y, world.Floor)
		}
	}
}

// carveCorridor digs an L-shaped tunnel between two points, choosing the
// elbow routing at random. Each leg is a discrete line with no diagonal
// gaps.
func carveCorridor(grid *world.Grid, rng *rand.Rand, start, end world.Point) {
	var corner world.Point
	if rng.Intn(2) == 0 {
		// Horizontal, then vertical.
		corner = world.Point{X: end.X, Y: start.Y}
	} else {
		// Vertical, then horizontal.
		corner = world.Point{X: start.X, Y: end.Y}
	}

	for _, p := range world.Line(start, corner) {
		grid.SetTile(p.X, p.Y, world.Floor)
	}
	for _, p := range world.Line(corner, end) {
		grid.SetTile(p.X, p.Y, world.Floor)
	}
}

// placeEntities populates one room with monsters and items, capped by
// the floor's maxima and drawn from the floor's weighted tables. A spawn
// coordinate already holding an entity is skipped.
func placeEntities(room world.Rect, level *entity.Level, floor int, rng *rand.Rand, templates *Templates) {
	registry := templates.Registry()
	monsterCount := rng.Intn(registry.MaxMonsters(floor) + 1)
	itemCount := rng.Intn(registry.MaxItems(floor) + 1)

	for i := 0; i < monsterCount; i++ {
		if id := registry.RandomMonster(rng, floor); id != "" {
			spawnInRoom(room, level, rng, templates.Monster(id))
		}
	}
	for i := 0; i < itemCount; i++ {
		if id := registry.RandomItem(rng, floor); id != "" {
			spawnInRoom(room, level, rng, templates.Item(id))
		}
	}
}

func spawnInRoom(room world.Rect, level *entity.Level, rng *rand.Rand, template *entity.Entity) {
	if template == nil {
		return
	}
	x := room.X1 + 1 + rng.Intn(room.X2-room.X1-1)
	y := room.Y1 + 1 + rng.Intn(room.Y2-room.Y1-1)
	if level.OccupiedExactly(x, y) {
		return
	}
	template.SpawnOn(level, x, y)
}
