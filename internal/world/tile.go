// Package world provides the tile grid, rooms, and map geometry.
package world

import "github.com/gdamore/tcell/v2"

// Graphic is the display appearance of a tile. The simulation core passes
// these through to the renderer without interpreting them.
type Graphic struct {
	Ch rune
	Fg tcell.Color
	Bg tcell.Color
}

// Tile is an immutable per-tile template. A grid holds Tile values; tiles
// are not entities.
type Tile struct {
	Walkable    bool
	Transparent bool
	Dark        Graphic // appearance when explored but out of view
	Light       Graphic // appearance when currently visible
}

// Shroud is drawn for tiles that have never been seen.
var Shroud = Graphic{Ch: ' ', Fg: tcell.ColorWhite, Bg: tcell.ColorBlack}

var (
	// Floor is a walkable, transparent tile.
	Floor = Tile{
		Walkable:    true,
		Transparent: true,
		Dark:        Graphic{Ch: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(50, 50, 150)},
		Light:       Graphic{Ch: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(200, 180, 50)},
	}

	// Wall blocks movement and sight.
	Wall = Tile{
		Walkable:    false,
		Transparent: false,
		Dark:        Graphic{Ch: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(0, 0, 100)},
		Light:       Graphic{Ch: ' ', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(130, 110, 50)},
	}

	// DownStairs marks the descent point to the next floor.
	DownStairs = Tile{
		Walkable:    true,
		Transparent: true,
		Dark:        Graphic{Ch: '>', Fg: tcell.NewRGBColor(0, 0, 100), Bg: tcell.NewRGBColor(50, 50, 150)},
		Light:       Graphic{Ch: '>', Fg: tcell.ColorWhite, Bg: tcell.NewRGBColor(200, 180, 50)},
	}
)

// Kind returns a stable single-rune identifier for the tile, used by the
// save format. The zero Tile maps to a wall.
func (t Tile) Kind() rune {
	switch {
	case t == Floor:
		return '.'
	case t == DownStairs:
		return '>'
	default:
		return '#'
	}
}

// TileByKind is the inverse of Tile.Kind.
func TileByKind(r rune) Tile {
	switch r {
	case '.':
		return Floor
	case '>':
		return DownStairs
	default:
		return Wall
	}
}
