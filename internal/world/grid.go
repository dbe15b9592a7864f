package world

// Grid is the static tile map of one floor, with the two per-floor
// visibility overlays layered on top.
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile // indexed [y][x]

	// Visible marks tiles currently in the player's field of view.
	Visible [][]bool
	// Explored marks tiles that have ever been visible.
	Explored [][]bool

	// Stairs is the descend coordinate for this floor.
	Stairs Point
}

// NewGrid creates a grid of the given dimensions filled with walls.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:    width,
		Height:   height,
		Tiles:    make([][]Tile, height),
		Visible:  make([][]bool, height),
		Explored: make([][]bool, height),
	}
	for y := range g.Tiles {
		g.Tiles[y] = make([]Tile, width)
		g.Visible[y] = make([]bool, width)
		g.Explored[y] = make([]bool, width)
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = Wall
		}
	}
	return g
}

// InBounds returns true if x, y lie within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at the given position, or a wall when out of bounds.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.Tiles[y][x]
}

// SetTile replaces the tile at x, y. Out-of-bounds writes are ignored.
func (g *Grid) SetTile(x, y int, t Tile) {
	if g.InBounds(x, y) {
		g.Tiles[y][x] = t
	}
}

// Walkable returns true if the tile at x, y can be stepped on.
func (g *Grid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g.Tiles[y][x].Walkable
}

// Transparent returns true if the tile at x, y does not block sight.
func (g *Grid) Transparent(x, y int) bool {
	return g.InBounds(x, y) && g.Tiles[y][x].Transparent
}

// IsVisible reports whether x, y is currently in view.
func (g *Grid) IsVisible(x, y int) bool {
	return g.InBounds(x, y) && g.Visible[y][x]
}

// ApplyVisibility replaces the visible overlay and folds it into the
// explored overlay. The oracle output must match the grid dimensions.
func (g *Grid) ApplyVisibility(visible [][]bool) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.Visible[y][x] = visible[y][x]
			if visible[y][x] {
				g.Explored[y][x] = true
			}
		}
	}
}
