// Package fov is the visibility oracle: a pure function from a
// transparency grid, an origin, and a radius to a boolean visibility
// grid. The simulation core calls it once per successful player turn.
package fov

import "github.com/samdwyer/vaultcrawl/internal/world"

// Compute returns the visible grid for the given origin and radius.
// Coverage is a Chebyshev disc filtered by Bresenham line of sight;
// opaque tiles are themselves visible when the path up to them is clear,
// so walls show up at the edge of a lit room. The result is
// deterministic and symmetric between mutually transparent tiles.
func Compute(grid *world.Grid, origin world.Point, radius int) [][]bool {
	visible := make([][]bool, grid.Height)
	for y := range visible {
		visible[y] = make([]bool, grid.Width)
	}
	if !grid.InBounds(origin.X, origin.Y) {
		return visible
	}
	visible[origin.Y][origin.X] = true

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			target := world.Point{X: origin.X + dx, Y: origin.Y + dy}
			if !grid.InBounds(target.X, target.Y) {
				continue
			}
			if origin.Chebyshev(target) > radius {
				continue
			}
			if lineOfSight(grid, origin, target) {
				visible[target.Y][target.X] = true
			}
		}
	}
	return visible
}

// lineOfSight reports whether every tile strictly between the origin and
// the target is transparent.
func lineOfSight(grid *world.Grid, origin, target world.Point) bool {
	line := world.Line(origin, target)
	for i := 1; i < len(line)-1; i++ {
		if !grid.Transparent(line[i].X, line[i].Y) {
			return false
		}
	}
	return true
}
