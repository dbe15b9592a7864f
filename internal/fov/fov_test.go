package fov

import (
	"testing"

	"github.com/samdwyer/vaultcrawl/internal/world"
)

func openGrid(w, h int) *world.Grid {
	grid := world.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid.SetTile(x, y, world.Floor)
		}
	}
	return grid
}

func TestComputeRadius(t *testing.T) {
	grid := openGrid(21, 21)
	origin := world.Point{X: 10, Y: 10}

	visible := Compute(grid, origin, 8)

	if !visible[10][10] {
		t.Error("origin should be visible")
	}
	if !visible[10][18] {
		t.Error("tile at exactly radius distance should be visible")
	}
	if visible[10][19] {
		t.Error("tile beyond the radius should not be visible")
	}
	// The disc is Chebyshev: the diagonal corner is in range.
	if !visible[2][2] {
		t.Error("diagonal corner at Chebyshev distance 8 should be visible")
	}
}

func TestComputeWallsBlockSight(t *testing.T) {
	grid := openGrid(11, 11)
	origin := world.Point{X: 1, Y: 5}

	// A wall column between the origin and the right side.
	for y := 0; y < 11; y++ {
		grid.SetTile(5, y, world.Wall)
	}

	visible := Compute(grid, origin, 8)

	if !visible[5][4] {
		t.Error("tile in front of the wall should be visible")
	}
	// The wall itself shows up at the edge of sight.
	if !visible[5][5] {
		t.Error("the blocking wall tile should itself be visible")
	}
	if visible[5][6] {
		t.Error("tile behind the wall should be hidden")
	}
	if visible[5][9] {
		t.Error("far tile behind the wall should be hidden")
	}
}

func TestComputeSymmetry(t *testing.T) {
	grid := openGrid(15, 15)
	grid.SetTile(7, 7, world.Wall)

	a := world.Point{X: 3, Y: 5}
	b := world.Point{X: 11, Y: 9}

	fromA := Compute(grid, a, 12)
	fromB := Compute(grid, b, 12)

	if fromA[b.Y][b.X] != fromB[a.Y][a.X] {
		t.Error("visibility between two open tiles should be symmetric")
	}
}

func TestComputeOutOfBoundsOrigin(t *testing.T) {
	grid := openGrid(5, 5)
	visible := Compute(grid, world.Point{X: -1, Y: 2}, 8)
	for y := range visible {
		for x := range visible[y] {
			if visible[y][x] {
				t.Fatalf("nothing should be visible from an out-of-bounds origin, got (%d, %d)", x, y)
			}
		}
	}
}
