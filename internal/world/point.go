package world

import "math"

// Point is an integer map coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Chebyshev returns the chessboard distance to another point.
func (p Point) Chebyshev(o Point) int {
	dx := abs(p.X - o.X)
	dy := abs(p.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(o Point) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Line returns the points of a discrete line from a to b inclusive, using
// Bresenham's algorithm. Consecutive points are always 8-connected, so a
// corridor carved along the line has no diagonal gaps.
func Line(a, b Point) []Point {
	points := []Point{a}

	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	err := dx - dy
	for x != b.X || y != b.Y {
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}
