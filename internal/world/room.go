package world

// Rect is a rectangular room. X1,Y1 is the top-left wall corner and X2,Y2
// the bottom-right; the carved interior excludes the walls.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect creates a rect from a top-left corner and dimensions.
func NewRect(x, y, width, height int) Rect {
	return Rect{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

// Center returns the center coordinates of the room.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Contains returns true if the given point is inside the room's interior.
func (r Rect) Contains(x, y int) bool {
	return x > r.X1 && x < r.X2 && y > r.Y1 && y < r.Y2
}

// Intersects returns true if this room overlaps with another room,
// touching walls included.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 &&
		r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 &&
		r.Y2 >= other.Y1
}
