package ai

import (
	"container/heap"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/world"
)

// Step costs chosen so a diagonal is 1.5x a cardinal step on open floor,
// which keeps chase paths from zig-zagging unnaturally.
const (
	baseCost = 2
	// crowdPenalty is added to tiles holding a blocking entity. Lower
	// values make enemies crowd behind each other in corridors; higher
	// values make them take long detours to surround the player.
	crowdPenalty = 10
)

// buildCostField turns the level's walkability into a traversal cost
// grid. Unwalkable tiles are zero (impassable); tiles occupied by a
// movement-blocking entity get the crowding penalty.
func buildCostField(level *entity.Level) [][]int {
	grid := level.Grid
	cost := make([][]int, grid.Height)
	for y := range cost {
		cost[y] = make([]int, grid.Width)
		for x := range cost[y] {
			if grid.Walkable(x, y) {
				cost[y][x] = baseCost
			}
		}
	}
	for _, e := range level.Entities() {
		if e.BlocksMovement && grid.InBounds(e.X, e.Y) && cost[e.Y][e.X] != 0 {
			cost[e.Y][e.X] += crowdPenalty
		}
	}
	return cost
}

type pqItem struct {
	point world.Point
	dist  int
	index int
}

type pointQueue []*pqItem

func (q pointQueue) Len() int            { return len(q) }
func (q pointQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pointQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *pointQueue) Push(x interface{}) { item := x.(*pqItem); item.index = len(*q); *q = append(*q, item) }
func (q *pointQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

var neighborhood = []struct {
	dx, dy   int
	diagonal bool
}{
	{-1, 0, false}, {1, 0, false}, {0, -1, false}, {0, 1, false},
	{-1, -1, true}, {1, -1, true}, {-1, 1, true}, {1, 1, true},
}

// PathTo runs a shortest-path search over the level's cost field from
// the actor's tile to the destination, moving 8-connected with distinct
// cardinal and diagonal step costs. The returned path excludes the
// starting tile; it is empty when the destination is unreachable.
func PathTo(level *entity.Level, from, to world.Point) []world.Point {
	grid := level.Grid
	if !grid.InBounds(to.X, to.Y) {
		return nil
	}
	cost := buildCostField(level)

	dist := make([][]int, grid.Height)
	prev := make([][]world.Point, grid.Height)
	seen := make([][]bool, grid.Height)
	for y := range dist {
		dist[y] = make([]int, grid.Width)
		prev[y] = make([]world.Point, grid.Width)
		seen[y] = make([]bool, grid.Width)
		for x := range dist[y] {
			dist[y][x] = -1
		}
	}

	queue := &pointQueue{}
	heap.Init(queue)
	dist[from.Y][from.X] = 0
	heap.Push(queue, &pqItem{point: from, dist: 0})

	for queue.Len() > 0 {
		current := heap.Pop(queue).(*pqItem)
		p := current.point
		if seen[p.Y][p.X] {
			continue
		}
		seen[p.Y][p.X] = true
		if p == to {
			break
		}

		for _, n := range neighborhood {
			nx, ny := p.X+n.dx, p.Y+n.dy
			if !grid.InBounds(nx, ny) || cost[ny][nx] == 0 {
				continue
			}
			step := cost[ny][nx]
			if n.diagonal {
				step++
			}
			alt := dist[p.Y][p.X] + step
			if dist[ny][nx] == -1 || alt < dist[ny][nx] {
				dist[ny][nx] = alt
				prev[ny][nx] = p
				heap.Push(queue, &pqItem{point: world.Point{X: nx, Y: ny}, dist: alt})
			}
		}
	}

	if dist[to.Y][to.X] == -1 {
		return nil
	}

	var path []world.Point
	for p := to; p != from; p = prev[p.Y][p.X] {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
