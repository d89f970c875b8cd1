package engine

import "container/heap"

// Pathfinder plans a route between two grid positions. Implementations are
// stateless and may be shared by any number of enemies.
type Pathfinder interface {
	// FindPath returns the positions from start to target inclusive, or nil
	// when no route exists or either endpoint is invalid.
	FindPath(g *Grid, start, target Position) []Position
}

// AStarPathfinder runs A* with the Manhattan heuristic over 4-directional
// unit-cost movement. The heuristic is admissible and consistent under these
// rules, so returned paths are optimal: length |drow|+|dcol|+1 on open grids.
type AStarPathfinder struct{}

// NewAStarPathfinder returns a shareable A* strategy.
func NewAStarPathfinder() *AStarPathfinder { return &AStarPathfinder{} }

var cardinalOffsets = [...]Direction{DirUp, DirRight, DirDown, DirLeft}

type pathNode struct {
	pos    Position
	gCost  int
	hCost  int
	fCost  int
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

func (pq pathQueue) Less(i, j int) bool {
	if pq[i].fCost != pq[j].fCost {
		return pq[i].fCost < pq[j].fCost
	}
	// Tie-break toward the node closer to the target.
	return pq[i].hCost < pq[j].hCost
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// FindPath implements Pathfinder. It rejects absent maps and endpoints that
// are out of bounds or blocked, returns a single-element path when start
// equals target, and nil when the open set empties without reaching the
// target.
func (AStarPathfinder) FindPath(g *Grid, start, target Position) []Position {
	if g == nil || !g.InBounds(start) || !g.InBounds(target) {
		return nil
	}
	if g.IsBlocked(start) || g.IsBlocked(target) {
		return nil
	}
	if start == target {
		return []Position{start}
	}

	open := &pathQueue{}
	heap.Init(open)
	heap.Push(open, &pathNode{pos: start, gCost: 0, hCost: ManhattanDistance(start, target), fCost: ManhattanDistance(start, target)})

	gScore := map[Position]int{start: 0}
	closed := make(map[Position]struct{})

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.pos]; seen {
			continue
		}
		closed[current.pos] = struct{}{}

		if current.pos == target {
			return reconstructPath(current)
		}

		for _, dir := range cardinalOffsets {
			next := current.pos.Step(dir)
			if !g.IsPassable(next) {
				continue
			}
			if _, seen := closed[next]; seen {
				continue
			}
			tentative := current.gCost + 1
			if prev, ok := gScore[next]; ok && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			h := ManhattanDistance(next, target)
			heap.Push(open, &pathNode{
				pos:    next,
				gCost:  tentative,
				hCost:  h,
				fCost:  tentative + h,
				parent: current,
			})
		}
	}

	return nil
}

func reconstructPath(end *pathNode) []Position {
	if end == nil {
		return nil
	}
	path := make([]Position, 0)
	for node := end; node != nil; node = node.parent {
		path = append(path, node.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
