package main

import (
	"log"
	"math"
)

// RaidStrategy plans reward collection routes before execution. The rendered
// layout overlays live entities, so targets and hazards are re-scanned from
// the layout strings on every tick.
type RaidStrategy struct {
	width  int
	height int

	// Route planning
	collectionOrder []Position // Planned reward collection order
	currentTarget   *Position  // Current reward we're navigating to

	// State tracking
	visitedCells map[Position]int
	stuckCount   int
	lastProgress int
}

func NewRaidStrategy(state *GameState) *RaidStrategy {
	s := &RaidStrategy{
		width:        state.Width,
		height:       state.Height,
		visitedCells: make(map[Position]int),
	}

	rewards := scanLayout(state.Layout, 'C')
	log.Printf("📊 Raid Strategy: %d basic rewards, %d spikes, %d stalkers",
		len(rewards), len(scanLayout(state.Layout, 'S')), len(scanLayout(state.Layout, 'M')))

	s.planCollectionOrder(state, rewards)

	return s
}

// scanLayout returns the coordinates of every occurrence of char.
func scanLayout(layout []string, char byte) []Position {
	var points []Position
	for row, line := range layout {
		for col := 0; col < len(line); col++ {
			if line[col] == char {
				points = append(points, Position{Row: row, Col: col})
			}
		}
	}
	return points
}

// planCollectionOrder creates a reward collection sequence using
// nearest-neighbor over Manhattan distance. BFS handles the actual walls
// during navigation.
func (s *RaidStrategy) planCollectionOrder(state *GameState, rewards []Position) {
	remaining := make(map[int]bool)
	for i := range rewards {
		remaining[i] = true
	}

	s.collectionOrder = make([]Position, 0, len(rewards))
	currentPos := state.PlayerPos

	for len(remaining) > 0 {
		nearestIdx := -1
		minDist := math.MaxInt32

		for idx := range remaining {
			dist := manhattanDistance(currentPos, rewards[idx])
			if dist < minDist {
				minDist = dist
				nearestIdx = idx
			}
		}

		s.collectionOrder = append(s.collectionOrder, rewards[nearestIdx])
		currentPos = rewards[nearestIdx]
		delete(remaining, nearestIdx)
	}

	log.Printf("📋 Planned collection order: %d rewards", len(s.collectionOrder))
	for i, pos := range s.collectionOrder {
		log.Printf("  %d. Reward at (%d,%d)", i+1, pos.Row, pos.Col)
	}
}

func (s *RaidStrategy) NextMove(state *GameState) string {
	s.visitedCells[state.PlayerPos]++

	// Track progress
	if state.BasicCollected > s.lastProgress {
		s.lastProgress = state.BasicCollected
		s.stuckCount = 0
		s.currentTarget = nil
		log.Printf("✅ Rewards: %d/%d", state.BasicCollected, state.BasicToCollect)
	} else {
		s.stuckCount++
	}

	target := s.selectTarget(state)
	if target == nil {
		return ""
	}

	// If stuck on the same target for too long, fall back to exploration
	if s.stuckCount > 100 {
		log.Printf("⚠️  Stuck for %d ticks - exploring", s.stuckCount)
		s.stuckCount = 0
		return s.exploreMove(state)
	}

	// Prefer a route that keeps clear of stalkers; take the direct one if
	// no safe route exists.
	path := s.BFS(state.PlayerPos, *target, state, true)
	if path == nil {
		path = s.BFS(state.PlayerPos, *target, state, false)
	}

	if path == nil {
		log.Printf("⚠️  No path to (%d,%d) - skipping", target.Row, target.Col)
		s.currentTarget = nil
		return s.exploreMove(state)
	}

	if len(path) > 0 {
		return path[0]
	}

	return s.exploreMove(state)
}

// selectTarget picks the next objective: uncollected basic rewards in planned
// order, then any bonus on the board, then the final treasure once unlocked,
// then the exit.
func (s *RaidStrategy) selectTarget(state *GameState) *Position {
	// Live rewards still on the board
	liveBasics := positionSet(scanLayout(state.Layout, 'C'))

	if s.currentTarget != nil {
		if liveBasics[*s.currentTarget] {
			return s.currentTarget
		}
		s.currentTarget = nil
	}

	// Next planned reward still present
	for _, pos := range s.collectionOrder {
		if liveBasics[pos] {
			p := pos
			s.currentTarget = &p
			log.Printf("🎯 Reward (%d,%d)", p.Row, p.Col)
			return s.currentTarget
		}
	}

	// Any basic the plan missed (bonuses can block the original tile)
	for pos := range liveBasics {
		p := pos
		s.currentTarget = &p
		log.Printf("🎯 Stray reward (%d,%d)", p.Row, p.Col)
		return s.currentTarget
	}

	// Bonus if one is active nearby
	if bonuses := scanLayout(state.Layout, 'B'); len(bonuses) > 0 {
		nearest := nearestPoint(state.PlayerPos, bonuses)
		if manhattanDistance(state.PlayerPos, nearest) <= 5 {
			p := nearest
			log.Printf("💎 Bonus (%d,%d)", p.Row, p.Col)
			return &p
		}
	}

	// Final treasure once all basics are collected
	if state.BasicCollected >= state.BasicToCollect {
		if finals := scanLayout(state.Layout, 'F'); len(finals) > 0 {
			p := finals[0]
			log.Printf("🏆 Final treasure (%d,%d)", p.Row, p.Col)
			return &p
		}

		if exits := scanLayout(state.Layout, 'X'); len(exits) > 0 {
			p := exits[0]
			log.Printf("🚪 Exit (%d,%d)", p.Row, p.Col)
			return &p
		}
	}

	return nil
}

func (s *RaidStrategy) exploreMove(state *GameState) string {
	// Try least visited direction
	type DirScore struct {
		dir   string
		score int
	}

	options := []DirScore{}
	for _, dir := range []string{"up", "down", "left", "right"} {
		newPos := newPosition(state.PlayerPos, dir)
		if !s.isWalkable(newPos, state, false) {
			continue
		}

		visitCount := s.visitedCells[newPos]
		options = append(options, DirScore{dir: dir, score: visitCount})
	}

	if len(options) == 0 {
		return ""
	}

	// Pick least visited
	best := options[0]
	for _, opt := range options {
		if opt.score < best.score {
			best = opt
		}
	}

	return best.dir
}

// BFS returns the direction sequence from start to goal, or nil when no route
// exists. With avoidDanger set, spike tiles and cells adjacent to a stalker
// are treated as impassable.
func (s *RaidStrategy) BFS(start, goal Position, state *GameState, avoidDanger bool) []string {
	if start == goal {
		return []string{}
	}

	type QueueItem struct {
		pos  Position
		path []string
	}

	queue := []QueueItem{{pos: start, path: []string{}}}
	visited := make(map[Position]bool)
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range []string{"up", "down", "left", "right"} {
			newPos := newPosition(current.pos, dir)

			if visited[newPos] {
				continue
			}
			if newPos != goal && !s.isWalkable(newPos, state, avoidDanger) {
				continue
			}

			newPath := append([]string{}, current.path...)
			newPath = append(newPath, dir)

			if newPos == goal {
				return newPath
			}

			visited[newPos] = true
			queue = append(queue, QueueItem{pos: newPos, path: newPath})
		}
	}

	return nil
}

func (s *RaidStrategy) isWalkable(pos Position, state *GameState, avoidDanger bool) bool {
	if pos.Row < 0 || pos.Row >= len(state.Layout) {
		return false
	}
	row := state.Layout[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return false
	}

	cell := row[pos.Col]
	if cell == '#' {
		return false
	}

	if avoidDanger {
		if cell == 'S' || cell == 'M' {
			return false
		}
		// Keep one tile away from stalkers since they move every tick
		for _, dir := range []string{"up", "down", "left", "right"} {
			adj := newPosition(pos, dir)
			if adj.Row >= 0 && adj.Row < len(state.Layout) &&
				adj.Col >= 0 && adj.Col < len(state.Layout[adj.Row]) &&
				state.Layout[adj.Row][adj.Col] == 'M' {
				return false
			}
		}
	}

	return true
}

func positionSet(points []Position) map[Position]bool {
	set := make(map[Position]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return set
}

func nearestPoint(from Position, points []Position) Position {
	best := points[0]
	minDist := manhattanDistance(from, best)
	for _, p := range points[1:] {
		if dist := manhattanDistance(from, p); dist < minDist {
			minDist = dist
			best = p
		}
	}
	return best
}

func newPosition(pos Position, dir string) Position {
	switch dir {
	case "up":
		return Position{Row: pos.Row - 1, Col: pos.Col}
	case "down":
		return Position{Row: pos.Row + 1, Col: pos.Col}
	case "left":
		return Position{Row: pos.Row, Col: pos.Col - 1}
	case "right":
		return Position{Row: pos.Row, Col: pos.Col + 1}
	}
	return pos
}

func manhattanDistance(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (s *RaidStrategy) Reset() {
	s.visitedCells = make(map[Position]int)
	s.currentTarget = nil
	s.stuckCount = 0
	s.lastProgress = 0
}
