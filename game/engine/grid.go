package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a coordinate outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Grid is a fixed-size tile map. Out-of-bounds positions are always treated
// as blocked, so callers never need a separate bounds check before movement.
type Grid struct {
	width  int
	height int
	tiles  [][]Tile

	entryPoint *Position
	exitPoint  *Position
}

// NewGrid creates an empty (all-passable) grid. Dimensions below 1x1 are a
// configuration bug and fail fast.
func NewGrid(width, height int) (*Grid, error) {
	if width < MinMapDimension || height < MinMapDimension {
		return nil, fmt.Errorf("grid dimensions must be at least %dx%d, got %dx%d",
			MinMapDimension, MinMapDimension, width, height)
	}
	tiles := make([][]Tile, height)
	for r := range tiles {
		tiles[r] = make([]Tile, width)
	}
	return &Grid{width: width, height: height, tiles: tiles}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// IsBlocked reports whether p cannot be entered. Out-of-bounds counts as
// blocked.
func (g *Grid) IsBlocked(p Position) bool {
	if !g.InBounds(p) {
		return true
	}
	return g.tiles[p.Row][p.Col].Blocked
}

// IsPassable is the in-bounds negation of IsBlocked.
func (g *Grid) IsPassable(p Position) bool {
	return g.InBounds(p) && !g.tiles[p.Row][p.Col].Blocked
}

// IsEntry reports whether p is marked as the arena entry.
func (g *Grid) IsEntry(p Position) bool {
	return g.InBounds(p) && g.tiles[p.Row][p.Col].Entry
}

// IsExit reports whether p is marked as the arena exit.
func (g *Grid) IsExit(p Position) bool {
	return g.InBounds(p) && g.tiles[p.Row][p.Col].Exit
}

// Tile returns the tile at p and whether p is in bounds.
func (g *Grid) Tile(p Position) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	return g.tiles[p.Row][p.Col], true
}

// SetBlocked sets or clears the blocked flag at p.
func (g *Grid) SetBlocked(p Position, blocked bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	g.tiles[p.Row][p.Col].Blocked = blocked
	return nil
}

// SetEntryPoint records p as the arena entry and marks its tile.
func (g *Grid) SetEntryPoint(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: entry (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	if g.entryPoint != nil {
		g.tiles[g.entryPoint.Row][g.entryPoint.Col].Entry = false
	}
	g.tiles[p.Row][p.Col].Entry = true
	g.entryPoint = &p
	return nil
}

// SetExitPoint records p as the arena exit and marks its tile. The exit tile
// stays passable; whether leaving is allowed is a game-rule concern.
func (g *Grid) SetExitPoint(p Position) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: exit (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	if g.exitPoint != nil {
		g.tiles[g.exitPoint.Row][g.exitPoint.Col].Exit = false
	}
	g.tiles[p.Row][p.Col].Exit = true
	g.exitPoint = &p
	return nil
}

// EntryPoint returns the entry position, if one was set.
func (g *Grid) EntryPoint() (Position, bool) {
	if g.entryPoint == nil {
		return Position{}, false
	}
	return *g.entryPoint, true
}

// ExitPoint returns the exit position, if one was set.
func (g *Grid) ExitPoint() (Position, bool) {
	if g.exitPoint == nil {
		return Position{}, false
	}
	return *g.exitPoint, true
}

// CreateBorder blocks every perimeter tile, enclosing the arena. This is the
// default arena shape for generated maps.
func (g *Grid) CreateBorder() {
	for c := 0; c < g.width; c++ {
		g.tiles[0][c].Blocked = true
		g.tiles[g.height-1][c].Blocked = true
	}
	for r := 0; r < g.height; r++ {
		g.tiles[r][0].Blocked = true
		g.tiles[r][g.width-1].Blocked = true
	}
}
