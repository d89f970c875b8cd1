package engine

// Direction is a discrete per-tick movement input.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirNone  Direction = "none"

	// Validation constants
	MinMapDimension  = 1
	MaxMapDimension  = 64
	MaxRunDirections = 100

	// Lifecycle defaults, in ticks
	DefaultTickMillis          = 100
	DefaultDamageCooldownTicks = 30
	DefaultMaxActiveTicks      = 50
	DefaultRespawnDelayTicks   = 30
)

// ParseDirection maps an input string to a Direction. Unknown strings and the
// empty string parse as DirNone with ok=false.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight, DirNone:
		return Direction(s), true
	default:
		return DirNone, false
	}
}

// Delta returns the row/col offset of one step in the direction. DirNone is
// the zero offset.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Position is a grid coordinate. It compares by value and is used as a map
// key throughout the engine.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the position one step away in the given direction.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Tile is a single grid cell. Entry and exit are informational flags;
// passability depends only on Blocked.
type Tile struct {
	Blocked bool `json:"blocked"`
	Entry   bool `json:"entry,omitempty"`
	Exit    bool `json:"exit,omitempty"`
}
