package engine

// Player is the user-controlled actor. Its position is mutated once per tick
// by the game loop; the alive flag is mutated only by enemy contact.
type Player struct {
	pos   Position
	alive bool
}

// NewPlayer creates a live player at pos.
func NewPlayer(pos Position) *Player {
	return &Player{pos: pos, alive: true}
}

// Position returns the player's current position.
func (p *Player) Position() Position { return p.pos }

// Alive reports whether the player survived enemy contact so far.
func (p *Player) Alive() bool { return p.alive }

// DecideNext applies one cardinal step in the given direction and returns the
// resulting position. A DirNone input, or a target that is out of bounds or
// blocked, resolves to the current position; a blocked move is a normal
// simulation outcome, not an error.
func (p *Player) DecideNext(g *Grid, dir Direction) Position {
	if dir == DirNone {
		return p.pos
	}
	next := p.pos.Step(dir)
	if !g.IsPassable(next) {
		return p.pos
	}
	return next
}

// MoveTo overwrites the player position unconditionally. Callers validate the
// target via DecideNext first.
func (p *Player) MoveTo(pos Position) { p.pos = pos }

// Collect delegates to the reward's own collection hook. The player never
// touches score bookkeeping directly; rewards own their score deltas.
func (p *Player) Collect(g *Game, r Reward) bool {
	return r.OnCollect(g)
}

// AtExit reports whether the player stands on the grid's exit tile.
func (p *Player) AtExit(g *Grid) bool {
	exit, ok := g.ExitPoint()
	return ok && p.pos == exit
}

func (p *Player) kill() { p.alive = false }
