package engine

// EnemyKind discriminates enemy variants in snapshots and tooling.
type EnemyKind string

const (
	EnemyStationary EnemyKind = "stationary"
	EnemyMobile     EnemyKind = "mobile"
)

// Enemy is the shared contact contract for hazards. Variants decide what
// touching the player costs.
type Enemy interface {
	Position() Position
	Kind() EnemyKind
	OnContact(g *Game)
}

// StationaryEnemy is a fixed hazard that charges a score penalty on contact,
// gated by a per-instance cooldown so sustained overlap does not drain the
// score every tick.
type StationaryEnemy struct {
	pos            Position
	damage         int
	cooldownTicks  int64
	lastDamageTick int64
}

// NewStationaryEnemy creates a hazard at pos. damage is the score penalty per
// hit; cooldownTicks is the minimum number of ticks between hits.
func NewStationaryEnemy(pos Position, damage, cooldownTicks int) *StationaryEnemy {
	if cooldownTicks < 1 {
		cooldownTicks = DefaultDamageCooldownTicks
	}
	return &StationaryEnemy{
		pos:            pos,
		damage:         damage,
		cooldownTicks:  int64(cooldownTicks),
		lastDamageTick: -1,
	}
}

// Position returns the hazard's fixed position.
func (e *StationaryEnemy) Position() Position { return e.pos }

// Kind returns EnemyStationary.
func (e *StationaryEnemy) Kind() EnemyKind { return EnemyStationary }

// Damage returns the score penalty per hit.
func (e *StationaryEnemy) Damage() int { return e.damage }

// OnContact applies the damage penalty unless the cooldown window since the
// last hit has not elapsed yet.
func (e *StationaryEnemy) OnContact(g *Game) {
	if e.lastDamageTick >= 0 && g.ticks-e.lastDamageTick < e.cooldownTicks {
		return
	}
	e.lastDamageTick = g.ticks
	g.addScore(-e.damage)
	g.setMessage(g.messages.Damage, e.damage)
}

func (e *StationaryEnemy) resetCooldown() { e.lastDamageTick = -1 }

// MobileEnemy pursues the player by recomputing a full A* path every tick and
// stepping onto the second waypoint. Recomputation without caching is a
// simplicity trade-off that is fine at these map sizes.
type MobileEnemy struct {
	pos        Position
	pathfinder Pathfinder

	// lastHorizontal is only consumed by rendering-facing queries (sprite
	// facing); it never influences the simulation.
	lastHorizontal Direction
}

// NewMobileEnemy creates a pursuer at pos. The pathfinder is stateless and
// may be shared between enemies.
func NewMobileEnemy(pos Position, pf Pathfinder) *MobileEnemy {
	return &MobileEnemy{pos: pos, pathfinder: pf, lastHorizontal: DirRight}
}

// Position returns the pursuer's current position.
func (e *MobileEnemy) Position() Position { return e.pos }

// Kind returns EnemyMobile.
func (e *MobileEnemy) Kind() EnemyKind { return EnemyMobile }

// LastHorizontalDirection returns the facing of the pursuer's most recent
// horizontal movement.
func (e *MobileEnemy) LastHorizontalDirection() Direction { return e.lastHorizontal }

// DecideNext plans a path to target and returns the next waypoint. With no
// path, or a path of fewer than two waypoints (already co-located), or a next
// waypoint that is not passable, the pursuer holds position.
func (e *MobileEnemy) DecideNext(g *Grid, target Position) Position {
	path := e.pathfinder.FindPath(g, e.pos, target)
	if len(path) < 2 {
		return e.pos
	}
	next := path[1]
	if !g.IsPassable(next) {
		return e.pos
	}
	return next
}

// MoveTo overwrites the pursuer position and updates the rendering-facing
// horizontal direction.
func (e *MobileEnemy) MoveTo(pos Position) {
	if pos.Col < e.pos.Col {
		e.lastHorizontal = DirLeft
	} else if pos.Col > e.pos.Col {
		e.lastHorizontal = DirRight
	}
	e.pos = pos
}

// OnContact kills the player. Contact with a pursuer is always lethal; there
// is no cooldown.
func (e *MobileEnemy) OnContact(g *Game) {
	g.player.kill()
	g.setMessage("%s", g.messages.Caught)
}
