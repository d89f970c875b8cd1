package engine

import "math/rand"

// RewardKind discriminates reward variants in snapshots and tooling.
type RewardKind string

const (
	RewardBasic RewardKind = "basic"
	RewardBonus RewardKind = "bonus"
	RewardFinal RewardKind = "final"
)

// relocationAttempts bounds the random search for a fresh bonus tile before
// falling back to the previous position.
const relocationAttempts = 32

// Reward is the shared collection contract. Each variant decides whether a
// collection attempt succeeds and applies its own score delta; double
// collection is a guarded no-op everywhere, never an error.
type Reward interface {
	Position() Position
	Kind() RewardKind
	Value() int
	Bonus() bool
	Collected() bool
	OnCollect(g *Game) bool
}

// BasicReward is a required collectible. Collecting every basic reward is
// part of the win condition.
type BasicReward struct {
	pos       Position
	value     int
	collected bool
}

// NewBasicReward creates a basic reward worth value points.
func NewBasicReward(pos Position, value int) *BasicReward {
	return &BasicReward{pos: pos, value: value}
}

// Position returns the reward's position.
func (r *BasicReward) Position() Position { return r.pos }

// Kind returns RewardBasic.
func (r *BasicReward) Kind() RewardKind { return RewardBasic }

// Value returns the score delta on collection.
func (r *BasicReward) Value() int { return r.value }

// Bonus returns false.
func (r *BasicReward) Bonus() bool { return false }

// Collected reports whether the reward has been picked up.
func (r *BasicReward) Collected() bool { return r.collected }

// OnCollect marks the reward collected, credits the score, and advances the
// game's basic-collected counter. Idempotent: a second call is a no-op.
func (r *BasicReward) OnCollect(g *Game) bool {
	if r.collected {
		return false
	}
	r.collected = true
	g.addScore(r.value)
	g.markBasicCollected()
	g.setMessage(g.messages.RewardCollected, g.basicCollected, g.basicToCollect)
	return true
}

func (r *BasicReward) reset(pos Position) {
	r.pos = pos
	r.collected = false
}

// FinalReward is the gated collectible: picking it up requires every basic
// reward first. A rejected attempt mutates nothing.
type FinalReward struct {
	pos       Position
	value     int
	collected bool
}

// NewFinalReward creates the final reward worth value points.
func NewFinalReward(pos Position, value int) *FinalReward {
	return &FinalReward{pos: pos, value: value}
}

// Position returns the reward's position.
func (r *FinalReward) Position() Position { return r.pos }

// Kind returns RewardFinal.
func (r *FinalReward) Kind() RewardKind { return RewardFinal }

// Value returns the score delta on collection.
func (r *FinalReward) Value() int { return r.value }

// Bonus returns false.
func (r *FinalReward) Bonus() bool { return false }

// Collected reports whether the reward has been picked up.
func (r *FinalReward) Collected() bool { return r.collected }

// OnCollect succeeds only once the basic-reward threshold is met. The
// rejection is a rule non-event, not an error.
func (r *FinalReward) OnCollect(g *Game) bool {
	if r.collected {
		return false
	}
	if g.basicCollected < g.basicToCollect {
		g.setMessage("%s", g.messages.FinalLocked)
		return false
	}
	r.collected = true
	g.addScore(r.value)
	g.setMessage(g.messages.FinalCollected, r.value)
	return true
}

func (r *FinalReward) reset(pos Position) {
	r.pos = pos
	r.collected = false
}

// BonusReward is an optional, time-limited collectible that cycles between
// an active window and a respawn delay, relocating to a fresh tile each time
// it reappears. Once collected it leaves the cycle permanently.
type BonusReward struct {
	pos       Position
	value     int
	collected bool

	active                bool
	ticksActive           int
	ticksSinceDisappeared int
	maxActiveTicks        int
	respawnDelayTicks     int
	permanentlyCollected  bool
}

// NewBonusReward creates an active bonus reward. maxActiveTicks bounds the
// visible window; respawnDelayTicks is the wait before it relocates and
// reappears.
func NewBonusReward(pos Position, value, maxActiveTicks, respawnDelayTicks int) *BonusReward {
	if maxActiveTicks < 1 {
		maxActiveTicks = DefaultMaxActiveTicks
	}
	if respawnDelayTicks < 1 {
		respawnDelayTicks = DefaultRespawnDelayTicks
	}
	return &BonusReward{
		pos:               pos,
		value:             value,
		active:            true,
		maxActiveTicks:    maxActiveTicks,
		respawnDelayTicks: respawnDelayTicks,
	}
}

// Position returns the reward's current position.
func (r *BonusReward) Position() Position { return r.pos }

// Kind returns RewardBonus.
func (r *BonusReward) Kind() RewardKind { return RewardBonus }

// Value returns the score delta on collection.
func (r *BonusReward) Value() int { return r.value }

// Bonus returns true.
func (r *BonusReward) Bonus() bool { return true }

// Collected reports whether the reward has been picked up.
func (r *BonusReward) Collected() bool { return r.collected }

// Active reports whether the reward is currently visible and collectible.
func (r *BonusReward) Active() bool { return r.active }

// PermanentlyCollected reports whether the reward has left the respawn cycle.
func (r *BonusReward) PermanentlyCollected() bool { return r.permanentlyCollected }

// OnCollect succeeds only while the reward is active and uncollected. On
// success the reward is gone for good.
func (r *BonusReward) OnCollect(g *Game) bool {
	if !r.active || r.collected {
		return false
	}
	r.collected = true
	r.permanentlyCollected = true
	g.addScore(r.value)
	g.setMessage(g.messages.BonusCollected, r.value)
	r.disappear()
	return true
}

// Tick drives the reward's own lifecycle: expire after the active window,
// wait out the respawn delay, then relocate and reappear.
func (r *BonusReward) Tick(g *Grid, enemies []Enemy, rewards []Reward, rng *rand.Rand) {
	if r.permanentlyCollected {
		return
	}
	if r.active {
		r.ticksActive++
		if r.ticksActive >= r.maxActiveTicks {
			r.disappear()
		}
		return
	}
	r.ticksSinceDisappeared++
	if r.ticksSinceDisappeared < r.respawnDelayTicks {
		return
	}
	r.relocate(g, enemies, rewards, rng)
	r.appear()
}

func (r *BonusReward) appear() {
	r.active = true
	r.ticksActive = 0
}

func (r *BonusReward) disappear() {
	r.active = false
	r.ticksActive = 0
	r.ticksSinceDisappeared = 0
}

// relocate picks a random passable, non-entry/non-exit tile that overlaps no
// enemy and no other live reward. The retry count is bounded; when every
// attempt collides, the previous position is kept.
func (r *BonusReward) relocate(g *Grid, enemies []Enemy, rewards []Reward, rng *rand.Rand) {
	for i := 0; i < relocationAttempts; i++ {
		candidate := Position{Row: rng.Intn(g.Height()), Col: rng.Intn(g.Width())}
		if !g.IsPassable(candidate) || g.IsEntry(candidate) || g.IsExit(candidate) {
			continue
		}
		if positionOccupied(candidate, r, enemies, rewards) {
			continue
		}
		r.pos = candidate
		return
	}
}

func (r *BonusReward) reset(pos Position) {
	r.pos = pos
	r.collected = false
	r.active = true
	r.ticksActive = 0
	r.ticksSinceDisappeared = 0
	r.permanentlyCollected = false
}

func positionOccupied(p Position, self Reward, enemies []Enemy, rewards []Reward) bool {
	for _, e := range enemies {
		if e.Position() == p {
			return true
		}
	}
	for _, other := range rewards {
		if other == self || other.Position() != p {
			continue
		}
		if b, ok := other.(*BonusReward); ok {
			if b.active {
				return true
			}
			continue
		}
		if !other.Collected() {
			return true
		}
	}
	return false
}
