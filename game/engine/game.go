package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Status is the game state machine phase.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusRunning    Status = "running"
	StatusOver       Status = "over"
)

// Messages holds the user-facing strings surfaced through state snapshots.
// Formatting verbs are filled by the engine; see DefaultMessages for the
// expected arguments.
type Messages struct {
	Welcome         string `json:"welcome"`
	RewardCollected string `json:"reward_collected"`
	BonusCollected  string `json:"bonus_collected"`
	FinalCollected  string `json:"final_collected"`
	FinalLocked     string `json:"final_locked"`
	Damage          string `json:"damage"`
	Caught          string `json:"caught"`
	Victory         string `json:"victory"`
	Defeat          string `json:"defeat"`
}

// DefaultMessages returns the built-in message set.
func DefaultMessages() Messages {
	return Messages{
		Welcome:         "Collect every reward and reach the exit!",
		RewardCollected: "Reward collected (%d/%d)",
		BonusCollected:  "Bonus! +%d points",
		FinalCollected:  "Final treasure claimed! +%d points",
		FinalLocked:     "The final treasure is still locked",
		Damage:          "Ouch! -%d points",
		Caught:          "Caught! Game over",
		Victory:         "Victory! Final score: %d",
		Defeat:          "Game over",
	}
}

// TickResult summarizes what one simulation step did. The enclosing service
// layer turns it into user-facing events.
type TickResult struct {
	Applied          bool     `json:"applied"`
	Moved            bool     `json:"moved"`
	From             Position `json:"from"`
	To               Position `json:"to"`
	RewardsCollected int      `json:"rewards_collected"`
	ScoreDelta       int      `json:"score_delta"`
	PlayerKilled     bool     `json:"player_killed"`
	Won              bool     `json:"won"`
	Lost             bool     `json:"lost"`
}

// TickHistoryEntry records one executed tick for the history API.
type TickHistoryEntry struct {
	Tick       int64     `json:"tick"`
	Direction  Direction `json:"direction"`
	From       Position  `json:"from"`
	To         Position  `json:"to"`
	Score      int       `json:"score"`
	Timestamp  int64     `json:"timestamp"`
	GameOver   bool      `json:"game_over,omitempty"`
	ScoreDelta int       `json:"score_delta,omitempty"`
}

// Game is the aggregate root: it owns the grid, the player, the ordered
// enemy and reward lists, the score, and the clock. It is the only writer of
// simulation state and must not be ticked concurrently.
type Game struct {
	grid    *Grid
	player  *Player
	enemies []Enemy
	rewards []Reward

	score      int
	scoreFloor int

	ticks        int64
	tickDuration time.Duration
	elapsed      time.Duration

	status Status
	won    bool

	basicCollected int
	basicToCollect int

	rng      *rand.Rand
	messages Messages
	message  string

	history []TickHistoryEntry

	// Initial layout captured at build time, restored by Reset.
	initialPlayerPos Position
	initialEnemyPos  []Position
	initialRewardPos []Position
}

// Grid returns the game's map.
func (g *Game) Grid() *Grid { return g.grid }

// Player returns the game's player.
func (g *Game) Player() *Player { return g.player }

// Enemies returns the ordered enemy list.
func (g *Game) Enemies() []Enemy { return g.enemies }

// Rewards returns the ordered reward list.
func (g *Game) Rewards() []Reward { return g.rewards }

// Score returns the current score. It may be negative.
func (g *Game) Score() int { return g.score }

// Elapsed returns the simulated time: ticks times the fixed tick duration.
func (g *Game) Elapsed() time.Duration { return g.elapsed }

// Ticks returns the number of executed ticks since the last Start.
func (g *Game) Ticks() int64 { return g.ticks }

// Status returns the state machine phase.
func (g *Game) Status() Status { return g.status }

// IsOver reports whether the game reached a terminal state.
func (g *Game) IsOver() bool { return g.status == StatusOver }

// Won reports whether the terminal state was a victory.
func (g *Game) Won() bool { return g.won }

// BasicCollected returns how many basic rewards have been picked up.
func (g *Game) BasicCollected() int { return g.basicCollected }

// BasicToCollect returns the win-condition threshold.
func (g *Game) BasicToCollect() int { return g.basicToCollect }

// Message returns the most recent user-facing message.
func (g *Game) Message() string { return g.message }

// History returns the cumulative tick history. It survives Reset, matching
// the session history semantics of the service layer.
func (g *Game) History() []TickHistoryEntry { return g.history }

// Start enters Running from NotStarted or Over. It resets the clock and the
// over/won flags but deliberately keeps entity positions and score; a full
// rewind is Reset's job.
func (g *Game) Start() {
	g.status = StatusRunning
	g.ticks = 0
	g.elapsed = 0
	g.won = false
	g.message = g.messages.Welcome
	// Cooldown gates are expressed in ticks, so they rewind with the clock.
	for _, e := range g.enemies {
		if s, ok := e.(*StationaryEnemy); ok {
			s.resetCooldown()
		}
	}
}

// End moves the game to the terminal Over state. It stays terminal until the
// next Start or Reset.
func (g *Game) End() {
	g.status = StatusOver
}

// Reset rewinds the game to its built state: initial positions, zero score,
// zero counters, live player, fresh reward lifecycles. Tick history is
// cumulative and survives.
func (g *Game) Reset() {
	g.player.pos = g.initialPlayerPos
	g.player.alive = true

	for i, e := range g.enemies {
		switch v := e.(type) {
		case *StationaryEnemy:
			v.pos = g.initialEnemyPos[i]
			v.resetCooldown()
		case *MobileEnemy:
			v.pos = g.initialEnemyPos[i]
		}
	}
	for i, r := range g.rewards {
		switch v := r.(type) {
		case *BasicReward:
			v.reset(g.initialRewardPos[i])
		case *BonusReward:
			v.reset(g.initialRewardPos[i])
		case *FinalReward:
			v.reset(g.initialRewardPos[i])
		}
	}

	g.score = 0
	g.basicCollected = 0
	g.ticks = 0
	g.elapsed = 0
	g.won = false
	g.status = StatusNotStarted
	g.message = g.messages.Welcome
}

// Tick advances the simulation by one step: player movement, reward
// lifecycles, enemy pursuit, collision resolution, win/lose evaluation, and
// the clock. It is a no-op unless the game is Running.
func (g *Game) Tick(dir Direction) TickResult {
	res := TickResult{From: g.player.Position(), To: g.player.Position()}
	if g.status != StatusRunning {
		return res
	}
	res.Applied = true

	// 1. Player movement.
	next := g.player.DecideNext(g.grid, dir)
	g.player.MoveTo(next)
	res.To = next
	res.Moved = next != res.From

	// 2. Reward lifecycles, then enemy pursuit toward the player's new tile.
	for _, r := range g.rewards {
		if b, ok := r.(*BonusReward); ok {
			b.Tick(g.grid, g.enemies, g.rewards, g.rng)
		}
	}
	target := g.player.Position()
	for _, e := range g.enemies {
		if m, ok := e.(*MobileEnemy); ok {
			m.MoveTo(m.DecideNext(g.grid, target))
		}
	}

	// 3. Collision resolution (rewards strictly before enemies).
	scoreBefore := g.score
	g.resolveCollisions(&res)
	res.ScoreDelta = g.score - scoreBefore
	res.PlayerKilled = !g.player.Alive()

	// 4. Win/lose evaluation.
	if g.status == StatusOver {
		res.Lost = true
	} else if g.player.AtExit(g.grid) && g.basicCollected >= g.basicToCollect {
		g.won = true
		g.setMessage(g.messages.Victory, g.score)
		g.End()
		res.Won = true
	} else if !g.player.Alive() {
		g.End()
		res.Lost = true
	}

	// 5. Clock advance.
	g.ticks++
	g.elapsed += g.tickDuration

	g.history = append(g.history, TickHistoryEntry{
		Tick:       g.ticks,
		Direction:  dir,
		From:       res.From,
		To:         res.To,
		Score:      g.score,
		ScoreDelta: res.ScoreDelta,
		Timestamp:  time.Now().Unix(),
		GameOver:   g.status == StatusOver,
	})

	return res
}

// addScore is the single owner of score mutation; reward and enemy hooks are
// its only callers.
func (g *Game) addScore(delta int) {
	g.score += delta
}

// markBasicCollected advances the basic-reward counter, never past the
// threshold.
func (g *Game) markBasicCollected() {
	if g.basicCollected < g.basicToCollect {
		g.basicCollected++
	}
}

func (g *Game) setMessage(format string, args ...any) {
	if format == "" {
		return
	}
	if len(args) == 0 {
		g.message = format
		return
	}
	g.message = fmt.Sprintf(format, args...)
}

// GameBuilder assembles a Game atomically: grid, player, enemies, and
// rewards in one shot. Adding a basic reward bumps the win-condition
// threshold automatically.
type GameBuilder struct {
	grid         *Grid
	player       *Player
	enemies      []Enemy
	rewards      []Reward
	scoreFloor   int
	tickDuration time.Duration
	seed         int64
	messages     Messages
	threshold    int
}

// NewGameBuilder creates a builder with default tick duration, a zero score
// floor, and the built-in messages.
func NewGameBuilder() *GameBuilder {
	return &GameBuilder{
		tickDuration: DefaultTickMillis * time.Millisecond,
		messages:     DefaultMessages(),
	}
}

// WithGrid sets the game's map.
func (b *GameBuilder) WithGrid(g *Grid) *GameBuilder {
	b.grid = g
	return b
}

// WithPlayer sets the game's player.
func (b *GameBuilder) WithPlayer(p *Player) *GameBuilder {
	b.player = p
	return b
}

// AddEnemy appends an enemy. Order is preserved; collision resolution visits
// enemies in insertion order.
func (b *GameBuilder) AddEnemy(e Enemy) *GameBuilder {
	b.enemies = append(b.enemies, e)
	return b
}

// AddReward appends a reward. Basic rewards raise the win threshold; bonus
// and final rewards do not.
func (b *GameBuilder) AddReward(r Reward) *GameBuilder {
	b.rewards = append(b.rewards, r)
	if r.Kind() == RewardBasic {
		b.threshold++
	}
	return b
}

// WithScoreFloor sets the losing score boundary (default zero: the game ends
// once the score goes negative).
func (b *GameBuilder) WithScoreFloor(floor int) *GameBuilder {
	b.scoreFloor = floor
	return b
}

// WithTickDuration sets the fixed simulated duration of one tick.
func (b *GameBuilder) WithTickDuration(d time.Duration) *GameBuilder {
	if d > 0 {
		b.tickDuration = d
	}
	return b
}

// WithSeed fixes the RNG seed used by bonus relocation. Zero selects a
// time-based seed.
func (b *GameBuilder) WithSeed(seed int64) *GameBuilder {
	b.seed = seed
	return b
}

// WithMessages overrides the user-facing message set.
func (b *GameBuilder) WithMessages(m Messages) *GameBuilder {
	b.messages = m
	return b
}

// Build assembles the Game. A missing grid or player is a construction bug
// and fails fast.
func (b *GameBuilder) Build() (*Game, error) {
	if b.grid == nil {
		return nil, errors.New("game builder: grid is required")
	}
	if b.player == nil {
		return nil, errors.New("game builder: player is required")
	}

	seed := b.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		grid:             b.grid,
		player:           b.player,
		enemies:          b.enemies,
		rewards:          b.rewards,
		scoreFloor:       b.scoreFloor,
		tickDuration:     b.tickDuration,
		status:           StatusNotStarted,
		basicToCollect:   b.threshold,
		rng:              rand.New(rand.NewSource(seed)),
		messages:         b.messages,
		message:          b.messages.Welcome,
		initialPlayerPos: b.player.Position(),
	}
	for _, e := range b.enemies {
		g.initialEnemyPos = append(g.initialEnemyPos, e.Position())
	}
	for _, r := range b.rewards {
		g.initialRewardPos = append(g.initialRewardPos, r.Position())
	}
	return g, nil
}
