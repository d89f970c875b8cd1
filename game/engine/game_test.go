package engine

import (
	"testing"
	"time"
)

// buildArenaGame assembles a 10x10 bordered arena with one basic reward next
// to the player and the exit in the far corner.
func buildArenaGame(t *testing.T) *Game {
	t.Helper()
	grid, err := NewGrid(10, 10)
	if err != nil {
		t.Fatalf("Failed to create grid: %v", err)
	}
	grid.CreateBorder()
	grid.SetEntryPoint(Position{Row: 1, Col: 1})
	grid.SetExitPoint(Position{Row: 8, Col: 8})

	game, err := NewGameBuilder().
		WithGrid(grid).
		WithPlayer(NewPlayer(Position{Row: 1, Col: 1})).
		AddReward(NewBasicReward(Position{Row: 1, Col: 2}, 10)).
		WithSeed(99).
		Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	return game
}

func TestTickIsNoOpBeforeStart(t *testing.T) {
	game := buildArenaGame(t)

	res := game.Tick(DirRight)
	if res.Applied {
		t.Error("Tick should not apply before Start")
	}
	if game.Player().Position() != (Position{Row: 1, Col: 1}) {
		t.Errorf("Player should not move before Start, got %v", game.Player().Position())
	}
	if game.Ticks() != 0 {
		t.Errorf("Clock must not advance before Start, got %d ticks", game.Ticks())
	}
}

func TestTickCollectsRewardOnArrival(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()

	res := game.Tick(DirRight)
	if !res.Applied || !res.Moved {
		t.Fatalf("Expected an applied, moving tick, got %+v", res)
	}
	if res.RewardsCollected != 1 {
		t.Errorf("Expected 1 reward collected, got %d", res.RewardsCollected)
	}
	if res.ScoreDelta != 10 {
		t.Errorf("Expected score delta 10, got %d", res.ScoreDelta)
	}
	if game.Score() != 10 {
		t.Errorf("Expected score 10 after one tick, got %d", game.Score())
	}
}

func TestMovementIntoWallHoldsPosition(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()

	res := game.Tick(DirUp) // border wall above the entry
	if res.Moved {
		t.Error("Player should not move into a wall")
	}
	if res.From != res.To {
		t.Errorf("Blocked move should keep From == To, got %v -> %v", res.From, res.To)
	}
	if game.Ticks() != 1 {
		t.Errorf("Clock advances even on a blocked move, got %d ticks", game.Ticks())
	}
}

func TestExitWithoutAllBasicsDoesNotWin(t *testing.T) {
	grid := gridFromRows(t, []string{
		"#####",
		"#...#",
		"#####",
	})
	grid.SetEntryPoint(Position{Row: 1, Col: 1})
	grid.SetExitPoint(Position{Row: 1, Col: 2})

	game, err := NewGameBuilder().
		WithGrid(grid).
		WithPlayer(NewPlayer(Position{Row: 1, Col: 1})).
		AddReward(NewBasicReward(Position{Row: 1, Col: 3}, 10)).
		WithSeed(5).
		Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}
	game.Start()

	res := game.Tick(DirRight) // onto the exit, reward still outstanding
	if res.Won {
		t.Error("Reaching the exit with basics outstanding must not win")
	}
	if game.IsOver() {
		t.Error("Game should continue when the exit is reached early")
	}

	game.Tick(DirRight) // collect the reward
	res = game.Tick(DirLeft)
	if !res.Won {
		t.Fatal("Expected victory on returning to the exit with all basics collected")
	}
	if !game.Won() || !game.IsOver() {
		t.Error("Victory should set Won and end the game")
	}
}

func TestScoreFloorEndsGame(t *testing.T) {
	spike := NewStationaryEnemy(Position{Row: 1, Col: 2}, 5, 1)
	game := buildCorridorGame(t, []Enemy{spike})
	game.Start()

	// Floor at -100, spike drains 5 per tick with cooldown 1.
	var lost bool
	for i := 0; i < 30 && !lost; i++ {
		dir := DirNone
		if i == 0 {
			dir = DirRight
		}
		res := game.Tick(dir)
		lost = res.Lost
	}

	if !lost {
		t.Fatal("Expected the score floor to end the game")
	}
	if game.Score() >= -100 {
		t.Errorf("Expected score below the floor, got %d", game.Score())
	}
	if game.Won() {
		t.Error("A score-floor defeat is not a victory")
	}
}

func TestElapsedTracksTicks(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()

	for i := 0; i < 5; i++ {
		game.Tick(DirNone)
	}

	if game.Ticks() != 5 {
		t.Fatalf("Expected 5 ticks, got %d", game.Ticks())
	}
	want := 5 * DefaultTickMillis * time.Millisecond
	if game.Elapsed() != want {
		t.Errorf("Expected elapsed %v, got %v", want, game.Elapsed())
	}
}

func TestResetRestoresInitialStateKeepsHistory(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()

	game.Tick(DirRight)
	game.Tick(DirDown)
	historyLen := len(game.History())
	if historyLen != 2 {
		t.Fatalf("Expected 2 history entries, got %d", historyLen)
	}

	game.Reset()

	if game.Player().Position() != (Position{Row: 1, Col: 1}) {
		t.Errorf("Reset should restore the player position, got %v", game.Player().Position())
	}
	if game.Score() != 0 {
		t.Errorf("Reset should zero the score, got %d", game.Score())
	}
	if game.Ticks() != 0 || game.Elapsed() != 0 {
		t.Errorf("Reset should rewind the clock, got %d ticks / %v", game.Ticks(), game.Elapsed())
	}
	if game.Status() != StatusNotStarted {
		t.Errorf("Reset should return to NotStarted, got %v", game.Status())
	}
	if len(game.History()) != historyLen {
		t.Errorf("History is cumulative and must survive Reset, got %d entries", len(game.History()))
	}

	// The collected reward comes back.
	game.Start()
	res := game.Tick(DirRight)
	if res.RewardsCollected != 1 {
		t.Errorf("Reward should be collectible again after Reset, got %d collected", res.RewardsCollected)
	}
	if len(game.History()) != historyLen+1 {
		t.Errorf("History should keep growing after Reset, got %d entries", len(game.History()))
	}
}

func TestTickAfterGameOverIsNoOp(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()
	game.End()

	res := game.Tick(DirRight)
	if res.Applied {
		t.Error("Tick should not apply after the game is over")
	}
	if game.Ticks() != 0 {
		t.Errorf("Clock must not advance after the game is over, got %d", game.Ticks())
	}
}

func TestBuilderRequiresGridAndPlayer(t *testing.T) {
	if _, err := NewGameBuilder().WithPlayer(NewPlayer(Position{})).Build(); err == nil {
		t.Error("Build should fail without a grid")
	}

	grid, _ := NewGrid(3, 3)
	if _, err := NewGameBuilder().WithGrid(grid).Build(); err == nil {
		t.Error("Build should fail without a player")
	}
}

func TestBuilderCountsBasicRewardsOnly(t *testing.T) {
	grid, _ := NewGrid(5, 5)
	game, err := NewGameBuilder().
		WithGrid(grid).
		WithPlayer(NewPlayer(Position{Row: 0, Col: 0})).
		AddReward(NewBasicReward(Position{Row: 1, Col: 1}, 10)).
		AddReward(NewBasicReward(Position{Row: 2, Col: 2}, 10)).
		AddReward(NewBonusReward(Position{Row: 3, Col: 3}, 25, 2, 2)).
		AddReward(NewFinalReward(Position{Row: 4, Col: 4}, 50)).
		Build()
	if err != nil {
		t.Fatalf("Failed to build game: %v", err)
	}

	if game.BasicToCollect() != 2 {
		t.Errorf("Only basic rewards raise the win threshold, got %d", game.BasicToCollect())
	}
}

func TestSnapshotReflectsGame(t *testing.T) {
	game := buildArenaGame(t)
	game.Start()
	game.Tick(DirRight)

	state := game.Snapshot()
	if state.Score != 10 {
		t.Errorf("Snapshot score should be 10, got %d", state.Score)
	}
	if state.PlayerPos != (Position{Row: 1, Col: 2}) {
		t.Errorf("Snapshot player position mismatch, got %v", state.PlayerPos)
	}
	if state.Ticks != 1 {
		t.Errorf("Snapshot ticks should be 1, got %d", state.Ticks)
	}
	if len(state.Layout) != 10 {
		t.Fatalf("Snapshot layout should have 10 rows, got %d", len(state.Layout))
	}
	if state.Layout[1][2] != 'P' {
		t.Errorf("Player should render at its position, row reads %q", state.Layout[1])
	}
	if state.GameOver || state.Victory {
		t.Error("Snapshot should reflect a running game")
	}
	if state.BasicCollected != 1 || state.BasicToCollect != 1 {
		t.Errorf("Snapshot counters mismatch: %d/%d", state.BasicCollected, state.BasicToCollect)
	}
}
