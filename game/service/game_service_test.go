package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dpontes/gridraider/game/engine"
	"github.com/dpontes/gridraider/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	game, err := engine.NewGameFromConfig(config)
	if err != nil {
		return nil, err
	}
	game.Start()

	session := &service.Session{
		ID:             id,
		Game:           game,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	corridor := &engine.GameConfig{
		Name:        "corridor",
		Description: "Straight corridor for deterministic runs",
		Width:       7,
		Height:      3,
		Layout: []string{
			"#######",
			"#E.C.X#",
			"#######",
		},
		BasicValue:  10,
		BonusValue:  25,
		FinalValue:  50,
		EnemyDamage: 5,
		TickMillis:  100,
		Messages:    engine.DefaultMessages(),
	}

	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"corridor": corridor,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["corridor"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() service.GameService {
	return service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
}

func TestCreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "corridor")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if info.ID == "" {
		t.Error("Session should have an ID")
	}
	if info.ConfigName != "corridor" {
		t.Errorf("Expected config name 'corridor', got %q", info.ConfigName)
	}
	if info.GameState == nil {
		t.Fatal("Session info should carry a game state")
	}
	if info.GameState.Status != engine.StatusRunning {
		t.Errorf("New session should be running, got %v", info.GameState.Status)
	}
}

func TestCreateSessionDefaultConfig(t *testing.T) {
	svc := newTestService()

	info, err := svc.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session with default config: %v", err)
	}
	if info.GameConfig.Name != "corridor" {
		t.Errorf("Expected default config, got %q", info.GameConfig.Name)
	}
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreateSession(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("Expected error for unknown config")
	}
	if !strings.Contains(err.Error(), "corridor") {
		t.Errorf("Error should list available configs, got: %v", err)
	}
}

func TestGetAndListSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "corridor")
	svc.CreateSession(ctx, "corridor")

	info, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if info.ID != created.ID {
		t.Errorf("Expected session %q, got %q", created.ID, info.ID)
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	if _, err := svc.GetSession(ctx, "missing"); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, _ := svc.CreateSession(ctx, "corridor")
	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.ID); err == nil {
		t.Error("Deleted session should not be retrievable")
	}
}

func TestTickMovesAndCollects(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	result, err := svc.Tick(ctx, info.ID, "right", false)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if !result.Applied || !result.Moved {
		t.Fatalf("Expected an applied, moving tick, got %+v", result)
	}
	if result.GameState.PlayerPos != (engine.Position{Row: 1, Col: 2}) {
		t.Errorf("Expected player at (1,2), got %v", result.GameState.PlayerPos)
	}

	// Second step lands on the reward.
	result, err = svc.Tick(ctx, info.ID, "right", false)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if result.Step == nil || result.Step.RewardsCollected != 1 {
		t.Fatalf("Expected a reward collection step, got %+v", result.Step)
	}
	if result.GameState.Score != 10 {
		t.Errorf("Expected score 10, got %d", result.GameState.Score)
	}

	var sawReward bool
	for _, ev := range result.Events {
		if ev.Type == "reward_collected" {
			sawReward = true
		}
	}
	if !sawReward {
		t.Error("Expected a reward_collected event")
	}
}

func TestTickBlockedMove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	result, err := svc.Tick(ctx, info.ID, "up", false)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if result.Moved {
		t.Error("Move into a wall should not move the player")
	}
	if result.AttemptedTo == nil {
		t.Fatal("Blocked move should describe the attempted tile")
	}
	if result.AttemptedTo.Passable {
		t.Error("Attempted wall tile should not be passable")
	}
}

func TestTickInvalidDirection(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	if _, err := svc.Tick(ctx, info.ID, "sideways", false); err == nil {
		t.Error("Expected error for invalid direction")
	}
}

func TestRunToVictory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	result, err := svc.Run(ctx, info.ID, []string{"right", "right", "right", "right"}, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.TicksExecuted != 4 {
		t.Errorf("Expected 4 ticks executed, got %d", result.TicksExecuted)
	}
	if !result.GameOver {
		t.Fatal("Run should end with the game over")
	}
	if result.GameOverCode != "victory" {
		t.Errorf("Expected victory code, got %q", result.GameOverCode)
	}
	if result.ScoreDelta != 10 {
		t.Errorf("Expected score delta 10, got %d", result.ScoreDelta)
	}
	if result.EndPos != (engine.Position{Row: 1, Col: 5}) {
		t.Errorf("Expected end position at the exit, got %v", result.EndPos)
	}
}

func TestRunStopsOnBlockedMove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	result, err := svc.Run(ctx, info.ID, []string{"right", "up", "right"}, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Success {
		t.Error("Run hitting a wall should not be a success")
	}
	if result.StopReasonCode != "blocked" {
		t.Errorf("Expected stop code 'blocked', got %q", result.StopReasonCode)
	}
	if result.StoppedOnTick != 2 {
		t.Errorf("Expected stop on tick 2, got %d", result.StoppedOnTick)
	}
	if result.AttemptedTo == nil {
		t.Error("Blocked run should describe the attempted tile")
	}
}

func TestRunTruncatesLongSequences(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	directions := make([]string, engine.MaxRunDirections+50)
	for i := range directions {
		directions[i] = "none"
	}

	result, err := svc.Run(ctx, info.ID, directions, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Truncated {
		t.Error("Over-long run should be truncated")
	}
	if result.Limit != engine.MaxRunDirections {
		t.Errorf("Expected limit %d, got %d", engine.MaxRunDirections, result.Limit)
	}
	if result.TicksExecuted != engine.MaxRunDirections {
		t.Errorf("Expected %d ticks executed, got %d", engine.MaxRunDirections, result.TicksExecuted)
	}
}

func TestResetRestartsGame(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	svc.Run(ctx, info.ID, []string{"right", "right"}, false)

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.PlayerPos != (engine.Position{Row: 1, Col: 1}) {
		t.Errorf("Reset should restore the entry position, got %v", state.PlayerPos)
	}
	if state.Score != 0 {
		t.Errorf("Reset should zero the score, got %d", state.Score)
	}
	if state.Status != engine.StatusRunning {
		t.Errorf("Reset session should be running again, got %v", state.Status)
	}
}

func TestGetTickHistoryPagination(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "corridor")

	for i := 0; i < 5; i++ {
		if _, err := svc.Tick(ctx, info.ID, "none", false); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	resp, err := svc.GetTickHistory(ctx, info.ID, service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"})
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if resp.TotalTicks != 5 {
		t.Errorf("Expected 5 total ticks, got %d", resp.TotalTicks)
	}
	if len(resp.Ticks) != 2 {
		t.Errorf("Expected page of 2, got %d", len(resp.Ticks))
	}
	if resp.TotalPages != 3 {
		t.Errorf("Expected 3 pages, got %d", resp.TotalPages)
	}
	if !resp.HasNext || resp.HasPrevious {
		t.Errorf("Page 1 of 3 should have next and no previous, got next=%v prev=%v", resp.HasNext, resp.HasPrevious)
	}
	if resp.Ticks[0].Tick != 1 {
		t.Errorf("Ascending order should start at tick 1, got %d", resp.Ticks[0].Tick)
	}

	// Descending default shows the most recent tick first.
	resp, err = svc.GetTickHistory(ctx, info.ID, service.HistoryOptions{})
	if err != nil {
		t.Fatalf("Failed to get history: %v", err)
	}
	if resp.Ticks[0].Tick != 5 {
		t.Errorf("Descending order should start at tick 5, got %d", resp.Ticks[0].Tick)
	}
}

func TestListConfigs(t *testing.T) {
	svc := newTestService()

	configs, err := svc.ListConfigs(context.Background())
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("Expected 1 config, got %d", len(configs))
	}
	if configs[0].ConfigID != "corridor" {
		t.Errorf("Expected config 'corridor', got %q", configs[0].ConfigID)
	}
}
