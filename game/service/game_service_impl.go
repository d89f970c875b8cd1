package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dpontes/gridraider/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Game.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Game.Snapshot(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Game.Snapshot(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Tick advances a session's game by one step
func (s *gameServiceImpl) Tick(ctx context.Context, sessionID, direction string, reset bool) (*TickOpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("invalid direction %q: use up, down, left, right or none", direction)
	}

	events := []GameEvent{}
	if reset {
		sess.Game.Reset()
		sess.Game.Start()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	scoreBefore := sess.Game.Score()
	res := sess.Game.Tick(dir)
	state := sess.Game.Snapshot()

	result := &TickOpResult{
		Applied:   res.Applied,
		Moved:     res.Moved,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}

	if res.Applied {
		result.Events = append(result.Events, s.extractTickEvents(sess, res, dir)...)
		result.Step = &StepInfo{
			Idx:              1,
			Dir:              string(dir),
			From:             res.From,
			To:               res.To,
			ScoreBefore:      scoreBefore,
			ScoreAfter:       sess.Game.Score(),
			RewardsCollected: res.RewardsCollected,
			Moved:            res.Moved,
			Damaged:          res.ScoreDelta < 0,
			Caught:           res.PlayerKilled,
			Victory:          res.Won,
		}
		if !res.Moved && dir != engine.DirNone {
			result.AttemptedTo = s.describeAttempt(sess, res.From, dir)
		}
	}

	return result, nil
}

// Run executes a sequence of ticks for a session
func (s *gameServiceImpl) Run(ctx context.Context, sessionID string, directions []string, reset bool) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if reset {
		sess.Game.Reset()
		sess.Game.Start()
	}

	startState := sess.Game.Snapshot()
	result := &RunResult{
		RequestedTicks: len(directions),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       startState.PlayerPos,
		StartScore:     startState.Score,
		GameOver:       startState.GameOver,
		Message:        startState.Message,
	}
	if reset {
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	// Limit run length to prevent abuse
	if len(directions) > engine.MaxRunDirections {
		result.Truncated = true
		result.Limit = engine.MaxRunDirections
		directions = directions[:engine.MaxRunDirections]
	}

	for i, raw := range directions {
		if sess.Game.IsOver() {
			result.StoppedReason = "game_over"
			result.StopReasonCode = "game_over"
			result.StoppedOnTick = result.TicksExecuted + 1
			break
		}

		dir, ok := engine.ParseDirection(raw)
		if !ok {
			return nil, fmt.Errorf("invalid direction %q at index %d", raw, i)
		}

		scoreBefore := sess.Game.Score()
		res := sess.Game.Tick(dir)
		if !res.Applied {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("tick %d not applied: game is not running", i+1)
			result.StopReasonCode = "game_over"
			result.StoppedOnTick = i + 1
			break
		}

		result.TicksExecuted++
		result.Events = append(result.Events, s.extractTickEvents(sess, res, dir)...)
		result.Steps = append(result.Steps, StepInfo{
			Idx:              i + 1,
			Dir:              string(dir),
			From:             res.From,
			To:               res.To,
			ScoreBefore:      scoreBefore,
			ScoreAfter:       sess.Game.Score(),
			RewardsCollected: res.RewardsCollected,
			Moved:            res.Moved,
			Damaged:          res.ScoreDelta < 0,
			Caught:           res.PlayerKilled,
			Victory:          res.Won,
		})

		// A deliberate move into a wall stops the run; the caller's plan is
		// clearly out of sync with the board.
		if !res.Moved && dir != engine.DirNone {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("tick %d blocked: %s", i+1, dir)
			result.StopReasonCode = "blocked"
			result.StoppedOnTick = i + 1
			result.AttemptedTo = s.describeAttempt(sess, res.From, dir)
			break
		}
	}

	endState := sess.Game.Snapshot()
	result.GameState = endState
	result.EndPos = endState.PlayerPos
	result.EndScore = endState.Score
	result.ScoreDelta = endState.Score - result.StartScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message
	result.LocalView3x3 = endState.LocalView3x3
	result.ThreatLevel = endState.ThreatLevel

	if result.GameOver {
		switch {
		case endState.Victory:
			result.StopReasonCode = "victory"
			result.GameOverCode = "victory"
		case !endState.PlayerAlive:
			result.StopReasonCode = "caught"
			result.GameOverCode = "caught"
		default:
			if result.StopReasonCode == "" || result.StopReasonCode == "game_over" {
				result.StopReasonCode = "score_floor"
			}
			result.GameOverCode = "score_floor"
		}
	}

	return result, nil
}

// Reset rewinds a session's game to its initial state and restarts it
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Game.Reset()
	sess.Game.Start()

	return sess.Game.Snapshot(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Game.Snapshot(), nil
}

// GetTickHistory returns paginated tick history
func (s *gameServiceImpl) GetTickHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Game.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of ticks
	var ticks []engine.TickHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			ticks = append(ticks, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			ticks = history[start:end]
		}
	}

	// Ensure ticks is not nil
	if ticks == nil {
		ticks = []engine.TickHistoryEntry{}
	}

	return &HistoryResponse{
		Ticks:       ticks,
		TotalTicks:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available arena configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific arena configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves an arena configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractTickEvents generates events from one tick result
func (s *gameServiceImpl) extractTickEvents(sess *Session, res engine.TickResult, dir engine.Direction) []GameEvent {
	events := []GameEvent{}
	now := time.Now()

	events = append(events, GameEvent{
		Type:      "tick",
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", dir, res.To.Row, res.To.Col),
		Timestamp: now,
		Position:  res.To,
	})

	if res.RewardsCollected > 0 {
		events = append(events, GameEvent{
			Type:      "reward_collected",
			Message:   fmt.Sprintf("Collected %d reward(s), score %d", res.RewardsCollected, sess.Game.Score()),
			Timestamp: now,
			Position:  res.To,
		})
	}

	if res.ScoreDelta < 0 {
		events = append(events, GameEvent{
			Type:      "damage",
			Message:   fmt.Sprintf("Took %d damage, score %d", -res.ScoreDelta, sess.Game.Score()),
			Timestamp: now,
			Position:  res.To,
		})
	}

	if res.PlayerKilled {
		events = append(events, GameEvent{
			Type:      "caught",
			Message:   sess.Game.Message(),
			Timestamp: now,
			Position:  res.To,
		})
	}

	if res.Won {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   sess.Game.Message(),
			Timestamp: now,
		})
	} else if res.Lost {
		events = append(events, GameEvent{
			Type:      "game_over",
			Message:   sess.Game.Message(),
			Timestamp: now,
		})
	}

	return events
}

// describeAttempt details the tile a blocked move tried to enter
func (s *gameServiceImpl) describeAttempt(sess *Session, from engine.Position, dir engine.Direction) *AttemptInfo {
	target := from.Step(dir)
	grid := sess.Game.Grid()

	tileType := "wall"
	if !grid.InBounds(target) {
		tileType = "boundary"
	}

	return &AttemptInfo{
		Row:      target.Row,
		Col:      target.Col,
		TileType: tileType,
		Passable: grid.IsPassable(target),
	}
}
