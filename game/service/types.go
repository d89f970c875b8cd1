package service

import (
	"time"

	"github.com/dpontes/gridraider/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// TickOpResult contains the result of a single tick operation
type TickOpResult struct {
	Applied     bool              `json:"applied"`
	Moved       bool              `json:"moved"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// RunResult contains the result of a multi-tick run
type RunResult struct {
	// Summary
	TicksExecuted  int               `json:"ticks_executed"`
	RequestedTicks int               `json:"requested_ticks"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: blocked|caught|score_floor|game_over|victory
	StoppedOnTick  int               `json:"stopped_on_tick,omitempty"`  // 1-based index of the tick that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos   engine.Position `json:"start_pos"`
	EndPos     engine.Position `json:"end_pos"`
	StartScore int             `json:"start_score"`
	EndScore   int             `json:"end_score"`
	ScoreDelta int             `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	GameOver     bool     `json:"game_over"`
	GameOverCode string   `json:"game_over_code,omitempty"`
	Message      string   `json:"message,omitempty"`
	LocalView3x3 []string `json:"local_view_3x3,omitempty"`
	ThreatLevel  string   `json:"threat_level,omitempty"`
}

// StepInfo is a compact record for each executed tick in a run
type StepInfo struct {
	Idx              int             `json:"idx"`
	Dir              string          `json:"dir"`
	From             engine.Position `json:"from"`
	To               engine.Position `json:"to"`
	ScoreBefore      int             `json:"score_before"`
	ScoreAfter       int             `json:"score_after"`
	RewardsCollected int             `json:"rewards_collected,omitempty"`
	Moved            bool            `json:"moved"`
	Damaged          bool            `json:"damaged,omitempty"`
	Caught           bool            `json:"caught,omitempty"`
	Victory          bool            `json:"victory,omitempty"`
}

// AttemptInfo details the first blocked target tile attempted
type AttemptInfo struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	TileType string `json:"tile_type"`
	Passable bool   `json:"passable"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "tick", "reward_collected", "damage", "caught", "game_over", "victory", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures tick history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated tick history
type HistoryResponse struct {
	Ticks       []engine.TickHistoryEntry `json:"ticks"`
	TotalTicks  int                       `json:"total_ticks"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about an arena configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
