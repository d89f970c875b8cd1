package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Layout characters. Every map ships as ASCII art, one string per row.
const (
	charWall       = '#'
	charFloor      = '.'
	charEntry      = 'E'
	charExit       = 'X'
	charBasic      = 'C'
	charBonus      = 'B'
	charFinal      = 'F'
	charStationary = 'S'
	charMobile     = 'M'
)

// GameConfig is the JSON description of one arena: dimensions, ASCII layout,
// reward and enemy tuning, and user-facing messages.
type GameConfig struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Layout      []string          `json:"layout"`
	Legend      map[string]string `json:"legend,omitempty"`

	BasicValue int `json:"basic_value"`
	BonusValue int `json:"bonus_value"`
	FinalValue int `json:"final_value"`

	EnemyDamage         int `json:"enemy_damage"`
	DamageCooldownTicks int `json:"damage_cooldown_ticks"`

	BonusMaxActiveTicks    int `json:"bonus_max_active_ticks"`
	BonusRespawnDelayTicks int `json:"bonus_respawn_delay_ticks"`

	ScoreFloor int   `json:"score_floor"`
	TickMillis int   `json:"tick_millis"`
	Seed       int64 `json:"seed,omitempty"`

	Messages Messages `json:"messages"`
}

// knownLegend maps layout characters to their canonical meaning. A config's
// legend block is optional documentation; when present it must agree.
var knownLegend = map[string]string{
	"#": "wall",
	".": "floor",
	"E": "entry",
	"X": "exit",
	"C": "reward",
	"B": "bonus",
	"F": "final",
	"S": "spike",
	"M": "stalker",
}

// ValidateGameConfig checks a configuration for correctness and playability.
// Malformed construction input is the only fatal error class in the system,
// so the checks are strict.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Width < MinMapDimension || config.Width > MaxMapDimension {
		return fmt.Errorf("config validation: width must be between %d and %d, got %d",
			MinMapDimension, MaxMapDimension, config.Width)
	}
	if config.Height < MinMapDimension || config.Height > MaxMapDimension {
		return fmt.Errorf("config validation: height must be between %d and %d, got %d",
			MinMapDimension, MaxMapDimension, config.Height)
	}

	if len(config.Layout) != config.Height {
		return fmt.Errorf("config validation: layout must have %d rows to match height, got %d",
			config.Height, len(config.Layout))
	}

	entryCount := 0
	exitCount := 0
	basicCount := 0
	for i, row := range config.Layout {
		if len(row) != config.Width {
			return fmt.Errorf("config validation: row %d must have %d characters to match width, got %d",
				i+1, config.Width, len(row))
		}
		for j, char := range row {
			switch char {
			case charWall, charFloor, charBonus, charFinal, charStationary, charMobile:
			case charEntry:
				entryCount++
			case charExit:
				exitCount++
			case charBasic:
				basicCount++
			default:
				return fmt.Errorf("config validation: invalid character '%c' at row %d, col %d", char, i+1, j+1)
			}
		}
	}

	if entryCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one entry (E), got %d", entryCount)
	}
	if exitCount != 1 {
		return fmt.Errorf("config validation: layout must contain exactly one exit (X), got %d", exitCount)
	}
	if basicCount == 0 {
		return fmt.Errorf("config validation: layout must contain at least one basic reward (C)")
	}

	for key, value := range config.Legend {
		expected, ok := knownLegend[key]
		if !ok {
			return fmt.Errorf("config validation: legend key '%s' is not a layout character", key)
		}
		if value != expected {
			return fmt.Errorf("config validation: legend['%s'] must be '%s', got '%s'", key, expected, value)
		}
	}

	if config.BasicValue <= 0 {
		return fmt.Errorf("config validation: basic_value must be positive, got %d", config.BasicValue)
	}
	if config.EnemyDamage < 0 {
		return fmt.Errorf("config validation: enemy_damage must not be negative, got %d", config.EnemyDamage)
	}
	if config.TickMillis < 0 {
		return fmt.Errorf("config validation: tick_millis must not be negative, got %d", config.TickMillis)
	}

	if config.Messages.Victory != "" && !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for the score")
	}
	if config.Messages.RewardCollected != "" && strings.Count(config.Messages.RewardCollected, "%d") != 2 {
		return fmt.Errorf("config validation: messages.reward_collected must contain %%d twice for progress")
	}

	return nil
}

// LoadGameConfig loads and validates a configuration from a JSON file. The
// CONFIG_DIR environment variable can redirect paths under "configs/".
func LoadGameConfig(filename string) (*GameConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns the built-in bordered arena used when no config is
// supplied.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "default",
		Description: "Built-in bordered arena",
		Width:       10,
		Height:      10,
		Layout: []string{
			"##########",
			"#E.....C.#",
			"#.##.###.#",
			"#.#C...#.#",
			"#.#.#S.#.#",
			"#...#..B.#",
			"#.###.##.#",
			"#.C....M.#",
			"#.....F.X#",
			"##########",
		},
		BasicValue:             10,
		BonusValue:             25,
		FinalValue:             50,
		EnemyDamage:            5,
		DamageCooldownTicks:    DefaultDamageCooldownTicks,
		BonusMaxActiveTicks:    DefaultMaxActiveTicks,
		BonusRespawnDelayTicks: DefaultRespawnDelayTicks,
		TickMillis:             DefaultTickMillis,
		Messages:               DefaultMessages(),
	}
}

// NewGameFromConfig assembles a Game from a validated configuration. A nil
// config selects the built-in default arena. The returned game is in
// NotStarted state; callers invoke Start before ticking.
func NewGameFromConfig(config *GameConfig) (*Game, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	grid, err := NewGrid(config.Width, config.Height)
	if err != nil {
		return nil, err
	}

	messages := config.Messages
	if messages == (Messages{}) {
		messages = DefaultMessages()
	}
	fillMessageDefaults(&messages)

	builder := NewGameBuilder().
		WithGrid(grid).
		WithScoreFloor(config.ScoreFloor).
		WithSeed(config.Seed).
		WithMessages(messages)

	if config.TickMillis > 0 {
		builder.WithTickDuration(time.Duration(config.TickMillis) * time.Millisecond)
	}

	pathfinder := NewAStarPathfinder()

	for row, line := range config.Layout {
		for col, char := range line {
			pos := Position{Row: row, Col: col}
			switch char {
			case charWall:
				grid.SetBlocked(pos, true)
			case charEntry:
				if err := grid.SetEntryPoint(pos); err != nil {
					return nil, err
				}
				builder.WithPlayer(NewPlayer(pos))
			case charExit:
				if err := grid.SetExitPoint(pos); err != nil {
					return nil, err
				}
			case charBasic:
				builder.AddReward(NewBasicReward(pos, config.BasicValue))
			case charBonus:
				builder.AddReward(NewBonusReward(pos, config.BonusValue,
					config.BonusMaxActiveTicks, config.BonusRespawnDelayTicks))
			case charFinal:
				builder.AddReward(NewFinalReward(pos, config.FinalValue))
			case charStationary:
				builder.AddEnemy(NewStationaryEnemy(pos, config.EnemyDamage, config.DamageCooldownTicks))
			case charMobile:
				builder.AddEnemy(NewMobileEnemy(pos, pathfinder))
			}
		}
	}

	return builder.Build()
}

func fillMessageDefaults(m *Messages) {
	defaults := DefaultMessages()
	if m.Welcome == "" {
		m.Welcome = defaults.Welcome
	}
	if m.RewardCollected == "" {
		m.RewardCollected = defaults.RewardCollected
	}
	if m.BonusCollected == "" {
		m.BonusCollected = defaults.BonusCollected
	}
	if m.FinalCollected == "" {
		m.FinalCollected = defaults.FinalCollected
	}
	if m.FinalLocked == "" {
		m.FinalLocked = defaults.FinalLocked
	}
	if m.Damage == "" {
		m.Damage = defaults.Damage
	}
	if m.Caught == "" {
		m.Caught = defaults.Caught
	}
	if m.Victory == "" {
		m.Victory = defaults.Victory
	}
	if m.Defeat == "" {
		m.Defeat = defaults.Defeat
	}
}
