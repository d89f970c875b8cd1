package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func createTestConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Arena",
		Description: "Configuration for engine tests",
		Width:       7,
		Height:      5,
		Layout: []string{
			"#######",
			"#E.C.S#",
			"#.###.#",
			"#.CB.M#",
			"####X##",
		},
		Legend: map[string]string{
			"#": "wall",
			".": "floor",
			"E": "entry",
			"X": "exit",
			"C": "reward",
			"B": "bonus",
			"S": "spike",
			"M": "stalker",
		},
		BasicValue:             10,
		BonusValue:             25,
		FinalValue:             50,
		EnemyDamage:            5,
		DamageCooldownTicks:    3,
		BonusMaxActiveTicks:    10,
		BonusRespawnDelayTicks: 5,
		ScoreFloor:             -50,
		TickMillis:             100,
		Seed:                   42,
		Messages:               DefaultMessages(),
	}
}

func TestValidateGameConfigAcceptsValid(t *testing.T) {
	if err := ValidateGameConfig(createTestConfig()); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
}

func TestValidateGameConfigRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"nil layout", func(c *GameConfig) { c.Layout = nil }},
		{"missing name", func(c *GameConfig) { c.Name = "" }},
		{"missing description", func(c *GameConfig) { c.Description = "" }},
		{"width too small", func(c *GameConfig) { c.Width = 0 }},
		{"width too large", func(c *GameConfig) { c.Width = MaxMapDimension + 1 }},
		{"height mismatch", func(c *GameConfig) { c.Height = 6 }},
		{"row width mismatch", func(c *GameConfig) { c.Layout[1] = "#E.C.S" }},
		{"invalid character", func(c *GameConfig) { c.Layout[1] = "#E.C.Z#" }},
		{"no entry", func(c *GameConfig) { c.Layout[1] = "#..C.S#" }},
		{"two entries", func(c *GameConfig) { c.Layout[1] = "#EEC.S#" }},
		{"no exit", func(c *GameConfig) { c.Layout[4] = "#######" }},
		{"no basic reward", func(c *GameConfig) {
			c.Layout[1] = "#E...S#"
			c.Layout[3] = "#..B.M#"
		}},
		{"bad legend key", func(c *GameConfig) { c.Legend["Z"] = "mystery" }},
		{"bad legend value", func(c *GameConfig) { c.Legend["#"] = "door" }},
		{"zero basic value", func(c *GameConfig) { c.BasicValue = 0 }},
		{"negative enemy damage", func(c *GameConfig) { c.EnemyDamage = -1 }},
		{"negative tick millis", func(c *GameConfig) { c.TickMillis = -1 }},
		{"victory message without verb", func(c *GameConfig) { c.Messages.Victory = "You win" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := createTestConfig()
			tc.mutate(config)
			if err := ValidateGameConfig(config); err == nil {
				t.Errorf("Expected validation error for %s", tc.name)
			}
		})
	}
}

func TestValidateGameConfigNil(t *testing.T) {
	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestLoadGameConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.json")
	data := `{
		"name": "File Arena",
		"description": "Loaded from disk",
		"width": 5,
		"height": 3,
		"layout": ["#####", "#EC.X", "#####"],
		"basic_value": 10,
		"bonus_value": 25,
		"final_value": 50,
		"enemy_damage": 5,
		"tick_millis": 100
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadGameConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Name != "File Arena" {
		t.Errorf("Expected name 'File Arena', got %q", config.Name)
	}
	if config.Width != 5 || config.Height != 3 {
		t.Errorf("Expected 5x3, got %dx%d", config.Width, config.Height)
	}
}

func TestLoadGameConfigMissingFile(t *testing.T) {
	if _, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestNewGameFromConfig(t *testing.T) {
	config := createTestConfig()
	game, err := NewGameFromConfig(config)
	if err != nil {
		t.Fatalf("Failed to build game from config: %v", err)
	}

	entry, ok := game.Grid().EntryPoint()
	if !ok {
		t.Fatal("Grid should have an entry point")
	}
	if game.Player().Position() != entry {
		t.Errorf("Player should spawn at the entry, got %v want %v", game.Player().Position(), entry)
	}
	if _, ok := game.Grid().ExitPoint(); !ok {
		t.Error("Grid should have an exit point")
	}

	if len(game.Enemies()) != 2 {
		t.Errorf("Expected 2 enemies, got %d", len(game.Enemies()))
	}
	if len(game.Rewards()) != 3 {
		t.Errorf("Expected 3 rewards, got %d", len(game.Rewards()))
	}
	if game.BasicToCollect() != 2 {
		t.Errorf("Expected win threshold 2, got %d", game.BasicToCollect())
	}
	if game.Status() != StatusNotStarted {
		t.Errorf("Fresh game should be NotStarted, got %v", game.Status())
	}

	// Walls from the layout land on the grid.
	if !game.Grid().IsBlocked(Position{Row: 0, Col: 0}) {
		t.Error("Layout walls should block the grid")
	}
	if game.Grid().IsBlocked(Position{Row: 1, Col: 2}) {
		t.Error("Layout floor should stay passable")
	}
}

func TestNewGameFromConfigNilUsesDefault(t *testing.T) {
	game, err := NewGameFromConfig(nil)
	if err != nil {
		t.Fatalf("Nil config should fall back to the default arena: %v", err)
	}
	if game.Grid().Width() != 10 || game.Grid().Height() != 10 {
		t.Errorf("Default arena should be 10x10, got %dx%d", game.Grid().Width(), game.Grid().Height())
	}
}

func TestNewGameFromConfigRejectsInvalid(t *testing.T) {
	config := createTestConfig()
	config.Layout[1] = "#..C.S#" // drop the entry
	if _, err := NewGameFromConfig(config); err == nil {
		t.Error("Expected error for config without an entry")
	}
}
