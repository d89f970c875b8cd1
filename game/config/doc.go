// Package config provides arena configuration management for Grid Raider.
//
// The config package handles:
//   - Loading arena configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Arena configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid layout using character mapping (#=wall, .=floor, E=entry, X=exit,
//     C=reward, B=bonus, F=final, S=spike, M=stalker)
//   - Reward values and enemy tuning (damage, cooldowns, bonus respawn)
//   - Game messages for various events
//   - Score floor and tick duration
//
// Available Configurations:
//
// The package ships with arenas of varying difficulty:
//   - classic: 10x10 arena with balanced hazards
//   - arena: larger open map with a stalker and a bonus cycle
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Proper grid dimensions and layout
//   - Valid tile characters and legend mappings
//   - Exactly one entry and one exit, at least one basic reward
//   - Required message templates
//   - Sane reward and damage parameters
package config
