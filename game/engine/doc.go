// Package engine provides the core simulation for Grid Raider.
//
// The engine package implements the game mechanics including:
//   - Grid-based movement and collision resolution
//   - A* pathfinding for mobile enemies
//   - Reward collection, bonus respawn cycles, and the final treasure gate
//   - Tick-driven game state management
//   - Configuration loading and validation
//
// Core Types:
//
// Game holds the live simulation and advances one step per Tick call.
// GameBuilder assembles a Game from a grid, a player, enemies, and rewards.
// GameConfig defines an arena loaded from JSON; GameState is the read-only
// snapshot handed to transport layers.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewGameFromConfig(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game.Start()
//	result := game.Tick(engine.DirRight)
//	state := game.Snapshot()
//
// Game Rules:
//
// The player moves over a grid collecting rewards while avoiding enemies.
// Stationary spikes drain score on contact, mobile stalkers chase the player
// and end the game on touch. The game ends in victory when the player reaches
// the exit after collecting every basic reward, or in defeat when the player
// is caught or the score falls below the floor.
package engine
