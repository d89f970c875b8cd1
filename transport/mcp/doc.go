// Package mcp provides a Model Context Protocol server for Grid Raider.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for every game operation
//   - A thin HTTP proxy to the REST API (the MCP process owns no game state)
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current game state with arena visualization
//   - tick: Advance one tick with a direction (or "none" to wait)
//   - run: Execute a sequence of directions, one per tick
//   - reset_game: Reset game to initial state
//   - tick_history: Retrieve tick history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available arena configurations
//   - game_instructions: Full rules and strategy reference
//   - describe_tile: Inspect a single tile by row/col
//
// Architecture:
//
// The Client wraps an MCP server whose tool handlers call the REST API over
// HTTP. This keeps a single source of truth for sessions: agents connected
// over MCP and spectators connected over WebSocket see the same games.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	srv := client.GetMCPServer()
//	// serve srv over stdio or HTTP
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game tick by tick
//   - Develop and test routing strategies
//   - Analyze board states and enemy positions
//   - Manage multiple concurrent game sessions
//   - Learn from tick history
package mcp
