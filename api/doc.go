// Package api provides HTTP REST API handlers for Grid Raider.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/tick - Advance one tick
//   - POST /api/sessions/{id}/run - Execute a direction sequence
//   - POST /api/sessions/{id}/reset - Reset the game
//   - GET /api/sessions/{id}/history - Get tick history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a new configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON.
//
// Tick requests are sent as POST with JSON body:
//
//	{
//	  "direction": "up|down|left|right|none",
//	  "reset": true|false // optional reset before the tick
//	}
//
// Run requests carry a direction sequence:
//
//	{
//	  "directions": ["up", "up", "right"],
//	  "reset": true|false
//	}
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Enriched Responses (Tick and Run)
//
// Tick (POST /api/sessions/{id}/tick)
//   Response:
//     - step: { dir, from{row,col}, to{row,col}, score_before, score_after, rewards_collected, moved }
//     - attempted_to: { row, col, tile_type, passable } // present when blocked
//     - game_state additions:
//         local_view_3x3: ["...","...","..."] // 3x3 characters around player
//         threat_level: "SAFE|CAUTION|DANGER|CRITICAL"
//
// Run (POST /api/sessions/{id}/run)
//   Response:
//     - requested_ticks, ticks_executed
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_tick (1-based), truncated, limit
//     - steps: [{ idx, dir, from, to, score_before, score_after, rewards_collected, moved, damaged?, caught?, victory? }]
//     - attempted_to: blocked target tile on first block
//     - start_pos, end_pos, start_score, end_score, score_delta
//     - local_view_3x3, threat_level
