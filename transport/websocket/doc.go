// Package websocket pushes live Grid Raider board state to spectators.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after each tick or run
//   - Connection lifecycle management with ping/pong keepalive
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// read and write goroutine pair.
//
// Message Protocol:
//
// Connections are read-only for clients. After every tick, run, or reset the
// API layer calls BroadcastToSession and each spectator of that session
// receives a JSON Message with event "state_update" and the full GameState
// snapshot. Custom events (for example "reward_collected") can be pushed via
// BroadcastEvent.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=abc1) when
// establishing the connection. State updates are broadcast only to clients
// connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// in the HTTP handler, after verifying the session exists:
//	hub.ServeWS(w, r, sessionID)
//
// Concurrency:
//
// The hub event loop serializes register, unregister, and broadcast
// operations. Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
