// Package websocket provides live match updates over WebSocket.
//
// The websocket package implements:
//   - Match-scoped WebSocket connections
//   - Automatic match summary broadcasting after state changes
//   - Connection lifecycle management with ping/pong keepalive
//   - Custom event broadcasting
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by dedicated
// read and write goroutines that manage delivery, keepalive, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - {match_id: "a1b2c3d4", event: "match_update", match: {...}}
//   - {match_id: "a1b2c3d4", event: "custom-event", data: ...}
//
// Clients do not send messages; the connection is broadcast-only and kept
// alive by the server's ping cycle.
//
// Match Integration:
//
// Connections are match-scoped. Clients specify the match via query
// parameter (?match=a1b2c3d4) when establishing the connection. Updates
// are broadcast only to clients watching the same match.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a mutating operation:
//	hub.BroadcastToMatch(matchID, matchInfo)
//
// Connection Lifecycle:
//
// 1. Client connects with a match ID
// 2. Connection registered with hub
// 3. Client receives a summary after every mutating operation
// 4. Disconnection triggers cleanup; empty match rooms are removed
//
// Concurrency:
//
// The hub serializes register/unregister/broadcast through channels.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
