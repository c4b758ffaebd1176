// Package api provides the HTTP REST interface for the battle grid engine.
//
// The api package implements:
//   - RESTful endpoints for match lifecycle and play operations
//   - Configuration listing, retrieval and creation
//   - WebSocket upgrade handling for live match updates
//   - JSON error responses with rule-aware status codes
//
// Endpoints:
//
// Match Management:
//   - POST /api/matches - Create a new match (optional config_id in body)
//   - GET /api/matches - List matches (sort, order, limit query params)
//   - GET /api/matches/{id} - Get match summary
//   - DELETE /api/matches/{id} - Delete a match
//
// Setup:
//   - POST /api/matches/{id}/place - Place a single ship
//   - POST /api/matches/{id}/autoplace - Randomly place a player's remaining ships
//   - POST /api/matches/{id}/start - Begin play once every fleet is placed
//
// Play:
//   - POST /api/matches/{id}/shoot - Fire at a position
//   - POST /api/matches/{id}/skip - Forfeit the current turn
//
// State:
//   - GET /api/matches/{id}/board/{player} - Board view (reveal=true shows ships)
//   - GET /api/matches/{id}/moves - Move log with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a new configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Errors are returned as:
//
//	{
//	  "error": "error message"
//	}
//
// Rule violations (wrong turn, repeated shot, overlapping placement) map to
// 409 Conflict; unknown matches, players and configs map to 404.
//
// Usage:
//
//	server := api.NewServer(matchService, hub)
//	http.ListenAndServe(":8080", server)
//
// WebSocket:
//
// GET /ws?match={id} upgrades the connection and subscribes the client to
// match summaries pushed after every mutating operation.
package api
