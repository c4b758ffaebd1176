// Package mcp provides a Model Context Protocol interface to the battle grid.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for match setup, play and inspection
//   - Thin HTTP proxying to the REST API
//   - Stdio transport mode
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_match: Create a new match with config selection
//   - list_matches: List all active matches
//   - get_match: Get match details and per-player standing
//   - place_ship: Place one ship during setup
//   - auto_place: Randomly place a player's remaining ships
//   - start_match: Begin play once every fleet is placed
//   - shoot: Fire at a position on an opponent's board
//   - skip_turn: Forfeit the current turn
//   - view_board: Render a player's board with hit/miss markers
//   - move_log: Retrieve the move log with pagination
//   - list_configs: List available game configurations
//   - game_instructions: Get comprehensive rules and strategy notes
//   - describe_cell: Inspect one board cell
//
// Architecture:
//
// The Client does not hold game state. Every tool call is translated into
// an HTTP request against the REST API, so MCP agents and HTTP/WebSocket
// clients always observe the same matches.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Set up and play full matches autonomously
//   - Develop and test targeting strategies
//   - Run several concurrent matches independently
//   - Review move logs to refine play
package mcp
