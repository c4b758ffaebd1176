// Package service provides the business logic layer above the game engine.
//
// The service package implements:
//   - Multi-match game management
//   - Setup orchestration (manual and random ship placement)
//   - Shot resolution and turn bookkeeping
//   - Move logging for persistence and replay
//   - Configuration management and loading
//
// Core Interfaces:
//
// MatchService is the main service interface providing high-level match
// operations. MatchManager handles match creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing match isolation, configuration management,
// and business logic orchestration. Each match owns an independent engine
// game; the service serializes access to it.
//
// Usage:
//
//	matchMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	matchService := service.NewMatchService(matchMgr, configMgr)
//
//	// Create a new match
//	info, err := matchService.CreateMatch(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place fleets and start
//	_, err = matchService.AutoPlace(ctx, info.ID, 0, 0)
//
// Move Log:
//
// Every successful mutation is appended to the match's move log. The log,
// together with the configuration name, is the match's persistent form:
// loading a match replays the log against a fresh game. Random placements
// record their seed so the replayed arrangement is identical.
package service
