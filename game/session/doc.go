// Package session provides match lifecycle management with optional
// file-based persistence.
//
// The session package implements:
//   - Match creation with short generated IDs
//   - Case-insensitive match lookup and caching
//   - Expiry-based cleanup of idle matches
//   - JSON file persistence of match move logs
//
// Core Types:
//
// Manager is the in-memory match registry implementing
// service.MatchManager. MatchPersistence abstracts the storage backend,
// with FilePersistence as the file-based implementation.
//
// Persistence Model:
//
// A match is stored as its configuration plus its move log, never as raw
// game state. Loading replays the log against a freshly built game, so
// storage stays valid across engine changes as long as the rules are
// stable, and the engine needs no state-injection API. Random placement
// moves carry their seed, which makes replay deterministic.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("matches")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedMatches(); err != nil {
//		log.Fatal(err)
//	}
//
//	match, err := manager.Create("", "classic", engine.DefaultGameConfig())
package session
