// Package engine provides the core rules for grid-shooting games in the
// Battleship family.
//
// The engine package implements the game mechanics including:
//   - Board geometry abstraction (rectangular, wrapping and cubic layouts)
//   - Ship shapes, placement validation and shot resolution
//   - Fleet readiness and defeat tracking
//   - Turn-ordered multiplayer games with elimination
//   - Random fleet placement and configuration loading
//
// Core Types:
//
// Layout is the geometric contract a board is built over; RectLayout and
// CubeLayout implement it. Board tracks one player's ship placements and
// shot history. Fleet pairs a board with the Manifest of ships it must
// place, and Game drives two or more fleets through setup, play and
// completion. GameConfig defines a game variant loaded from JSON files.
//
// Usage:
//
//	config := engine.DefaultGameConfig()
//	game, err := engine.NewGameFromConfig(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	placer := engine.NewAutoPlacer(42)
//	for p := 0; p < game.Players(); p++ {
//		fleet, _ := game.Fleet(p)
//		if err := placer.PlaceFleet(fleet); err != nil {
//			log.Fatal(err)
//		}
//	}
//
//	if err := game.Start(); err != nil {
//		log.Fatal(err)
//	}
//	result, err := game.Shoot(0, engine.Coord{X: 3, Y: 4})
//
// Game Rules:
//
// Every player places the same manifest of ships on a private board. Once
// all fleets are ready the game starts and players take turns firing at
// opponents' boards. A position can only be shot once; hitting every cell
// of a ship sinks it, and sinking a player's last ship eliminates them.
// The last player with a ship afloat wins.
//
// The engine holds no global state and does no I/O besides configuration
// loading; boards and games are plain values owned by the caller.
package engine
