// Package config provides game configuration management.
//
// The config package implements:
//   - Loading and validating JSON game configurations from a directory
//   - Caching of loaded configurations
//   - Default configuration selection with a built-in classic fallback
//   - Saving configurations back to disk
//
// Configurations describe a game variant: board dimensions, optional axis
// wrapping, placement rule toggles, player count and the fleet roster. The
// Manager implements service.ConfigManager; transports never touch config
// files directly.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	classic, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// The default configuration is classic.json when present, otherwise the
// first valid configuration in the directory, otherwise the built-in
// classic ruleset.
package config
