// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions and player count limits
//   - Fleet entries (unique IDs, positive lengths, every ship fits the board)
//   - Packing density: a fleet that covers too much of the board is rejected
//     and a crowded fleet gets a warning, since random placement may fail
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/battlegrid/game/engine"
)

// Density thresholds for the packing check. Above warnDensity random
// placement starts failing often on no_touching boards.
const (
	warnDensity = 0.25
	maxDensity  = 0.5
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// Structural checks are delegated to the engine; the extra analysis here
// covers concerns a config author cares about but the engine tolerates.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	config, err := engine.LoadGameConfig(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Duplicate display names are legal but confusing in config listings
	names := make(map[string]string)
	for _, entry := range config.Fleet {
		if prev, ok := names[entry.Name]; ok && entry.Name != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Warning: ships %q and %q share display name %q", prev, entry.ID, entry.Name))
		}
		names[entry.Name] = entry.ID
	}

	densityResult := validateDensity(config)
	if !densityResult.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, densityResult.Errors...)

	// Add informational data
	if result.Valid {
		wrap := "none"
		switch {
		case config.Board.WrapX && config.Board.WrapY:
			wrap = "both (torus)"
		case config.Board.WrapX:
			wrap = "horizontal"
		case config.Board.WrapY:
			wrap = "vertical"
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d, wrap: %s", config.Board.Width, config.Board.Height, wrap))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d", config.Players))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Fleet: %d ships, %d cells", len(config.Fleet), fleetCells(config)))
		if config.Rules.NoTouching {
			result.Errors = append(result.Errors, "✓ Rule: ships may not touch")
		}
		if config.Rules.AllowOverlap {
			result.Errors = append(result.Errors, "✓ Rule: ships may overlap")
		}
	}

	return result
}

// fleetCells returns the total number of cells one player's fleet occupies.
func fleetCells(config *engine.GameConfig) int {
	total := 0
	for _, entry := range config.Fleet {
		total += entry.Length
	}
	return total
}

// validateDensity checks how much of the board one fleet covers. The engine
// only requires the fleet to fit at all; this check flags configs where
// random placement becomes unreliable or impossible in practice.
func validateDensity(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	boardCells := config.Board.Width * config.Board.Height
	if boardCells == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate density: empty board")
		return result
	}

	cells := fleetCells(config)
	density := float64(cells) / float64(boardCells)

	// No-touching placements claim a halo around every ship, so the
	// effective footprint is much larger than the raw cell count.
	effective := density
	if config.Rules.NoTouching {
		effective = density * 2
	}

	switch {
	case config.Rules.AllowOverlap:
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Density: %.0f%% (overlap allowed, always placeable)", density*100))
	case effective > maxDensity:
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Fleet too dense: %d cells on a %d-cell board (%.0f%% effective)", cells, boardCells, effective*100))
	case effective > warnDensity:
		result.Errors = append(result.Errors, fmt.Sprintf("Warning: dense fleet (%.0f%% effective), random placement may retry heavily", effective*100))
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Density: %.0f%%", density*100))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
