package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Board dimension bounds accepted by configuration validation.
const (
	MinBoardDim = 2
	MaxBoardDim = 64
)

// Player count bounds accepted by configuration validation.
const (
	MinPlayers = 2
	MaxPlayers = 8
)

// BoardConfig describes the board every player in a game receives.
type BoardConfig struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	WrapX  bool `json:"wrap_x,omitempty"`
	WrapY  bool `json:"wrap_y,omitempty"`
}

// FleetEntry describes one ship of the fleet each player must place. Ships
// from configuration are straight lines; irregular shapes are built in code
// via NewShape.
type FleetEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// GameConfig is the serializable description of a game variant: board
// dimensions, placement rules, player count and fleet roster.
type GameConfig struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Players     int          `json:"players"`
	Board       BoardConfig  `json:"board"`
	Rules       Rules        `json:"rules"`
	Fleet       []FleetEntry `json:"fleet"`
}

// ValidateGameConfig validates a game configuration for correctness and
// playability.
func ValidateGameConfig(config *GameConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.Players < MinPlayers || config.Players > MaxPlayers {
		return fmt.Errorf("config validation: players must be between %d and %d, got %d",
			MinPlayers, MaxPlayers, config.Players)
	}
	if config.Board.Width < MinBoardDim || config.Board.Width > MaxBoardDim {
		return fmt.Errorf("config validation: board.width must be between %d and %d, got %d",
			MinBoardDim, MaxBoardDim, config.Board.Width)
	}
	if config.Board.Height < MinBoardDim || config.Board.Height > MaxBoardDim {
		return fmt.Errorf("config validation: board.height must be between %d and %d, got %d",
			MinBoardDim, MaxBoardDim, config.Board.Height)
	}
	if len(config.Fleet) == 0 {
		return fmt.Errorf("config validation: fleet must contain at least one ship")
	}

	seen := make(map[string]bool, len(config.Fleet))
	totalCells := 0
	for i, entry := range config.Fleet {
		if entry.ID == "" {
			return fmt.Errorf("config validation: fleet[%d].id is required", i)
		}
		if seen[entry.ID] {
			return fmt.Errorf("config validation: duplicate fleet id %q", entry.ID)
		}
		seen[entry.ID] = true
		if entry.Length < 1 {
			return fmt.Errorf("config validation: fleet[%d].length must be at least 1, got %d", i, entry.Length)
		}
		// A line must fit along some axis. Wrapping axes fit any length.
		fitsX := config.Board.WrapX || entry.Length <= config.Board.Width
		fitsY := config.Board.WrapY || entry.Length <= config.Board.Height
		if !fitsX && !fitsY {
			return fmt.Errorf("config validation: fleet[%d] (%q) length %d does not fit a %dx%d board",
				i, entry.ID, entry.Length, config.Board.Width, config.Board.Height)
		}
		totalCells += entry.Length
	}

	// Crude playability floor. Dense boards can still exhaust the auto
	// placer, but a fleet that cannot even fit cell-wise is always invalid.
	if !config.Rules.AllowOverlap && totalCells > config.Board.Width*config.Board.Height {
		return fmt.Errorf("config validation: fleet needs %d cells but the board only has %d",
			totalCells, config.Board.Width*config.Board.Height)
	}

	return nil
}

// DefaultGameConfig returns the classic two-player ruleset: a 10x10 board and
// the traditional five-ship fleet.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "Classic",
		Description: "Traditional two-player rules on a 10x10 board",
		Players:     2,
		Board:       BoardConfig{Width: 10, Height: 10},
		Fleet: []FleetEntry{
			{ID: "carrier", Name: "Carrier", Length: 5},
			{ID: "battleship", Name: "Battleship", Length: 4},
			{ID: "cruiser", Name: "Cruiser", Length: 3},
			{ID: "submarine", Name: "Submarine", Length: 3},
			{ID: "destroyer", Name: "Destroyer", Length: 2},
		},
	}
}

// LoadGameConfig reads and validates a game configuration from a JSON file.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Layout builds the rectangular layout the configuration describes. The
// configuration must have been validated.
func (c *GameConfig) Layout() (RectLayout, error) {
	return NewWrappingRectLayout(c.Board.Width, c.Board.Height, c.Board.WrapX, c.Board.WrapY)
}

// Manifest builds the ship manifest the configuration describes. Every
// configured ship is a horizontal line; rotation happens at placement time.
func (c *GameConfig) Manifest() (Manifest[Coord], error) {
	ships := make([]Ship[Coord], 0, len(c.Fleet))
	for _, entry := range c.Fleet {
		shape, err := Line(entry.Length)
		if err != nil {
			return Manifest[Coord]{}, fmt.Errorf("fleet ship %q: %w", entry.ID, err)
		}
		name := entry.Name
		if name == "" {
			name = entry.ID
		}
		ship, err := NewNamedShip(ShipID(entry.ID), name, shape)
		if err != nil {
			return Manifest[Coord]{}, fmt.Errorf("fleet ship %q: %w", entry.ID, err)
		}
		ships = append(ships, ship)
	}
	return NewManifest(ships...)
}

// NewGameFromConfig builds a ready-to-set-up game from a validated
// configuration.
func NewGameFromConfig(config *GameConfig) (*Game[Coord], error) {
	layout, err := config.Layout()
	if err != nil {
		return nil, err
	}
	manifest, err := config.Manifest()
	if err != nil {
		return nil, err
	}
	return NewGame[Coord](config.Players, manifest, layout, config.Rules)
}
