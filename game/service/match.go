package service

import (
	"fmt"
	"time"

	"github.com/wricardo/battlegrid/game/engine"
)

// Move types recorded in a match's move log.
const (
	MovePlace = "place"
	MoveAuto  = "auto"
	MoveStart = "start"
	MoveShoot = "shoot"
	MoveSkip  = "skip"
)

// MoveRecord is one entry of a match's move log. The log is the match's
// source of truth for persistence: replaying it against a fresh game
// reconstructs the exact state, so the engine never needs to expose state
// injection. Outcome fields on shot records are informational; replay
// recomputes them.
type MoveRecord struct {
	Type      string        `json:"type"`
	Player    int           `json:"player,omitempty"`
	Ship      string        `json:"ship,omitempty"`
	Anchor    *engine.Coord `json:"anchor,omitempty"`
	Vertical  bool          `json:"vertical,omitempty"`
	Seed      int64         `json:"seed,omitempty"`
	Target    int           `json:"target,omitempty"`
	Pos       *engine.Coord `json:"pos,omitempty"`
	Hit       bool          `json:"hit,omitempty"`
	Sunk      bool          `json:"sunk,omitempty"`
	ShipHit   string        `json:"ship_hit,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Match is an active game plus the metadata and move log that make it
// addressable and persistable.
type Match struct {
	ID             string
	ConfigName     string
	Config         *engine.GameConfig
	Game           *engine.Game[engine.Coord]
	Moves          []MoveRecord
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// NewMatch creates a match with a fresh game built from the configuration.
func NewMatch(id, configName string, config *engine.GameConfig) (*Match, error) {
	game, err := engine.NewGameFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to build game from config: %w", err)
	}
	now := time.Now()
	return &Match{
		ID:             id,
		ConfigName:     configName,
		Config:         config,
		Game:           game,
		CreatedAt:      now,
		LastAccessedAt: now,
	}, nil
}

// Apply executes a move record against the game. The shot result is only
// meaningful for shoot records. Apply does not append to the move log;
// callers record the move themselves once it succeeds.
func (m *Match) Apply(record MoveRecord) (engine.ShotResult, error) {
	switch record.Type {
	case MovePlace:
		if record.Anchor == nil {
			return engine.ShotResult{}, fmt.Errorf("place record has no anchor")
		}
		id := engine.ShipID(record.Ship)
		if !record.Vertical {
			return engine.ShotResult{}, m.Game.Place(record.Player, id, *record.Anchor)
		}
		fleet, err := m.Game.Fleet(record.Player)
		if err != nil {
			return engine.ShotResult{}, err
		}
		ship, ok := fleet.Manifest().Ship(id)
		if !ok {
			return engine.ShotResult{}, fmt.Errorf("ship %q is not in the manifest", record.Ship)
		}
		return engine.ShotResult{}, m.Game.PlaceShape(record.Player, id, engine.Rotate(ship.Shape()), *record.Anchor)

	case MoveAuto:
		return engine.ShotResult{}, m.Game.AutoPlace(record.Player, engine.NewAutoPlacer(record.Seed))

	case MoveStart:
		return engine.ShotResult{}, m.Game.Start()

	case MoveShoot:
		if record.Pos == nil {
			return engine.ShotResult{}, fmt.Errorf("shoot record has no position")
		}
		return m.Game.ShootAt(record.Player, record.Target, *record.Pos)

	case MoveSkip:
		return engine.ShotResult{}, m.Game.Skip(record.Player)

	default:
		return engine.ShotResult{}, fmt.Errorf("unknown move type %q", record.Type)
	}
}

// Record appends a move to the log.
func (m *Match) Record(record MoveRecord) {
	m.Moves = append(m.Moves, record)
}

// Replay applies a recorded move log to a fresh match. It fails if any
// record does not apply cleanly, which indicates a corrupted log or a
// configuration mismatch.
func (m *Match) Replay(records []MoveRecord) error {
	for i, record := range records {
		if _, err := m.Apply(record); err != nil {
			return fmt.Errorf("replay failed at move %d (%s): %w", i, record.Type, err)
		}
		m.Record(record)
	}
	return nil
}
