package session

import (
	"time"

	"github.com/wricardo/battlegrid/game/engine"
	"github.com/wricardo/battlegrid/game/service"
)

// MatchPersistence defines the interface for persisting matches
type MatchPersistence interface {
	// Save persists a match to storage
	Save(match *service.Match) error

	// Load retrieves a match from storage by ID
	Load(id string) (*service.Match, error)

	// Delete removes a match from storage
	Delete(id string) error

	// ListAll returns all persisted match IDs
	ListAll() ([]string, error)

	// Exists checks if a match exists in storage
	Exists(id string) bool
}

// PersistedMatchData is the JSON structure for persisted matches. The game
// itself is not serialized; the configuration plus the move log fully
// determine it, and loading replays the log against a fresh game.
type PersistedMatchData struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	Config         *engine.GameConfig   `json:"config"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	Moves          []service.MoveRecord `json:"moves"`
}
