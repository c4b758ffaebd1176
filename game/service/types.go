package service

import (
	"time"

	"github.com/wricardo/battlegrid/game/engine"
)

// MatchInfo provides a summary of a match
type MatchInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Phase          string             `json:"phase"`
	Turn           int                `json:"turn"`
	Winner         *int               `json:"winner,omitempty"`
	Players        []PlayerInfo       `json:"players"`
	Moves          int                `json:"moves"`
	GameConfig     *engine.GameConfig `json:"game_config,omitempty"`
}

// PlayerInfo summarizes one player's standing within a match
type PlayerInfo struct {
	Index          int  `json:"index"`
	Ready          bool `json:"ready"`
	Alive          bool `json:"alive"`
	ShipsPending   int  `json:"ships_pending"`
	ShipsRemaining int  `json:"ships_remaining"`
}

// PlaceRequest describes a manual ship placement
type PlaceRequest struct {
	Player   int          `json:"player"`
	Ship     string       `json:"ship"`
	Anchor   engine.Coord `json:"anchor"`
	Vertical bool         `json:"vertical,omitempty"`
}

// PlaceResult contains the outcome of a placement operation
type PlaceResult struct {
	Player  int            `json:"player"`
	Ship    string         `json:"ship,omitempty"`
	Cells   []engine.Coord `json:"cells,omitempty"`
	Pending []string       `json:"pending"`
	Ready   bool           `json:"ready"`
	// AllReady is true once every player's fleet is fully placed and the
	// match can be started.
	AllReady bool  `json:"all_ready"`
	Seed     int64 `json:"seed,omitempty"`
}

// ShotRequest describes a shot. Target is optional; when nil the shot goes
// at the attacker's single living opponent.
type ShotRequest struct {
	Attacker int          `json:"attacker"`
	Target   *int         `json:"target,omitempty"`
	Pos      engine.Coord `json:"pos"`
}

// ShotInfo contains the result of a shot operation
type ShotInfo struct {
	Attacker  int          `json:"attacker"`
	Target    int          `json:"target"`
	Pos       engine.Coord `json:"pos"`
	Hit       bool         `json:"hit"`
	Sunk      bool         `json:"sunk,omitempty"`
	Ship      string       `json:"ship,omitempty"`
	Phase     string       `json:"phase"`
	NextTurn  int          `json:"next_turn"`
	Winner    *int         `json:"winner,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// CellView is one rendered board position
type CellView struct {
	Pos   engine.Coord `json:"pos"`
	State string       `json:"state"`
	Ships []string     `json:"ships,omitempty"`
}

// ShipStatus reports one manifest ship's standing on a board
type ShipStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Length int    `json:"length"`
	Placed bool   `json:"placed"`
	Sunk   bool   `json:"sunk"`
}

// BoardView is a rendered view of one player's board. When Reveal is false,
// unhit ship cells are shown as open water, which is what an opponent sees.
type BoardView struct {
	Player int          `json:"player"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Reveal bool         `json:"reveal"`
	Grid   []string     `json:"grid"`
	Cells  []CellView   `json:"cells"`
	Ships  []ShipStatus `json:"ships"`
}

// HistoryOptions configures move log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains a paginated move log
type HistoryResponse struct {
	Moves       []MoveRecord `json:"moves"`
	TotalMoves  int          `json:"total_moves"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
	HasNext     bool         `json:"has_next"`
	HasPrevious bool         `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for match creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Players     int    `json:"players"`
	BoardWidth  int    `json:"board_width"`
	BoardHeight int    `json:"board_height"`
	FleetSize   int    `json:"fleet_size"`
}
