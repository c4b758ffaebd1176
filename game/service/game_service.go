package service

import (
	"context"

	"github.com/wricardo/battlegrid/game/engine"
)

// MatchService defines all match-related operations
type MatchService interface {
	// Match Management
	CreateMatch(ctx context.Context, configName string) (*MatchInfo, error)
	GetMatch(ctx context.Context, matchID string) (*MatchInfo, error)
	ListMatches(ctx context.Context) ([]*MatchInfo, error)
	DeleteMatch(ctx context.Context, matchID string) error

	// Setup Operations
	PlaceShip(ctx context.Context, matchID string, req PlaceRequest) (*PlaceResult, error)
	AutoPlace(ctx context.Context, matchID string, player int, seed int64) (*PlaceResult, error)
	StartMatch(ctx context.Context, matchID string) (*MatchInfo, error)

	// Play Operations
	Shoot(ctx context.Context, matchID string, req ShotRequest) (*ShotInfo, error)
	SkipTurn(ctx context.Context, matchID string, player int) (*MatchInfo, error)

	// Match State
	GetBoard(ctx context.Context, matchID string, player int, reveal bool) (*BoardView, error)
	GetMoveLog(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// MatchManager defines match storage operations
type MatchManager interface {
	Create(id, configName string, config *engine.GameConfig) (*Match, error)
	Get(id string) (*Match, error)
	List() []*Match
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}
