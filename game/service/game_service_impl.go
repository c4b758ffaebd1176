package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/battlegrid/game/engine"
)

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	matches MatchManager
	configs ConfigManager
	mu      sync.RWMutex
}

// NewMatchService creates a new match service instance
func NewMatchService(matches MatchManager, configs ConfigManager) MatchService {
	return &matchServiceImpl{
		matches: matches,
		configs: configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *matchServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateMatch creates a new match
func (s *matchServiceImpl) CreateMatch(ctx context.Context, configName string) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the match manager generate the ID
	match, err := s.matches.Create("", configName, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}
	match.ConfigName = configID

	return s.matchInfo(match, true), nil
}

// GetMatch retrieves match information
func (s *matchServiceImpl) GetMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	return s.matchInfo(match, true), nil
}

// ListMatches returns all active matches
func (s *matchServiceImpl) ListMatches(ctx context.Context) ([]*MatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := s.matches.List()
	result := make([]*MatchInfo, 0, len(matches))
	for _, match := range matches {
		result = append(result, s.matchInfo(match, false))
	}
	return result, nil
}

// DeleteMatch removes a match
func (s *matchServiceImpl) DeleteMatch(ctx context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.matches.Delete(matchID)
}

// PlaceShip places one ship for a player during setup
func (s *matchServiceImpl) PlaceShip(ctx context.Context, matchID string, req PlaceRequest) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	anchor := req.Anchor
	record := MoveRecord{
		Type:      MovePlace,
		Player:    req.Player,
		Ship:      req.Ship,
		Anchor:    &anchor,
		Vertical:  req.Vertical,
		Timestamp: time.Now(),
	}
	if _, err := match.Apply(record); err != nil {
		return nil, err
	}
	match.Record(record)
	s.save(matchID)

	result := s.placeResult(match, req.Player)
	result.Ship = req.Ship
	fleet, _ := match.Game.Fleet(req.Player)
	result.Cells = fleet.Board().ShipCells(engine.ShipID(req.Ship))
	return result, nil
}

// AutoPlace fills a player's remaining ships at random positions. A zero
// seed picks one from the clock; the seed actually used is recorded and
// returned so the arrangement can be reproduced.
func (s *matchServiceImpl) AutoPlace(ctx context.Context, matchID string, player int, seed int64) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	record := MoveRecord{
		Type:      MoveAuto,
		Player:    player,
		Seed:      seed,
		Timestamp: time.Now(),
	}
	if _, err := match.Apply(record); err != nil {
		return nil, err
	}
	match.Record(record)
	s.save(matchID)

	result := s.placeResult(match, player)
	result.Seed = seed
	return result, nil
}

// StartMatch begins play once every fleet is placed
func (s *matchServiceImpl) StartMatch(ctx context.Context, matchID string) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	record := MoveRecord{Type: MoveStart, Timestamp: time.Now()}
	if _, err := match.Apply(record); err != nil {
		return nil, err
	}
	match.Record(record)
	s.save(matchID)

	return s.matchInfo(match, true), nil
}

// Shoot fires a shot for the attacker
func (s *matchServiceImpl) Shoot(ctx context.Context, matchID string, req ShotRequest) (*ShotInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	target, err := s.resolveTarget(match, req)
	if err != nil {
		return nil, err
	}

	pos := req.Pos
	record := MoveRecord{
		Type:      MoveShoot,
		Player:    req.Attacker,
		Target:    target,
		Pos:       &pos,
		Timestamp: time.Now(),
	}
	result, err := match.Apply(record)
	if err != nil {
		return nil, err
	}
	record.Hit = result.Hit
	record.Sunk = result.Sunk
	record.ShipHit = string(result.Ship)
	match.Record(record)
	s.save(matchID)

	info := &ShotInfo{
		Attacker:  req.Attacker,
		Target:    target,
		Pos:       req.Pos,
		Hit:       result.Hit,
		Sunk:      result.Sunk,
		Ship:      string(result.Ship),
		Phase:     match.Game.Phase().String(),
		NextTurn:  match.Game.Turn(),
		Winner:    winnerOf(match.Game),
		Timestamp: record.Timestamp,
	}
	return info, nil
}

// resolveTarget picks the explicit target, or the attacker's single living
// opponent when the request leaves the target out. A finished match has no
// living opponents, so that case must surface as ErrGameOver rather than a
// target-resolution failure.
func (s *matchServiceImpl) resolveTarget(match *Match, req ShotRequest) (int, error) {
	if match.Game.Phase() == engine.PhaseFinished {
		return 0, engine.ErrGameOver
	}
	if req.Target != nil {
		return *req.Target, nil
	}
	target := -1
	for p := 0; p < match.Game.Players(); p++ {
		if p == req.Attacker || !match.Game.Alive(p) {
			continue
		}
		if target >= 0 {
			return 0, fmt.Errorf("multiple opponents alive, specify a target")
		}
		target = p
	}
	if target < 0 {
		return 0, fmt.Errorf("no living opponent to target")
	}
	return target, nil
}

// SkipTurn forfeits the player's turn
func (s *matchServiceImpl) SkipTurn(ctx context.Context, matchID string, player int) (*MatchInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	record := MoveRecord{Type: MoveSkip, Player: player, Timestamp: time.Now()}
	if _, err := match.Apply(record); err != nil {
		return nil, err
	}
	match.Record(record)
	s.save(matchID)

	return s.matchInfo(match, true), nil
}

// GetBoard returns a rendered view of one player's board. With reveal false
// the view hides unhit ship cells, which is what opponents should see.
func (s *matchServiceImpl) GetBoard(ctx context.Context, matchID string, player int, reveal bool) (*BoardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}
	s.matches.UpdateLastAccessed(matchID)

	fleet, err := match.Game.Fleet(player)
	if err != nil {
		return nil, err
	}
	return renderBoard(match.Config, fleet, player, reveal), nil
}

// GetMoveLog returns the paginated move log
func (s *matchServiceImpl) GetMoveLog(ctx context.Context, matchID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match, err := s.matches.Get(matchID)
	if err != nil {
		return nil, fmt.Errorf("match not found: %w", err)
	}

	log := match.Moves
	total := len(log)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []MoveRecord
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, log[i])
		}
	} else {
		if start < total {
			moves = log[start:end]
		}
	}
	if moves == nil {
		moves = []MoveRecord{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *matchServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *matchServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *matchServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// save persists the match, logging instead of failing the operation
func (s *matchServiceImpl) save(matchID string) {
	if err := s.matches.Save(matchID); err != nil {
		fmt.Printf("Warning: Failed to persist match %s: %v\n", matchID, err)
	}
}

func (s *matchServiceImpl) matchInfo(match *Match, includeConfig bool) *MatchInfo {
	game := match.Game
	players := make([]PlayerInfo, game.Players())
	for p := range players {
		fleet, _ := game.Fleet(p)
		players[p] = PlayerInfo{
			Index:          p,
			Ready:          fleet.IsReady(),
			Alive:          game.Alive(p),
			ShipsPending:   len(fleet.Pending()),
			ShipsRemaining: len(fleet.Remaining()),
		}
	}

	info := &MatchInfo{
		ID:             match.ID,
		ConfigName:     s.getConfigID(match.Config.Name),
		CreatedAt:      match.CreatedAt,
		LastAccessedAt: match.LastAccessedAt,
		Phase:          game.Phase().String(),
		Turn:           game.Turn(),
		Winner:         winnerOf(game),
		Players:        players,
		Moves:          len(match.Moves),
	}
	if includeConfig {
		info.GameConfig = match.Config
	}
	return info
}

func (s *matchServiceImpl) placeResult(match *Match, player int) *PlaceResult {
	fleet, _ := match.Game.Fleet(player)
	pending := []string{}
	for _, ship := range fleet.Pending() {
		pending = append(pending, string(ship.ID()))
	}
	return &PlaceResult{
		Player:   player,
		Pending:  pending,
		Ready:    fleet.IsReady(),
		AllReady: match.Game.Ready(),
	}
}

func winnerOf(game *engine.Game[engine.Coord]) *int {
	if winner, ok := game.Winner(); ok {
		return &winner
	}
	return nil
}

// Cell characters used in rendered board grids.
const (
	cellCharEmpty    = '.'
	cellCharOccupied = 'O'
	cellCharHit      = 'X'
	cellCharMiss     = '*'
)

// renderBoard builds the grid and per-cell views for a fleet's board.
func renderBoard(config *engine.GameConfig, fleet *engine.Fleet[engine.Coord], player int, reveal bool) *BoardView {
	board := fleet.Board()
	width := config.Board.Width
	height := config.Board.Height

	view := &BoardView{
		Player: player,
		Width:  width,
		Height: height,
		Reveal: reveal,
		Cells:  make([]CellView, 0, width*height),
	}

	rows := make([]strings.Builder, height)
	for _, cell := range board.Cells() {
		state := cell.State
		ships := cell.Ships
		if !reveal && state == engine.CellOccupied {
			state = engine.CellEmpty
			ships = nil
		}

		var ch byte
		switch state {
		case engine.CellOccupied:
			ch = cellCharOccupied
		case engine.CellHit:
			ch = cellCharHit
		case engine.CellMiss:
			ch = cellCharMiss
		default:
			ch = cellCharEmpty
		}
		rows[cell.Pos.Y].WriteByte(ch)

		cellView := CellView{Pos: cell.Pos, State: state.String()}
		for _, id := range ships {
			cellView.Ships = append(cellView.Ships, string(id))
		}
		view.Cells = append(view.Cells, cellView)
	}
	view.Grid = make([]string, height)
	for y := range rows {
		view.Grid[y] = rows[y].String()
	}

	for _, ship := range fleet.Manifest().Ships() {
		view.Ships = append(view.Ships, ShipStatus{
			ID:     string(ship.ID()),
			Name:   ship.Name(),
			Length: ship.Length(),
			Placed: board.HasShip(ship.ID()),
			Sunk:   board.IsSunk(ship.ID()),
		})
	}
	return view
}
