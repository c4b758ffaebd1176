package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/battlegrid/game/engine"
	"github.com/wricardo/battlegrid/game/service"
)

// MockMatchManager implements service.MatchManager for testing
type MockMatchManager struct {
	matches map[string]*service.Match
	saves   int
}

func NewMockMatchManager() *MockMatchManager {
	return &MockMatchManager{
		matches: make(map[string]*service.Match),
	}
}

func (m *MockMatchManager) Create(id, configName string, config *engine.GameConfig) (*service.Match, error) {
	// Generate ID if empty (mimics real match manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.matches)+1)
	}
	if _, exists := m.matches[id]; exists {
		return nil, errors.New("match already exists")
	}

	match, err := service.NewMatch(id, configName, config)
	if err != nil {
		return nil, err
	}
	m.matches[id] = match
	return match, nil
}

func (m *MockMatchManager) Get(id string) (*service.Match, error) {
	match, exists := m.matches[id]
	if !exists {
		return nil, errors.New("match not found")
	}
	return match, nil
}

func (m *MockMatchManager) List() []*service.Match {
	result := make([]*service.Match, 0, len(m.matches))
	for _, match := range m.matches {
		result = append(result, match)
	}
	return result
}

func (m *MockMatchManager) Delete(id string) error {
	delete(m.matches, id)
	return nil
}

func (m *MockMatchManager) UpdateLastAccessed(id string) error {
	if match, exists := m.matches[id]; exists {
		match.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("match not found")
}

func (m *MockMatchManager) Save(id string) error {
	if _, exists := m.matches[id]; !exists {
		return errors.New("match not found")
	}
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	small := &engine.GameConfig{
		Name:        "Small",
		Description: "Small two-player test board",
		Players:     2,
		Board:       engine.BoardConfig{Width: 5, Height: 5},
		Fleet: []engine.FleetEntry{
			{ID: "cruiser", Name: "Cruiser", Length: 3},
			{ID: "destroyer", Name: "Destroyer", Length: 2},
		},
	}
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"small":   small,
			"classic": engine.DefaultGameConfig(),
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	var infos []*service.ConfigInfo
	for id, config := range m.configs {
		infos = append(infos, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Players:     config.Players,
			BoardWidth:  config.Board.Width,
			BoardHeight: config.Board.Height,
			FleetSize:   len(config.Fleet),
		})
	}
	return infos, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["small"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() (service.MatchService, *MockMatchManager) {
	matches := NewMockMatchManager()
	return service.NewMatchService(matches, NewMockConfigManager()), matches
}

// newReadyMatch creates a match with both fleets auto-placed.
func newReadyMatch(t *testing.T, svc service.MatchService) string {
	t.Helper()
	ctx := context.Background()
	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	for p := 0; p < 2; p++ {
		if _, err := svc.AutoPlace(ctx, info.ID, p, int64(p)+1); err != nil {
			t.Fatalf("AutoPlace for player %d failed: %v", p, err)
		}
	}
	return info.ID
}

func TestMatchService_CreateMatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if info.ID == "" {
		t.Error("match should get an ID")
	}
	if info.Phase != "setup" {
		t.Errorf("Phase = %q, want setup", info.Phase)
	}
	if len(info.Players) != 2 {
		t.Errorf("Players = %d, want 2", len(info.Players))
	}
	for _, p := range info.Players {
		if p.Ready {
			t.Errorf("player %d should not be ready before placement", p.Index)
		}
		if p.ShipsPending != 2 {
			t.Errorf("player %d pending = %d, want 2", p.Index, p.ShipsPending)
		}
	}

	if _, err := svc.CreateMatch(ctx, "missing"); err == nil {
		t.Error("creating a match with an unknown config should fail")
	}

	// Empty config name falls back to the default config.
	if _, err := svc.CreateMatch(ctx, ""); err != nil {
		t.Errorf("CreateMatch with default config failed: %v", err)
	}
}

func TestMatchService_GetListDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	got, err := svc.GetMatch(ctx, info.ID)
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if got.ID != info.ID {
		t.Errorf("GetMatch ID = %q, want %q", got.ID, info.ID)
	}

	list, err := svc.ListMatches(ctx)
	if err != nil {
		t.Fatalf("ListMatches failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListMatches = %d entries, want 1", len(list))
	}

	if err := svc.DeleteMatch(ctx, info.ID); err != nil {
		t.Fatalf("DeleteMatch failed: %v", err)
	}
	if _, err := svc.GetMatch(ctx, info.ID); err == nil {
		t.Error("GetMatch after delete should fail")
	}
}

func TestMatchService_PlaceShip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}

	result, err := svc.PlaceShip(ctx, info.ID, service.PlaceRequest{
		Player: 0,
		Ship:   "cruiser",
		Anchor: engine.Coord{X: 0, Y: 0},
	})
	if err != nil {
		t.Fatalf("PlaceShip failed: %v", err)
	}
	if len(result.Cells) != 3 {
		t.Errorf("cruiser occupies %d cells, want 3", len(result.Cells))
	}
	if result.Ready {
		t.Error("fleet is not ready with one ship pending")
	}
	if len(result.Pending) != 1 || result.Pending[0] != "destroyer" {
		t.Errorf("Pending = %v, want [destroyer]", result.Pending)
	}

	// Vertical placement rotates the configured line.
	result, err = svc.PlaceShip(ctx, info.ID, service.PlaceRequest{
		Player:   0,
		Ship:     "destroyer",
		Anchor:   engine.Coord{X: 4, Y: 0},
		Vertical: true,
	})
	if err != nil {
		t.Fatalf("vertical PlaceShip failed: %v", err)
	}
	want := []engine.Coord{{X: 4, Y: 0}, {X: 4, Y: 1}}
	for i, cell := range result.Cells {
		if cell != want[i] {
			t.Errorf("cells[%d] = %v, want %v", i, cell, want[i])
		}
	}
	if !result.Ready {
		t.Error("fleet should be ready after placing both ships")
	}

	// Engine errors pass through with their sentinel intact.
	_, err = svc.PlaceShip(ctx, info.ID, service.PlaceRequest{
		Player: 0,
		Ship:   "cruiser",
		Anchor: engine.Coord{X: 0, Y: 2},
	})
	if !errors.Is(err, engine.ErrDuplicateShip) {
		t.Errorf("duplicate placement error = %v, want ErrDuplicateShip", err)
	}
}

func TestMatchService_AutoPlaceAndStart(t *testing.T) {
	svc, matches := newTestService()
	ctx := context.Background()
	matchID := newReadyMatch(t, svc)

	info, err := svc.StartMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("StartMatch failed: %v", err)
	}
	if info.Phase != "playing" {
		t.Errorf("Phase = %q, want playing", info.Phase)
	}
	if info.Turn != 0 {
		t.Errorf("Turn = %d, want 0", info.Turn)
	}

	// Auto placements and the start are all logged.
	match, err := matches.Get(matchID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(match.Moves) != 3 {
		t.Errorf("move log has %d entries, want 3", len(match.Moves))
	}
	for _, record := range match.Moves[:2] {
		if record.Type != service.MoveAuto || record.Seed == 0 {
			t.Errorf("auto record = %+v, want a seeded auto move", record)
		}
	}

	if _, err := svc.StartMatch(ctx, matchID); !errors.Is(err, engine.ErrSetupOver) {
		t.Errorf("double start error = %v, want ErrSetupOver", err)
	}
}

func TestMatchService_StartBeforeReady(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if _, err := svc.StartMatch(ctx, info.ID); !errors.Is(err, engine.ErrNotReady) {
		t.Errorf("StartMatch error = %v, want ErrNotReady", err)
	}
}

func TestMatchService_Shoot(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	matchID := newReadyMatch(t, svc)
	if _, err := svc.StartMatch(ctx, matchID); err != nil {
		t.Fatalf("StartMatch failed: %v", err)
	}

	// Target omitted: the single opponent is resolved automatically.
	shot, err := svc.Shoot(ctx, matchID, service.ShotRequest{
		Attacker: 0,
		Pos:      engine.Coord{X: 2, Y: 2},
	})
	if err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}
	if shot.Target != 1 {
		t.Errorf("resolved target = %d, want 1", shot.Target)
	}
	if shot.NextTurn != 1 {
		t.Errorf("NextTurn = %d, want 1", shot.NextTurn)
	}
	if shot.Phase != "playing" {
		t.Errorf("Phase = %q, want playing", shot.Phase)
	}

	// Out of turn shots surface the engine sentinel.
	_, err = svc.Shoot(ctx, matchID, service.ShotRequest{
		Attacker: 0,
		Pos:      engine.Coord{X: 3, Y: 3},
	})
	if !errors.Is(err, engine.ErrWrongTurn) {
		t.Errorf("out-of-turn error = %v, want ErrWrongTurn", err)
	}

	// Repeating the opponent's shot position is rejected once it was shot.
	if _, err := svc.Shoot(ctx, matchID, service.ShotRequest{
		Attacker: 1,
		Pos:      engine.Coord{X: 2, Y: 2},
	}); err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}
	_, err = svc.Shoot(ctx, matchID, service.ShotRequest{
		Attacker: 0,
		Pos:      engine.Coord{X: 2, Y: 2},
	})
	if !errors.Is(err, engine.ErrAlreadyShot) {
		t.Errorf("repeat shot error = %v, want ErrAlreadyShot", err)
	}
}

func TestMatchService_PlayToCompletion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	matchID := newReadyMatch(t, svc)
	if _, err := svc.StartMatch(ctx, matchID); err != nil {
		t.Fatalf("StartMatch failed: %v", err)
	}

	// Player 0 rakes the whole board while player 1 skips, so player 0
	// must eventually win.
	var winner *int
	for y := 0; y < 5 && winner == nil; y++ {
		for x := 0; x < 5 && winner == nil; x++ {
			shot, err := svc.Shoot(ctx, matchID, service.ShotRequest{
				Attacker: 0,
				Pos:      engine.Coord{X: x, Y: y},
			})
			if err != nil {
				t.Fatalf("Shoot(%d,%d) failed: %v", x, y, err)
			}
			winner = shot.Winner
			if winner != nil {
				if shot.Phase != "finished" {
					t.Errorf("Phase = %q on the winning shot, want finished", shot.Phase)
				}
				break
			}
			if _, err := svc.SkipTurn(ctx, matchID, 1); err != nil {
				t.Fatalf("SkipTurn failed: %v", err)
			}
		}
	}
	if winner == nil || *winner != 0 {
		t.Fatalf("winner = %v, want player 0", winner)
	}

	info, err := svc.GetMatch(ctx, matchID)
	if err != nil {
		t.Fatalf("GetMatch failed: %v", err)
	}
	if info.Phase != "finished" {
		t.Errorf("Phase = %q, want finished", info.Phase)
	}
	if info.Players[1].Alive {
		t.Error("defeated player should not be alive")
	}

	_, err = svc.Shoot(ctx, matchID, service.ShotRequest{Attacker: 0, Pos: engine.Coord{X: 0, Y: 0}})
	if !errors.Is(err, engine.ErrGameOver) {
		t.Errorf("shot after the end error = %v, want ErrGameOver", err)
	}
}

func TestMatchService_GetBoard(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	info, err := svc.CreateMatch(ctx, "small")
	if err != nil {
		t.Fatalf("CreateMatch failed: %v", err)
	}
	if _, err := svc.PlaceShip(ctx, info.ID, service.PlaceRequest{
		Player: 0,
		Ship:   "cruiser",
		Anchor: engine.Coord{X: 0, Y: 0},
	}); err != nil {
		t.Fatalf("PlaceShip failed: %v", err)
	}

	revealed, err := svc.GetBoard(ctx, info.ID, 0, true)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if revealed.Grid[0] != "OOO.." {
		t.Errorf("revealed row 0 = %q, want OOO..", revealed.Grid[0])
	}
	if len(revealed.Ships) != 2 {
		t.Errorf("Ships = %d entries, want 2", len(revealed.Ships))
	}

	hidden, err := svc.GetBoard(ctx, info.ID, 0, false)
	if err != nil {
		t.Fatalf("GetBoard failed: %v", err)
	}
	if hidden.Grid[0] != "....." {
		t.Errorf("hidden row 0 = %q, want .....", hidden.Grid[0])
	}

	if _, err := svc.GetBoard(ctx, info.ID, 7, true); !errors.Is(err, engine.ErrUnknownPlayer) {
		t.Errorf("GetBoard for unknown player error = %v, want ErrUnknownPlayer", err)
	}
}

func TestMatchService_GetMoveLog(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	matchID := newReadyMatch(t, svc)
	if _, err := svc.StartMatch(ctx, matchID); err != nil {
		t.Fatalf("StartMatch failed: %v", err)
	}
	if _, err := svc.Shoot(ctx, matchID, service.ShotRequest{
		Attacker: 0,
		Pos:      engine.Coord{X: 1, Y: 1},
	}); err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}

	log, err := svc.GetMoveLog(ctx, matchID, service.HistoryOptions{Order: "asc"})
	if err != nil {
		t.Fatalf("GetMoveLog failed: %v", err)
	}
	if log.TotalMoves != 4 {
		t.Errorf("TotalMoves = %d, want 4", log.TotalMoves)
	}
	if log.Moves[0].Type != service.MoveAuto || log.Moves[3].Type != service.MoveShoot {
		t.Errorf("log order wrong: first %q last %q", log.Moves[0].Type, log.Moves[3].Type)
	}

	// Descending order puts the shot first.
	desc, err := svc.GetMoveLog(ctx, matchID, service.HistoryOptions{})
	if err != nil {
		t.Fatalf("GetMoveLog failed: %v", err)
	}
	if desc.Moves[0].Type != service.MoveShoot {
		t.Errorf("desc log first entry = %q, want shoot", desc.Moves[0].Type)
	}

	paged, err := svc.GetMoveLog(ctx, matchID, service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"})
	if err != nil {
		t.Fatalf("GetMoveLog failed: %v", err)
	}
	if len(paged.Moves) != 2 || !paged.HasNext || paged.TotalPages != 2 {
		t.Errorf("pagination = %d moves, next %v, pages %d; want 2, true, 2",
			len(paged.Moves), paged.HasNext, paged.TotalPages)
	}
}

func TestMatch_Replay(t *testing.T) {
	svc, matches := newTestService()
	ctx := context.Background()
	matchID := newReadyMatch(t, svc)
	if _, err := svc.StartMatch(ctx, matchID); err != nil {
		t.Fatalf("StartMatch failed: %v", err)
	}
	for _, pos := range []engine.Coord{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 1, Y: 0}} {
		if _, err := svc.Shoot(ctx, matchID, service.ShotRequest{Attacker: 0, Pos: pos}); err != nil {
			t.Fatalf("Shoot failed: %v", err)
		}
		if _, err := svc.SkipTurn(ctx, matchID, 1); err != nil {
			t.Fatalf("SkipTurn failed: %v", err)
		}
	}

	original, err := matches.Get(matchID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	restored, err := service.NewMatch(original.ID, original.ConfigName, original.Config)
	if err != nil {
		t.Fatalf("NewMatch failed: %v", err)
	}
	if err := restored.Replay(original.Moves); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if restored.Game.Phase() != original.Game.Phase() {
		t.Errorf("replayed phase = %v, want %v", restored.Game.Phase(), original.Game.Phase())
	}
	if restored.Game.Turn() != original.Game.Turn() {
		t.Errorf("replayed turn = %d, want %d", restored.Game.Turn(), original.Game.Turn())
	}
	for p := 0; p < 2; p++ {
		origBoard, _ := original.Game.Board(p)
		restBoard, _ := restored.Game.Board(p)
		origCells := origBoard.Cells()
		restCells := restBoard.Cells()
		for i := range origCells {
			if origCells[i].State != restCells[i].State {
				t.Errorf("player %d cell %v state = %v after replay, want %v",
					p, restCells[i].Pos, restCells[i].State, origCells[i].State)
			}
		}
	}
}
