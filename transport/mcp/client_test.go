package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/battlegrid/game/engine"
	"github.com/wricardo/battlegrid/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":     "test-match",
		"phase":  "setup",
		"moves":  float64(0),
		"config": "classic",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/matches/test-match", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/matches", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/matches", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_ErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "position was already shot"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("POST", "/api/matches/m1/shoot", map[string]int{"attacker": 0}, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 409 response")
	}

	if err.Error() != "position was already shot" {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func TestClient_createMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/matches" {
			t.Errorf("Expected POST /api/matches, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.MatchInfo{
			ID:         "abc12345",
			ConfigName: "classic",
			Phase:      "setup",
			Players: []service.PlayerInfo{
				{Index: 0, ShipsPending: 5},
				{Index: 1, ShipsPending: 5},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_match",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateMatch(ctx, request)
	if err != nil {
		t.Fatalf("createMatch failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "abc12345") {
		t.Errorf("Expected match ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_shoot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/matches/m1/shoot" {
			t.Errorf("Expected POST /api/matches/m1/shoot, got %s %s", r.Method, r.URL.Path)
		}

		var body service.ShotRequest
		json.NewDecoder(r.Body).Decode(&body)
		if body.Attacker != 0 || body.Pos.X != 3 || body.Pos.Y != 4 {
			t.Errorf("Unexpected request body: %+v", body)
		}

		resp := service.ShotInfo{
			Attacker: 0,
			Target:   1,
			Pos:      engine.Coord{X: 3, Y: 4},
			Hit:      true,
			Sunk:     true,
			Ship:     "destroyer",
			Phase:    "playing",
			NextTurn: 1,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "shoot",
			Arguments: map[string]interface{}{
				"match_id": "m1",
				"attacker": float64(0),
				"x":        float64(3),
				"y":        float64(4),
				"intent":   "probing the center",
			},
		},
	}

	result, err := client.handleShoot(ctx, request)
	if err != nil {
		t.Fatalf("shoot failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "sank destroyer") {
		t.Errorf("Expected sunk report in result, got: %s", resultStr.Text)
	}
}

func TestFormatMatchInfo(t *testing.T) {
	winner := 1
	info := &service.MatchInfo{
		ID:         "m1",
		ConfigName: "classic",
		Phase:      "finished",
		Winner:     &winner,
		Moves:      17,
		Players: []service.PlayerInfo{
			{Index: 0, Alive: false, ShipsRemaining: 0},
			{Index: 1, Alive: true, ShipsRemaining: 3},
		},
	}

	result := formatMatchInfo(info)

	expectedFields := []string{
		"Match: m1",
		"Config: classic",
		"Phase: finished",
		"Winner: player 1",
		"Moves: 17",
		"player 0: defeated",
		"player 1: alive, 3 ships afloat",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatShotInfo(t *testing.T) {
	shot := &service.ShotInfo{
		Attacker: 0,
		Target:   1,
		Pos:      engine.Coord{X: 2, Y: 5},
		Hit:      false,
		Phase:    "playing",
		NextTurn: 1,
	}

	result := formatShotInfo(shot)

	if !strings.Contains(result, "MISS") {
		t.Errorf("Expected 'MISS' in result, got: %s", result)
	}
	if !strings.Contains(result, "Next turn: player 1") {
		t.Errorf("Expected next turn in result, got: %s", result)
	}
}

func TestFormatShotInfo_Winner(t *testing.T) {
	winner := 0
	shot := &service.ShotInfo{
		Attacker: 0,
		Target:   1,
		Pos:      engine.Coord{X: 0, Y: 0},
		Hit:      true,
		Sunk:     true,
		Ship:     "carrier",
		Phase:    "finished",
		Winner:   &winner,
	}

	result := formatShotInfo(shot)

	if !strings.Contains(result, "sank carrier") {
		t.Errorf("Expected sunk ship in result, got: %s", result)
	}
	if !strings.Contains(result, "player 0 wins") {
		t.Errorf("Expected winner in result, got: %s", result)
	}
}

func TestFormatBoardView(t *testing.T) {
	board := &service.BoardView{
		Player: 1,
		Width:  5,
		Height: 2,
		Reveal: true,
		Grid:   []string{"OOX..", "..*.."},
		Ships: []service.ShipStatus{
			{ID: "cruiser", Name: "Cruiser", Length: 3, Placed: true},
			{ID: "destroyer", Name: "Destroyer", Length: 2, Placed: true, Sunk: true},
		},
	}

	result := formatBoardView(board)

	expectedFields := []string{
		"Player 1's board (5x2)",
		"ships revealed",
		"OOX..",
		"..*..",
		"Cruiser (3): afloat",
		"Destroyer (2): SUNK",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatMoveRecord(t *testing.T) {
	anchor := engine.Coord{X: 1, Y: 2}
	pos := engine.Coord{X: 4, Y: 4}

	tests := []struct {
		name string
		move service.MoveRecord
		want string
	}{
		{
			name: "place",
			move: service.MoveRecord{Type: service.MovePlace, Player: 0, Ship: "cruiser", Anchor: &anchor, Vertical: true},
			want: "player 0 placed cruiser at (1,2) vertical",
		},
		{
			name: "auto",
			move: service.MoveRecord{Type: service.MoveAuto, Player: 1, Seed: 99},
			want: "player 1 auto-placed fleet (seed 99)",
		},
		{
			name: "start",
			move: service.MoveRecord{Type: service.MoveStart},
			want: "match started",
		},
		{
			name: "shoot sunk",
			move: service.MoveRecord{Type: service.MoveShoot, Player: 0, Target: 1, Pos: &pos, Hit: true, Sunk: true, ShipHit: "destroyer"},
			want: "player 0 shot player 1 at (4,4): sank destroyer",
		},
		{
			name: "skip",
			move: service.MoveRecord{Type: service.MoveSkip, Player: 1},
			want: "player 1 skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMoveRecord(tt.move); got != tt.want {
				t.Errorf("formatMoveRecord() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Battle Grid - Complete Instructions",
		"GAME OBJECTIVE:",
		"MATCH LIFECYCLE:",
		"BOARD LEGEND:",
		"PLACEMENT RULES:",
		"SHOOTING RULES:",
		"WRAPPING BOARDS:",
		"AI AGENTS - TARGETING STRATEGY:",
		"MULTI-PLAYER MATCHES",
		"MATCH MANAGEMENT:",
		"Good hunting!",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}
