package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/battlegrid/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Battle Grid",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Battle Grid - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Sink every enemy ship before yours go down. Each match has a setup phase
(place your fleet) and a play phase (take turns shooting).

AVAILABLE TOOLS:
- create_match: Create a new match with an optional config selection
- list_matches: List all active matches
- get_match: Get match details and per-player standing
- place_ship: Place one ship during setup
- auto_place: Randomly place a player's remaining ships
- start_match: Begin play once every fleet is placed
- shoot: Fire at a position - requires intent explanation
- skip_turn: Forfeit the current turn
- view_board: Render a player's board (reveal=true shows unhit ships)
- move_log: View past moves
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about one board cell

NOTE: The 'intent' parameter on the shoot tool serves as rubber duck debugging - explain your targeting reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Match management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_match",
		Description: "Create a new match with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateMatch)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_matches",
		Description: "List all active matches",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListMatches)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_match",
		Description: "Get details of a specific match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID to retrieve",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleGetMatch)

	// Setup operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place one ship on a player's board during setup",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Player index (0-based)",
				},
				"ship": map[string]interface{}{
					"type":        "string",
					"description": "Ship ID from the fleet manifest (e.g. 'cruiser')",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor column (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Anchor row (0-based)",
				},
				"vertical": map[string]interface{}{
					"type":        "boolean",
					"description": "Place the ship vertically instead of horizontally",
				},
			},
			Required: []string{"match_id", "player", "ship", "x", "y"},
		},
	}, c.handlePlaceShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "auto_place",
		Description: "Randomly place all of a player's remaining ships",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Player index (0-based)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Placement seed for reproducible layouts (optional)",
				},
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleAutoPlace)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_match",
		Description: "Begin play once every player's fleet is fully placed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleStartMatch)

	// Play operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shoot",
		Description: "Fire at a position on an opponent's board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"attacker": map[string]interface{}{
					"type":        "integer",
					"description": "Shooting player index (0-based)",
				},
				"target": map[string]interface{}{
					"type":        "integer",
					"description": "Target player index; optional in two-player matches",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column to shoot at (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row to shoot at (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this shot (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"match_id", "attacker", "x", "y"},
		},
	}, c.handleShoot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "skip_turn",
		Description: "Forfeit the current turn without shooting",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Player index whose turn it is (0-based)",
				},
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleSkipTurn)

	// Match state
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "view_board",
		Description: "Render a player's board. With reveal=false unhit ships are hidden, which is what an opponent sees.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Board owner (0-based)",
				},
				"reveal": map[string]interface{}{
					"type":        "boolean",
					"description": "Show unhit ship cells",
				},
			},
			Required: []string{"match_id", "player"},
		},
	}, c.handleViewBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_log",
		Description: "Get the move log for a match",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"match_id"},
		},
	}, c.handleMoveLog)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific board cell, including its display character. Useful for verifying hits (X) vs misses (*) vs open water (.).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"match_id": map[string]interface{}{
					"type":        "string",
					"description": "Match ID",
				},
				"player": map[string]interface{}{
					"type":        "integer",
					"description": "Board owner (0-based)",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
				"reveal": map[string]interface{}{
					"type":        "boolean",
					"description": "Show unhit ship cells",
				},
			},
			Required: []string{"match_id", "player", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var match service.MatchInfo
	err := c.apiCall("POST", "/api/matches", body, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created match: %s\nConfig: %s\nPlayers: %d\n", match.ID, match.ConfigName, len(match.Players))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListMatches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                 `json:"count"`
		Matches []service.MatchInfo `json:"matches"`
	}

	err := c.apiCall("GET", "/api/matches", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Matches (%d):\n\n", response.Count)
	for _, m := range response.Matches {
		result += fmt.Sprintf("- %s (Config: %s, Phase: %s, Moves: %d)\n",
			m.ID, m.ConfigName, m.Phase, m.Moves)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var match service.MatchInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s", matchID), nil, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatMatchInfo(&match)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	player := intArg(args, "player")
	ship, _ := args["ship"].(string)
	x := intArg(args, "x")
	y := intArg(args, "y")
	vertical, _ := args["vertical"].(bool)

	body := map[string]interface{}{
		"player":   player,
		"ship":     ship,
		"anchor":   map[string]int{"x": x, "y": y},
		"vertical": vertical,
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/place", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(&result)), nil
}

func (c *Client) handleAutoPlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	player := intArg(args, "player")

	body := map[string]interface{}{
		"player": player,
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/autoplace", matchID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatPlaceResult(&result)
	response += fmt.Sprintf("Seed: %d (reuse for an identical layout)\n", result.Seed)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleStartMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	var match service.MatchInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/start", matchID), nil, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Match started.\n\n%s", formatMatchInfo(&match))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleShoot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	attacker := intArg(args, "attacker")
	x := intArg(args, "x")
	y := intArg(args, "y")
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"attacker": attacker,
		"pos":      map[string]int{"x": x, "y": y},
	}
	if target, ok := args["target"].(float64); ok {
		body["target"] = int(target)
	}

	var shot service.ShotInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/shoot", matchID), body, &shot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShotInfo(&shot)), nil
}

func (c *Client) handleSkipTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	player := intArg(args, "player")

	body := map[string]interface{}{
		"player": player,
	}

	var match service.MatchInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/matches/%s/skip", matchID), body, &match)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Turn skipped. Next turn: player %d\n\n%s", match.Turn, formatMatchInfo(&match))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleViewBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	player := intArg(args, "player")
	reveal, _ := args["reveal"].(bool)

	board, err := c.fetchBoard(matchID, player, reveal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardView(board)), nil
}

func (c *Client) handleMoveLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var log service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/matches/%s/moves%s", matchID, params), nil, &log)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveLog(&log)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %dx%d, Players: %d, Fleet: %d ships\n\n",
			config.Name, config.Description, config.BoardWidth, config.BoardHeight,
			config.Players, config.FleetSize)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Battle Grid - Complete Instructions

GAME OBJECTIVE:
Sink every enemy ship before your own fleet goes down. The last player
with a ship afloat wins.

MATCH LIFECYCLE:
1. Setup: each player places their full fleet (place_ship or auto_place)
2. Start: once every fleet is placed, start_match begins play
3. Play: players take turns shooting; dead players are skipped
4. Finished: one living player remains and is declared the winner

BOARD LEGEND:
• . - Open water (or a hidden ship cell when reveal=false)
• O - Ship cell, not yet hit (only visible with reveal=true)
• X - Hit ship cell
• * - Miss (shot that found nothing)

PLACEMENT RULES:
• Every ship cell must be inside the board
• Ships may not overlap (unless the config allows it)
• Some configs forbid ships touching orthogonally (no_touching)
• Placement is atomic: a rejected placement changes nothing
• vertical=true rotates a ship a quarter turn at the same anchor

SHOOTING RULES:
• Only the player whose turn it is may shoot
• You cannot shoot your own board or a defeated player
• Each position on a board can be shot at most once
• A hit reports the ship only when that shot sinks it
• In two-player matches the target parameter can be omitted

WRAPPING BOARDS:
Some configs wrap horizontally, vertically, or both (a torus). On a
wrapping board a ship placed near the edge continues on the far side,
so edge-hugging is not a safe hiding strategy.

AI AGENTS - TARGETING STRATEGY:
• Open with a spaced search pattern (e.g. a checkerboard) sized to the
  smallest remaining ship
• After a hit, probe the four orthogonal neighbors to find the axis
• Follow the axis in both directions until the ship sinks
• Track every shot you have taken; repeated shots are rejected
• Use view_board on your opponent (reveal=false) to see your hits/misses

MULTI-PLAYER MATCHES (3+ players):
• Turn order is by player index, skipping defeated players
• You must name a target player on every shot
• Eliminating a player removes them from the rotation immediately

MATCH MANAGEMENT:
• Multiple matches can run simultaneously
• Each match has a unique 8-character ID
• Matches maintain independent state and configuration
• The full move log is available via move_log for review

Good hunting!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	matchID, _ := args["match_id"].(string)
	player := intArg(args, "player")
	x := intArg(args, "x")
	y := intArg(args, "y")
	reveal, _ := args["reveal"].(bool)

	board, err := c.fetchBoard(matchID, player, reveal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if x < 0 || x >= board.Width || y < 0 || y >= board.Height {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Board size is %dx%d (0-%d columns, 0-%d rows)",
			x, y, board.Width, board.Height, board.Width-1, board.Height-1)), nil
	}

	cellChar := string(board.Grid[y][x])

	var cellType, description string
	switch cellChar {
	case "O":
		cellType = "Ship"
		description = "Unhit ship cell (visible because reveal=true)"
	case "X":
		cellType = "Hit"
		description = "Ship cell that has been hit"
	case "*":
		cellType = "Miss"
		description = "Shot that found nothing"
	default:
		cellType = "Water"
		description = "Open water, or a hidden ship cell when reveal=false"
	}

	// Named ship info when the rendered cells carry it
	var ships []string
	for _, cell := range board.Cells {
		if cell.Pos.X == x && cell.Pos.Y == y {
			ships = cell.Ships
			break
		}
	}

	result := fmt.Sprintf(`Cell at position (%d, %d) on player %d's board:
Character: %s
Type: %s
Description: %s`,
		x, y, board.Player, cellChar, cellType, description)

	if len(ships) > 0 {
		result += fmt.Sprintf("\nShips here: %s", strings.Join(ships, ", "))
	}

	return mcp.NewToolResultText(result), nil
}

// fetchBoard retrieves one player's rendered board from the API
func (c *Client) fetchBoard(matchID string, player int, reveal bool) (*service.BoardView, error) {
	path := fmt.Sprintf("/api/matches/%s/board/%d", matchID, player)
	if reveal {
		path += "?reveal=true"
	}

	var board service.BoardView
	if err := c.apiCall("GET", path, nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// intArg reads an integer tool argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return 0
}

// Formatting helpers

func formatMatchInfo(match *service.MatchInfo) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Match: %s\nConfig: %s\nPhase: %s\n",
		match.ID, match.ConfigName, match.Phase))

	switch match.Phase {
	case "playing":
		b.WriteString(fmt.Sprintf("Turn: player %d\n", match.Turn))
	case "finished":
		if match.Winner != nil {
			b.WriteString(fmt.Sprintf("Winner: player %d\n", *match.Winner))
		}
	}

	b.WriteString(fmt.Sprintf("Moves: %d\n\nPlayers:\n", match.Moves))
	for _, p := range match.Players {
		status := "alive"
		if !p.Alive {
			status = "defeated"
		}
		b.WriteString(fmt.Sprintf("- player %d: %s, %d ships afloat, %d pending placement\n",
			p.Index, status, p.ShipsRemaining, p.ShipsPending))
	}

	return b.String()
}

func formatPlaceResult(result *service.PlaceResult) string {
	var b strings.Builder

	if result.Ship != "" {
		b.WriteString(fmt.Sprintf("Placed %s for player %d", result.Ship, result.Player))
		if len(result.Cells) > 0 {
			cells := make([]string, len(result.Cells))
			for i, c := range result.Cells {
				cells[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
			}
			b.WriteString(" at " + strings.Join(cells, " "))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("Fleet placed for player %d\n", result.Player))
	}

	if len(result.Pending) > 0 {
		b.WriteString(fmt.Sprintf("Pending: %s\n", strings.Join(result.Pending, ", ")))
	}
	if result.Ready {
		b.WriteString("Player's fleet is fully placed.\n")
	}
	if result.AllReady {
		b.WriteString("All fleets placed - the match can be started.\n")
	}

	return b.String()
}

func formatShotInfo(shot *service.ShotInfo) string {
	var b strings.Builder

	outcome := "MISS"
	if shot.Hit {
		outcome = "HIT"
		if shot.Sunk {
			outcome = fmt.Sprintf("HIT - sank %s!", shot.Ship)
		}
	}

	b.WriteString(fmt.Sprintf("Player %d shot player %d at (%d,%d): %s\n",
		shot.Attacker, shot.Target, shot.Pos.X, shot.Pos.Y, outcome))

	if shot.Phase == "finished" {
		if shot.Winner != nil {
			b.WriteString(fmt.Sprintf("\nMatch over - player %d wins!\n", *shot.Winner))
		} else {
			b.WriteString("\nMatch over.\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("Next turn: player %d\n", shot.NextTurn))
	}

	return b.String()
}

func formatBoardView(board *service.BoardView) string {
	var b strings.Builder

	view := "opponent view (unhit ships hidden)"
	if board.Reveal {
		view = "owner view (ships revealed)"
	}
	b.WriteString(fmt.Sprintf("Player %d's board (%dx%d) - %s\n\n",
		board.Player, board.Width, board.Height, view))

	for _, row := range board.Grid {
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(board.Ships) > 0 {
		b.WriteString("\nFleet:\n")
		for _, ship := range board.Ships {
			status := "not placed"
			if ship.Placed {
				status = "afloat"
				if ship.Sunk {
					status = "SUNK"
				}
			}
			b.WriteString(fmt.Sprintf("- %s (%d): %s\n", ship.Name, ship.Length, status))
		}
	}

	b.WriteString("\nLegend: . water  O ship  X hit  * miss\n")
	return b.String()
}

func formatMoveLog(log *service.HistoryResponse) string {
	result := fmt.Sprintf("Move Log (Page %d/%d) — Total: %d\n\n",
		log.Page, log.TotalPages, log.TotalMoves)

	for i, move := range log.Moves {
		num := (log.Page-1)*log.PageSize + i + 1
		result += fmt.Sprintf("%d. %s\n", num, formatMoveRecord(move))
	}

	return result
}

func formatMoveRecord(move service.MoveRecord) string {
	switch move.Type {
	case service.MovePlace:
		pos := ""
		if move.Anchor != nil {
			pos = fmt.Sprintf(" at (%d,%d)", move.Anchor.X, move.Anchor.Y)
		}
		orientation := "horizontal"
		if move.Vertical {
			orientation = "vertical"
		}
		return fmt.Sprintf("player %d placed %s%s %s", move.Player, move.Ship, pos, orientation)
	case service.MoveAuto:
		return fmt.Sprintf("player %d auto-placed fleet (seed %d)", move.Player, move.Seed)
	case service.MoveStart:
		return "match started"
	case service.MoveShoot:
		pos := ""
		if move.Pos != nil {
			pos = fmt.Sprintf(" at (%d,%d)", move.Pos.X, move.Pos.Y)
		}
		outcome := "miss"
		if move.Hit {
			outcome = "hit"
			if move.Sunk {
				outcome = "sank " + move.ShipHit
			}
		}
		return fmt.Sprintf("player %d shot player %d%s: %s", move.Player, move.Target, pos, outcome)
	case service.MoveSkip:
		return fmt.Sprintf("player %d skipped", move.Player)
	default:
		return move.Type
	}
}
