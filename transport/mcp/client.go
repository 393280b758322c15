package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
	"github.com/wricardo/mcp-training/cascadia/game/service"
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
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Cascadia Scoring",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Cascadia Scoring - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Each player builds a board of habitat tiles and places wildlife tokens on
them. Scores come from wildlife scoring cards and from the largest connected
region of every habitat.

AVAILABLE TOOLS:
- create_session: Start a session from a configuration
- get_session: Boards and running scores of every player
- list_sessions: List active sessions
- valid_positions: Empty cells where a player may place a tile
- place_tile: Place a habitat tile on a player's board
- place_token: Place a wildlife token on a placed tile
- spend_nature: Spend one of a player's nature tokens
- scores: Running scores without end-game bonuses
- finalize: Apply majority bonuses, rank players, lock the session
- list_configs: List available configurations
- score_snapshot: Score a board snapshot without a session
- game_instructions: Rules and board legend`),
	)

	c.registerTools()
}

func sessionProp() map[string]any {
	return map[string]any{"type": "string", "description": "Session ID"}
}

func playerProp() map[string]any {
	return map[string]any{"type": "string", "description": "Player name (case-insensitive)"}
}

func coordProp(axis string) map[string]any {
	return map[string]any{"type": "integer", "description": axis + " coordinate of the cell"}
}

func enumArray(values []string, description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string", "enum": values},
		"description": description,
	}
}

func (c *Client) registerTools() {
	habitats := make([]string, 0, len(engine.AllHabitats()))
	for _, h := range engine.AllHabitats() {
		habitats = append(habitats, string(h))
	}
	animals := make([]string, 0, len(engine.AllAnimals()))
	for _, a := range engine.AllAnimals() {
		animals = append(animals, string(a))
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"config_id": map[string]any{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]any{}},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get the boards and running scores of a session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "valid_positions",
		Description: "List the empty cells next to a placed tile where a player may place a tile",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp(), "player": playerProp()},
			Required:   []string{"session_id", "player"},
		},
	}, c.handleValidPositions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_tile",
		Description: "Place a habitat tile on a player's board. Square boards take one habitat; hex tiles take one or two habitats and a rotation 0-5.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"player":     playerProp(),
				"x":          coordProp("X"),
				"y":          coordProp("Y"),
				"habitats":   enumArray(habitats, "Habitats of the tile"),
				"compatible": enumArray(animals, "Species the tile can hold"),
				"rotation": map[string]any{
					"type":        "integer",
					"description": "Clockwise rotation steps for hex tiles (0-5)",
				},
			},
			Required: []string{"session_id", "player", "x", "y", "habitats", "compatible"},
		},
	}, c.handlePlaceTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_token",
		Description: "Place a wildlife token on an empty, compatible tile of a player's board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"session_id": sessionProp(),
				"player":     playerProp(),
				"x":          coordProp("X"),
				"y":          coordProp("Y"),
				"animal": map[string]any{
					"type":        "string",
					"enum":        animals,
					"description": "Species of the token",
				},
			},
			Required: []string{"session_id", "player", "x", "y", "animal"},
		},
	}, c.handlePlaceToken)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "spend_nature",
		Description: "Spend one nature token of a player",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp(), "player": playerProp()},
			Required:   []string{"session_id", "player"},
		},
	}, c.handleSpendNature)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scores",
		Description: "Running scores of every player, without end-game bonuses",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleScores)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "finalize",
		Description: "Apply habitat majority bonuses, rank players and lock the session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{"session_id": sessionProp()},
			Required:   []string{"session_id"},
		},
	}, c.handleFinalize)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]any{}},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "score_snapshot",
		Description: "Score a board snapshot without a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"board": map[string]any{
					"type":        "object",
					"description": `Board snapshot: {"topology": "square", "width": 3, "height": 1, "tiles": [{"x": 0, "y": 0, "habitats": ["rivers"], "compatible": ["salmon"], "token": "salmon"}]}`,
				},
				"mode": map[string]any{
					"type":        "string",
					"enum":        []string{scoring.ModeFamily, scoring.ModeIntermediate, scoring.ModeCards},
					"description": "Scoring mode",
				},
				"cards": map[string]any{
					"type":        "object",
					"description": `Card per species for mode "cards", e.g. {"bear": "A", "elk": "B", "salmon": "C", "buzzard": "D", "fox": "A"}`,
				},
				"solo": map[string]any{
					"type":        "boolean",
					"description": "Apply the solo habitat bonus",
				},
			},
			Required: []string{"board", "mode"},
		},
	}, c.handleScoreSnapshot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, the scoring modes and the board legend",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]any{}},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
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

func sessionPath(sessionID string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(sessionID)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads a JSON number argument
func intArg(args map[string]any, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func stringsArg(args map[string]any, key string) []string {
	raw, _ := args[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func positionArg(args map[string]any) (engine.Position, error) {
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return engine.Position{}, fmt.Errorf("x and y are required")
	}
	return engine.Position{X: x, Y: y}, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]string{}
	if id := stringArg(args, "config_id"); id != "" {
		body["config_id"] = id
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Created session: " + session.ID + "\n\n" + formatSessionInfo(&session)), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		names := make([]string, 0, len(s.Players))
		for _, p := range s.Players {
			names = append(names, p.Name)
		}
		status := "playing"
		if s.Finalized {
			status = "finalized"
		}
		fmt.Fprintf(&result, "- %s (Config: %s, Players: %s, %s, Created: %s)\n",
			s.ID, s.ConfigName, strings.Join(names, ", "), status, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleValidPositions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	playerName := stringArg(args, "player")

	var response struct {
		Count     int               `json:"count"`
		Positions []engine.Position `json:"positions"`
	}
	path := sessionPath(stringArg(args, "session_id"), "players", playerName, "valid-positions")
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cells := make([]string, 0, len(response.Positions))
	for _, p := range response.Positions {
		cells = append(cells, p.String())
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d valid positions for %s:\n%s",
		response.Count, playerName, strings.Join(cells, " "))), nil
}

func (c *Client) handlePlaceTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	pos, err := positionArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rotation, _ := intArg(args, "rotation")

	body := map[string]any{
		"position":   pos,
		"habitats":   stringsArg(args, "habitats"),
		"compatible": stringsArg(args, "compatible"),
		"rotation":   rotation,
	}

	var result service.PlacementResult
	path := sessionPath(stringArg(args, "session_id"), "players", stringArg(args, "player"), "tiles")
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPlacement("Tile", &result)), nil
}

func (c *Client) handlePlaceToken(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	pos, err := positionArg(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]any{"position": pos, "animal": stringArg(args, "animal")}

	var result service.PlacementResult
	path := sessionPath(stringArg(args, "session_id"), "players", stringArg(args, "player"), "tokens")
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatPlacement("Token", &result)), nil
}

func (c *Client) handleSpendNature(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var state service.PlayerState
	path := sessionPath(stringArg(args, "session_id"), "players", stringArg(args, "player"), "nature")
	if err := c.apiCall(ctx, "POST", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Nature token spent. %s has %d left.",
		state.Name, state.Board.NatureTokens)), nil
}

func (c *Client) handleScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var scores []service.PlayerScore
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "scores"), nil, &scores); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Scores for session %s (no bonuses yet):\n\n", sessionID)
	for _, s := range scores {
		fmt.Fprintf(&result, "%s\n%s\n", s.Name, formatBreakdown(s.Score))
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleFinalize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request.GetArguments(), "session_id")

	var final service.FinalResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "final"), nil, &final); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatFinal(&final)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []config.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&result, "• %s (id: %s)\n  %s\n  Board: %s %dx%d, Players: %d, Scoring: %s\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Topology, cfg.BoardSize, cfg.BoardSize, cfg.Players, cfg.Mode)
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (c *Client) handleScoreSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	// the board arrives as a generic JSON object
	raw, err := json.Marshal(args["board"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var board engine.BoardSnapshot
	if err := json.Unmarshal(raw, &board); err != nil {
		return mcp.NewToolResultError("invalid board: " + err.Error()), nil
	}

	cards := map[string]string{}
	if rawCards, ok := args["cards"].(map[string]any); ok {
		for species, card := range rawCards {
			if s, ok := card.(string); ok {
				cards[species] = s
			}
		}
	}
	solo, _ := args["solo"].(bool)

	body := map[string]any{
		"board":   board,
		"scoring": map[string]any{"mode": stringArg(args, "mode"), "cards": cards},
		"solo":    solo,
	}

	var result service.ScoreResult
	if err := c.apiCall(ctx, "POST", "/api/score", body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatBoard(board) + "\n" + formatBreakdown(result.Score)
	if result.Nickname != "" {
		text += "\nNickname: " + result.Nickname
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Cascadia Scoring - Instructions

BOARDS:
Each player owns a board, square or hex. A session starts every board with
three starter tiles. A tile must be placed on an empty cell next to a placed
tile (use valid_positions). Boards grow when a tile touches the border, so
coordinates of existing tiles can shift; every placement reports the final
position.

TILES:
Square tiles carry one habitat. Hex tiles carry one or two habitats laid over
six sides, side 0 is north-east and sides run clockwise; rotation turns the
tile clockwise one side per step. A tile lists the species it can hold.

TOKENS:
A wildlife token goes on a placed tile without a token whose compatible list
contains the species. A hex tile with one habitat and one species earns a nature
token when it receives its wildlife.

HABITAT SCORE:
For every habitat, the size of its largest connected region. On hex boards two
tiles connect only if their touching sides share the habitat.

WILDLIFE SCORE:
Mode "family" and "intermediate" score groups of the same species by size.
Mode "cards" uses one scoring card, A to D, per species:
bear, elk, salmon, buzzard, fox.

BONUSES (finalize):
Three or more players: the sole largest region of a habitat earns 3 points,
tied leaders 2 each, and a lone runner-up behind a sole leader earns 1.
Two players: 2 points for the sole largest, 1 each when tied.
Solo: 2 points for every habitat region of at least 7 tiles.
Every unspent nature token is worth 1 point.

LEGEND (board views):
Cells show habitat initials then the token:
M mountains, F forests, P prairies, W wetlands, R rivers;
b bear, e elk, s salmon, z buzzard, f fox; "." no token.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

var habitatCodes = map[engine.Habitat]string{
	engine.Mountains: "M",
	engine.Forests:   "F",
	engine.Prairies:  "P",
	engine.Wetlands:  "W",
	engine.Rivers:    "R",
}

var animalCodes = map[engine.Animal]string{
	engine.Bear:    "b",
	engine.Elk:     "e",
	engine.Salmon:  "s",
	engine.Buzzard: "z",
	engine.Fox:     "f",
}

// cellCode renders a tile in three characters: up to two habitat initials and a token
func cellCode(t engine.TileSnapshot) string {
	var code strings.Builder
	seen := map[engine.Habitat]bool{}
	for _, h := range t.Habitats {
		if !seen[h] {
			seen[h] = true
			code.WriteString(habitatCodes[h])
		}
	}
	for code.Len() < 2 {
		code.WriteString(" ")
	}
	if t.Token != "" {
		code.WriteString(animalCodes[t.Token])
	} else {
		code.WriteString(".")
	}
	return code.String()
}

func formatBoard(b engine.BoardSnapshot) string {
	cells := make(map[engine.Position]engine.TileSnapshot, len(b.Tiles))
	for _, t := range b.Tiles {
		cells[engine.Position{X: t.X, Y: t.Y}] = t
	}

	var result strings.Builder
	fmt.Fprintf(&result, "%s board %dx%d, %d tiles, nature tokens %d\n",
		b.Topology, b.Width, b.Height, len(b.Tiles), b.NatureTokens)
	for y := 0; y < b.Height; y++ {
		// offset odd rows so hex neighbours line up
		if b.Topology == engine.Hex && y%2 == 1 {
			result.WriteString("  ")
		}
		for x := 0; x < b.Width; x++ {
			if t, ok := cells[engine.Position{X: x, Y: y}]; ok {
				result.WriteString("[" + cellCode(t) + "]")
			} else {
				result.WriteString(" ... ")
			}
		}
		result.WriteString("\n")
	}
	return result.String()
}

func formatBreakdown(s scoring.Breakdown) string {
	var result strings.Builder

	animals := make([]string, 0, len(s.Animals))
	for _, a := range engine.AllAnimals() {
		animals = append(animals, fmt.Sprintf("%s %d", a, s.Animals[a]))
	}
	habitats := make([]string, 0, len(s.Habitats))
	for _, h := range engine.AllHabitats() {
		habitats = append(habitats, fmt.Sprintf("%s %d", h, s.Habitats[h]))
	}

	fmt.Fprintf(&result, "  Wildlife: %s (total %d)\n", strings.Join(animals, ", "), s.AnimalTotal)
	fmt.Fprintf(&result, "  Habitats: %s (total %d)\n", strings.Join(habitats, ", "), s.HabitatTotal)
	fmt.Fprintf(&result, "  Bonus: %d, Nature tokens: %d\n", s.Bonus, s.NatureTokens)
	fmt.Fprintf(&result, "  Total: %d\n", s.Total)
	return result.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	var result strings.Builder
	fmt.Fprintf(&result, "Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName, session.CreatedAt.Format("2006-01-02 15:04:05"))
	if session.Finalized {
		result.WriteString("Status: finalized\n")
	}
	for _, p := range session.Players {
		fmt.Fprintf(&result, "\n== %s ==\n%s%s", p.Name, formatBoard(p.Board), formatBreakdown(p.Score))
		if p.Nickname != "" {
			fmt.Fprintf(&result, "  Nickname: %s\n", p.Nickname)
		}
	}
	return result.String()
}

func formatPlacement(what string, r *service.PlacementResult) string {
	var result strings.Builder
	fmt.Fprintf(&result, "✓ %s placed for %s at %s\n", what, r.Player, r.Position)
	if r.NatureGained {
		result.WriteString("Nature token gained!\n")
	}
	result.WriteString(formatBoard(r.Board))
	return result.String()
}

func formatFinal(f *service.FinalResult) string {
	standings := append([]*service.Standing(nil), f.Standings...)
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Rank < standings[j].Rank })

	var result strings.Builder
	fmt.Fprintf(&result, "Final results for session %s:\n\n", f.SessionID)
	for _, s := range standings {
		fmt.Fprintf(&result, "#%d %s - %d points", s.Rank, s.Name, s.Score.Total)
		if s.Nickname != "" {
			fmt.Fprintf(&result, " (%s)", s.Nickname)
		}
		result.WriteString("\n" + formatBreakdown(s.Score))
		for _, a := range s.Achievements {
			fmt.Fprintf(&result, "  ★ %s\n", a.Description)
		}
		for _, a := range s.Scenarios {
			fmt.Fprintf(&result, "  ◆ Scenario %d: %s\n", a.ID, a.Description)
		}
		result.WriteString("\n")
	}
	return result.String()
}
