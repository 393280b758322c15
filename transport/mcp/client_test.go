package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/wricardo/mcp-training/cascadia/game/config"
	"github.com/wricardo/mcp-training/cascadia/game/engine"
	"github.com/wricardo/mcp-training/cascadia/game/scoring"
	"github.com/wricardo/mcp-training/cascadia/game/service"
)

func toolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("Expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text
}

// recordingServer answers every request with response and keeps the last request
type recordingServer struct {
	method string
	path   string
	body   map[string]any
}

func newRecordingServer(t *testing.T, status int, response any) (*recordingServer, string) {
	t.Helper()
	rec := &recordingServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method, rec.path = r.Method, r.URL.Path
		rec.body = nil
		json.NewDecoder(r.Body).Decode(&rec.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)
	return rec, server.URL
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://localhost:8080/")
	if client.baseURL != "http://localhost:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.httpClient == nil || client.mcpServer == nil {
		t.Fatal("Expected HTTP client and MCP server to be initialized")
	}
}

func TestClient_apiCall_Errors(t *testing.T) {
	_, url := newRecordingServer(t, http.StatusConflict, map[string]string{"error": "illegal placement"})
	err := NewClient(url).apiCall(context.Background(), "GET", "/api", nil, nil)
	if err == nil || err.Error() != "illegal placement" {
		t.Errorf("Expected API error message, got %v", err)
	}

	_, url = newRecordingServer(t, http.StatusInternalServerError, "oops")
	err = NewClient(url).apiCall(context.Background(), "GET", "/api", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "API error: 500") {
		t.Errorf("Expected status error, got %v", err)
	}

	err = NewClient("http://invalid-url-that-does-not-exist:9999").apiCall(context.Background(), "GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_createSession(t *testing.T) {
	rec, url := newRecordingServer(t, http.StatusCreated, service.SessionInfo{
		ID:         "1a2b3c4d",
		ConfigName: "duel",
		Players:    []*service.PlayerState{{Name: "ana"}, {Name: "bo"}},
	})
	client := NewClient(url)

	result, err := client.handleCreateSession(context.Background(), toolRequest("create_session", map[string]any{"config_id": "duel"}))
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}
	text := resultText(t, result)

	if rec.method != "POST" || rec.path != "/api/sessions" || rec.body["config_id"] != "duel" {
		t.Errorf("Unexpected request %s %s %v", rec.method, rec.path, rec.body)
	}
	for _, want := range []string{"1a2b3c4d", "== ana ==", "== bo =="} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got: %s", want, text)
		}
	}
}

func TestClient_placeTile(t *testing.T) {
	rec, url := newRecordingServer(t, http.StatusOK, service.PlacementResult{
		SessionID: "s1",
		Player:    "ana",
		Position:  engine.Position{X: 3, Y: 1},
	})
	client := NewClient(url)

	args := map[string]any{
		"session_id": "s1",
		"player":     "ana",
		"x":          float64(2),
		"y":          float64(1),
		"habitats":   []any{"rivers", "forests"},
		"compatible": []any{"salmon"},
		"rotation":   float64(4),
	}
	result, err := client.handlePlaceTile(context.Background(), toolRequest("place_tile", args))
	if err != nil {
		t.Fatalf("placeTile failed: %v", err)
	}

	if rec.path != "/api/sessions/s1/players/ana/tiles" {
		t.Errorf("Unexpected path %s", rec.path)
	}
	pos, _ := rec.body["position"].(map[string]any)
	if pos["x"] != float64(2) || pos["y"] != float64(1) || rec.body["rotation"] != float64(4) {
		t.Errorf("Unexpected body %v", rec.body)
	}
	if text := resultText(t, result); !strings.Contains(text, "at (3,1)") {
		t.Errorf("Expected the final position in result, got: %s", text)
	}

	delete(args, "x")
	result, _ = client.handlePlaceTile(context.Background(), toolRequest("place_tile", args))
	if !result.IsError {
		t.Error("Expected a tool error without x")
	}
}

func TestClient_placeTokenError(t *testing.T) {
	_, url := newRecordingServer(t, http.StatusConflict, map[string]string{"error": "illegal placement: (1,1)"})
	client := NewClient(url)

	args := map[string]any{"session_id": "s1", "player": "ana", "x": float64(1), "y": float64(1), "animal": "bear"}
	result, err := client.handlePlaceToken(context.Background(), toolRequest("place_token", args))
	if err != nil {
		t.Fatalf("Tool errors must not be Go errors: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "illegal placement") {
		t.Errorf("Expected an illegal placement tool error, got %+v", result)
	}
}

func TestClient_listConfigs(t *testing.T) {
	_, url := newRecordingServer(t, http.StatusOK, []config.ConfigInfo{
		{ConfigID: "standard", Name: "Standard", Description: "Four players", Topology: engine.Hex, BoardSize: 9, Players: 4, Mode: "cards"},
	})

	result, err := NewClient(url).handleListConfigs(context.Background(), toolRequest("list_configs", nil))
	if err != nil {
		t.Fatalf("listConfigs failed: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, "Standard (id: standard)") || !strings.Contains(text, "hex 9x9, Players: 4, Scoring: cards") {
		t.Errorf("Unexpected config listing: %s", text)
	}
}

func TestClient_scoreSnapshot(t *testing.T) {
	rec, url := newRecordingServer(t, http.StatusOK, service.ScoreResult{
		Score:    scoring.Breakdown{Total: 42},
		Nickname: "",
	})

	args := map[string]any{
		"board": map[string]any{
			"topology": "square",
			"width":    float64(2),
			"height":   float64(1),
			"tiles": []any{
				map[string]any{"x": float64(0), "y": float64(0), "habitats": []any{"rivers"}, "compatible": []any{"salmon"}, "token": "salmon"},
			},
		},
		"mode":  "cards",
		"cards": map[string]any{"bear": "A", "elk": "B"},
	}
	result, err := NewClient(url).handleScoreSnapshot(context.Background(), toolRequest("score_snapshot", args))
	if err != nil {
		t.Fatalf("scoreSnapshot failed: %v", err)
	}

	if rec.path != "/api/score" {
		t.Errorf("Unexpected path %s", rec.path)
	}
	scoringBody, _ := rec.body["scoring"].(map[string]any)
	cards, _ := scoringBody["cards"].(map[string]any)
	if scoringBody["mode"] != "cards" || cards["elk"] != "B" {
		t.Errorf("Unexpected scoring body %v", rec.body["scoring"])
	}
	text := resultText(t, result)
	if !strings.Contains(text, "[R s]") || !strings.Contains(text, "Total: 42") {
		t.Errorf("Expected board and total in result, got: %s", text)
	}
}

func TestFormatBoard(t *testing.T) {
	board := engine.BoardSnapshot{
		Topology: engine.Hex,
		Width:    2,
		Height:   2,
		Tiles: []engine.TileSnapshot{
			{X: 0, Y: 0, Habitats: []engine.Habitat{engine.Rivers, engine.Forests}, Token: engine.Buzzard},
			{X: 1, Y: 1, Habitats: []engine.Habitat{engine.Mountains}},
		},
	}

	lines := strings.Split(formatBoard(board), "\n")
	if !strings.HasPrefix(lines[0], "hex board 2x2, 2 tiles") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if lines[1] != "[RFz] ... " {
		t.Errorf("Unexpected row 0 %q", lines[1])
	}
	if lines[2] != "   ... [M .]" {
		t.Errorf("Unexpected row 1 %q", lines[2])
	}
}

func TestFormatFinal(t *testing.T) {
	final := &service.FinalResult{
		SessionID: "s1",
		Standings: []*service.Standing{
			{Rank: 2, Name: "bo", Score: scoring.Breakdown{Total: 80}},
			{Rank: 1, Name: "ana", Score: scoring.Breakdown{Total: 95}, Nickname: "Forest Ranger"},
		},
	}
	text := formatFinal(final)
	first, second := strings.Index(text, "#1 ana - 95 points (Forest Ranger)"), strings.Index(text, "#2 bo - 80 points")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected ranked standings, got: %s", text)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	result, err := NewClient("http://localhost:8080").handleGameInstructions(context.Background(), toolRequest("game_instructions", nil))
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}
	text := resultText(t, result)
	for _, section := range []string{"BOARDS:", "TILES:", "TOKENS:", "HABITAT SCORE:", "WILDLIFE SCORE:", "BONUSES (finalize):", "LEGEND"} {
		if !strings.Contains(text, section) {
			t.Errorf("Expected %q in instructions", section)
		}
	}
}
