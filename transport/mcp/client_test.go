package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dpontes/gridraider/game/engine"
	"github.com/dpontes/gridraider/game/service"
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
		"id":        "test-session",
		"score":     5,
		"game_over": false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
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

	err := client.apiCall("GET", "/api", nil, nil)
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
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/xxxx", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if err.Error() != "session not found" {
		t.Errorf("Expected error message from body, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "a1b2",
			ConfigName: "classic",
			GameState: &engine.GameState{
				Score: 0,
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
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "a1b2") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_describeTile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := engine.GameState{
			Width:  5,
			Height: 3,
			Layout: []string{
				"#####",
				"#P.C#",
				"#####",
			},
			PlayerPos: engine.Position{Row: 1, Col: 1},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_tile",
			Arguments: map[string]interface{}{
				"session_id": "a1b2",
				"row":        float64(1),
				"col":        float64(3),
			},
		},
	}

	result, err := client.handleDescribeTile(ctx, request)
	if err != nil {
		t.Fatalf("describeTile failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "Basic Reward") {
		t.Errorf("Expected tile description for 'C', got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Passable: true") {
		t.Errorf("Expected passable tile, got: %s", resultStr.Text)
	}
}

func TestClient_describeTile_OutOfBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := engine.GameState{
			Width:  5,
			Height: 3,
			Layout: []string{"#####", "#P..#", "#####"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(state)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_tile",
			Arguments: map[string]interface{}{
				"session_id": "a1b2",
				"row":        float64(10),
				"col":        float64(0),
			},
		},
	}

	result, err := client.handleDescribeTile(ctx, request)
	if err != nil {
		t.Fatalf("describeTile failed: %v", err)
	}

	if !result.IsError {
		t.Error("Expected error result for out-of-bounds position")
	}
}

func TestFormatGameState(t *testing.T) {
	gameState := &engine.GameState{
		Width:          5,
		Height:         3,
		Layout:         []string{"#####", "#P.C#", "#####"},
		PlayerPos:      engine.Position{Row: 1, Col: 1},
		Score:          10,
		BasicCollected: 1,
		BasicToCollect: 2,
		Ticks:          7,
		GameOver:       false,
		Victory:        false,
		Message:        "Raid the grid!",
	}

	result := formatGameState(gameState)

	expectedFields := []string{
		"Position: (1,1)",
		"Score: 10",
		"Rewards: 1/2",
		"Tick: 7",
		"#P.C#",
		"Raid the grid!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	gameState := &engine.GameState{
		PlayerPos: engine.Position{Row: 2, Col: 1},
		Score:     -60,
		GameOver:  true,
		Victory:   false,
		Message:   "Game over!",
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "💀 GAME OVER") {
		t.Errorf("Expected '💀 GAME OVER' in result, got: %s", result)
	}
}

func TestFormatGameState_Victory(t *testing.T) {
	gameState := &engine.GameState{
		PlayerPos: engine.Position{Row: 8, Col: 8},
		Score:     120,
		GameOver:  true,
		Victory:   true,
		Message:   "Congratulations!",
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "🎉 VICTORY!") {
		t.Errorf("Expected '🎉 VICTORY!' in result, got: %s", result)
	}
}

func TestFormatTickResult(t *testing.T) {
	tickResult := &service.TickOpResult{
		Applied: true,
		Moved:   true,
		GameState: &engine.GameState{
			PlayerPos: engine.Position{Row: 4, Col: 3},
			Score:     7,
		},
		Step: &service.StepInfo{
			Idx:        1,
			Dir:        "right",
			From:       engine.Position{Row: 4, Col: 2},
			To:         engine.Position{Row: 4, Col: 3},
			ScoreAfter: 7,
			Moved:      true,
		},
	}

	result := formatTickResult(tickResult)

	expectedFields := []string{
		"✓ Moved",
		"Step: right (4,2)→(4,3) score=7 ✓",
		"Position: (4,3)",
		"Score: 7",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatTickResult_Blocked(t *testing.T) {
	tickResult := &service.TickOpResult{
		Applied: true,
		Moved:   false,
		GameState: &engine.GameState{
			PlayerPos: engine.Position{Row: 1, Col: 1},
			Score:     3,
		},
		AttemptedTo: &service.AttemptInfo{
			Row:      1,
			Col:      0,
			TileType: "wall",
			Passable: false,
		},
	}

	result := formatTickResult(tickResult)

	if !strings.Contains(result, "✗ Held position") {
		t.Errorf("Expected '✗ Held position' in result, got: %s", result)
	}

	if !strings.Contains(result, "Blocked: attempted (1,0) tile=wall (impassable)") {
		t.Errorf("Expected blocked diagnostic in result, got: %s", result)
	}
}

func TestFormatRunResult(t *testing.T) {
	runResult := &service.RunResult{
		TicksExecuted:  2,
		RequestedTicks: 3,
		Success:        false,
		GameState: &engine.GameState{
			Width:      7,
			Height:     3,
			ConfigName: "corridor",
			PlayerPos:  engine.Position{Row: 1, Col: 3},
			Score:      10,
		},
		StoppedReason:  "move blocked by wall",
		StopReasonCode: "blocked",
		StoppedOnTick:  2,
		StartPos:       engine.Position{Row: 1, Col: 1},
		EndPos:         engine.Position{Row: 1, Col: 3},
		StartScore:     0,
		EndScore:       10,
		ScoreDelta:     10,
		Steps: []service.StepInfo{
			{Idx: 1, Dir: "right", From: engine.Position{Row: 1, Col: 1}, To: engine.Position{Row: 1, Col: 2}, ScoreAfter: 0, Moved: true},
			{Idx: 2, Dir: "right", From: engine.Position{Row: 1, Col: 2}, To: engine.Position{Row: 1, Col: 3}, ScoreAfter: 10, Moved: true},
		},
	}

	result := formatRunResult("a1b2", runResult)

	expectedFields := []string{
		"Session: a1b2 • Config: corridor • Arena: 7x3",
		"Executed 2/3 ticks",
		"Stopped: move blocked by wall",
		"Path: (1,1)→(1,3) • Score: 0→10 (+10)",
		"1. right (1,1)→(1,2) score=0 ✓",
		"2. right (1,2)→(1,3) score=10 ✓",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Ticks: []engine.TickHistoryEntry{
			{Tick: 1, Direction: engine.DirRight, From: engine.Position{Row: 1, Col: 1}, To: engine.Position{Row: 1, Col: 2}, Score: 0},
			{Tick: 2, Direction: engine.DirDown, From: engine.Position{Row: 1, Col: 2}, To: engine.Position{Row: 2, Col: 2}, Score: 10},
		},
		TotalTicks: 2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatHistory(history)

	expectedFields := []string{
		"Tick History (Page 1/1) | Total ticks: 2",
		"1. right (1,1)→(1,2) [Score: 0]",
		"2. down (1,2)→(2,2) [Score: 10]",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
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
		"Grid Raider - Complete Instructions",
		"GAME OBJECTIVE:",
		"TILE LEGEND:",
		"AI AGENTS - CRITICAL SUCCESS STRATEGIES:",
		"CHARACTER RECOGNITION (MOST COMMON FAILURE POINT)",
		"Parse Character-by-Character",
		"SYSTEMATIC ARENA MAPPING:",
		"TICK AWARENESS:",
		"STALKER EVASION:",
		"ROUTE PLANNING:",
		"CRITICAL PITFALLS TO AVOID:",
		"MOVEMENT COMMANDS:",
		"VICTORY CONDITIONS:",
		"GAME OVER CONDITIONS:",
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
