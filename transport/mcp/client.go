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

	"github.com/dpontes/gridraider/game/engine"
	"github.com/dpontes/gridraider/game/service"
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
		"Grid Raider",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Grid Raider - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Collect every basic reward (C) and reach the exit (X). Each action advances the
simulation clock by one tick: bonus rewards expire and respawn, stalkers chase
you, and spikes damage you on contact.

AVAILABLE TOOLS:
- game_state: Get current game state
- tick: Single tick with a direction (up/down/left/right/none) - requires intent explanation
- run: Queue multiple directions in sequence - requires intent explanation
- reset_game: Reset to initial state
- tick_history: View past ticks
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules
- describe_tile: Get detailed info about a specific tile (helps verify C vs B vs #)

NOTE: The 'intent' parameter on tick/run tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the arena config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the game one tick, moving the player in a direction. Use 'none' to wait in place (enemies still move).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right", "none"},
					"description": "Direction to move this tick",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before ticking",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleTick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run",
		Description: "Execute a sequence of directions, one per tick",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"directions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right", "none"},
					},
					"description": "Array of directions",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before running",
				},
			},
			Required: []string{"session_id", "directions"},
		},
	}, c.handleRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tick_history",
		Description: "Get tick history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
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
			Required: []string{"session_id"},
		},
	}, c.handleTickHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available arena configurations",
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
		Name:        "describe_tile",
		Description: "Get detailed information about a specific tile in the arena, including its exact character. Useful for verifying whether a tile is passable (., C, B, F, E, X) or a wall (#).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the tile to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the tile to describe (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeTile)
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

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.TickOpResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tick", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatTickResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	directionsRaw, _ := args["directions"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	directions := make([]string, 0, len(directionsRaw))
	for _, d := range directionsRaw {
		if dir, ok := d.(string); ok {
			directions = append(directions, dir)
		}
	}

	body := map[string]interface{}{
		"directions": directions,
		"reset":      reset,
	}

	var result service.RunResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/run", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRunResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTickHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Arena: %dx%d\n\n",
			config.ConfigID, config.Description, config.Width, config.Height)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Grid Raider - Complete Instructions

GAME OBJECTIVE:
Collect every basic reward (C), then reach the exit (X). The simulation runs in
discrete ticks: every action you take advances the clock by exactly one tick,
and everything else on the board moves with it.

GAME MECHANICS:
• Ticks: One direction input per tick. 'none' waits in place but the world still advances.
• Rewards: Basic rewards (C) are required for victory. Bonus rewards (B) add score but
  expire after a fixed number of ticks and later respawn somewhere else. The final
  treasure (F) only unlocks once all basic rewards are collected.
• Enemies: Spikes (S) never move but damage you on contact, with a cooldown before they
  can hurt you again. Stalkers (M) path toward you every tick and end the game on contact.
• Score floor: Taking too much damage drives your score below the floor and ends the game.

TILE LEGEND:
• P - Player (your current position)
• # - Wall (impassable)
• . - Floor (passable)
• E - Entry point (where you spawn)
• X - Exit (step here after collecting all C tiles to win)
• C - Basic reward (required) ⚠️ CRITICAL: Can look similar to other letters in some fonts!
• B - Bonus reward (optional, expires and respawns)
• F - Final treasure (locked until all C collected)
• S - Spike (stationary enemy, contact damage with cooldown)
• M - Stalker (mobile enemy, chases you, contact is fatal)

🤖 AI AGENTS - CRITICAL SUCCESS STRATEGIES:

⚠️ CHARACTER RECOGNITION (MOST COMMON FAILURE POINT):
BEFORE any navigation planning, you MUST:

1. **Parse Character-by-Character**: Never scan visually - examine each position
   Example: "####C#####" must be parsed as:
   Position 0-3: # # # # (walls)
   Position 4: C (REWARD!) ← This is passable and required!
   Position 5-9: # # # # # (walls)

2. **Common Misreading Patterns**:
   - "####C" often misread as "#####"
   - "C...." often misread as "....."
   - "##C##" - the middle C is frequently missed

3. **Verification Strategy**:
   - If a row appears "completely blocked", re-examine position by position
   - Use the describe_tile tool to verify any tile you are unsure about
   - Use test ticks to verify character interpretation
   - Double-check any row that seems to have no passages

🗺️ SYSTEMATIC ARENA MAPPING:
- Create ASCII grid representations showing your understanding
- Mark all rewards, enemies, the entry, and the exit
- Update maps iteratively as you explore
- Build comprehensive understanding before major route planning

⏱️ TICK AWARENESS:
- Every input costs a tick, including 'none' and blocked moves
- Stalkers close one tile of distance per tick: count their steps, not just yours
- Bonus rewards expire on a timer: grab nearby bonuses early or let them go
- Spike damage has a cooldown: passing a spike once is cheap, camping next to it is not

🏃 STALKER EVASION:
- Stalkers path around walls, so distance through the maze matters, not straight-line distance
- Use walls to split your path from theirs
- Never let a stalker get adjacent when your next move is into a dead end
- Check threat_level in game state before committing to long runs

🎯 ROUTE PLANNING:
- Plan the full reward circuit before moving: C tiles first, bonuses opportunistically
- The final treasure (F) is worth a detour only after all C tiles are collected
- End every plan at the exit (X)
- Use the run tool with a planned sequence rather than many single ticks

🚨 CRITICAL PITFALLS TO AVOID:
- ❌ Attempting direct routes without systematic obstacle analysis
- ❌ Standing next to a spike for multiple ticks
- ❌ Ignoring stalker positions while collecting rewards
- ❌ Stepping onto the exit before all basic rewards are collected (nothing happens)
- ❌ **MOST CRITICAL**: Assuming rows are "completely blocked" without character-by-character verification
- ❌ Visual pattern scanning instead of systematic character parsing

🎮 API USAGE BEST PRACTICES:
- Use run for efficiency rather than individual ticks
- A blocked move stops a run: re-plan from the reported position
- Monitor game state continuously during execution
- Use describe_tile to resolve any ambiguity about the board

MOVEMENT COMMANDS:
- up, down, left, right - Single-tick moves in cardinal directions
- none - Wait in place for one tick
- run - Execute multiple directions in sequence
- Reset parameter available for fresh starts

VICTORY CONDITIONS:
- Collect ALL basic rewards (C), then stand on the exit (X)
- Game displays a victory message with your final score

GAME OVER CONDITIONS:
- A stalker (M) catches you
- Your score falls below the score floor from spike damage

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration

Remember: success requires meticulous character recognition, systematic mapping,
and tick-by-tick awareness of every enemy on the board. Good luck raiding! 🗝️`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if row < 0 || row >= state.Height || col < 0 || col >= state.Width {
		return mcp.NewToolResultError(fmt.Sprintf("Position (%d, %d) is out of bounds. Arena is %dx%d (rows 0-%d, cols 0-%d)",
			row, col, state.Width, state.Height, state.Height-1, state.Width-1)), nil
	}

	tileChar := "?"
	if row < len(state.Layout) && col < len(state.Layout[row]) {
		tileChar = string(state.Layout[row][col])
	}

	tileType, passable, description := describeTileChar(tileChar)

	result := fmt.Sprintf(`Tile at position (%d, %d):
Character: %s
Type: %s
Passable: %v
Description: %s

IMPORTANT: The character '%s' is what appears in the arena display.
%s`,
		row, col,
		tileChar,
		tileType,
		passable,
		description,
		tileChar,
		getCharacterReminder(tileChar))

	return mcp.NewToolResultText(result), nil
}

func describeTileChar(char string) (tileType string, passable bool, description string) {
	switch char {
	case "P":
		return "Player", true, "Your current position"
	case "#":
		return "Wall", false, "Wall - IMPASSABLE"
	case ".":
		return "Floor", true, "Empty floor - safe to walk"
	case "E":
		return "Entry", true, "Entry point - where you spawn"
	case "X":
		return "Exit", true, "Exit - step here after collecting all basic rewards to win"
	case "C":
		return "Basic Reward", true, "Basic reward - required for victory"
	case "B":
		return "Bonus Reward", true, "Bonus reward - optional score, expires and respawns"
	case "F":
		return "Final Treasure", true, "Final treasure - locked until all basic rewards are collected"
	case "S":
		return "Spike", true, "Spike - stationary enemy, contact deals damage with a cooldown"
	case "M":
		return "Stalker", true, "Stalker - mobile enemy, contact ends the game"
	default:
		return "Unknown", false, "Unknown tile"
	}
}

func getCharacterReminder(char string) string {
	switch char {
	case "C":
		return "🎯 This is a REQUIRED reward - you must collect every C to win!"
	case "B":
		return "⏱️ This bonus is on a timer - it expires and respawns elsewhere. Grab it soon or skip it."
	case "F":
		return "🔒 The final treasure stays locked until every basic reward (C) is collected."
	case "#":
		return "⚠️ REMINDER: '#' is a wall. Moving into it wastes a tick - enemies still move!"
	case "S":
		return "⚠️ REMINDER: spikes damage you on contact. Passing once is survivable, loitering is not."
	case "M":
		return "💀 REMINDER: a stalker catching you ends the game immediately."
	case "X":
		return "🏁 The exit only grants victory once every basic reward is collected."
	case "E":
		return "This is where you spawned. It is an ordinary passable tile now."
	case "P":
		return "🧍 This is where you currently are."
	default:
		return ""
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Score: %d | Rewards: %d/%d | Tick: %d\n\n",
		state.PlayerPos.Row, state.PlayerPos.Col,
		state.Score, state.BasicCollected, state.BasicToCollect, state.Ticks))

	if state.ThreatLevel != "" {
		result.WriteString(fmt.Sprintf("Threat: %s\n", state.ThreatLevel))
	}
	if len(state.LocalView3x3) == 3 {
		result.WriteString("Local 3x3:\n")
		result.WriteString(state.LocalView3x3[0] + "\n")
		result.WriteString(state.LocalView3x3[1] + "\n")
		result.WriteString(state.LocalView3x3[2] + "\n\n")
	}

	for _, row := range state.Layout {
		result.WriteString(row)
		result.WriteString("\n")
	}

	if state.GameOver {
		if state.Victory {
			result.WriteString("\n🎉 VICTORY!")
		} else {
			result.WriteString("\n💀 GAME OVER")
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatTickResult(result *service.TickOpResult) string {
	response := ""
	if result.Moved {
		response = "✓ Moved\n"
	} else {
		response = "✗ Held position\n"
	}

	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Moved {
			status = "✓"
		}
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) score=%d %s\n",
			s.Dir, s.From.Row, s.From.Col, s.To.Row, s.To.Col, s.ScoreAfter, status)
	}

	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		passStr := "impassable"
		if a.Passable {
			passStr = "passable"
		}
		response += fmt.Sprintf("Blocked: attempted (%d,%d) tile=%s (%s)\n", a.Row, a.Col, a.TileType, passStr)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatRunResult(sessionID string, result *service.RunResult) string {
	var b strings.Builder

	configName := ""
	width, height := 0, 0
	if result.GameState != nil {
		configName = result.GameState.ConfigName
		width, height = result.GameState.Width, result.GameState.Height
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Arena: %dx%d\n",
		sessionID, configName, width, height))

	b.WriteString(fmt.Sprintf("Executed %d/%d ticks\n", result.TicksExecuted, result.RequestedTicks))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated: only the first %d directions were executed\n", result.Limit))
	}

	b.WriteString(fmt.Sprintf("Path: (%d,%d)→(%d,%d) • Score: %d→%d (%+d)\n",
		result.StartPos.Row, result.StartPos.Col, result.EndPos.Row, result.EndPos.Col,
		result.StartScore, result.EndScore, result.ScoreDelta))

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Moved {
				status = "✓"
			}
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) score=%d %s\n",
				s.Idx, s.Dir, s.From.Row, s.From.Col, s.To.Row, s.To.Col, s.ScoreAfter, status))
		}
	}

	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		b.WriteString(fmt.Sprintf("\nBlocked: attempted (%d,%d) tile=%s\n", a.Row, a.Col, a.TileType))
	}

	if result.GameOver {
		b.WriteString(fmt.Sprintf("\nGame over (%s)\n", result.GameOverCode))
	}

	if len(result.LocalView3x3) == 3 {
		b.WriteString("\nLocal 3x3:\n")
		b.WriteString(result.LocalView3x3[0] + "\n")
		b.WriteString(result.LocalView3x3[1] + "\n")
		b.WriteString(result.LocalView3x3[2] + "\n")
	}
	if result.ThreatLevel != "" {
		b.WriteString(fmt.Sprintf("Threat: %s\n", result.ThreatLevel))
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Tick History (Page %d/%d) | Total ticks: %d\n\n",
		history.Page, history.TotalPages, history.TotalTicks)

	for _, entry := range history.Ticks {
		result += fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) [Score: %d]\n",
			entry.Tick, entry.Direction,
			entry.From.Row, entry.From.Col, entry.To.Row, entry.To.Col,
			entry.Score)
	}

	return result
}
