package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/battleship/game/engine"
	"github.com/wricardo/mcp-training/battleship/game/service"
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
		baseURL: strings.TrimSuffix(baseURL, "/"),
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
		"Hot-Seat Battleship",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hot-Seat Battleship - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Two players share one device. Each picks the same number of ships (1 to 5,
sizes 1x1 up to 1xN), places them on a 9x9 grid, then they take turns firing
one missile per turn. Sink every enemy ship to win.

AVAILABLE TOOLS:
- create_session / get_session / list_sessions: manage games
- game_state: the view for the player currently holding the device
- set_fleet_count: choose how many ships each player places
- place_ship: place a ship between two cells, e.g. A1 to C1
- fire_missile: fire at a cell on the opponent's board, e.g. C4
- advance_phase: hand the device over or continue after the handover screen
- reset_game: start over
- scoreboard: hits, accuracy and progress for both players
- action_history: past actions
- list_configs: available rule sets
- game_instructions: full rules
- describe_cell: inspect one cell of either board

Cells are labelled by column letter (A-I) and row number (1-9).`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
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
					"description": "ID of the rule set to use, see list_configs (optional)",
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
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game state
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current player's view: phase, instruction, own board and fogged opponent board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "scoreboard",
		Description: "Get hits, shots, accuracy and progress for both players",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleScoreboard)

	// Game commands
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_fleet_count",
		Description: "Choose how many ships each player places (1-5). Only allowed before setup starts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"count": map[string]interface{}{
					"type":        "integer",
					"minimum":     engine.MinFleetCount,
					"maximum":     engine.MaxFleetCount,
					"description": "Number of ships per player",
				},
			},
			Required: []string{"session_id", "count"},
		},
	}, c.handleSetFleetCount)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_ship",
		Description: "Place a ship on the current player's board. The two ends must be in one row or column and span exactly the ship length.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"ship_type": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"1x1", "1x2", "1x3", "1x4", "1x5"},
					"description": "Ship size",
				},
				"from": map[string]interface{}{
					"type":        "string",
					"description": "First end of the ship, e.g. A1",
				},
				"to": map[string]interface{}{
					"type":        "string",
					"description": "Other end of the ship, e.g. C1",
				},
			},
			Required: []string{"session_id", "ship_type", "from", "to"},
		},
	}, c.handlePlaceShip)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fire_missile",
		Description: "Fire one missile at the opponent's board. One shot per turn.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Target cell, e.g. C4",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this cell (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "target"},
		},
	}, c.handleFireMissile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "advance_phase",
		Description: "Advance to the next phase: finish setup, end the turn after firing, or continue past the handover screen",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleAdvancePhase)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to the fleet size choice",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get action history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
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
	}, c.handleActionHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rule sets",
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
		Description: "Get the state of one cell on the current player's own board or on the opponent's (fogged) board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"cell": map[string]interface{}{
					"type":        "string",
					"description": "Cell label, e.g. C4",
				},
				"board": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"own", "opponent"},
					"description": "Which board to inspect (default opponent)",
				},
			},
			Required: []string{"session_id", "cell"},
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

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s (%s)\nConfig: %s\n", session.ID, session.Label, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s %s (Config: %s, Phase: %s, Created: %s)\n",
			s.ID, s.Label, s.ConfigName, s.Phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall("GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var view service.GameView
	if err := c.apiCall("GET", path, nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatView(&view)), nil
}

func (c *Client) handleScoreboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/scoreboard")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var scoreboard service.Scoreboard
	if err := c.apiCall("GET", path, nil, &scoreboard); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScoreboard(&scoreboard)), nil
}

func (c *Client) handleSetFleetCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/fleet-count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, ok := args["count"].(float64)
	if !ok {
		return mcp.NewToolResultError("count is required"), nil
	}

	var result service.CommandResult
	if err := c.apiCall("POST", path, map[string]int{"count": int(count)}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handlePlaceShip(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/ships")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	shipType, _ := args["ship_type"].(string)
	from, _ := args["from"].(string)
	to, _ := args["to"].(string)

	body := map[string]string{"type": shipType, "a": from, "b": to}

	var result service.CommandResult
	if err := c.apiCall("POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleFireMissile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/fire")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, _ := args["target"].(string)

	intent, _ := args["intent"].(string)
	if intent != "" {
		log.Printf("[MCP FIRE] session=%v target=%s intent=%q", args["session_id"], target, intent)
	}

	var result service.CommandResult
	if err := c.apiCall("POST", path, map[string]string{"target": target}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatCommandResult(&result)
	if intent != "" {
		text = fmt.Sprintf("Intent: %s\n%s", intent, text)
	}
	return mcp.NewToolResultText(text), nil
}

func (c *Client) handleAdvancePhase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/advance")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result service.CommandResult
	if err := c.apiCall("POST", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatCommandResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *service.GameView `json:"state"`
	}
	if err := c.apiCall("POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.State != nil {
		result += "\n\n" + formatView(response.State)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page, ok := args["page"].(float64); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := args["limit"].(float64); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall("GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n", config.Name, config.ConfigID, config.Description)
		if config.PlayerNames.One != "" || config.PlayerNames.Two != "" {
			fmt.Fprintf(&b, "  Players: %s vs %s\n", config.PlayerNames.One, config.PlayerNames.Two)
		}
		if config.DefaultFleetCount > 0 {
			fmt.Fprintf(&b, "  Suggested fleet: %d ships\n", config.DefaultFleetCount)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

const gameInstructions = `Hot-Seat Battleship - Complete Instructions

GAME OBJECTIVE:
Sink every ship in your opponent's fleet before they sink yours.

SETUP:
1. Choose the fleet size, 1 to 5 ships (set_fleet_count), then advance_phase.
2. Each player in turn places one ship of every size from 1x1 up to 1xN,
   where N is the fleet size (place_ship), then calls advance_phase.
   Ships lie in a single row or column and may not overlap or touch,
   not even diagonally. Cells next to a placed ship become disabled (#).

TURNS:
- Fire exactly one missile per turn (fire_missile), then advance_phase.
- A cell can only be fired at once.
- When every cell of a ship is hit, the whole ship is sunk.

HANDOVER:
Between turns the game shows a handover screen (prompt_player_change).
Nothing is visible on it. Pass the device, then call advance_phase.

BOARD LEGEND:
• . - open water
• # - disabled, next to one of your ships
• S - your ship
• X - hit ship cell
• * - sunk ship cell
• o - missed shot

COORDINATES:
Columns A-I, rows 1-9. "C4" is column C, row 4.

VICTORY CONDITIONS:
The game ends as soon as one fleet is entirely sunk; the other player wins.

Good luck, admiral!`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(gameInstructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	label, _ := args["cell"].(string)
	which, _ := args["board"].(string)
	if which == "" {
		which = "opponent"
	}

	coord, err := engine.ParseCoord(label)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v. Use a column A-I and a row 1-9, e.g. C4", err)), nil
	}

	var view service.GameView
	if err := c.apiCall("GET", path, nil, &view); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board := view.OpponentBoard
	owner := view.OpponentName
	if which == "own" {
		board = view.OwnBoard
		owner = view.CurrentPlayerName
	}
	if board == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No %s board is visible during %s", which, view.Phase)), nil
	}

	state := board[coord.Row][coord.Col].Render
	result := fmt.Sprintf(`Cell %s on %s's board:
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %s
State: %s
Description: %s`,
		coord.Label(), owner, engine.CellChar(state), state, describeCellState(state, which == "own"))

	return mcp.NewToolResultText(result), nil
}

func describeCellState(state engine.CellState, own bool) string {
	switch state {
	case engine.Available:
		if own {
			return "Open water, a ship may be placed here"
		}
		return "Not fired at yet"
	case engine.Disabled:
		return "Next to a ship, no ship may be placed here"
	case engine.ShipCell:
		return "Intact ship cell"
	case engine.Damaged:
		return "Hit ship cell, the ship is still afloat"
	case engine.Sunk:
		return "Part of a sunk ship"
	case engine.Missed:
		return "Missile landed in open water"
	default:
		return "Unknown cell state"
	}
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s (%s)\n", session.ID, session.Label)
	fmt.Fprintf(&b, "Config: %s\n", session.ConfigName)
	fmt.Fprintf(&b, "Phase: %s\n", session.Phase)
	if session.FleetCount > 0 {
		fmt.Fprintf(&b, "Fleet: %d ships per player\n", session.FleetCount)
	}
	if session.CurrentPlayer != engine.NoPlayer {
		fmt.Fprintf(&b, "Current player: %s\n", session.CurrentPlayer)
	}
	if session.Winner != engine.NoPlayer {
		fmt.Fprintf(&b, "Winner: %s\n", session.Winner)
	}
	fmt.Fprintf(&b, "Created: %s\n", session.CreatedAt.Format(time.RFC3339))
	return b.String()
}

func formatView(view *service.GameView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Phase: %s\n", view.Phase)
	if view.Instruction != "" {
		fmt.Fprintf(&b, "Instruction: %s\n", view.Instruction)
	}
	if view.CurrentPlayerName != "" {
		fmt.Fprintf(&b, "Player: %s (vs %s)\n", view.CurrentPlayerName, view.OpponentName)
	}
	if view.FleetCount > 0 {
		fmt.Fprintf(&b, "Fleet: %d ships (%s)\n", view.FleetCount, joinShipTypes(view.PossibleShipTypes))
	}
	if len(view.RemainingShipTypes) > 0 {
		fmt.Fprintf(&b, "Still to place: %s\n", joinShipTypes(view.RemainingShipTypes))
	}
	if view.Phase == engine.PlayerTurn {
		if view.FiredThisTurn {
			b.WriteString("You have fired this turn. Call advance_phase to pass the device.\n")
		} else {
			b.WriteString("You have not fired yet this turn.\n")
		}
	}

	if view.Hidden {
		b.WriteString("\nHandover screen: pass the device, then call advance_phase.\n")
		return b.String()
	}

	if len(view.OwnBoardText) > 0 {
		b.WriteString("\nYour board:\n")
		b.WriteString(strings.Join(view.OwnBoardText, "\n"))
		b.WriteString("\n")
	}
	if len(view.OpponentBoardText) > 0 {
		b.WriteString("\nOpponent board:\n")
		b.WriteString(strings.Join(view.OpponentBoardText, "\n"))
		b.WriteString("\n")
	}

	if view.WinnerName != "" {
		fmt.Fprintf(&b, "\n🏆 %s won!\n", view.WinnerName)
	}
	return b.String()
}

func formatCommandResult(result *service.CommandResult) string {
	var b strings.Builder

	status := "OK"
	if !result.Success {
		status = "IGNORED"
	}
	fmt.Fprintf(&b, "[%s] %s\n", status, result.Message)
	if result.Hit {
		b.WriteString("💥 Hit!\n")
	}
	if result.Sunk {
		b.WriteString("🔥 Ship sunk!\n")
	}
	if result.View != nil {
		b.WriteString("\n")
		b.WriteString(formatView(result.View))
	}
	return b.String()
}

func formatScoreboard(scoreboard *service.Scoreboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scoreboard (phase: %s)\n", scoreboard.Phase)
	for _, p := range scoreboard.Players {
		accuracy := 0
		if p.Shots > 0 {
			accuracy = p.Hits * 100 / p.Shots
		}
		fmt.Fprintf(&b, "- %s: %d hits, %d/%d shots (%d%% accuracy), %d%% of enemy fleet hit, %d ships sunk\n",
			p.Name, p.Score, p.Hits, p.Shots, accuracy, p.ProgressPercent, p.ShipsSunk)
	}
	if scoreboard.Winner != engine.NoPlayer {
		fmt.Fprintf(&b, "Winner: %s\n", scoreboard.Winner)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d of %d, %d total actions):\n\n",
		history.Page, history.TotalPages, history.TotalActions)

	for _, entry := range history.Actions {
		fmt.Fprintf(&b, "#%d %s\n", entry.Number, describeAction(entry))
	}

	if history.HasNext {
		b.WriteString("\n(more actions on the next page)\n")
	}
	return b.String()
}

func describeAction(entry engine.ActionEntry) string {
	switch entry.Action {
	case "fleet_count":
		return fmt.Sprintf("fleet size set to %d", entry.FleetCount)
	case "place_ship":
		if entry.From != nil && entry.To != nil {
			return fmt.Sprintf("%s placed %s from %s to %s", entry.Player, entry.ShipType, entry.From.Label(), entry.To.Label())
		}
		return fmt.Sprintf("%s placed %s", entry.Player, entry.ShipType)
	case "fire":
		outcome := "miss"
		if entry.Sunk {
			outcome = "hit, sunk"
		} else if entry.Hit {
			outcome = "hit"
		}
		target := "?"
		if entry.Target != nil {
			target = entry.Target.Label()
		}
		return fmt.Sprintf("%s fired at %s: %s", entry.Player, target, outcome)
	case "advance":
		return fmt.Sprintf("advanced to %s", entry.PhaseAfter)
	default:
		return entry.Action
	}
}

func joinShipTypes(types []engine.ShipType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}
