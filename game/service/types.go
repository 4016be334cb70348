package service

import (
	"time"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

// SessionInfo provides information about a game session. It carries no
// boards so it is safe to show to either player.
type SessionInfo struct {
	ID             string             `json:"id"`
	Label          string             `json:"label"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Phase          engine.Phase       `json:"phase"`
	FleetCount     int                `json:"fleet_count"`
	CurrentPlayer  engine.Player      `json:"current_player"`
	Winner         engine.Player      `json:"winner,omitempty"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// GameView is what the player holding the device may see
type GameView struct {
	SessionID          string            `json:"session_id"`
	Phase              engine.Phase      `json:"phase"`
	PendingPhase       *engine.Phase     `json:"pending_phase,omitempty"`
	Instruction        string            `json:"instruction"`
	CurrentPlayer      engine.Player     `json:"current_player"`
	CurrentPlayerName  string            `json:"current_player_name"`
	OpponentName       string            `json:"opponent_name"`
	FleetCount         int               `json:"fleet_count"`
	PossibleShipTypes  []engine.ShipType `json:"possible_ship_types"`
	RemainingShipTypes []engine.ShipType `json:"remaining_ship_types,omitempty"`
	Fleet              []engine.Ship     `json:"fleet,omitempty"`
	FiredThisTurn      bool              `json:"fired_this_turn"`
	Hidden             bool              `json:"hidden"`
	OwnBoard           *engine.Board     `json:"own_board,omitempty"`
	OpponentBoard      *engine.Board     `json:"opponent_board,omitempty"`
	OwnBoardText       []string          `json:"own_board_text,omitempty"`
	OpponentBoardText  []string          `json:"opponent_board_text,omitempty"`
	Winner             engine.Player     `json:"winner,omitempty"`
	WinnerName         string            `json:"winner_name,omitempty"`
}

// CommandResult contains the outcome of a game command
type CommandResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Hit     bool        `json:"hit,omitempty"`
	Sunk    bool        `json:"sunk,omitempty"`
	View    *GameView   `json:"view"`
	Events  []GameEvent `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // "fleet_count", "ship_placed", "hit", "miss", "sunk", "phase_change", "victory", "reset"
	Message   string        `json:"message"`
	Player    engine.Player `json:"player,omitempty"`
	Target    *engine.Coord `json:"target,omitempty"`
	Phase     engine.Phase  `json:"phase"`
	Timestamp time.Time     `json:"timestamp"`
}

// PlayerScore summarises one player's attack
type PlayerScore struct {
	Player          engine.Player `json:"player"`
	Name            string        `json:"name"`
	Score           int           `json:"score"`
	Progress        float64       `json:"progress"`
	ProgressPercent int           `json:"progress_percent"`
	Shots           int           `json:"shots"`
	Hits            int           `json:"hits"`
	ShipsPlaced     int           `json:"ships_placed"`
	ShipsSunk       int           `json:"ships_sunk"` // enemy ships this player has sunk
}

// Scoreboard holds both players' scores
type Scoreboard struct {
	SessionID string        `json:"session_id"`
	Phase     engine.Phase  `json:"phase"`
	Players   []PlayerScore `json:"players"`
	Winner    engine.Player `json:"winner,omitempty"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.ActionEntry `json:"actions"`
	TotalActions int                  `json:"total_actions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	TotalPages   int                  `json:"total_pages"`
	HasNext      bool                 `json:"has_next"`
	HasPrevious  bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a rule set
type ConfigInfo struct {
	Filename          string             `json:"filename"`
	ConfigID          string             `json:"config_id"` // The identifier to use for session creation
	Name              string             `json:"name"`      // Display name
	Description       string             `json:"description"`
	DefaultFleetCount int                `json:"default_fleet_count,omitempty"`
	PlayerNames       engine.PlayerNames `json:"player_names"`
}
