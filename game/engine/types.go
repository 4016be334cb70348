package engine

import (
	"fmt"
	"strings"
	"time"
)

const (
	// GridSize is the fixed board dimension (GridSize x GridSize)
	GridSize = 9

	// Fleet size bounds
	MinFleetCount = 1
	MaxFleetCount = 5
)

// CellState is the render state of a single board cell
type CellState uint8

const (
	Available CellState = iota
	Disabled
	ShipCell
	Damaged
	Sunk
	Missed
)

var cellStateNames = [...]string{
	Available: "available",
	Disabled:  "disabled",
	ShipCell:  "ship",
	Damaged:   "damaged",
	Sunk:      "sunk",
	Missed:    "missed",
}

func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Valid reports whether s is one of the six defined states
func (s CellState) Valid() bool {
	return int(s) < len(cellStateNames)
}

// MarshalText implements encoding.TextMarshaler
func (s CellState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid cell state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *CellState) UnmarshalText(text []byte) error {
	for i, name := range cellStateNames {
		if name == string(text) {
			*s = CellState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}

// Player identifies one of the two seats. The zero value is NoPlayer.
type Player uint8

const (
	NoPlayer Player = iota
	PlayerOne
	PlayerTwo
)

var playerNames = [...]string{
	NoPlayer:  "",
	PlayerOne: "player_one",
	PlayerTwo: "player_two",
}

func (p Player) String() string {
	if int(p) < len(playerNames) {
		return playerNames[p]
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

// Valid reports whether p is PlayerOne or PlayerTwo
func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// Other returns the opposing player
func (p Player) Other() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return NoPlayer
}

// index maps a valid player to 0 or 1 for per-player arrays
func (p Player) index() int {
	return int(p) - 1
}

// MarshalText implements encoding.TextMarshaler
func (p Player) MarshalText() ([]byte, error) {
	if int(p) >= len(playerNames) {
		return nil, fmt.Errorf("invalid player %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Player) UnmarshalText(text []byte) error {
	for i, name := range playerNames {
		if name == string(text) {
			*p = Player(i)
			return nil
		}
	}
	return fmt.Errorf("unknown player %q", text)
}

// Phase is the engine-wide game progress state
type Phase uint8

const (
	ChoosingNumberOfShips Phase = iota
	PlayerSetup
	PromptPlayerChange
	PlayerTurn
	PlayerVictory
)

var phaseNames = [...]string{
	ChoosingNumberOfShips: "choosing_number_of_ships",
	PlayerSetup:           "player_setup",
	PromptPlayerChange:    "prompt_player_change",
	PlayerTurn:            "player_turn",
	PlayerVictory:         "player_victory",
}

// AllPhases lists every phase in declaration order
var AllPhases = []Phase{ChoosingNumberOfShips, PlayerSetup, PromptPlayerChange, PlayerTurn, PlayerVictory}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Valid reports whether p is a defined phase
func (p Phase) Valid() bool {
	return int(p) < len(phaseNames)
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid phase %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// ShipType is a ship class. Its value is the ship length; the zero value is invalid.
type ShipType uint8

const (
	Ship1x1 ShipType = iota + 1
	Ship1x2
	Ship1x3
	Ship1x4
	Ship1x5
)

// AllShipTypes lists the five ship types in ascending length
var AllShipTypes = []ShipType{Ship1x1, Ship1x2, Ship1x3, Ship1x4, Ship1x5}

// Len returns the number of cells the ship covers
func (t ShipType) Len() int {
	return int(t)
}

// Valid reports whether t is one of the five defined types
func (t ShipType) Valid() bool {
	return t >= Ship1x1 && t <= Ship1x5
}

func (t ShipType) String() string {
	return fmt.Sprintf("1x%d", uint8(t))
}

// ParseShipType parses names like "1x3" (a bare "3" is accepted too)
func ParseShipType(s string) (ShipType, error) {
	n, ok := parseDigits(strings.TrimPrefix(strings.ToLower(s), "1x"))
	if !ok || n < int(Ship1x1) || n > int(Ship1x5) {
		return 0, fmt.Errorf("unknown ship type %q", s)
	}
	return ShipType(n), nil
}

// MarshalText implements encoding.TextMarshaler
func (t ShipType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid ship type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *ShipType) UnmarshalText(text []byte) error {
	parsed, err := ParseShipType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Coord is a zero-based (row, column) board coordinate
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether c lies on the board
func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

// Cell is one square of a board
type Cell struct {
	Render CellState `json:"render"`
}

// Board is a fixed grid of cells. Being an array, assigning or returning it copies every cell.
type Board [GridSize][GridSize]Cell

// Ship is an immutable placement record
type Ship struct {
	Type ShipType `json:"type"`
	A    Coord    `json:"a"`
	B    Coord    `json:"b"`
}

// Cells returns the coordinates the ship covers
func (s Ship) Cells() []Coord {
	return CoveredCells(s.A, s.B)
}

// Listener is notified after every mutating command
type Listener func(phase Phase, wasRefresh bool)

// Subscription identifies a registered listener
type Subscription int

// ActionEntry records one successful command in the action history
type ActionEntry struct {
	Action     string    `json:"action"` // "fleet_count", "place_ship", "fire", "advance"
	Player     Player    `json:"player"`
	ShipType   ShipType  `json:"ship_type,omitempty"`
	From       *Coord    `json:"from,omitempty"`
	To         *Coord    `json:"to,omitempty"`
	Target     *Coord    `json:"target,omitempty"`
	Hit        bool      `json:"hit,omitempty"`
	Sunk       bool      `json:"sunk,omitempty"`
	FleetCount int       `json:"fleet_count,omitempty"`
	PhaseAfter Phase     `json:"phase_after"`
	Timestamp  time.Time `json:"timestamp"`
	Number     int       `json:"number"`
}

// GameState is a complete, self-contained snapshot of engine state
type GameState struct {
	Boards        [2]Board      `json:"boards"`
	Fleets        [2][]Ship     `json:"fleets"`
	Phase         Phase         `json:"phase"`
	Pending       *Phase        `json:"pending,omitempty"`
	Current       Player        `json:"current"`
	Opponent      Player        `json:"opponent"`
	FleetCount    int           `json:"fleet_count"`
	FiredThisTurn bool          `json:"fired_this_turn"`
	History       []ActionEntry `json:"history"`
}

// PlayerNames holds display names for both seats
type PlayerNames struct {
	One string `json:"one"`
	Two string `json:"two"`
}

// GameConfig is a rule set loaded from JSON
type GameConfig struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	PlayerNames       PlayerNames      `json:"player_names"`
	DefaultFleetCount int              `json:"default_fleet_count,omitempty"`
	Instructions      map[Phase]string `json:"instructions,omitempty"`
}
