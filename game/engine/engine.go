package engine

import "fmt"

// Engine provides the main interface for game operations
type Engine interface {
	// Queries
	Dimensions() (rows, cols int)
	Phase() Phase
	PendingPhase() (Phase, bool)
	CurrentPlayer() Player
	CurrentOpponent() Player
	OwnBoard(p Player) Board
	OpponentBoard(p Player) Board
	ShipCells(p Player) []Coord
	Score(p Player) int
	Progress(p Player) float64
	PossibleShipTypes() []ShipType
	Fleet(p Player) []Ship
	FleetCount() int
	PlayerDisplayName(p Player) string
	Winner() (Player, bool)

	// Commands
	SetFleetCount(n int) bool
	PlaceShip(t ShipType, a, b Coord) error
	FireMissile(target Coord) (bool, error)
	AdvancePhase() error

	// Notification
	OnChange(l Listener) Subscription
	Unsubscribe(sub Subscription) bool

	// Persistence
	GetState() *GameState
	SetState(state *GameState) error
	GetConfig() *GameConfig
	History() []ActionEntry
}

var _ Engine = (*GameEngine)(nil)

type subscriber struct {
	id Subscription
	fn Listener
}

// GameEngine implements the Engine interface
type GameEngine struct {
	config *GameConfig

	boards [2]Board
	fleets [2][]Ship

	phase         Phase
	pending       Phase
	hasPending    bool
	current       Player
	opponent      Player
	fleetCount    int
	firedThisTurn bool

	history []ActionEntry

	subscribers []subscriber
	nextSubID   Subscription
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{config: config}
	e.reset()
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults() *GameEngine {
	e := &GameEngine{config: DefaultGameConfig()}
	e.reset()
	return e
}

// reset puts the engine in its construction state
func (e *GameEngine) reset() {
	e.boards = [2]Board{}
	e.fleets = [2][]Ship{}
	e.phase = ChoosingNumberOfShips
	e.hasPending = false
	e.current = NoPlayer
	e.opponent = NoPlayer
	e.fleetCount = 0
	e.firedThisTurn = false
	e.history = nil
	if validFleetCount(e.config.DefaultFleetCount) {
		e.fleetCount = e.config.DefaultFleetCount
	}
}

// Dimensions returns the board size
func (e *GameEngine) Dimensions() (rows, cols int) {
	return GridSize, GridSize
}

// Phase returns the active phase
func (e *GameEngine) Phase() Phase {
	return e.phase
}

// PendingPhase returns the phase a PromptPlayerChange will resolve to
func (e *GameEngine) PendingPhase() (Phase, bool) {
	return e.pending, e.hasPending
}

// CurrentPlayer returns the player whose turn it is (NoPlayer before setup starts)
func (e *GameEngine) CurrentPlayer() Player {
	return e.current
}

// CurrentOpponent returns the other player
func (e *GameEngine) CurrentOpponent() Player {
	return e.opponent
}

// FleetCount returns the chosen number of ships per player (0 if not chosen yet)
func (e *GameEngine) FleetCount() int {
	return e.fleetCount
}

// FiredThisTurn reports whether the current player has already fired during this PlayerTurn
func (e *GameEngine) FiredThisTurn() bool {
	return e.firedThisTurn
}

// GetConfig returns the rule set the engine was built with
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// PlayerDisplayName returns the configured name for p
func (e *GameEngine) PlayerDisplayName(p Player) string {
	switch p {
	case PlayerOne:
		if e.config.PlayerNames.One != "" {
			return e.config.PlayerNames.One
		}
		return "Player 1"
	case PlayerTwo:
		if e.config.PlayerNames.Two != "" {
			return e.config.PlayerNames.Two
		}
		return "Player 2"
	}
	return ""
}

// Instruction returns the helper text for the active phase
func (e *GameEngine) Instruction() string {
	if text, ok := e.config.Instructions[e.phase]; ok {
		return text
	}
	return defaultInstructions[e.phase]
}

// Fleet returns a copy of the ships p has placed
func (e *GameEngine) Fleet(p Player) []Ship {
	if !p.Valid() {
		return nil
	}
	fleet := make([]Ship, len(e.fleets[p.index()]))
	copy(fleet, e.fleets[p.index()])
	return fleet
}

// PossibleShipTypes returns the ship types each player must place for the chosen fleet size
func (e *GameEngine) PossibleShipTypes() []ShipType {
	if !validFleetCount(e.fleetCount) {
		return []ShipType{}
	}
	types := make([]ShipType, e.fleetCount)
	copy(types, AllShipTypes[:e.fleetCount])
	return types
}

// History returns a copy of the action history
func (e *GameEngine) History() []ActionEntry {
	history := make([]ActionEntry, len(e.history))
	copy(history, e.history)
	return history
}

// LastAction returns the most recent action, or nil if none
func (e *GameEngine) LastAction() *ActionEntry {
	if len(e.history) == 0 {
		return nil
	}
	entry := e.history[len(e.history)-1]
	return &entry
}

// OnChange registers a listener called after every mutating command
func (e *GameEngine) OnChange(l Listener) Subscription {
	e.nextSubID++
	e.subscribers = append(e.subscribers, subscriber{id: e.nextSubID, fn: l})
	return e.nextSubID
}

// Unsubscribe removes a listener. It reports whether the subscription was found.
func (e *GameEngine) Unsubscribe(sub Subscription) bool {
	for i, s := range e.subscribers {
		if s.id == sub {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return true
		}
	}
	return false
}

// notify calls listeners in registration order
func (e *GameEngine) notify(wasRefresh bool) {
	// Copy so a listener may unsubscribe itself
	subs := make([]subscriber, len(e.subscribers))
	copy(subs, e.subscribers)
	for _, s := range subs {
		s.fn(e.phase, wasRefresh)
	}
}

func validFleetCount(n int) bool {
	return n >= MinFleetCount && n <= MaxFleetCount
}
