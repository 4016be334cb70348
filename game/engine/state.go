package engine

import "fmt"

// GetState returns a deep copy of the engine state for persistence
func (e *GameEngine) GetState() *GameState {
	state := &GameState{
		Boards:        e.boards,
		Phase:         e.phase,
		Current:       e.current,
		Opponent:      e.opponent,
		FleetCount:    e.fleetCount,
		FiredThisTurn: e.firedThisTurn,
		History:       e.History(),
	}
	for i := range e.fleets {
		state.Fleets[i] = make([]Ship, len(e.fleets[i]))
		copy(state.Fleets[i], e.fleets[i])
	}
	if e.hasPending {
		pending := e.pending
		state.Pending = &pending
	}
	return state
}

// SetState replaces the engine state (used when loading a persisted session).
// The state is validated first; on error the engine is unchanged. Listeners are kept.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if err := validateState(state); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}

	e.boards = state.Boards
	for i := range state.Fleets {
		e.fleets[i] = make([]Ship, len(state.Fleets[i]))
		copy(e.fleets[i], state.Fleets[i])
	}
	e.phase = state.Phase
	e.hasPending = state.Pending != nil
	e.pending = 0
	if state.Pending != nil {
		e.pending = *state.Pending
	}
	e.current = state.Current
	e.opponent = state.Opponent
	e.fleetCount = state.FleetCount
	e.firedThisTurn = state.FiredThisTurn
	e.history = make([]ActionEntry, len(state.History))
	copy(e.history, state.History)
	return nil
}

// Reset returns the engine to its construction state, keeping listeners
func (e *GameEngine) Reset() {
	e.reset()
	e.notify(false)
}

func validateState(state *GameState) error {
	if !state.Phase.Valid() {
		return fmt.Errorf("unknown phase %d", uint8(state.Phase))
	}
	if state.Pending != nil && !state.Pending.Valid() {
		return fmt.Errorf("unknown pending phase %d", uint8(*state.Pending))
	}
	if state.Phase == PromptPlayerChange && state.Pending == nil {
		return fmt.Errorf("player change prompt without pending phase")
	}

	if state.Phase == ChoosingNumberOfShips {
		if state.Current != NoPlayer || state.Opponent != NoPlayer {
			return fmt.Errorf("players assigned before setup")
		}
		if state.FleetCount != 0 && !validFleetCount(state.FleetCount) {
			return fmt.Errorf("fleet count %d out of range", state.FleetCount)
		}
	} else {
		if !state.Current.Valid() || state.Opponent != state.Current.Other() {
			return fmt.Errorf("invalid current/opponent pair %q/%q", state.Current, state.Opponent)
		}
		if !validFleetCount(state.FleetCount) {
			return fmt.Errorf("fleet count %d out of range", state.FleetCount)
		}
	}

	for i, board := range state.Boards {
		for r := range board {
			for c := range board[r] {
				if !board[r][c].Render.Valid() {
					return fmt.Errorf("board %d cell (%d,%d) has invalid state", i+1, r, c)
				}
			}
		}

		seen := make(map[ShipType]bool)
		occupied := make(map[Coord]bool)
		for _, ship := range state.Fleets[i] {
			if !ship.Type.Valid() {
				return fmt.Errorf("fleet %d has invalid ship type %d", i+1, uint8(ship.Type))
			}
			if seen[ship.Type] {
				return fmt.Errorf("fleet %d has duplicate ship %s", i+1, ship.Type)
			}
			seen[ship.Type] = true
			if err := ValidateShipGeometry(ship.Type, ship.A, ship.B); err != nil {
				return fmt.Errorf("fleet %d: %w", i+1, err)
			}
			for _, cell := range ship.Cells() {
				if occupied[cell] {
					return fmt.Errorf("fleet %d has overlapping ships at %s", i+1, cell.Label())
				}
				occupied[cell] = true
				if !isShipState(board[cell.Row][cell.Col].Render) {
					return fmt.Errorf("fleet %d ship %s does not match board at %s", i+1, ship.Type, cell.Label())
				}
			}
		}
		// a ship cell outside every fleet record could never sink
		for r := range board {
			for c := range board[r] {
				if isShipState(board[r][c].Render) && !occupied[Coord{Row: r, Col: c}] {
					return fmt.Errorf("board %d cell %s holds a ship that is not in the fleet", i+1, Coord{Row: r, Col: c}.Label())
				}
			}
		}
		if state.FleetCount > 0 && len(state.Fleets[i]) > state.FleetCount {
			return fmt.Errorf("fleet %d has %d ships, more than %d", i+1, len(state.Fleets[i]), state.FleetCount)
		}
	}
	return nil
}
