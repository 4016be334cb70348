package engine

import "fmt"

// SetFleetCount chooses how many ships each player places. Values outside
// [MinFleetCount, MaxFleetCount], or calls after ChoosingNumberOfShips, are
// ignored; the return value reports whether n was accepted.
func (e *GameEngine) SetFleetCount(n int) bool {
	if e.phase != ChoosingNumberOfShips || !validFleetCount(n) {
		return false
	}
	e.fleetCount = n
	e.record(ActionEntry{Action: "fleet_count", FleetCount: n})
	e.notify(true)
	return true
}

// AdvancePhase moves the game to its next phase
func (e *GameEngine) AdvancePhase() error {
	next, pending, hasPending, swap, err := e.nextTransition()
	if err != nil {
		return err
	}

	e.phase = next
	e.pending = pending
	e.hasPending = hasPending
	switch {
	case e.current == NoPlayer:
		e.current, e.opponent = PlayerOne, PlayerTwo
	case swap:
		e.current, e.opponent = e.opponent, e.current
	}

	if winner, ok := e.detectWinner(); ok {
		e.phase = PlayerVictory
		e.hasPending = false
		e.current, e.opponent = winner, winner.Other()
	}

	e.firedThisTurn = false
	e.record(ActionEntry{Action: "advance", Player: e.current})
	e.notify(false)
	return nil
}

// nextTransition evaluates the transition table without mutating anything
func (e *GameEngine) nextTransition() (next, pending Phase, hasPending, swap bool, err error) {
	switch e.phase {
	case ChoosingNumberOfShips:
		if !validFleetCount(e.fleetCount) {
			return 0, 0, false, false, fmt.Errorf("%w: fleet count must be between %d and %d, got %d",
				ErrInvalidAdvance, MinFleetCount, MaxFleetCount, e.fleetCount)
		}
		return PromptPlayerChange, PlayerSetup, true, false, nil

	case PlayerSetup:
		placed := len(e.fleets[e.current.index()])
		if placed != e.fleetCount {
			return 0, 0, false, false, fmt.Errorf("%w: %s has placed %d of %d ships",
				ErrInvalidAdvance, e.PlayerDisplayName(e.current), placed, e.fleetCount)
		}
		if e.current == PlayerOne {
			return PromptPlayerChange, PlayerSetup, true, true, nil
		}
		return PromptPlayerChange, PlayerTurn, true, true, nil

	case PlayerTurn:
		if !e.firedThisTurn {
			return 0, 0, false, false, fmt.Errorf("%w: %s must fire before ending the turn",
				ErrInvalidAdvance, e.PlayerDisplayName(e.current))
		}
		return PromptPlayerChange, PlayerTurn, true, true, nil

	case PromptPlayerChange:
		if !e.hasPending {
			return 0, 0, false, false, fmt.Errorf("%w: %w: player change prompt has no pending phase",
				ErrInvalidAdvance, ErrInternal)
		}
		return e.pending, 0, false, false, nil

	case PlayerVictory:
		return 0, 0, false, false, fmt.Errorf("%w: the game is over", ErrInvalidAdvance)
	}

	return 0, 0, false, false, fmt.Errorf("%w: %w: unknown phase %d", ErrInvalidAdvance, ErrInternal, uint8(e.phase))
}

// Winner returns the winning player once one fleet is entirely sunk
func (e *GameEngine) Winner() (Player, bool) {
	if e.phase != PlayerVictory {
		return NoPlayer, false
	}
	return e.current, true
}

// detectWinner re-runs sinking for both players, then checks One before Two for a lost fleet
func (e *GameEngine) detectWinner() (Player, bool) {
	e.propagateSinking(PlayerOne)
	e.propagateSinking(PlayerTwo)

	if len(e.fleets[0]) == 0 || len(e.fleets[1]) == 0 {
		return NoPlayer, false
	}
	for _, loser := range []Player{PlayerOne, PlayerTwo} {
		if e.hasLost(loser) {
			return loser.Other(), true
		}
	}
	return NoPlayer, false
}

// hasLost reports whether p owns ships and every ship cell is Sunk
func (e *GameEngine) hasLost(p Player) bool {
	if len(e.fleets[p.index()]) == 0 {
		return false
	}
	for _, c := range e.ShipCells(p) {
		if e.cell(p, c) != Sunk {
			return false
		}
	}
	return true
}
