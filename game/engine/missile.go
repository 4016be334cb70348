package engine

import "fmt"

// FireMissile fires at target on the current opponent's board and reports whether a ship was hit
func (e *GameEngine) FireMissile(target Coord) (bool, error) {
	if e.phase != PlayerTurn {
		return false, fmt.Errorf("%w: missiles can only be fired during a turn (phase is %s)", ErrInvalidMissile, e.phase)
	}
	if e.firedThisTurn {
		return false, fmt.Errorf("%w: %s already fired this turn", ErrInvalidMissile, e.PlayerDisplayName(e.current))
	}
	if !target.InBounds() {
		return false, fmt.Errorf("%w: target %s is off the board", ErrInvalidMissile, target.Label())
	}

	victim := e.opponent
	hit := false
	sunk := false
	switch state := e.cell(victim, target); state {
	case ShipCell:
		e.setCell(victim, target, Damaged)
		e.propagateSinking(victim)
		hit = true
		sunk = e.cell(victim, target) == Sunk
	case Available:
		e.setCell(victim, target, Missed)
	default:
		return false, fmt.Errorf("%w: cell %s was already targeted (%s)", ErrInvalidMissile, target.Label(), state)
	}

	e.firedThisTurn = true
	t := target
	e.record(ActionEntry{Action: "fire", Player: e.current, Target: &t, Hit: hit, Sunk: sunk})
	e.notify(true)
	return hit, nil
}

// propagateSinking promotes every fully damaged ship of p to Sunk.
// Cell state is the only record of damage, so this recomputes from scratch.
func (e *GameEngine) propagateSinking(p Player) {
	for _, ship := range e.fleets[p.index()] {
		cells := ship.Cells()
		allDamaged := true
		for _, c := range cells {
			if e.cell(p, c) != Damaged {
				allDamaged = false
				break
			}
		}
		if !allDamaged {
			continue
		}
		for _, c := range cells {
			e.setCell(p, c, Sunk)
		}
	}
}

// SunkShips returns the ships of p whose every cell is Sunk
func (e *GameEngine) SunkShips(p Player) []Ship {
	if !p.Valid() {
		return nil
	}
	var sunk []Ship
	for _, ship := range e.fleets[p.index()] {
		allSunk := true
		for _, c := range ship.Cells() {
			if e.cell(p, c) != Sunk {
				allSunk = false
				break
			}
		}
		if allSunk {
			sunk = append(sunk, ship)
		}
	}
	return sunk
}
