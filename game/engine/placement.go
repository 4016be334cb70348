package engine

import (
	"fmt"
	"time"
)

// CoveredCells expands two endpoints into the inclusive run of coordinates between
// them. The run follows the column axis when the rows match and the row axis otherwise;
// callers validate straightness separately.
func CoveredCells(a, b Coord) []Coord {
	minRow, maxRow := order(a.Row, b.Row)
	minCol, maxCol := order(a.Col, b.Col)

	var cells []Coord
	if a.Row == b.Row {
		for col := minCol; col <= maxCol; col++ {
			cells = append(cells, Coord{Row: a.Row, Col: col})
		}
		return cells
	}
	for row := minRow; row <= maxRow; row++ {
		cells = append(cells, Coord{Row: row, Col: a.Col})
	}
	return cells
}

func order(x, y int) (int, int) {
	if x > y {
		return y, x
	}
	return x, y
}

// ValidateShipGeometry checks that a..b is a straight, in-bounds span of exactly t.Len() cells
func ValidateShipGeometry(t ShipType, a, b Coord) error {
	if !a.InBounds() || !b.InBounds() {
		return fmt.Errorf("%w: endpoints %s and %s must lie on the %dx%d board",
			ErrInvalidPlacement, a.Label(), b.Label(), GridSize, GridSize)
	}
	if a.Row != b.Row && a.Col != b.Col {
		return fmt.Errorf("%w: ship must be placed horizontally or vertically, got %s to %s",
			ErrInvalidPlacement, a.Label(), b.Label())
	}
	if n := len(CoveredCells(a, b)); n != t.Len() {
		return fmt.Errorf("%w: ship %s must cover exactly %d cells, span %s to %s covers %d",
			ErrInvalidPlacement, t, t.Len(), a.Label(), b.Label(), n)
	}
	return nil
}

// PlaceShip places a ship of type t between a and b on the current player's board
func (e *GameEngine) PlaceShip(t ShipType, a, b Coord) error {
	if e.phase != PlayerSetup {
		return fmt.Errorf("%w: ships can only be placed during setup (phase is %s)", ErrInvalidPlacement, e.phase)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: ship type %d is not defined", ErrInvalidPlacement, uint8(t))
	}
	if err := ValidateShipGeometry(t, a, b); err != nil {
		return err
	}

	player := e.current
	cells := CoveredCells(a, b)
	for _, c := range cells {
		switch state := e.cell(player, c); {
		case isShipState(state):
			return fmt.Errorf("%w: cell %s is already occupied by another ship", ErrInvalidPlacement, c.Label())
		case state != Available:
			return fmt.Errorf("%w: cell %s is %s", ErrInvalidPlacement, c.Label(), state)
		}
	}

	fleet := e.fleets[player.index()]
	for _, s := range fleet {
		if s.Type == t {
			return fmt.Errorf("%w: %s already placed a %s ship", ErrInvalidPlacement, e.PlayerDisplayName(player), t)
		}
	}
	if len(fleet) >= e.fleetCount {
		return fmt.Errorf("%w: %s has already placed all %d ships", ErrInvalidPlacement, e.PlayerDisplayName(player), e.fleetCount)
	}

	for _, c := range cells {
		e.setCell(player, c, ShipCell)
	}
	e.fleets[player.index()] = append(fleet, Ship{Type: t, A: a, B: b})

	from, to := a, b
	e.record(ActionEntry{Action: "place_ship", Player: player, ShipType: t, From: &from, To: &to})
	e.notify(true)
	return nil
}

// record appends an entry to the action history
func (e *GameEngine) record(entry ActionEntry) {
	entry.PhaseAfter = e.phase
	entry.Timestamp = time.Now()
	entry.Number = len(e.history) + 1
	e.history = append(e.history, entry)
}
