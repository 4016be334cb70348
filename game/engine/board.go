package engine

// cell returns the state of c on p's board
func (e *GameEngine) cell(p Player, c Coord) CellState {
	return e.boards[p.index()][c.Row][c.Col].Render
}

// setCell is the only place board cells are written
func (e *GameEngine) setCell(p Player, c Coord, state CellState) {
	e.boards[p.index()][c.Row][c.Col].Render = state
}

// OwnBoard returns an independent copy of p's board
func (e *GameEngine) OwnBoard(p Player) Board {
	if !p.Valid() {
		return Board{}
	}
	return e.boards[p.index()]
}

// OpponentBoard returns p's board as the other player sees it: unhit ships and
// disabled cells are reported as Available.
func (e *GameEngine) OpponentBoard(p Player) Board {
	board := e.OwnBoard(p)
	for r := range board {
		for c := range board[r] {
			switch board[r][c].Render {
			case ShipCell, Disabled:
				board[r][c].Render = Available
			}
		}
	}
	return board
}

// ShipCells returns every coordinate on p's board that holds part of a ship
func (e *GameEngine) ShipCells(p Player) []Coord {
	if !p.Valid() {
		return nil
	}
	return shipCells(&e.boards[p.index()])
}

func shipCells(b *Board) []Coord {
	var cells []Coord
	for r := range b {
		for c := range b[r] {
			if isShipState(b[r][c].Render) {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

func isShipState(s CellState) bool {
	return s == ShipCell || s == Damaged || s == Sunk
}

// CountCellState counts the cells in the given states
func CountCellState(b Board, states ...CellState) int {
	count := 0
	for r := range b {
		for c := range b[r] {
			for _, s := range states {
				if b[r][c].Render == s {
					count++
					break
				}
			}
		}
	}
	return count
}
