package main

import "github.com/wricardo/mcp-training/battleship/game/engine"

// layout returns a fixed, non-overlapping placement for each ship type:
// the ship of length L lies horizontally on row 2(L-1). Player two's ships
// are right-aligned so the two boards differ.
func layout(types []engine.ShipType, p engine.Player) map[engine.ShipType][2]engine.Coord {
	placements := make(map[engine.ShipType][2]engine.Coord, len(types))
	for _, t := range types {
		row := 2 * (t.Len() - 1)
		start := 0
		if p == engine.PlayerTwo {
			start = engine.GridSize - t.Len()
		}
		placements[t] = [2]engine.Coord{
			{Row: row, Col: start},
			{Row: row, Col: start + t.Len() - 1},
		}
	}
	return placements
}

var neighbours = []engine.Coord{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}

// nextTarget picks a cell to fire at from the opponent board as the shooter sees it.
// Cells next to a damaged, unsunk ship come first, then a checkerboard sweep,
// then any untouched cell. ok is false when nothing is left to fire at.
func nextTarget(board engine.Board) (target engine.Coord, ok bool) {
	for r := range board {
		for c := range board[r] {
			if board[r][c].Render != engine.Damaged {
				continue
			}
			for _, d := range neighbours {
				n := engine.Coord{Row: r + d.Row, Col: c + d.Col}
				if n.InBounds() && board[n.Row][n.Col].Render == engine.Available {
					return n, true
				}
			}
		}
	}

	for _, parity := range []int{0, 1} {
		for r := range board {
			for c := range board[r] {
				if (r+c)%2 == parity && board[r][c].Render == engine.Available {
					return engine.Coord{Row: r, Col: c}, true
				}
			}
		}
	}
	return engine.Coord{}, false
}
