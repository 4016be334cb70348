package engine

// Score returns the number of opponent ship cells p has hit
func (e *GameEngine) Score(p Player) int {
	if !p.Valid() {
		return 0
	}
	return CountCellState(e.boards[p.Other().index()], Damaged, Sunk)
}

// Progress returns the fraction of the opponent's ship cells p has hit.
// It is 0 while the opponent has no ships.
func (e *GameEngine) Progress(p Player) float64 {
	if !p.Valid() {
		return 0
	}
	total := CountCellState(e.boards[p.Other().index()], ShipCell, Damaged, Sunk)
	if total == 0 {
		return 0
	}
	return float64(e.Score(p)) / float64(total)
}

// Accuracy returns hits over shots fired by p, from the action history
func (e *GameEngine) Accuracy(p Player) (shots, hits int) {
	for _, entry := range e.history {
		if entry.Action != "fire" || entry.Player != p {
			continue
		}
		shots++
		if entry.Hit {
			hits++
		}
	}
	return shots, hits
}
