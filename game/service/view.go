package service

import (
	"math"

	"github.com/wricardo/mcp-training/battleship/game/engine"
)

// buildView renders the hot-seat view for the player whose turn it is.
// Boards are withheld while the device is being passed. Once the game is
// won both boards are revealed.
func buildView(sess *Session) *GameView {
	e := sess.Engine
	current := e.CurrentPlayer()
	opponent := e.CurrentOpponent()

	view := &GameView{
		SessionID:         sess.ID,
		Phase:             e.Phase(),
		Instruction:       e.Instruction(),
		CurrentPlayer:     current,
		CurrentPlayerName: e.PlayerDisplayName(current),
		OpponentName:      e.PlayerDisplayName(opponent),
		FleetCount:        e.FleetCount(),
		PossibleShipTypes: e.PossibleShipTypes(),
		FiredThisTurn:     e.FiredThisTurn(),
	}
	if pending, ok := e.PendingPhase(); ok {
		view.PendingPhase = &pending
	}

	switch e.Phase() {
	case engine.ChoosingNumberOfShips:
		return view
	case engine.PromptPlayerChange:
		view.Hidden = true
		return view
	}

	own := e.OwnBoard(current)
	enemy := e.OpponentBoard(opponent)
	if e.Phase() == engine.PlayerVictory {
		enemy = e.OwnBoard(opponent)
		view.Winner = current
		view.WinnerName = e.PlayerDisplayName(current)
	}
	view.OwnBoard = &own
	view.OpponentBoard = &enemy
	view.OwnBoardText = engine.FormatBoard(own)
	view.OpponentBoardText = engine.FormatBoard(enemy)
	view.Fleet = e.Fleet(current)

	if e.Phase() == engine.PlayerSetup {
		view.RemainingShipTypes = remainingShipTypes(e.PossibleShipTypes(), view.Fleet)
	}
	return view
}

func remainingShipTypes(possible []engine.ShipType, fleet []engine.Ship) []engine.ShipType {
	placed := make(map[engine.ShipType]bool, len(fleet))
	for _, s := range fleet {
		placed[s.Type] = true
	}
	remaining := []engine.ShipType{}
	for _, t := range possible {
		if !placed[t] {
			remaining = append(remaining, t)
		}
	}
	return remaining
}

func buildScoreboard(sess *Session) *Scoreboard {
	e := sess.Engine
	board := &Scoreboard{
		SessionID: sess.ID,
		Phase:     e.Phase(),
		Players:   make([]PlayerScore, 0, 2),
	}
	if winner, ok := e.Winner(); ok {
		board.Winner = winner
	}

	for _, p := range []engine.Player{engine.PlayerOne, engine.PlayerTwo} {
		shots, hits := e.Accuracy(p)
		progress := e.Progress(p)
		board.Players = append(board.Players, PlayerScore{
			Player:          p,
			Name:            e.PlayerDisplayName(p),
			Score:           e.Score(p),
			Progress:        progress,
			ProgressPercent: int(math.Round(progress * 100)),
			Shots:           shots,
			Hits:            hits,
			ShipsPlaced:     len(e.Fleet(p)),
			ShipsSunk:       len(e.SunkShips(p.Other())),
		})
	}
	return board
}
