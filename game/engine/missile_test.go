package engine

import (
	"errors"
	"testing"
)

func TestFireMissile_HitAndMiss(t *testing.T) {
	engine := NewEngineWithDefaults()
	startPlaying(t, engine,
		[]Ship{{Ship1x1, at(0, 0), at(0, 0)}, {Ship1x2, at(8, 0), at(8, 1)}},
		[]Ship{{Ship1x1, at(4, 4), at(4, 4)}, {Ship1x2, at(1, 1), at(2, 1)}},
	)

	hit, err := engine.FireMissile(at(1, 1))
	if err != nil {
		t.Fatalf("FireMissile: %v", err)
	}
	if !hit {
		t.Error("Expected hit on ship cell")
	}
	board := engine.OwnBoard(PlayerTwo)
	if board[1][1].Render != Damaged {
		t.Errorf("Expected damaged cell, got %s", board[1][1].Render)
	}
	if last := engine.LastAction(); last == nil || !last.Hit || last.Sunk {
		t.Errorf("Expected recorded hit without sinking, got %+v", last)
	}

	mustAdvance(t, engine, PromptPlayerChange)
	mustAdvance(t, engine, PlayerTurn)
	if engine.CurrentPlayer() != PlayerTwo {
		t.Fatalf("Expected player two's turn, got %s", engine.CurrentPlayer())
	}

	hit, err = engine.FireMissile(at(5, 5))
	if err != nil {
		t.Fatalf("FireMissile: %v", err)
	}
	if hit {
		t.Error("Expected miss on empty cell")
	}
	if engine.OwnBoard(PlayerOne)[5][5].Render != Missed {
		t.Errorf("Expected missed cell on player one's board")
	}
}

func TestFireMissile_SinksShip(t *testing.T) {
	engine := NewEngineWithDefaults()
	startPlaying(t, engine,
		[]Ship{{Ship1x1, at(0, 0), at(0, 0)}, {Ship1x2, at(8, 0), at(8, 1)}},
		[]Ship{{Ship1x1, at(4, 4), at(4, 4)}, {Ship1x2, at(1, 1), at(2, 1)}},
	)

	engine.FireMissile(at(1, 1))
	mustAdvance(t, engine, PromptPlayerChange)
	mustAdvance(t, engine, PlayerTurn)
	engine.FireMissile(at(7, 7))
	mustAdvance(t, engine, PromptPlayerChange)
	mustAdvance(t, engine, PlayerTurn)

	hit, err := engine.FireMissile(at(2, 1))
	if err != nil || !hit {
		t.Fatalf("Expected hit, got hit=%v err=%v", hit, err)
	}
	board := engine.OwnBoard(PlayerTwo)
	for _, c := range []Coord{at(1, 1), at(2, 1)} {
		if board[c.Row][c.Col].Render != Sunk {
			t.Errorf("Expected %s to be sunk, got %s", c.Label(), board[c.Row][c.Col].Render)
		}
	}
	if board[4][4].Render != ShipCell {
		t.Errorf("Expected untouched ship to stay intact, got %s", board[4][4].Render)
	}
	if last := engine.LastAction(); last == nil || !last.Sunk {
		t.Errorf("Expected recorded sinking, got %+v", last)
	}
	if sunk := engine.SunkShips(PlayerTwo); len(sunk) != 1 || sunk[0].Type != Ship1x2 {
		t.Errorf("Expected the 1x2 to be sunk, got %v", sunk)
	}
}

func TestFireMissile_Invalid(t *testing.T) {
	setup := func(t *testing.T) *GameEngine {
		engine := NewEngineWithDefaults()
		startPlaying(t, engine, []Ship{{Ship1x1, at(0, 0), at(0, 0)}}, []Ship{{Ship1x1, at(3, 3), at(3, 3)}})
		return engine
	}

	t.Run("twice in one turn", func(t *testing.T) {
		engine := setup(t)
		engine.FireMissile(at(8, 8))
		if _, err := engine.FireMissile(at(7, 7)); !errors.Is(err, ErrInvalidMissile) {
			t.Errorf("Expected ErrInvalidMissile, got %v", err)
		}
	})

	t.Run("off board", func(t *testing.T) {
		engine := setup(t)
		if _, err := engine.FireMissile(at(9, 0)); !errors.Is(err, ErrInvalidMissile) {
			t.Errorf("Expected ErrInvalidMissile, got %v", err)
		}
	})

	t.Run("already targeted", func(t *testing.T) {
		engine := setup(t)
		engine.FireMissile(at(8, 8))
		mustAdvance(t, engine, PromptPlayerChange)
		mustAdvance(t, engine, PlayerTurn)
		engine.FireMissile(at(8, 8))
		mustAdvance(t, engine, PromptPlayerChange)
		mustAdvance(t, engine, PlayerTurn)

		before := engine.GetState()
		if _, err := engine.FireMissile(at(8, 8)); !errors.Is(err, ErrInvalidMissile) {
			t.Errorf("Expected ErrInvalidMissile for a missed cell, got %v", err)
		}
		if engine.GetState().Boards != before.Boards {
			t.Error("Expected boards unchanged after failed attempt")
		}
		// The turn is not consumed by a rejected shot
		if _, err := engine.FireMissile(at(6, 6)); err != nil {
			t.Errorf("Expected a fresh target to be accepted: %v", err)
		}
	})

	t.Run("wrong phase", func(t *testing.T) {
		engine := NewEngineWithDefaults()
		if _, err := engine.FireMissile(at(0, 0)); !errors.Is(err, ErrInvalidMissile) {
			t.Errorf("Expected ErrInvalidMissile before play starts, got %v", err)
		}
	})
}

func TestScoreAndProgress(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine.Progress(PlayerOne) != 0 {
		t.Errorf("Expected progress 0 with no ships, got %f", engine.Progress(PlayerOne))
	}

	startPlaying(t, engine,
		[]Ship{{Ship1x1, at(0, 0), at(0, 0)}, {Ship1x2, at(8, 0), at(8, 1)}},
		[]Ship{{Ship1x1, at(4, 4), at(4, 4)}, {Ship1x2, at(1, 1), at(2, 1)}},
	)
	if engine.Score(PlayerOne) != 0 || engine.Progress(PlayerOne) != 0 {
		t.Error("Expected zero score and progress before firing")
	}

	engine.FireMissile(at(1, 1))
	if engine.Score(PlayerOne) != 1 {
		t.Errorf("Expected score 1, got %d", engine.Score(PlayerOne))
	}
	if got := engine.Progress(PlayerOne); got < 0.333 || got > 0.334 {
		t.Errorf("Expected progress 1/3, got %f", got)
	}
	if engine.Score(PlayerTwo) != 0 {
		t.Errorf("Expected player two score 0, got %d", engine.Score(PlayerTwo))
	}

	shots, hits := engine.Accuracy(PlayerOne)
	if shots != 1 || hits != 1 {
		t.Errorf("Expected 1/1 accuracy, got %d/%d", hits, shots)
	}
}

func TestOpponentBoard_HidesShips(t *testing.T) {
	engine := NewEngineWithDefaults()
	startPlaying(t, engine,
		[]Ship{{Ship1x1, at(0, 0), at(0, 0)}, {Ship1x2, at(8, 0), at(8, 1)}},
		[]Ship{{Ship1x1, at(4, 4), at(4, 4)}, {Ship1x2, at(1, 1), at(2, 1)}},
	)
	engine.FireMissile(at(1, 1))

	view := engine.OpponentBoard(PlayerTwo)
	if n := CountCellState(view, ShipCell); n != 0 {
		t.Errorf("Expected no visible ship cells, got %d", n)
	}
	if view[1][1].Render != Damaged {
		t.Errorf("Expected hit to be visible, got %s", view[1][1].Render)
	}
	if view[4][4].Render != Available {
		t.Errorf("Expected hidden ship to show as available, got %s", view[4][4].Render)
	}

	view[1][1].Render = Available
	if engine.OwnBoard(PlayerTwo)[1][1].Render != Damaged {
		t.Error("Expected views to be independent copies")
	}
}

func TestDisabledCells(t *testing.T) {
	engine := NewEngineWithDefaults()
	startPlaying(t, engine, []Ship{{Ship1x1, at(0, 0), at(0, 0)}}, []Ship{{Ship1x1, at(4, 4), at(4, 4)}})

	state := engine.GetState()
	state.Boards[1][6][6].Render = Disabled
	if err := engine.SetState(state); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	t.Run("Hidden from the opponent", func(t *testing.T) {
		if got := engine.OpponentBoard(PlayerTwo)[6][6].Render; got != Available {
			t.Errorf("Expected disabled cell to show as available, got %s", got)
		}
		if got := engine.OwnBoard(PlayerTwo)[6][6].Render; got != Disabled {
			t.Errorf("Expected owner to see the disabled cell, got %s", got)
		}
	})

	t.Run("Cannot be targeted", func(t *testing.T) {
		hit, err := engine.FireMissile(at(6, 6))
		if !errors.Is(err, ErrInvalidMissile) {
			t.Fatalf("Expected ErrInvalidMissile, got %v", err)
		}
		if hit {
			t.Error("Expected no hit")
		}
		if engine.FiredThisTurn() {
			t.Error("Expected the turn's shot to remain unused")
		}
		if got := engine.OwnBoard(PlayerTwo)[6][6].Render; got != Disabled {
			t.Errorf("Expected cell to stay disabled, got %s", got)
		}
	})
}
