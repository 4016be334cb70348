package engine

import (
	"encoding/json"
	"testing"
)

func TestGetState_DeepCopy(t *testing.T) {
	engine := NewEngineWithDefaults()
	startSetup(t, engine, 2)
	engine.PlaceShip(Ship1x2, at(0, 0), at(0, 1))

	state := engine.GetState()
	state.Boards[0][0][0].Render = Missed
	state.Fleets[0][0].Type = Ship1x5
	state.History[0].Action = "tampered"

	if engine.OwnBoard(PlayerOne)[0][0].Render != ShipCell {
		t.Error("Expected board to be unaffected by snapshot edits")
	}
	if engine.Fleet(PlayerOne)[0].Type != Ship1x2 {
		t.Error("Expected fleet to be unaffected by snapshot edits")
	}
	if engine.History()[0].Action != "fleet_count" {
		t.Error("Expected history to be unaffected by snapshot edits")
	}
}

func TestSetState_RoundTrip(t *testing.T) {
	original := NewEngineWithDefaults()
	startPlaying(t, original, []Ship{{Ship1x1, at(0, 0), at(0, 0)}}, []Ship{{Ship1x1, at(3, 3), at(3, 3)}})
	original.FireMissile(at(5, 5))
	original.AdvancePhase()

	data, err := json.Marshal(original.GetState())
	if err != nil {
		t.Fatalf("Failed to marshal state: %v", err)
	}

	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("Failed to unmarshal state: %v", err)
	}

	restored := NewEngineWithDefaults()
	if err := restored.SetState(&state); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	if restored.Phase() != PromptPlayerChange {
		t.Errorf("Expected prompt phase, got %s", restored.Phase())
	}
	if pending, ok := restored.PendingPhase(); !ok || pending != PlayerTurn {
		t.Errorf("Expected pending player turn, got %s (%v)", pending, ok)
	}
	if restored.CurrentPlayer() != PlayerTwo {
		t.Errorf("Expected player two, got %s", restored.CurrentPlayer())
	}
	if restored.OwnBoard(PlayerTwo) != original.OwnBoard(PlayerTwo) {
		t.Error("Expected boards to survive the round trip")
	}
	if len(restored.History()) != len(original.History()) {
		t.Errorf("Expected %d history entries, got %d", len(original.History()), len(restored.History()))
	}

	// The restored game keeps playing
	mustAdvance(t, restored, PlayerTurn)
	if hit, err := restored.FireMissile(at(0, 0)); err != nil || !hit {
		t.Errorf("Expected hit on restored board, got hit=%v err=%v", hit, err)
	}
}

func TestSetState_Invalid(t *testing.T) {
	base := func() *GameState {
		engine := NewEngineWithDefaults()
		startPlaying(t, engine, []Ship{{Ship1x1, at(0, 0), at(0, 0)}}, []Ship{{Ship1x1, at(3, 3), at(3, 3)}})
		return engine.GetState()
	}

	tests := []struct {
		name   string
		mutate func(s *GameState)
	}{
		{"unknown phase", func(s *GameState) { s.Phase = Phase(42) }},
		{"prompt without pending", func(s *GameState) { s.Phase = PromptPlayerChange; s.Pending = nil }},
		{"bad player pair", func(s *GameState) { s.Opponent = s.Current }},
		{"fleet count out of range", func(s *GameState) { s.FleetCount = 7 }},
		{"invalid cell", func(s *GameState) { s.Boards[1][2][2].Render = CellState(99) }},
		{"ship off its cells", func(s *GameState) { s.Boards[0][0][0].Render = Available }},
		{"duplicate ship", func(s *GameState) {
			s.Fleets[0] = append(s.Fleets[0], Ship{Ship1x1, at(0, 0), at(0, 0)})
		}},
		{"bad geometry", func(s *GameState) { s.Fleets[1][0].B = at(3, 5) }},
		{"too many ships", func(s *GameState) {
			s.Boards[0][5][5].Render = ShipCell
			s.Boards[0][5][6].Render = ShipCell
			s.Fleets[0] = append(s.Fleets[0], Ship{Ship1x2, at(5, 5), at(5, 6)})
		}},
		{"ship cell outside fleet", func(s *GameState) { s.Boards[1][7][7].Render = ShipCell }},
		{"damaged cell outside fleet", func(s *GameState) { s.Boards[0][8][2].Render = Damaged }},
		{"fleet count out of range while choosing", func(s *GameState) {
			fresh := NewEngineWithDefaults().GetState()
			*s = *fresh
			s.FleetCount = 9
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngineWithDefaults()
			state := base()
			tt.mutate(state)
			if err := engine.SetState(state); err == nil {
				t.Error("Expected SetState to reject the state")
			}
			if engine.Phase() != ChoosingNumberOfShips {
				t.Error("Expected engine to be unchanged after rejected state")
			}
		})
	}

	if err := NewEngineWithDefaults().SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}
}

func TestSetState_KeepsListeners(t *testing.T) {
	source := NewEngineWithDefaults()
	source.SetFleetCount(1)

	engine := NewEngineWithDefaults()
	calls := 0
	engine.OnChange(func(Phase, bool) { calls++ })
	if err := engine.SetState(source.GetState()); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	engine.AdvancePhase()
	if calls != 1 {
		t.Errorf("Expected listener to survive SetState, got %d calls", calls)
	}
}
