package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestValidationConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"GridSize", GridSize, 9},
		{"MinFleetCount", MinFleetCount, 1},
		{"MaxFleetCount", MaxFleetCount, 5},
		{"AllShipTypes", len(AllShipTypes), 5},
		{"AllPhases", len(AllPhases), 5},
	}

	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, test.actual)
		}
	}
}

func TestEnumNames(t *testing.T) {
	tests := []struct {
		value    interface{ String() string }
		expected string
	}{
		{Available, "available"},
		{Disabled, "disabled"},
		{ShipCell, "ship"},
		{Damaged, "damaged"},
		{Sunk, "sunk"},
		{Missed, "missed"},
		{PlayerOne, "player_one"},
		{PlayerTwo, "player_two"},
		{ChoosingNumberOfShips, "choosing_number_of_ships"},
		{PromptPlayerChange, "prompt_player_change"},
		{PlayerVictory, "player_victory"},
		{Ship1x3, "1x3"},
	}

	for _, test := range tests {
		if test.value.String() != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, test.value.String())
		}
	}
}

func TestEnumUnmarshalRejectsUnknown(t *testing.T) {
	var cell CellState
	if err := json.Unmarshal([]byte(`"sunken"`), &cell); err == nil {
		t.Error("Expected unknown cell state to be rejected")
	}
	var phase Phase
	if err := json.Unmarshal([]byte(`"game_over"`), &phase); err == nil {
		t.Error("Expected unknown phase to be rejected")
	}
	var player Player
	if err := json.Unmarshal([]byte(`"player_three"`), &player); err == nil {
		t.Error("Expected unknown player to be rejected")
	}
	var st ShipType
	if err := json.Unmarshal([]byte(`"1x6"`), &st); err == nil {
		t.Error("Expected unknown ship type to be rejected")
	}
	if _, err := json.Marshal(CellState(17)); err == nil {
		t.Error("Expected marshalling an invalid cell state to fail")
	}
}

func TestParseShipType(t *testing.T) {
	tests := []struct {
		input   string
		want    ShipType
		wantErr bool
	}{
		{"1x1", Ship1x1, false},
		{"1x5", Ship1x5, false},
		{"4", Ship1x4, false},
		{"1x0", 0, true},
		{"1x6", 0, true},
		{"boat", 0, true},
		{"1X2", Ship1x2, false},
		{"1x3abc", 0, true},
		{"1x+3", 0, true},
		{"-3", 0, true},
		{"3 ", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseShipType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShipType(%q): unexpected error state %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseShipType(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestCoordLabels(t *testing.T) {
	tests := []struct {
		label string
		coord Coord
	}{
		{"A1", at(0, 0)},
		{"C4", at(3, 2)},
		{"I9", at(8, 8)},
	}

	for _, tt := range tests {
		got, err := ParseCoord(tt.label)
		if err != nil {
			t.Errorf("ParseCoord(%q): %v", tt.label, err)
			continue
		}
		if got != tt.coord {
			t.Errorf("ParseCoord(%q): expected %v, got %v", tt.label, tt.coord, got)
		}
		if tt.coord.Label() != tt.label {
			t.Errorf("Label(%v): expected %s, got %s", tt.coord, tt.label, tt.coord.Label())
		}
	}

	if got, err := ParseCoord(" c4 "); err != nil || got != at(3, 2) {
		t.Errorf("Expected lower-case input to parse, got %v %v", got, err)
	}
	for _, bad := range []string{"", "A", "J1", "A0", "A10", "11", "A+1", "A-1", "A1x", "A 1"} {
		if _, err := ParseCoord(bad); err == nil {
			t.Errorf("ParseCoord(%q): expected error", bad)
		}
	}
}

func TestFormatBoard(t *testing.T) {
	var board Board
	board[0][0].Render = ShipCell
	board[1][2].Render = Missed
	board[8][8].Render = Sunk

	lines := FormatBoard(board)
	if len(lines) != GridSize+1 {
		t.Fatalf("Expected %d lines, got %d", GridSize+1, len(lines))
	}
	if !strings.Contains(lines[0], "A B C D E F G H I") {
		t.Errorf("Expected column header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], " 1  S .") {
		t.Errorf("Unexpected first row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], " 2  . . o") {
		t.Errorf("Unexpected second row: %q", lines[2])
	}
	if !strings.HasSuffix(lines[9], "*") {
		t.Errorf("Unexpected last row: %q", lines[9])
	}
}

func TestGameConfigJSONMarshaling(t *testing.T) {
	config := createTestConfig()
	config.DefaultFleetCount = 2

	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if !strings.Contains(string(data), `"player_turn":"Fire away"`) {
		t.Errorf("Expected phase names as instruction keys, got %s", data)
	}

	var unmarshaled GameConfig
	if err := json.Unmarshal(data, &unmarshaled); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}
	if unmarshaled.Instructions[PlayerTurn] != "Fire away" {
		t.Errorf("Expected instruction to survive, got %v", unmarshaled.Instructions)
	}
	if unmarshaled.PlayerNames.One != "Alice" || unmarshaled.DefaultFleetCount != 2 {
		t.Errorf("Unexpected config: %+v", unmarshaled)
	}
}
